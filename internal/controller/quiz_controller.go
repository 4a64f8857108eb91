package controller

import (
	"encoding/json"
	"learning_path_backend/internal/service"
	"learning_path_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// AttemptRequest 答案以题目 id 为键
type AttemptRequest struct {
	Answers map[string]json.RawMessage `json:"answers"`
}

// Generate godoc
// @Summary 为模块生成测验
// @Description 同一学习路径的同一模块只生成一次，已存在时直接返回
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GenerateQuizRequest true "learningPathId, moduleId, moduleTopic, difficulty"
// @Success 200 {object} map[string]interface{} "已存在"
// @Success 201 {object} map[string]interface{} "新生成"
// @Failure 400 {object} util.ErrorResponse
// @Router /api/quizzes/generate [post]
func (c *QuizController) Generate(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.GenerateQuizRequest
	if !bindJSON(ctx, &req) {
		return
	}

	quiz, created, err := c.QuizService.GenerateQuiz(ctx.Request.Context(), userID, req)
	if err != nil {
		util.RespondError(ctx, err, "Failed to generate quiz")
		return
	}

	if !created {
		util.Success(ctx, gin.H{"quiz": quiz})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Quiz generated successfully",
		"quiz":    quiz,
	})
}

// Get godoc
// @Summary 获取测验
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "quiz id")
	if !ok {
		return
	}

	quiz, err := c.QuizService.GetQuiz(ctx.Request.Context(), id)
	if err != nil {
		util.RespondError(ctx, err, "Failed to fetch quiz")
		return
	}

	util.Success(ctx, gin.H{"quiz": quiz})
}

// SubmitAttempt godoc
// @Summary 提交测验答案
// @Description 严格比较每道题的答案，返回分数和逐题结果
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Param   body body AttemptRequest true "答案"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} util.ErrorResponse
// @Router /api/quizzes/{id}/attempt [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "quiz id")
	if !ok {
		return
	}

	var req AttemptRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.QuizService.GradeAttempt(ctx.Request.Context(), userID, id, req.Answers)
	if err != nil {
		util.RespondError(ctx, err, "Failed to submit quiz")
		return
	}

	util.Success(ctx, gin.H{
		"message": "Quiz submitted successfully",
		"score":   result.Score,
		"results": result.Results,
		"attempt": result.Attempt,
	})
}

// ListAttempts godoc
// @Summary 当前用户在该测验上的提交记录
// @Tags 测验
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "测验ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/quizzes/{id}/attempts [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "quiz id")
	if !ok {
		return
	}

	attempts, err := c.QuizService.ListAttempts(ctx.Request.Context(), userID, id)
	if err != nil {
		util.RespondError(ctx, err, "Failed to fetch attempts")
		return
	}

	util.Success(ctx, gin.H{"attempts": attempts})
}
