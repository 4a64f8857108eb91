package controller

import (
	"learning_path_backend/internal/service"
	"learning_path_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningPathController struct {
	PathService     *service.LearningPathService
	ProgressService *service.ProgressService
}

func NewLearningPathController(pathService *service.LearningPathService, progressService *service.ProgressService) *LearningPathController {
	return &LearningPathController{
		PathService:     pathService,
		ProgressService: progressService,
	}
}

// Generate godoc
// @Summary 生成学习路径
// @Description 调用 AI 根据目标和水平生成学习路径
// @Tags 学习路径
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GeneratePathRequest true "目标、当前水平、学习风格"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /api/learning-paths/generate [post]
func (c *LearningPathController) Generate(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.GeneratePathRequest
	if !bindJSON(ctx, &req) {
		return
	}

	path, err := c.PathService.Generate(ctx.Request.Context(), userID, req)
	if err != nil {
		util.RespondError(ctx, err, "Failed to generate learning path")
		return
	}

	util.Created(ctx, gin.H{
		"message":      "Learning path generated successfully",
		"learningPath": path,
	})
}

// List godoc
// @Summary 当前用户的学习路径
// @Tags 学习路径
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/learning-paths [get]
func (c *LearningPathController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	paths, err := c.PathService.List(ctx.Request.Context(), userID)
	if err != nil {
		util.RespondError(ctx, err, "Failed to fetch learning paths")
		return
	}

	util.Success(ctx, gin.H{"learningPaths": paths})
}

// Get godoc
// @Summary 学习路径详情及进度
// @Tags 学习路径
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "学习路径ID"
// @Success 200 {object} service.PathDetail
// @Failure 404 {object} util.ErrorResponse
// @Router /api/learning-paths/{id} [get]
func (c *LearningPathController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "learning path id")
	if !ok {
		return
	}

	detail, err := c.PathService.Get(ctx.Request.Context(), userID, id)
	if err != nil {
		util.RespondError(ctx, err, "Failed to fetch learning path")
		return
	}

	util.Success(ctx, detail)
}

// RecordProgress godoc
// @Summary 记录模块进度
// @Description 按 (用户, 学习路径, 模块) upsert，后一次提交覆盖前一次
// @Tags 学习路径
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "学习路径ID"
// @Param   body body service.ProgressRequest true "moduleId, completed, score, timeSpent"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/learning-paths/{id}/progress [post]
func (c *LearningPathController) RecordProgress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "learning path id")
	if !ok {
		return
	}

	var req service.ProgressRequest
	if !bindJSON(ctx, &req) {
		return
	}

	progress, err := c.ProgressService.RecordProgress(ctx.Request.Context(), userID, id, req)
	if err != nil {
		util.RespondError(ctx, err, "Failed to update progress")
		return
	}

	util.Success(ctx, gin.H{
		"message":  "Progress updated successfully",
		"progress": progress,
	})
}

// Delete godoc
// @Summary 删除学习路径
// @Tags 学习路径
// @Security BearerAuth
// @Param   id path int true "学习路径ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} util.ErrorResponse
// @Router /api/learning-paths/{id} [delete]
func (c *LearningPathController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "learning path id")
	if !ok {
		return
	}

	if err := c.PathService.Delete(ctx.Request.Context(), userID, id); err != nil {
		util.RespondError(ctx, err, "Failed to delete learning path")
		return
	}

	util.Success(ctx, gin.H{"message": "Learning path deleted successfully"})
}
