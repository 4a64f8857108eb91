package controller

import (
	"learning_path_backend/internal/service"
	"learning_path_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TutoringController struct {
	TutoringService *service.TutoringService
}

func NewTutoringController(tutoringService *service.TutoringService) *TutoringController {
	return &TutoringController{TutoringService: tutoringService}
}

// Ask godoc
// @Summary AI 答疑
// @Tags 答疑
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.TutorRequest true "问题和上下文"
// @Success 200 {object} service.TutorAnswer
// @Failure 400 {object} util.ErrorResponse
// @Router /api/tutoring/ask [post]
func (c *TutoringController) Ask(ctx *gin.Context) {
	var req service.TutorRequest
	if !bindJSON(ctx, &req) {
		return
	}

	answer, err := c.TutoringService.Ask(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, err, "Failed to get tutoring response")
		return
	}

	util.Success(ctx, answer)
}
