package controller

import (
	"poe_tracker_backend/internal/service"
	"poe_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Workflow *service.WorkflowService
}

func NewAssessmentController(workflow *service.WorkflowService) *AssessmentController {
	return &AssessmentController{Workflow: workflow}
}

// @Summary Record an assessment for a submission
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.CreateAssessmentRequest true "assessment"
// @Success 201 {object} util.Response
// @Router /api/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment, err := c.Workflow.CreateAssessment(claims, req, ctx.ClientIP())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, assessment)
}
