package controller

import (
	"poe_tracker_backend/internal/service"
	"poe_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type VerificationController struct {
	Workflow *service.WorkflowService
}

func NewVerificationController(workflow *service.WorkflowService) *VerificationController {
	return &VerificationController{Workflow: workflow}
}

// @Summary Record a verification judgment on an assessment
// @Tags verifications
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.CreateVerificationRequest true "verification"
// @Success 201 {object} util.Response
// @Router /api/verifications [post]
func (c *VerificationController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateVerificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	verification, err := c.Workflow.CreateVerification(claims, req, ctx.ClientIP())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, verification)
}

// @Summary Approved assessments awaiting verification
// @Tags verifications
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/verifier/assessments [get]
func (c *VerificationController) ListVerifiable(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	out, err := c.Workflow.ListVerifiable(claims)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, out)
}
