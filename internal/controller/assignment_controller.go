package controller

import (
	"poe_tracker_backend/internal/service"
	"poe_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	Service *service.AssignmentService
}

func NewAssignmentController(svc *service.AssignmentService) *AssignmentController {
	return &AssignmentController{Service: svc}
}

// @Summary Assign an assessor to a trainee's unit
// @Tags assignments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AssignmentRequest true "assignment"
// @Success 201 {object} util.Response
// @Router /api/admin/assignments [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	var req service.AssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	a, err := c.Service.Create(req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, a)
}

// @Summary List assignments
// @Tags assignments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/assignments [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	out, err := c.Service.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, out)
}
