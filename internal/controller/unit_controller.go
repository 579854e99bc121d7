package controller

import (
	"poe_tracker_backend/internal/service"
	"poe_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UnitController struct {
	UnitService *service.UnitService
}

func NewUnitController(unitService *service.UnitService) *UnitController {
	return &UnitController{UnitService: unitService}
}

// @Summary Create a unit
// @Tags units
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.UnitRequest true "unit"
// @Success 201 {object} util.Response
// @Router /api/admin/units [post]
func (c *UnitController) CreateUnit(ctx *gin.Context) {
	var req service.UnitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	u, err := c.UnitService.CreateUnit(req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, u)
}

// @Summary List units
// @Tags units
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/units [get]
func (c *UnitController) ListUnits(ctx *gin.Context) {
	out, err := c.UnitService.ListUnits()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// @Summary Tasks of a unit
// @Tags units
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "unit id"
// @Success 200 {object} util.Response
// @Router /api/units/{id}/tasks [get]
func (c *UnitController) TasksByUnit(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}
	out, err := c.UnitService.TasksByUnit(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// @Summary Create a task with its criteria checklist
// @Tags units
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TaskRequest true "task"
// @Success 201 {object} util.Response
// @Router /api/admin/tasks [post]
func (c *UnitController) CreateTask(ctx *gin.Context) {
	var req service.TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	t, err := c.UnitService.CreateTask(req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, t)
}
