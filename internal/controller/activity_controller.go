package controller

import (
	"strconv"

	"poe_tracker_backend/internal/service"
	"poe_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	Activity *service.ActivityService
}

func NewActivityController(activity *service.ActivityService) *ActivityController {
	return &ActivityController{Activity: activity}
}

// @Summary Own activity trail
// @Tags activity
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Success 200 {object} util.Response
// @Router /api/activity [get]
func (c *ActivityController) ListOwn(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	items, total, err := c.Activity.ListForUser(claims.UserID, claims.Role, claims.UserID, page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}

// @Summary Activity trail across all users
// @Tags activity
// @Produce json
// @Security ApiKeyAuth
// @Param userId query int false "filter by user"
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Success 200 {object} util.Response
// @Router /api/admin/activity [get]
func (c *ActivityController) ListAll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	if userID := util.MustParseUint(ctx.Query("userId")); userID != 0 {
		items, total, err := c.Activity.ListForUser(claims.UserID, claims.Role, userID, page, limit)
		if err != nil {
			util.RespondError(ctx, err)
			return
		}
		util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
		return
	}

	items, total, err := c.Activity.ListAll(page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}
