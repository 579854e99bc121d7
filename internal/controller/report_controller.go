package controller

import (
	"poe_tracker_backend/internal/service"
	"poe_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Reports *service.ReportService
}

func NewReportController(reports *service.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

// @Summary Per-trainee submission and turnaround figures
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/reports/trainee-performance [get]
func (c *ReportController) TraineePerformance(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	out, err := c.Reports.TraineePerformanceReport(claims.Role)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// @Summary Per-assessor workload and outcome split
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/reports/assessor-activity [get]
func (c *ReportController) AssessorActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	out, err := c.Reports.AssessorActivityReport(claims.Role)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// @Summary Outcome distribution per unit and task
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/reports/assessment-outcomes [get]
func (c *ReportController) AssessmentOutcomes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	out, err := c.Reports.AssessmentOutcomesReport(claims.Role)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, out)
}
