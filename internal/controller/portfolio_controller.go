package controller

import (
	"fmt"
	"net/http"

	"poe_tracker_backend/internal/service"
	"poe_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PortfolioController struct {
	Portfolios *service.PortfolioService
}

func NewPortfolioController(portfolios *service.PortfolioService) *PortfolioController {
	return &PortfolioController{Portfolios: portfolios}
}

// @Summary Export a trainee portfolio as PDF
// @Tags portfolios
// @Produce application/pdf
// @Security ApiKeyAuth
// @Param traineeId path int true "trainee id"
// @Success 200 {file} binary
// @Router /api/export-portfolio/{traineeId} [get]
func (c *PortfolioController) Export(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	traineeID := util.MustParseUint(ctx.Param("traineeId"))
	if traineeID == 0 {
		util.BadRequest(ctx, "invalid trainee id")
		return
	}

	doc, location, err := c.Portfolios.Export(ctx.Request.Context(), claims, traineeID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="portfolio_%d.pdf"`, traineeID))
	ctx.Header("X-Storage-Location", location)
	ctx.Data(http.StatusOK, "application/pdf", doc)
}
