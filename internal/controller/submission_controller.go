package controller

import (
	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/service"
	"poe_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SubmissionController is the trainee-facing workflow entry plus the
// shared detail view.
type SubmissionController struct {
	Workflow *service.WorkflowService
}

func NewSubmissionController(workflow *service.WorkflowService) *SubmissionController {
	return &SubmissionController{Workflow: workflow}
}

// @Summary Create a submission with evidence files
// @Tags submissions
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "title"
// @Param description formData string false "description"
// @Param taskId formData int true "task id"
// @Param files formData file true "evidence files"
// @Success 201 {object} util.Response
// @Router /api/submissions [post]
func (c *SubmissionController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	taskID := util.MustParseUint(ctx.PostForm("taskId"))
	if taskID == 0 {
		util.BadRequest(ctx, "taskId is required")
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	files := form.File["files"]

	req := service.CreateSubmissionRequest{
		TaskID:      taskID,
		Title:       ctx.PostForm("title"),
		Description: ctx.PostForm("description"),
	}

	sub, err := c.Workflow.CreateSubmission(ctx.Request.Context(), claims, req, files, ctx.ClientIP())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, sub)
}

// @Summary List own submissions
// @Tags submissions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/submissions [get]
func (c *SubmissionController) ListOwn(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	out, err := c.Workflow.ListOwnSubmissions(claims)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// @Summary Submission detail with assessments and verifications
// @Tags submissions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "submission id"
// @Success 200 {object} util.Response
// @Router /api/submissions/{id} [get]
func (c *SubmissionController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	sub, err := c.Workflow.GetSubmission(claims, id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// @Summary Submissions assigned to the calling assessor
// @Tags submissions
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "status filter"
// @Success 200 {object} util.Response
// @Router /api/assessor/submissions [get]
func (c *SubmissionController) ListForAssessor(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	status := model.SubmissionStatus(ctx.Query("status"))
	out, err := c.Workflow.ListForAssessor(claims, status)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, out)
}
