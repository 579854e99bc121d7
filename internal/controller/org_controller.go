package controller

import (
	"poe_tracker_backend/internal/service"
	"poe_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// OrgController exposes the descriptive hierarchy CRUD (admin only).
type OrgController struct {
	OrgService *service.OrgService
}

func NewOrgController(orgService *service.OrgService) *OrgController {
	return &OrgController{OrgService: orgService}
}

// @Summary Create a department
// @Tags org
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.DepartmentRequest true "department"
// @Success 201 {object} util.Response
// @Router /api/admin/departments [post]
func (c *OrgController) CreateDepartment(ctx *gin.Context) {
	var req service.DepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	d, err := c.OrgService.CreateDepartment(req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, d)
}

// @Summary List departments
// @Tags org
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/departments [get]
func (c *OrgController) ListDepartments(ctx *gin.Context) {
	out, err := c.OrgService.ListDepartments()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// @Summary Create a study level
// @Tags org
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.StudyLevelRequest true "study level"
// @Success 201 {object} util.Response
// @Router /api/admin/study-levels [post]
func (c *OrgController) CreateStudyLevel(ctx *gin.Context) {
	var req service.StudyLevelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	l, err := c.OrgService.CreateStudyLevel(req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, l)
}

// @Summary List study levels
// @Tags org
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/study-levels [get]
func (c *OrgController) ListStudyLevels(ctx *gin.Context) {
	out, err := c.OrgService.ListStudyLevels()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// @Summary Create a course
// @Tags org
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CourseRequest true "course"
// @Success 201 {object} util.Response
// @Router /api/admin/courses [post]
func (c *OrgController) CreateCourse(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.OrgService.CreateCourse(req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary List courses
// @Tags org
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/courses [get]
func (c *OrgController) ListCourses(ctx *gin.Context) {
	out, err := c.OrgService.ListCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// @Summary Courses of a department
// @Tags org
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "department id"
// @Success 200 {object} util.Response
// @Router /api/admin/departments/{id}/courses [get]
func (c *OrgController) CoursesByDepartment(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}
	out, err := c.OrgService.CoursesByDepartment(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// @Summary Create a class intake
// @Tags org
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ClassIntakeRequest true "class intake"
// @Success 201 {object} util.Response
// @Router /api/admin/class-intakes [post]
func (c *OrgController) CreateClassIntake(ctx *gin.Context) {
	var req service.ClassIntakeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	ci, err := c.OrgService.CreateClassIntake(req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, ci)
}

// @Summary List class intakes
// @Tags org
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/class-intakes [get]
func (c *OrgController) ListClassIntakes(ctx *gin.Context) {
	out, err := c.OrgService.ListClassIntakes()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// @Summary Class intakes of a course
// @Tags org
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id}/intakes [get]
func (c *OrgController) IntakesByCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}
	out, err := c.OrgService.IntakesByCourse(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// @Summary Create a module
// @Tags org
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ModuleRequest true "module"
// @Success 201 {object} util.Response
// @Router /api/admin/modules [post]
func (c *OrgController) CreateModule(ctx *gin.Context) {
	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	m, err := c.OrgService.CreateModule(req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, m)
}

// @Summary List modules
// @Tags org
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/modules [get]
func (c *OrgController) ListModules(ctx *gin.Context) {
	out, err := c.OrgService.ListModules()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// @Summary Modules of a course
// @Tags org
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id}/modules [get]
func (c *OrgController) ModulesByCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}
	out, err := c.OrgService.ModulesByCourse(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, out)
}
