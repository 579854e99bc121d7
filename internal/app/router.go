package app

import (
	"poe_tracker_backend/docs"
	"poe_tracker_backend/internal/config"
	"poe_tracker_backend/internal/middleware"
	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg, repos.user), middleware.ActivityMiddleware(repos.user))
	{
		a.registerCommonRoutes(authGroup, c)
		a.registerWorkflowRoutes(authGroup, c)
		a.registerReportRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Check)
		public.POST("/login", c.auth.Login)
	}
}

// Routes every authenticated role shares.
func (a *App) registerCommonRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.auth.UpdateProfile)
	rg.PUT("/profile/password", c.auth.ChangePassword)

	rg.GET("/notifications", c.notification.List)
	rg.GET("/notifications/unread-count", c.notification.UnreadCount)
	rg.PATCH("/notifications/:id/read", c.notification.MarkRead)

	rg.GET("/activity", c.activity.ListOwn)

	rg.GET("/units", c.unit.ListUnits)
	rg.GET("/units/:id/tasks", c.unit.TasksByUnit)

	// Detail view authorization is per submission, in the service.
	rg.GET("/submissions/:id", c.submission.Get)
}

func (a *App) registerWorkflowRoutes(rg *gin.RouterGroup, c *controllers) {
	trainee := rg.Group("/")
	trainee.Use(middleware.RoleMiddleware(model.Trainee))
	{
		trainee.POST("/submissions", c.submission.Create)
		trainee.GET("/submissions", c.submission.ListOwn)
	}

	assessor := rg.Group("/")
	assessor.Use(middleware.RoleMiddleware(model.Assessor))
	{
		assessor.GET("/assessor/submissions", c.submission.ListForAssessor)
		assessor.POST("/assessments", c.assessment.Create)
	}

	verifier := rg.Group("/")
	verifier.Use(middleware.RoleMiddleware(model.InternalVerifier, model.ExternalVerifier))
	{
		verifier.GET("/verifier/assessments", c.verification.ListVerifiable)
		verifier.POST("/verifications", c.verification.Create)
	}

	// Trainees export their own portfolio, assessors those of assigned
	// trainees, admins any; the service decides.
	rg.GET("/export-portfolio/:traineeId", c.portfolio.Export)
}

func (a *App) registerReportRoutes(rg *gin.RouterGroup, c *controllers) {
	reports := rg.Group("/reports")
	reports.Use(middleware.RoleMiddleware(model.Admin, model.InternalVerifier, model.ExternalVerifier))
	{
		reports.GET("/trainee-performance", c.report.TraineePerformance)
		reports.GET("/assessor-activity", c.report.AssessorActivity)
		reports.GET("/assessment-outcomes", c.report.AssessmentOutcomes)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/users", c.user.CreateUser)
		admin.GET("/users", c.user.ListUsers)
		admin.GET("/users/:id", c.user.GetUser)
		admin.PUT("/users/:id", c.user.UpdateUser)
		admin.PATCH("/users/:id/deactivate", c.user.DeactivateUser)
		admin.PATCH("/users/:id/activate", c.user.ActivateUser)

		admin.POST("/departments", c.org.CreateDepartment)
		admin.GET("/departments", c.org.ListDepartments)
		admin.GET("/departments/:id/courses", c.org.CoursesByDepartment)
		admin.POST("/study-levels", c.org.CreateStudyLevel)
		admin.GET("/study-levels", c.org.ListStudyLevels)
		admin.POST("/courses", c.org.CreateCourse)
		admin.GET("/courses", c.org.ListCourses)
		admin.GET("/courses/:id/intakes", c.org.IntakesByCourse)
		admin.GET("/courses/:id/modules", c.org.ModulesByCourse)
		admin.POST("/class-intakes", c.org.CreateClassIntake)
		admin.GET("/class-intakes", c.org.ListClassIntakes)
		admin.POST("/modules", c.org.CreateModule)
		admin.GET("/modules", c.org.ListModules)

		admin.POST("/units", c.unit.CreateUnit)
		admin.POST("/tasks", c.unit.CreateTask)

		admin.POST("/assignments", c.assignment.Create)
		admin.GET("/assignments", c.assignment.List)

		admin.GET("/activity", c.activity.ListAll)
	}
}
