package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poe_tracker_backend/internal/config"
	"poe_tracker_backend/internal/controller"
	"poe_tracker_backend/internal/repository"
	"poe_tracker_backend/internal/service"
	"poe_tracker_backend/pkg/configwatcher"
	"poe_tracker_backend/pkg/database"
	"poe_tracker_backend/pkg/logger"
	"poe_tracker_backend/pkg/monitoring"
	"poe_tracker_backend/pkg/security"
	"poe_tracker_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	repos           *repositories
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	org          *repository.OrgRepository
	unit         *repository.UnitRepository
	assignment   *repository.AssignmentRepository
	submission   *repository.SubmissionRepository
	assessment   *repository.AssessmentRepository
	verification *repository.VerificationRepository
	notification *repository.NotificationRepository
	activity     *repository.ActivityRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	org          *service.OrgService
	unit         *service.UnitService
	assignment   *service.AssignmentService
	storage      *service.StorageService
	notification *service.NotificationService
	workflow     *service.WorkflowService
	report       *service.ReportService
	portfolio    *service.PortfolioService
	activity     *service.ActivityService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	org          *controller.OrgController
	unit         *controller.UnitController
	assignment   *controller.AssignmentController
	submission   *controller.SubmissionController
	assessment   *controller.AssessmentController
	verification *controller.VerificationController
	notification *controller.NotificationController
	report       *controller.ReportController
	portfolio    *controller.PortfolioController
	activity     *controller.ActivityController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		org:          repository.NewOrgRepository(db),
		unit:         repository.NewUnitRepository(db),
		assignment:   repository.NewAssignmentRepository(db),
		submission:   repository.NewSubmissionRepository(db),
		assessment:   repository.NewAssessmentRepository(db),
		verification: repository.NewVerificationRepository(db),
		notification: repository.NewNotificationRepository(db),
		activity:     repository.NewActivityRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.org)
	s.org = service.NewOrgService(repos.org)
	s.unit = service.NewUnitService(repos.unit)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.user, repos.unit, repos.org)
	s.notification = service.NewNotificationService(repos.notification, rdb)

	s.workflow = service.NewWorkflowService(
		repos.submission,
		repos.assessment,
		repos.verification,
		repos.assignment,
		repos.unit,
		repos.user,
		repos.activity,
		s.notification,
		s.storage,
	)

	s.report = service.NewReportService(repos.submission, repos.assessment, repos.user, repos.unit)
	s.portfolio = service.NewPortfolioService(repos.submission, repos.assignment, repos.user, repos.unit, s.storage)
	s.activity = service.NewActivityService(repos.activity)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth, s.user),
		user:         controller.NewUserController(s.user),
		org:          controller.NewOrgController(s.org),
		unit:         controller.NewUnitController(s.unit),
		assignment:   controller.NewAssignmentController(s.assignment),
		submission:   controller.NewSubmissionController(s.workflow),
		assessment:   controller.NewAssessmentController(s.workflow),
		verification: controller.NewVerificationController(s.workflow),
		notification: controller.NewNotificationController(s.notification),
		report:       controller.NewReportController(s.report),
		portfolio:    controller.NewPortfolioController(s.portfolio),
		activity:     controller.NewActivityController(s.activity),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) onConfigReload(cfg interface{}) {
	newCfg, ok := cfg.(*config.Config)
	if !ok {
		return
	}
	a.Config.JWT = newCfg.JWT
	a.Config.RateLimit = newCfg.RateLimit
	a.Config.CORS = newCfg.CORS
	logger.Log.Info("Configuration reloaded")
	for _, cb := range a.configCallbacks {
		cb(newCfg)
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, &cfg.Admin)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Redis only backs the unread-notification cache; the service falls
	// back to counting in the database when it is absent.
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, notification counts served from database", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	app.repos = repos
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("poe-tracker", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	go configwatcher.WatchConfig("configs/config.yaml", cfg, app.onConfigReload)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
