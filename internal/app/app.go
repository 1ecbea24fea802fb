package app

import (
	"context"
	"eklavya_backend/internal/config"
	"eklavya_backend/internal/controller"
	"eklavya_backend/internal/repository"
	"eklavya_backend/internal/service"
	"eklavya_backend/pkg/database"
	"eklavya_backend/pkg/logger"
	"eklavya_backend/pkg/monitoring"
	"eklavya_backend/pkg/security"
	"eklavya_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user         *repository.UserRepository
	assessment   *repository.AssessmentRepository
	learningPath *repository.LearningPathRepository
	goal         *repository.GoalRepository
	session      *repository.StudySessionRepository
}

type services struct {
	ai           *service.AIService
	storage      *service.StorageService
	auth         *service.AuthService
	user         *service.UserService
	assessment   *service.AssessmentService
	learningPath *service.LearningPathService
	assistant    *service.AssistantService
	goal         *service.GoalService
	session      *service.StudySessionService
	dashboard    *service.DashboardService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	assessment   *controller.AssessmentController
	assistant    *controller.AssistantController
	learningPath *controller.LearningPathController
	goal         *controller.GoalController
	session      *controller.StudySessionController
	dashboard    *controller.DashboardController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		assessment:   repository.NewAssessmentRepository(db),
		learningPath: repository.NewLearningPathRepository(db),
		goal:         repository.NewGoalRepository(db),
		session:      repository.NewStudySessionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	cache := service.NewDashboardCache(rdb)
	ai := service.NewAIService(cfg.AI)
	s.ai = ai

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage, cache)
	s.assessment = service.NewAssessmentService(repos.assessment, cache)
	s.learningPath = service.NewLearningPathService(repos.learningPath, repos.assessment, repos.user, ai, cache)
	s.assistant = service.NewAssistantService(repos.user, repos.assessment, repos.session, repos.learningPath, s.learningPath, ai, cache)
	s.goal = service.NewGoalService(repos.goal, cache)
	s.session = service.NewStudySessionService(repos.session)
	s.dashboard = service.NewDashboardService(repos.user, repos.assessment, repos.learningPath, repos.goal, cache)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		assessment:   controller.NewAssessmentController(s.assessment),
		assistant:    controller.NewAssistantController(s.assistant),
		learningPath: controller.NewLearningPathController(s.learningPath),
		goal:         controller.NewGoalController(s.goal),
		session:      controller.NewStudySessionController(s.session),
		dashboard:    controller.NewDashboardController(s.dashboard),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("eklavya-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// ReloadConfig applies the hot-reloadable parts of a fresh config. Components
// built at startup (router, rate limiter, DB pool) keep their settings.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.services.ai.UpdateConfig(cfg.AI)
	logger.Log.Info("Config reloaded", zap.String("ai_model", cfg.AI.Model))
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
