package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"classhub_backend/internal/config"
	"classhub_backend/internal/controller"
	"classhub_backend/internal/repository"
	"classhub_backend/internal/service"
	"classhub_backend/pkg/configwatcher"
	"classhub_backend/pkg/database"
	"classhub_backend/pkg/logger"
	"classhub_backend/pkg/monitoring"
	"classhub_backend/pkg/security"
	"classhub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config        *config.Config
	Router        *gin.Engine
	DB            *gorm.DB
	Redis         *redis.Client
	shutdownHooks []func()
}

type repositories struct {
	user       *repository.UserRepository
	class      *repository.ClassRepository
	course     *repository.CourseRepository
	quiz       *repository.QuizRepository
	attempt    *repository.QuizAttemptRepository
	assignment *repository.AssignmentRepository
	problem    *repository.ProblemRepository
	schedule   *repository.ScheduleRepository
	media      *repository.MediaFileRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	class      *service.ClassService
	course     *service.CourseService
	quiz       *service.QuizService
	assignment *service.AssignmentService
	ai         *service.AIService
	problem    *service.ProblemService
	schedule   *service.ScheduleService
	storage    *service.StorageService
	media      *service.MediaService
}

type controllers struct {
	auth       *controller.AuthController
	admin      *controller.AdminController
	class      *controller.ClassController
	course     *controller.CourseController
	quiz       *controller.QuizController
	assignment *controller.AssignmentController
	problem    *controller.ProblemController
	schedule   *controller.ScheduleController
	upload     *controller.UploadController
	health     *controller.HealthController
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		class:      repository.NewClassRepository(db),
		course:     repository.NewCourseRepository(db),
		quiz:       repository.NewQuizRepository(db),
		attempt:    repository.NewQuizAttemptRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		problem:    repository.NewProblemRepository(db),
		schedule:   repository.NewScheduleRepository(db),
		media:      repository.NewMediaFileRepository(db),
	}
}

func initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.ai = service.NewAIService(cfg.AI)

	s.auth = service.NewAuthService(repos.user, repos.class, repos.assignment, repos.attempt, cfg)
	s.user = service.NewUserService(repos.user, repos.class, repos.attempt, repos.assignment)
	s.class = service.NewClassService(repos.class, repos.user, rdb)
	s.course = service.NewCourseService(repos.course, s.class)
	s.quiz = service.NewQuizService(repos.quiz, repos.attempt, s.class)
	s.assignment = service.NewAssignmentService(repos.assignment, s.class)
	s.problem = service.NewProblemService(repos.problem, repos.user, s.ai)
	s.schedule = service.NewScheduleService(repos.schedule, repos.class)
	s.media = service.NewMediaService(repos.media, repos.user, s.storage)

	return s
}

func initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		admin:      controller.NewAdminController(s.user, s.class),
		class:      controller.NewClassController(s.class),
		course:     controller.NewCourseController(s.course),
		quiz:       controller.NewQuizController(s.quiz),
		assignment: controller.NewAssignmentController(s.assignment),
		problem:    controller.NewProblemController(s.problem),
		schedule:   controller.NewScheduleController(s.schedule),
		upload:     controller.NewUploadController(s.media),
		health:     controller.NewHealthController(db, rdb),
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)
	logger.Log.Info("logger initialized", zap.String("mode", cfg.Server.Mode))

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
	}

	rdb := database.InitRedis(cfg)

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := initRepositories(db)
	svcs := initServices(repos, cfg, rdb)
	ctrls := initControllers(svcs, db, rdb)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	router.Use(security.CORSMiddleware(cfg))
	router.Use(security.SecureHeadersMiddleware())
	router.Use(security.NewRateLimiter(cfg).Middleware())
	router.Use(monitoring.MetricsMiddleware())

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer("classhub", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("failed to initialize tracing", zap.Error(err))
		} else {
			router.Use(tracing.GinMiddleware("classhub"))
			app.shutdownHooks = append(app.shutdownHooks, shutdown)
		}
	}

	app.registerRoutes(router, ctrls, svcs, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.watchConfig(svcs)

	return app
}

// watchConfig 监听配置文件，热更新支持动态调整的部分（目前为 AI 接入参数）
func (a *App) watchConfig(svcs *services) {
	watcher, err := configwatcher.Watch("configs/config.yaml", func() {
		newCfg, err := config.LoadConfig("configs")
		if err != nil {
			logger.Log.Warn("config reload failed, keeping current config", zap.Error(err))
			return
		}
		svcs.ai.UpdateConfig(newCfg.AI)
		logger.Log.Info("config reloaded", zap.String("aiModel", newCfg.AI.Model))
	})
	if err != nil {
		logger.Log.Warn("config watcher disabled", zap.Error(err))
		return
	}
	a.shutdownHooks = append(a.shutdownHooks, func() { watcher.Close() })
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	for _, hook := range a.shutdownHooks {
		hook()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("server exited")
	logger.Sync()
}
