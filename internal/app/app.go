package app

import (
	"context"
	"errors"
	"learning_path_backend/internal/config"
	"learning_path_backend/internal/controller"
	"learning_path_backend/internal/middleware"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/service"
	"learning_path_backend/pkg/configwatcher"
	"learning_path_backend/pkg/database"
	"learning_path_backend/pkg/logger"
	"learning_path_backend/pkg/monitoring"
	"learning_path_backend/pkg/security"
	"learning_path_backend/pkg/tracing"
	"net/http"
	"os/signal"
	"syscall"
	"time"

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
	limiter         *security.Limiter
	shutdownTracer  func(context.Context) error
	configCallbacks []func(*config.Config)
}

// Deps 外部依赖，测试中直接注入
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Completer service.Completer
}

type repositories struct {
	user         *repository.UserRepository
	learningPath *repository.LearningPathRepository
	progress     *repository.ProgressRepository
	quiz         *repository.QuizRepository
	quizAttempt  *repository.QuizAttemptRepository
	blacklist    *repository.TokenBlacklistRepository
}

type services struct {
	auth         *service.AuthService
	ai           *service.AIService
	progress     *service.ProgressService
	learningPath *service.LearningPathService
	quiz         *service.QuizService
	tutoring     *service.TutoringService
}

type controllers struct {
	auth         *controller.AuthController
	learningPath *controller.LearningPathController
	quiz         *controller.QuizController
	tutoring     *controller.TutoringController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	repos := &repositories{
		user:         repository.NewUserRepository(db),
		learningPath: repository.NewLearningPathRepository(db),
		progress:     repository.NewProgressRepository(db),
		quiz:         repository.NewQuizRepository(db),
		quizAttempt:  repository.NewQuizAttemptRepository(db),
	}
	if rdb != nil {
		repos.blacklist = repository.NewTokenBlacklistRepository(rdb)
	}
	return repos
}

func (a *App) initServices(repos *repositories, cfg *config.Config, completer service.Completer) *services {
	s := &services{}

	// 未启用 Redis 时必须传无类型的 nil，避免接口持有空指针
	var revoker service.TokenRevoker
	if repos.blacklist != nil {
		revoker = repos.blacklist
	}
	s.auth = service.NewAuthService(repos.user, revoker, cfg.JWT)

	s.ai = service.NewAIService(completer)
	s.progress = service.NewProgressService(repos.progress, repos.learningPath)
	s.learningPath = service.NewLearningPathService(repos.learningPath, s.progress, s.ai)
	s.quiz = service.NewQuizService(repos.quiz, repos.quizAttempt, repos.learningPath, s.ai, cfg.AI.QuizQuestionCount)
	s.tutoring = service.NewTutoringService(s.ai)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		learningPath: controller.NewLearningPathController(s.learningPath, s.progress),
		quiz:         controller.NewQuizController(s.quiz),
		tutoring:     controller.NewTutoringController(s.tutoring),
		health:       controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())
	router.Use(a.limiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp 按配置建立数据库、Redis 和 AI 客户端。AI 密钥缺失时直接失败
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, err
	}

	if !cfg.IsRelease() || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, err
		}
		logger.Log.Info("Database migrated", zap.String("driver", cfg.Database.Driver))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err = database.InitRedis(ctx, &cfg.Redis)
		cancel()
		if err != nil {
			return nil, err
		}
	}

	completer, err := service.NewOpenAICompleter(cfg.AI)
	if err != nil {
		return nil, err
	}

	shutdownTracer, err := tracing.InitTracer(cfg.Tracing)
	if err != nil {
		return nil, err
	}

	app := New(cfg, Deps{DB: db, Redis: rdb, Completer: completer})
	app.shutdownTracer = shutdownTracer
	return app, nil
}

// New 用已建立的依赖组装路由
func New(cfg *config.Config, deps Deps) *App {
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{
		Config:  cfg,
		DB:      deps.DB,
		Redis:   deps.Redis,
		limiter: security.NewLimiter(cfg.RateLimit),
	}

	repos := app.initRepositories(deps.DB, deps.Redis)
	services := app.initServices(repos, cfg, deps.Completer)
	controllers := app.initControllers(services)

	monitoring.Init()

	router := gin.New()
	app.Router = router
	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, repos, cfg)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
	})

	return app
}

func (a *App) reloadConfig(newCfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(newCfg)
	}
}

// Run 阻塞直到收到 SIGINT/SIGTERM，然后优雅关闭
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go a.limiter.RunCleanup(ctx.Done())

	if a.Config.ConfigPath != "" {
		go func() {
			if err := configwatcher.Watch(ctx, a.Config.ConfigPath, a.reloadConfig); err != nil {
				logger.Log.Warn("Config watcher disabled", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	a.Close(shutdownCtx)
	logger.Log.Info("Server exiting")
	return nil
}

func (a *App) Close(ctx context.Context) {
	if a.shutdownTracer != nil {
		if err := a.shutdownTracer(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = logger.Log.Sync()
}
