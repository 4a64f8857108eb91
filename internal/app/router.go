package app

import (
	"learning_path_backend/internal/config"
	"learning_path_backend/internal/middleware"
	"learning_path_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/", c.health.Root)
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	api.GET("/health", c.health.HealthCheck)

	var revoked middleware.RevocationChecker
	if repos.blacklist != nil {
		revoked = repos.blacklist
	}
	auth := middleware.AuthMiddleware(cfg.JWT.Secret, revoked)

	// 1. 公共路由
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", c.auth.Register)
		authRoutes.POST("/login", c.auth.Login)
		authRoutes.GET("/me", auth, c.auth.Me)
		// 注销依赖 Redis 黑名单
		if repos.blacklist != nil {
			authRoutes.POST("/logout", auth, c.auth.Logout)
		}
	}

	// 2. 需要授权的路由
	authorized := api.Group("")
	authorized.Use(auth)
	{
		paths := authorized.Group("/learning-paths")
		paths.POST("/generate", c.learningPath.Generate)
		paths.GET("", c.learningPath.List)
		paths.GET("/:id", c.learningPath.Get)
		paths.POST("/:id/progress", c.learningPath.RecordProgress)
		paths.DELETE("/:id", c.learningPath.Delete)

		quizzes := authorized.Group("/quizzes")
		quizzes.POST("/generate", c.quiz.Generate)
		quizzes.GET("/:id", c.quiz.Get)
		quizzes.POST("/:id/attempt", c.quiz.SubmitAttempt)
		quizzes.GET("/:id/attempts", c.quiz.ListAttempts)

		authorized.POST("/tutoring/ask", c.tutoring.Ask)
	}
}
