package app

import (
	"eklavya_backend/docs"
	"eklavya_backend/internal/config"
	"eklavya_backend/internal/middleware"
	"eklavya_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)
		api.GET("/health", c.health.HealthCheck)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.Profile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)
		authGroup.POST("/user/avatar/upload", c.user.UploadAvatar)

		authGroup.GET("/dashboard", c.dashboard.Snapshot)

		authGroup.GET("/assessments/questions", c.assessment.ListQuestions)
		authGroup.POST("/assessments/start", c.assessment.StartAttempt)
		authGroup.POST("/assessments/attempts/:id/answer", c.assessment.Answer)
		authGroup.POST("/assessments/attempts/:id/submit", c.assessment.Submit)
		authGroup.GET("/assessments", c.assessment.History)

		authGroup.POST("/ai-assistant", c.assistant.Handle)

		authGroup.POST("/learning-paths/generate", c.learningPath.Generate)
		authGroup.GET("/learning-paths", c.learningPath.List)
		authGroup.GET("/learning-paths/:id", c.learningPath.Get)
		authGroup.PATCH("/learning-paths/:id/progress", c.learningPath.UpdateProgress)

		authGroup.GET("/goals", c.goal.List)
		authGroup.POST("/goals", c.goal.Create)
		authGroup.PUT("/goals/:id", c.goal.Update)
		authGroup.PATCH("/goals/:id/progress", c.goal.UpdateProgress)

		authGroup.GET("/study-sessions", c.session.List)
		authGroup.POST("/study-sessions", c.session.Schedule)
		authGroup.POST("/study-sessions/:id/complete", c.session.Complete)
	}
}
