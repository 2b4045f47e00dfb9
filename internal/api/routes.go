package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wellnest/tracker-api/internal/domain"
	"wellnest/tracker-api/internal/service"
)

// Services is everything the HTTP layer depends on.
type Services struct {
	Auth     service.AuthService
	Profile  service.ProfileService
	Tracker  service.TrackerService
	Goals    service.GoalService
	Water    service.LogService[domain.WaterLog]
	Sleep    service.LogService[domain.SleepLog]
	Workouts service.LogService[domain.WorkoutLog]
	Meals    service.LogService[domain.MealLog]
}

func SetupRoutes(router *gin.Engine, logger *zap.Logger, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	profileHandler := NewProfileHandler(svc.Profile)
	trackerHandler := NewTrackerHandler(svc.Tracker, svc.Goals)

	router.Use(RequestLogger(logger))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(svc.Auth))
	{
		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.UpdateProfile)
			profileGroup.GET("/metrics", profileHandler.GetMetrics)
			profileGroup.POST("/avatar/upload-url", profileHandler.RequestAvatarUpload)
			profileGroup.POST("/avatar/confirm", profileHandler.ConfirmAvatar)
		}

		registerLogRoutes(protected.Group("/water"), NewLogHandler(svc.Water, DecodeWaterLog))
		registerLogRoutes(protected.Group("/sleep"), NewLogHandler(svc.Sleep, DecodeSleepLog))
		registerLogRoutes(protected.Group("/workouts"), NewLogHandler(svc.Workouts, DecodeWorkoutLog))
		registerLogRoutes(protected.Group("/meals"), NewLogHandler(svc.Meals, DecodeMealLog))

		protected.GET("/dashboard", trackerHandler.GetDashboard)

		goalGroup := protected.Group("/goals")
		{
			goalGroup.GET("", trackerHandler.ListGoals)
			goalGroup.POST("", trackerHandler.CreateGoal)
			goalGroup.DELETE("/:id", trackerHandler.DeleteGoal)
		}
	}
}

func registerLogRoutes[E domain.Loggable[E]](group *gin.RouterGroup, h *LogHandler[E]) {
	group.POST("", h.Create)
	group.GET("", h.List)
	group.DELETE("/:id", h.Delete)
}
