package api

import (
	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/metrics"
	"github.com/samueldk12/trainer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services are the dependencies of the HTTP layer. AuthService is only
// required when Provisional is nil.
type Services struct {
	Auth      service.AuthService
	Exercises service.ExerciseService
	Workouts  service.WorkoutService
	Sessions  service.SessionService
	Health    service.HealthService
	Seed      service.SeedService

	// Provisional, when set, is the identity every request acts as.
	Provisional *domain.Identity
	EnableSeed  bool

	Metrics  *metrics.Manager
	Registry *prometheus.Registry
}

// NewRouter builds a gin engine with the middleware stack and every route.
func NewRouter(s Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), RequestMetrics(s.Metrics))
	SetupRoutes(router, s)
	return router
}

func SetupRoutes(router *gin.Engine, s Services) {
	miscHandler := NewMiscHandler(s.Health, s.Seed)
	exerciseHandler := NewExerciseHandler(s.Exercises)
	workoutHandler := NewWorkoutHandler(s.Workouts, s.Sessions)

	router.GET("/ping", miscHandler.Ping)
	router.GET("/health", miscHandler.Health)
	if s.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})))
	}

	var identityMiddleware gin.HandlerFunc
	if s.Provisional != nil {
		identityMiddleware = ProvisionalMiddleware(*s.Provisional)
	} else {
		authHandler := NewAuthHandler(s.Auth)
		authGroup := router.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
		identityMiddleware = AuthMiddleware(s.Auth)
	}

	protected := router.Group("")
	protected.Use(identityMiddleware)
	{
		protected.GET("/me", miscHandler.Me)
		if s.EnableSeed {
			protected.POST("/seed", miscHandler.Seed)
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
			exerciseGroup.POST("/:id/image", exerciseHandler.RequestImageUpload)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
			workoutGroup.POST("/:id/exercises", workoutHandler.AddExercises)
			workoutGroup.GET("/:id/candidates", workoutHandler.GetCandidates)
			workoutGroup.GET("/:id/stats", workoutHandler.GetStats)
			workoutGroup.POST("/:id/sessions", workoutHandler.SaveSession)
			workoutGroup.GET("/:id/sessions", workoutHandler.ListSessions)
		}

		protected.GET("/progress", workoutHandler.GetProgress)
	}
}
