package server

import (
	"net/http"

	"github.com/cognisync/cognisync-api/internal/handlers"
	"github.com/cognisync/cognisync-api/internal/middleware"
	"github.com/cognisync/cognisync-api/internal/security"
	"github.com/cognisync/cognisync-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Services groups everything the router needs to serve requests.
type Services struct {
	Tokens    *security.TokenManager
	Auth      *services.AuthService
	Users     *services.UserService
	Tasks     *services.TaskService
	Schedules *services.ScheduleService
	Feedback  *services.FeedbackService
	Calendar  *services.CalendarService
	Insights  *services.InsightService
}

// NewRouter builds the gin engine with every route and wraps it in CORS
// handling for allowedOrigins.
func NewRouter(svc Services, log *zap.Logger, allowedOrigins []string) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log))

	authHandler := handlers.NewAuthHandler(svc.Auth, svc.Users)
	userHandler := handlers.NewUserHandler(svc.Users)
	taskHandler := handlers.NewTaskHandler(svc.Tasks)
	scheduleHandler := handlers.NewScheduleHandler(svc.Schedules)
	feedbackHandler := handlers.NewFeedbackHandler(svc.Feedback)
	calendarHandler := handlers.NewCalendarHandler(svc.Calendar)
	aiHandler := handlers.NewAIHandler(svc.Insights)

	requireAuth := middleware.RequireAuth(svc.Tokens)
	privileged := middleware.RequirePrivileged()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/signup", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", requireAuth, authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/me", requireAuth, authHandler.GetCurrentUser)

		users := api.Group("/users", requireAuth)
		{
			users.GET("/:id", userHandler.GetUser)
			users.PATCH("/:id", userHandler.UpdateUser)
			users.GET("/:id/analytics", userHandler.GetAnalytics)
		}

		tasks := api.Group("/tasks", requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", privileged, taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTaskAccess(svc.Tasks), taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", privileged, taskHandler.DeleteTask)
			tasks.POST("/:id/estimate_load", taskHandler.EstimateLoad)
		}

		schedules := api.Group("/schedules", requireAuth)
		{
			schedules.GET("", scheduleHandler.ListSchedules)
			schedules.POST("", privileged, scheduleHandler.CreateSchedule)
			schedules.GET("/:id", scheduleHandler.GetSchedule)
			schedules.DELETE("/:id", privileged, scheduleHandler.DeleteSchedule)
		}

		feedback := api.Group("/feedback", requireAuth)
		{
			feedback.POST("", feedbackHandler.CreateFeedback)
			feedback.GET("", feedbackHandler.ListFeedback)
			feedback.GET("/:id", feedbackHandler.GetFeedback)
		}

		calendar := api.Group("/calendar", requireAuth)
		{
			calendar.POST("/sync", calendarHandler.Sync)
			calendar.GET("/:user_id", calendarHandler.ListEvents)
			calendar.DELETE("/:event_id", calendarHandler.DeleteEvent)
		}

		ai := api.Group("/ai", requireAuth)
		{
			ai.POST("/suggest_task_order", aiHandler.SuggestTaskOrder)
			ai.POST("/sensory_alert", aiHandler.SensoryAlert)
		}
	}

	return newCORS(allowedOrigins).Handler(r)
}

func newCORS(allowedOrigins []string) *cors.Cors {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowAll := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
	}

	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		// credentials cannot be combined with a wildcard origin
		AllowCredentials: !allowAll,
		MaxAge:           600,
	})
}
