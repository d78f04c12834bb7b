package router

import (
	"time"

	"volunteer-hub/internal/cache"
	"volunteer-hub/internal/database"
	"volunteer-hub/internal/handler"
	"volunteer-hub/internal/handler/activitylogs"
	"volunteer-hub/internal/handler/assignments"
	"volunteer-hub/internal/handler/auth"
	"volunteer-hub/internal/handler/dashboard"
	"volunteer-hub/internal/handler/events"
	"volunteer-hub/internal/handler/feedback"
	"volunteer-hub/internal/handler/notifications"
	"volunteer-hub/internal/handler/tasks"
	"volunteer-hub/internal/handler/users"
	"volunteer-hub/internal/handler/volunteers"
	"volunteer-hub/internal/mailer"
	"volunteer-hub/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Options struct {
	TokenTTL time.Duration
	CacheTTL time.Duration
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, notifier mailer.Notifier, opts Options) {
	api := e.Group("/api")

	// 寫入成功後清除管理員儀表板快取
	invalidate := dashboard.InvalidateOnWrite(cch)

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, cch))

	// 使用者、登入與簽到
	apiUsers := api.Group("/users", invalidate)
	apiUsers.POST("/add", users.CreateUserHandler(db), middleware.OptionalAuth)
	apiUsers.POST("/login", auth.LoginHandler(db, opts.TokenTTL))
	apiUsers.PUT("/logout", auth.LogoutHandler(db), middleware.RequireAuth)
	apiUsers.GET("/me", users.GetMeHandler(db), middleware.RequireAuth)
	apiUsers.GET("/all", users.ListUsersHandler(db), middleware.RequireAdmin)
	apiUsers.GET("/get/:id", users.GetUserHandler(db), middleware.RequireAuth)
	apiUsers.PUT("/update/:id", users.UpdateUserHandler(db), middleware.RequireSelfOrAdmin("id"))
	apiUsers.DELETE("/delete/:id", users.DeleteUserHandler(db), middleware.RequireAdmin)
	apiUsers.GET("/checkins", users.ListCheckInsHandler(db), middleware.RequireAdmin)
	apiUsers.GET("/volunteers/checkins", users.ListVolunteerCheckInsHandler(db), middleware.RequireAdmin)
	apiUsers.GET("/hours", users.VolunteerHoursHandler(db), middleware.RequireAuth)

	apiEvents := api.Group("/events", invalidate, middleware.RequireAuth)
	apiEvents.POST("", events.CreateEventHandler(db), middleware.RequireAdmin)
	apiEvents.GET("", events.ListEventsHandler(db))
	apiEvents.GET("/:id", events.GetEventHandler(db))
	apiEvents.PUT("/:id", events.UpdateEventHandler(db), middleware.RequireAdmin)
	apiEvents.DELETE("/:id", events.DeleteEventHandler(db), middleware.RequireAdmin)

	apiTasks := api.Group("/tasks", invalidate, middleware.RequireAuth)
	apiTasks.POST("", tasks.CreateTaskHandler(db), middleware.RequireAdmin)
	apiTasks.GET("", tasks.ListTasksHandler(db))
	apiTasks.GET("/:id", tasks.GetTaskHandler(db))
	apiTasks.PUT("/:id", tasks.UpdateTaskHandler(db), middleware.RequireAdmin)
	apiTasks.DELETE("/:id", tasks.DeleteTaskHandler(db), middleware.RequireAdmin)

	apiAssignments := api.Group("/assignments", invalidate, middleware.RequireAuth)
	apiAssignments.POST("", assignments.CreateAssignmentHandler(db), middleware.RequireAdmin)
	apiAssignments.GET("", assignments.ListAssignmentsHandler(db))
	apiAssignments.GET("/:id", assignments.GetAssignmentHandler(db))
	apiAssignments.PUT("/:id", assignments.UpdateAssignmentStatusHandler(db))
	apiAssignments.DELETE("/:id", assignments.DeleteAssignmentHandler(db), middleware.RequireAdmin)

	// /read 要先於 /:id 註冊
	apiNotifications := api.Group("/notifications", invalidate)
	apiNotifications.POST("", notifications.SendNotificationHandler(db, notifier), middleware.RequireAdmin)
	apiNotifications.GET("/user/:user_id", notifications.ListUserNotificationsHandler(db), middleware.RequireSelfOrAdmin("user_id"))
	apiNotifications.PUT("/read", notifications.MarkNotificationsReadHandler(db), middleware.RequireAuth)
	apiNotifications.PUT("/:id", notifications.MarkNotificationReadHandler(db), middleware.RequireAuth)

	apiFeedback := api.Group("/feedback", invalidate, middleware.RequireAuth)
	apiFeedback.POST("", feedback.CreateFeedbackHandler(db))
	apiFeedback.GET("", feedback.ListFeedbackHandler(db))
	apiFeedback.GET("/volunteer/:user_id", feedback.ListFeedbackByVolunteerHandler(db))
	apiFeedback.GET("/assignment/:assignment_id", feedback.ListFeedbackByAssignmentHandler(db))
	apiFeedback.PUT("/:feedback_id", feedback.UpdateFeedbackHandler(db))
	apiFeedback.DELETE("/:feedback_id", feedback.DeleteFeedbackHandler(db), middleware.RequireAdmin)

	apiLogs := api.Group("/activitylogs", invalidate, middleware.RequireAuth)
	apiLogs.POST("/log-hours", activitylogs.LogHoursHandler(db))
	apiLogs.GET("", activitylogs.ListActivityLogsHandler(db))

	// 管理員儀表板，結果快取於 Redis
	apiAdmin := api.Group("/adashboard", middleware.RequireAdmin)
	apiAdmin.GET("/stats", dashboard.StatsHandler(db, cch, opts.CacheTTL))
	apiAdmin.GET("/tasks", dashboard.TaskCompletionHandler(db, cch, opts.CacheTTL))
	apiAdmin.GET("/volunteer-hours", dashboard.TopVolunteersHandler(db, cch, opts.CacheTTL))
	apiAdmin.GET("/top-volunteer", dashboard.TopVolunteerOfMonthHandler(db, cch, opts.CacheTTL))
	apiAdmin.GET("/activity-logs", dashboard.RecentActivityHandler(db, cch, opts.CacheTTL))
	apiAdmin.GET("/notifications", dashboard.RecentNotificationsHandler(db, cch, opts.CacheTTL))

	apiDashboard := api.Group("/dashboard/:userId", middleware.RequireSelfOrAdmin("userId"))
	apiDashboard.GET("/assigned-tasks", dashboard.AssignedTasksHandler(db))
	apiDashboard.GET("/upcoming-events", dashboard.UpcomingEventsHandler(db))
	apiDashboard.GET("/task-statistics", dashboard.TaskStatisticsHandler(db))

	apiVolunteer := api.Group("/volunteer", invalidate)
	apiVolunteer.GET("/volunteers", volunteers.ListVolunteersHandler(db), middleware.RequireAdmin)
	apiVolunteer.PUT("/tasks/:taskId", volunteers.UpdateTaskStatusHandler(db), middleware.RequireAuth)
}
