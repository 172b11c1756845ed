package web

import (
	"net/http"

	"github.com/afumu/studydesk/web/middleware"
	"github.com/gin-gonic/gin"
)

// setupRoutes 初始化所有应用程序路由。
func (s *Service) setupRoutes() {
	s.router.Use(middleware.AuthMiddleware(s.api))

	// API v1 路由组, 使用在 service 中初始化的处理器
	v1 := s.router.Group("/api/v1")
	{
		// 认证路由
		auth := v1.Group("/auth")
		{
			auth.POST("/register", s.api.Register)
			auth.POST("/login", s.api.Login)
			auth.POST("/logout", s.api.Logout)
			auth.GET("/me", s.api.GetProfile)
		}

		// 统计快照路由
		v1.GET("/stats", s.api.GetStats)

		// 任务路由
		v1.GET("/tasks", s.api.GetTasks)
		v1.POST("/tasks", s.api.CreateTask)
		v1.PUT("/tasks/:id", s.api.UpdateTask)
		v1.POST("/tasks/:id/complete", s.api.CompleteTask)
		v1.DELETE("/tasks/:id", s.api.DeleteTask)

		// 学习记录路由
		v1.GET("/sessions", s.api.GetSessions)
		v1.POST("/sessions", s.api.CreateSession)
		v1.DELETE("/sessions/:id", s.api.DeleteSession)

		// 心情路由
		v1.GET("/moods", s.api.GetMoods)
		v1.POST("/moods", s.api.CreateMood)

		// 目标路由
		v1.GET("/goals", s.api.GetGoals)
		v1.POST("/goals", s.api.CreateGoal)
		v1.PUT("/goals/:id", s.api.UpdateGoal)
		v1.DELETE("/goals/:id", s.api.DeleteGoal)

		// 课表路由
		v1.GET("/timetable", s.api.GetTimetable)
		v1.POST("/timetable", s.api.CreateTimetableEntry)
		v1.DELETE("/timetable/:id", s.api.DeleteTimetableEntry)

		// 消息路由
		v1.GET("/messages", s.api.GetMessages)
		v1.POST("/messages", s.api.CreateMessage)

		// 导出路由
		v1.GET("/export/report", s.api.ExportReport)

		// 系统路由
		system := v1.Group("/system")
		{
			system.GET("/status", s.api.GetSystemStatus)
			system.GET("/digest", s.api.GetDigestStatus)
			system.POST("/digest", s.api.ConfigureDigest)
			system.POST("/digest/run", s.api.RunDigestNow)
		}
	}

	// 健康检查
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
