package app

import (
	"classhub_backend/docs"
	"classhub_backend/internal/config"
	"classhub_backend/internal/middleware"
	"classhub_backend/internal/model"
	"classhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由
	router.GET("/api/health", c.health.HealthCheck)
	router.POST("/api/auth/register", c.auth.Register)
	router.POST("/api/auth/login", c.auth.Login)

	// 需要登录的路由
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(s.user))
	{
		a.registerAuthRoutes(api, c)
		a.registerClassRoutes(api, c)
		a.registerContentRoutes(api, c)
		a.registerProblemRoutes(api, c)
		a.registerPersonalRoutes(api, c)
	}

	a.registerAdminRoutes(router, c, s, cfg)
}

func (a *App) registerAuthRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/auth/verify", c.auth.Verify)
	api.GET("/auth/profile", c.auth.Profile)
	api.PUT("/auth/profile", c.auth.UpdateProfile)
	api.PUT("/auth/password", c.auth.ChangePassword)
}

func (a *App) registerClassRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/classes", c.class.List)
	api.POST("/classes", middleware.RoleMiddleware(model.Teacher), c.class.Create)
	api.POST("/classes/join", middleware.RoleMiddleware(model.Student), c.class.Join)
	api.GET("/classes/:id", c.class.Get)
	api.PUT("/classes/:id", middleware.RoleMiddleware(model.Teacher), c.class.Update)
	api.DELETE("/classes/:id", middleware.RoleMiddleware(model.Teacher), c.class.Delete)
	api.POST("/classes/:id/leave", middleware.RoleMiddleware(model.Student), c.class.Leave)
	api.DELETE("/classes/:id/students/:studentId", middleware.RoleMiddleware(model.Teacher), c.class.RemoveStudent)
}

func (a *App) registerContentRoutes(api *gin.RouterGroup, c *controllers) {
	// 课程
	api.GET("/classes/:id/courses", c.course.List)
	api.POST("/classes/:id/courses", middleware.RoleMiddleware(model.Teacher), c.course.Create)
	api.GET("/courses/:id", c.course.Get)
	api.PUT("/courses/:id", middleware.RoleMiddleware(model.Teacher), c.course.Update)
	api.DELETE("/courses/:id", middleware.RoleMiddleware(model.Teacher), c.course.Delete)
	api.POST("/courses/:id/modules", middleware.RoleMiddleware(model.Teacher), c.course.AddModule)
	api.PUT("/modules/:moduleId", middleware.RoleMiddleware(model.Teacher), c.course.UpdateModule)
	api.DELETE("/modules/:moduleId", middleware.RoleMiddleware(model.Teacher), c.course.DeleteModule)

	// 测验
	api.GET("/classes/:id/quizzes", c.quiz.List)
	api.POST("/classes/:id/quizzes", middleware.RoleMiddleware(model.Teacher), c.quiz.Create)
	api.GET("/quizzes/:id", c.quiz.Get)
	api.PUT("/quizzes/:id", middleware.RoleMiddleware(model.Teacher), c.quiz.Update)
	api.DELETE("/quizzes/:id", middleware.RoleMiddleware(model.Teacher), c.quiz.Delete)
	api.POST("/quizzes/:id/submit", c.quiz.Submit)
	api.GET("/quizzes/:id/attempts", c.quiz.MyAttempts)
	api.GET("/quizzes/:id/results", middleware.RoleMiddleware(model.Teacher), c.quiz.Results)

	// 作业
	api.GET("/assignments/upcoming", c.assignment.Upcoming)
	api.GET("/classes/:id/assignments", c.assignment.List)
	api.POST("/classes/:id/assignments", middleware.RoleMiddleware(model.Teacher), c.assignment.Create)
	api.GET("/assignments/:id", c.assignment.Get)
	api.PUT("/assignments/:id", middleware.RoleMiddleware(model.Teacher), c.assignment.Update)
	api.DELETE("/assignments/:id", middleware.RoleMiddleware(model.Teacher), c.assignment.Delete)
	api.POST("/assignments/:id/submit", middleware.RoleMiddleware(model.Student), c.assignment.Submit)
	api.GET("/assignments/:id/submissions", middleware.RoleMiddleware(model.Teacher), c.assignment.Submissions)
	api.POST("/submissions/:submissionId/grade", middleware.RoleMiddleware(model.Teacher), c.assignment.Grade)
}

func (a *App) registerProblemRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/problems", c.problem.List)
	api.POST("/problems", middleware.RoleMiddleware(model.Teacher), c.problem.Create)
	api.GET("/problems/:id", c.problem.Get)
	api.PUT("/problems/:id", middleware.RoleMiddleware(model.Teacher), c.problem.Update)
	api.DELETE("/problems/:id", middleware.RoleMiddleware(model.Teacher), c.problem.Delete)
	api.POST("/problems/:id/submit", middleware.RoleMiddleware(model.Student), c.problem.Submit)
	api.GET("/problems/:id/my-submission", c.problem.MySubmission)
	api.GET("/problems/:id/submissions", middleware.RoleMiddleware(model.Teacher), c.problem.Submissions)
}

func (a *App) registerPersonalRoutes(api *gin.RouterGroup, c *controllers) {
	// 日程
	api.GET("/schedule", c.schedule.List)
	api.POST("/schedule", c.schedule.Create)
	api.GET("/schedule/today", c.schedule.Today)
	api.GET("/schedule/week", c.schedule.Week)
	api.PUT("/schedule/:id", c.schedule.Update)
	api.DELETE("/schedule/:id", c.schedule.Delete)

	// 上传
	api.POST("/upload", c.upload.Upload)
	api.POST("/upload/avatar", c.upload.UploadAvatar)
	api.GET("/upload/files", c.upload.ListFiles)
	api.DELETE("/upload/files/:id", c.upload.DeleteFile)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin), middleware.ActivityMiddleware(s.user))
	{
		admin.GET("/users", c.admin.ListUsers)
		admin.POST("/users", c.admin.CreateUser)
		admin.PUT("/users/:id", c.admin.UpdateUser)
		admin.DELETE("/users/:id", c.admin.DeleteUser)
		admin.POST("/users/:id/reset-password", c.admin.ResetPassword)
		admin.GET("/classes", c.admin.ListClasses)
		admin.POST("/classes/:id/students", c.admin.AssignStudents)
		admin.GET("/stats", c.admin.Stats)
	}
}
