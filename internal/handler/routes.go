package handler

import "github.com/gin-gonic/gin"

// Handlers groups every console handler mounted by Register. Nil handlers are skipped.
type Handlers struct {
	Courses     *CourseHandler
	Units       *UnitHandler
	UnitContent *UnitContentHandler
	Workspace   *WorkspaceHandler
	Questions   *QuestionHandler
	Enrollments *EnrollmentHandler
	Leaderboard *LeaderboardHandler
	Reports     *ReportHandler
	Dashboard   *DashboardHandler
	Media       *MediaHandler
	Session     *SessionHandler
}

// Register mounts the console API on rg.
func Register(rg *gin.RouterGroup, h Handlers) {
	if h.Courses != nil {
		courses := rg.Group("/courses")
		courses.GET("", h.Courses.List)
		courses.POST("", h.Courses.Create)
		courses.GET("/:id", h.Courses.Get)
		courses.PUT("/:id", h.Courses.Update)
		courses.DELETE("/:id", h.Courses.Delete)
		courses.POST("/:id/publish", h.Courses.Publish)
		courses.POST("/:id/duplicate", h.Courses.Duplicate)
		courses.GET("/:id/assignable-learners", h.Courses.AssignableLearners)
	}
	if h.Units != nil {
		rg.GET("/courses/:id/units", h.Units.List)
		rg.POST("/courses/:id/units", h.Units.Create)
		rg.PUT("/courses/:id/units", h.Units.Reorder)
		rg.PATCH("/courses/:id/units/:unitId", h.Units.Update)
		rg.DELETE("/courses/:id/units/:unitId", h.Units.Delete)
	}
	if h.UnitContent != nil {
		rg.GET("/courses/:id/units/:unitId/content", h.UnitContent.Get)
		rg.PUT("/courses/:id/units/:unitId/content", h.UnitContent.Update)
	}
	if h.Workspace != nil {
		rg.GET("/courses/:id/workspace", h.Workspace.Get)
		rg.PUT("/courses/:id/workspace/selection", h.Workspace.Select)
		rg.DELETE("/courses/:id/workspace", h.Workspace.Close)
	}
	if h.Questions != nil {
		rg.GET("/quizzes/:quizId/questions", h.Questions.List)
		rg.POST("/quizzes/:quizId/questions", h.Questions.Create)
		rg.PUT("/quizzes/:quizId/questions", h.Questions.Reorder)
		rg.PUT("/questions/:id", h.Questions.Update)
		rg.DELETE("/questions/:id", h.Questions.Delete)
	}
	if h.Enrollments != nil {
		rg.GET("/courses/:id/enrollments", h.Enrollments.List)
		rg.POST("/courses/:id/enrollments", h.Enrollments.BulkEnroll)
		rg.POST("/courses/:id/assign", h.Enrollments.Assign)
		rg.DELETE("/enrollments/:id", h.Enrollments.Delete)
	}
	if h.Leaderboard != nil {
		rg.GET("/courses/:id/leaderboard", h.Leaderboard.List)
		rg.POST("/courses/:id/leaderboard/refresh", h.Leaderboard.Refresh)
		rg.GET("/leaderboard", h.Leaderboard.ListAll)
		rg.POST("/leaderboard/rerank", h.Leaderboard.Rerank)
	}
	if h.Reports != nil {
		rg.GET("/reports/courses/:id", h.Reports.CourseReport)
		rg.GET("/reports/courses/:id/export", h.Reports.ExportCourse)
		rg.GET("/reports/learners/:id", h.Reports.LearnerReport)
	}
	if h.Dashboard != nil {
		rg.GET("/dashboard", h.Dashboard.Stats)
	}
	if h.Media != nil {
		rg.POST("/media", h.Media.Upload)
		rg.DELETE("/media", h.Media.Delete)
		rg.GET("/media/link", h.Media.Link)
		rg.GET("/media/files/*path", h.Media.Serve)
		rg.GET("/media/links/:token", h.Media.ServeLink)
	}
	if h.Session != nil {
		rg.GET("/session", h.Session.Get)
		rg.PUT("/session/token", h.Session.StoreToken)
		rg.DELETE("/session/token", h.Session.ClearToken)
	}
}
