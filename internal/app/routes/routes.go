package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/controllers"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/app/models"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/metrics"
	"github.com/mdraavash/codeyatra2.0-A-Team-AnonQuery/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	queryController *controllers.QueryController,
	courseController *controllers.CourseController,
	notificationController *controllers.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Liveness and metrics sit outside the versioned API
	router.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Query routes
		queries := authenticated.Group("/queries")
		{
			queries.GET("/:id", queryController.GetQuery)

			// Students ask and review their own history
			queriesStudent := queries.Group("")
			queriesStudent.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
			{
				queriesStudent.POST("", queryController.CreateQuery)
				queriesStudent.GET("/my", queryController.MyQueries)
			}

			// Teachers answer
			queriesTeacher := queries.Group("")
			queriesTeacher.Use(authMiddleware.RoleRequired(string(models.RoleTeacher)))
			{
				queriesTeacher.PATCH("/:id/answer", queryController.AnswerQuery)
			}
		}

		// Course routes
		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.GET("/:id/faq", courseController.CourseFaq)
			courses.GET("/:id/answered", courseController.CourseAnswered)

			coursesTeacher := courses.Group("")
			coursesTeacher.Use(authMiddleware.RoleRequired(string(models.RoleTeacher)))
			{
				coursesTeacher.GET("/:id/queries", courseController.CourseQueries)
				coursesTeacher.GET("/:id/students", courseController.CourseRoster)
				coursesTeacher.GET("/:id/students/:studentId/queries", courseController.StudentQueries)
			}
		}

		// Global FAQ feed
		authenticated.GET("/faq", queryController.FaqAll)

		// Notification routes
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.ListNotifications)
			notifications.PATCH("/:id/read", notificationController.MarkRead)
		}
	}
}
