package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/deniz/learnhub/internal/app/controllers"
	"github.com/deniz/learnhub/internal/app/models"
	"github.com/deniz/learnhub/internal/app/models/dto"
	"github.com/deniz/learnhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	messageController *controllers.MessageController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public catalog routes ---
	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.GetAllCourses)
		courses.GET("/categories", courseController.GetCategories)
		courses.GET("/:id", courseController.GetCourseByID)
	}

	instructors := v1.Group("/instructors")
	{
		instructors.GET("/:id/courses", courseController.GetInstructorCourses)
		instructors.GET("/:id/stats", courseController.GetInstructorStats)
	}

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
		auth.GET("/me", authController.GetCurrentUser)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.GET("", enrollmentController.GetMyEnrollments)
			enrollments.GET("/courses", enrollmentController.GetMyCourses)
			enrollments.POST("", enrollmentController.Enroll)
			enrollments.DELETE("/:courseId", enrollmentController.Cancel)
		}

		authenticated.GET("/courses/:id/messages", messageController.GetCourseMessages)

		messages := authenticated.Group("/messages")
		{
			messages.POST("", messageController.SendMessage)
			messages.GET("/unread-count", messageController.GetUnreadCount)
			messages.PATCH("/:id/read", messageController.MarkAsRead)

			// Thread summaries are an instructor dashboard view
			messagesInstructorProtected := messages.Group("")
			messagesInstructorProtected.Use(authMiddleware.RoleRequired(string(models.RoleInstructor)))
			{
				messagesInstructorProtected.GET("/threads", messageController.GetThreads)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
