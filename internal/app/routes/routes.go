package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/studentregistry/internal/app/controllers"
	"github.com/yigit/studentregistry/internal/app/models"
	"github.com/yigit/studentregistry/internal/middleware"
	"github.com/yigit/studentregistry/internal/pkg/ratelimit"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
	limiter *ratelimit.FixedWindow,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Rate limiting runs after the auth checks so unauthenticated and
	// under-privileged requests are rejected without consuming window
	// capacity.
	rateLimited := middleware.RateLimit(limiter)

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Student routes (all require authentication) ---
	students := v1.Group("/students")
	students.Use(authMiddleware.JWTAuth())
	{
		students.GET("", rateLimited, studentController.GetAllStudents)
		students.GET("/:id", rateLimited, studentController.GetStudentByID)
		students.PUT("/:id", rateLimited, studentController.UpdateStudent)

		// Create and delete are restricted to the Admin role
		studentsAdmin := students.Group("")
		studentsAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			studentsAdmin.POST("", rateLimited, studentController.CreateStudent)
			studentsAdmin.DELETE("/:id", rateLimited, studentController.DeleteStudent)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
