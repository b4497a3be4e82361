package routes

import (
	"github.com/damianut/public-InterSynergy/internal/controllers"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all application routes.
func SetupRoutes(
	router *gin.Engine,
	authController *controllers.AuthController,
	adminController *controllers.AdminController,
	restController *controllers.RestController,
	sessionMiddleware gin.HandlerFunc,
	adminMiddleware gin.HandlerFunc,
) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// GET /rest - Read-only account query API
	router.GET("/rest", restController.Query)

	RegisterAuthRoutes(router, authController)
	RegisterAdminRoutes(router, adminController, sessionMiddleware, adminMiddleware)
}
