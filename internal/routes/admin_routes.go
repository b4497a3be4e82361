package routes

import (
	"github.com/damianut/public-InterSynergy/internal/controllers"
	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes registers the admin panel routes. Every route runs
// behind the session middleware plus the admin gate.
func RegisterAdminRoutes(
	router *gin.Engine,
	adminController *controllers.AdminController,
	sessionMiddleware gin.HandlerFunc,
	adminMiddleware gin.HandlerFunc,
) {
	protected := router.Group("")
	protected.Use(sessionMiddleware, adminMiddleware)
	{
		// GET /admin-panel - List all accounts
		protected.GET("/admin-panel", adminController.AdminPanel)

		// POST /create-user - Create an account, enabled immediately
		protected.POST("/create-user", adminController.CreateUser)

		// GET/POST /edit-user - Load the edit form, apply the changes
		protected.GET("/edit-user", adminController.EditUser)
		protected.POST("/edit-user", adminController.EditUser)

		// POST /delete-user - Remove an account, its CV and its mirror row
		protected.POST("/delete-user", adminController.DeleteUser)
	}
}
