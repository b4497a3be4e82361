package routes

import (
	"github.com/damianut/public-InterSynergy/internal/controllers"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the public account routes. They carry no
// middleware: the controllers read the session cookies themselves, since
// /main-page and /login-account behave differently with and without one.
func RegisterAuthRoutes(router *gin.Engine, authController *controllers.AuthController) {
	// GET /main-page - Landing page, also consumes activation tokens
	router.GET("/main-page", authController.MainPage)

	// POST /register-account - Register new account
	router.POST("/register-account", authController.Register)

	// GET/POST /login-account - Login without a session, user panel with one
	router.GET("/login-account", authController.LoginAccount)
	router.POST("/login-account", authController.LoginAccount)

	// GET /logout - Drop the session and clear cookies
	router.GET("/logout", authController.Logout)

	// POST /resetter - Request a password reset token
	router.POST("/resetter", authController.Resetter)

	// GET/POST /use-resetter-token - Check the token, then change the password
	router.GET("/use-resetter-token", authController.ResetterToken)
	router.POST("/use-resetter-token", authController.ResetterToken)

	// GET /successful - Confirmation page after a profile update
	router.GET("/successful", authController.Successful)
}
