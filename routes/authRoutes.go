package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sushilkumar-me/civic-monitoring/controllers"
	"github.com/sushilkumar-me/civic-monitoring/middlewares"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine, auth *controllers.AuthController) {
	group := r.Group("/api/auth")
	{
		group.POST("/register", auth.RegisterUser)
		group.POST("/login", auth.LoginUser)
		group.POST("/verify-otp", middlewares.PendingAuthMiddleware(), auth.VerifyOTP)
		group.POST("/resend-otp", middlewares.PendingAuthMiddleware(), auth.ResendOTP)
		group.GET("/me", middlewares.AuthMiddleware(), auth.GetMe)
		group.POST("/logout", middlewares.AuthMiddleware(), auth.LogoutUser)
	}
}
