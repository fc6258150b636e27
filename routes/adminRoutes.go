package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sushilkumar-me/civic-monitoring/controllers"
	"github.com/sushilkumar-me/civic-monitoring/middlewares"
	"github.com/sushilkumar-me/civic-monitoring/models"
)

// AdminRoutes sets up the admin dashboard routes
func AdminRoutes(r *gin.Engine) {
	group := r.Group("/api/admin", middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleAdmin))
	{
		group.GET("/dashboard", controllers.GetDashboard)
	}
}
