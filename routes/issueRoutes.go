package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sushilkumar-me/civic-monitoring/controllers"
	"github.com/sushilkumar-me/civic-monitoring/middlewares"
	"github.com/sushilkumar-me/civic-monitoring/models"
)

// IssueRoutes sets up the issue routes
func IssueRoutes(r *gin.Engine, issue *controllers.IssueController) {
	group := r.Group("/api/issue", middlewares.AuthMiddleware())
	{
		group.POST("/report",
			middlewares.RequireRole(models.RoleSurveyor),
			middlewares.ReportRateLimiter(20),
			issue.ReportIssue)
		group.GET("/active",
			middlewares.RequireRole(models.RoleEngineer, models.RoleAdmin),
			issue.ActiveIssues)
		group.GET("/:id", issue.GetIssue)
		group.POST("/:id/start",
			middlewares.RequireRole(models.RoleEngineer),
			issue.StartIssue)
		group.POST("/:id/close",
			middlewares.RequireRole(models.RoleEngineer),
			issue.CloseIssue)
		group.DELETE("/:id",
			middlewares.RequireRole(models.RoleAdmin),
			issue.DeleteIssue)
	}
}
