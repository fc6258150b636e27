package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/sushilkumar-me/civic-monitoring/config"
	"github.com/sushilkumar-me/civic-monitoring/models"
	"github.com/sushilkumar-me/civic-monitoring/services/reporting"
)

// GetDashboard returns the admin triage view: status counts, critical-type
// count, per-ward and per-type breakdowns, and resolution time statistics.
// Read-only over the full issue set.
func GetDashboard(c *gin.Context) {
	issueCollection := config.GetCollection("issues")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := issueCollection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	summary := reporting.Summarize(issues)
	resolution := reporting.Resolution(issues)

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")

	c.JSON(http.StatusOK, gin.H{
		"summary":    summary,
		"resolution": resolution,
		"issues":     issues,
	})
}
