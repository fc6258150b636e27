package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sushilkumar-me/civic-monitoring/config"
	"github.com/sushilkumar-me/civic-monitoring/models"
	"github.com/sushilkumar-me/civic-monitoring/services/classifier"
	"github.com/sushilkumar-me/civic-monitoring/services/geo"
)

// IssueController owns the issue lifecycle. It is the only place that
// mutates issue status. The classifier service is injected, constructed
// once at process start.
type IssueController struct {
	classifier *classifier.Service
	uploadDir  string
}

func NewIssueController(svc *classifier.Service, uploadDir string) *IssueController {
	return &IssueController{classifier: svc, uploadDir: uploadDir}
}

// ReportIssue handles a surveyor submission: store the photo, classify it,
// derive the ward and open the issue.
func (ic *IssueController) ReportIssue(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reportedBy, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
		return
	}

	// Malformed or missing coordinates fall back to the default point
	// rather than rejecting the report.
	lat, err := strconv.ParseFloat(c.PostForm("latitude"), 64)
	if err != nil {
		lat = geo.DefaultLatitude
	}
	lon, err := strconv.ParseFloat(c.PostForm("longitude"), 64)
	if err != nil {
		lon = geo.DefaultLongitude
	}

	filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	imagePath := filepath.Join(ic.uploadDir, filename)
	if err := c.SaveUploadedFile(file, imagePath); err != nil {
		log.Println("Error saving upload:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	result := ic.classifier.Classify(c.Request.Context(), imagePath)
	ward := geo.WardFor(lat, lon)

	issue := models.Issue{
		ID:           primitive.NewObjectID(),
		IssueType:    result.IssueType,
		Priority:     result.Priority,
		Status:       models.StatusOpen,
		Ward:         ward,
		BeforeImage:  filename,
		Latitude:     lat,
		Longitude:    lon,
		AIConfidence: result.Confidence,
		AIReasoning:  result.Reasoning,
		ReportedBy:   reportedBy,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	issueCollection := config.GetCollection("issues")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := issueCollection.InsertOne(ctx, issue); err != nil {
		log.Println("Error inserting issue:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// ActiveIssues returns every issue that is not CLOSED, newest first. This
// feeds the engineer work queue.
func (ic *IssueController) ActiveIssues(c *gin.Context) {
	issueCollection := config.GetCollection("issues")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := issueCollection.Find(ctx, bson.M{"status": bson.M{"$ne": models.StatusClosed}}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	c.JSON(http.StatusOK, issues)
}

// GetIssue retrieves an issue by its ID
func (ic *IssueController) GetIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	issueCollection := config.GetCollection("issues")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = issueCollection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	c.JSON(http.StatusOK, issue)
}

// StartIssue moves an issue to IN_PROGRESS. There is no transition out of
// CLOSED, so closed issues are refused.
func (ic *IssueController) StartIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	issueCollection := config.GetCollection("issues")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := issueCollection.UpdateOne(ctx,
		bson.M{"_id": issueID, "status": bson.M{"$ne": models.StatusClosed}},
		bson.M{"$set": bson.M{"status": models.StatusInProgress, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	if result.MatchedCount == 0 {
		ic.reportMissingOrClosed(c, ctx, issueID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue marked in progress"})
}

// CloseIssue resolves an issue with an after photo. Closing straight from
// OPEN is allowed; only an already-CLOSED issue is refused. The after image
// is attached here and nowhere else.
func (ic *IssueController) CloseIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resolution photo is required"})
		return
	}

	filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	imagePath := filepath.Join(ic.uploadDir, filename)
	if err := c.SaveUploadedFile(file, imagePath); err != nil {
		log.Println("Error saving upload:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	issueCollection := config.GetCollection("issues")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	result, err := issueCollection.UpdateOne(ctx,
		bson.M{"_id": issueID, "status": bson.M{"$ne": models.StatusClosed}},
		bson.M{"$set": bson.M{
			"status":     models.StatusClosed,
			"afterImage": filename,
			"resolvedAt": now,
			"updatedAt":  now,
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	if result.MatchedCount == 0 {
		ic.reportMissingOrClosed(c, ctx, issueID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue closed successfully"})
}

// DeleteIssue hard-deletes an issue regardless of its state. Admin only;
// the route enforces the role.
func (ic *IssueController) DeleteIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	issueCollection := config.GetCollection("issues")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := issueCollection.DeleteOne(ctx, bson.M{"_id": issueID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete issue"})
		return
	}

	adminName, _ := c.Get("user_name")
	log.Printf("Admin %v deleted issue %s (deleted: %d)", adminName, issueID.Hex(), result.DeletedCount)

	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue deleted successfully"})
}

func (ic *IssueController) reportMissingOrClosed(c *gin.Context, ctx context.Context, issueID primitive.ObjectID) {
	issueCollection := config.GetCollection("issues")
	count, err := issueCollection.CountDocuments(ctx, bson.M{"_id": issueID})
	if err == nil && count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Issue is already closed"})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
}

// UploadDirFromEnv resolves the image storage directory, creating it when
// missing.
func UploadDirFromEnv() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory %s: %v", dir, err)
	}
	return dir
}
