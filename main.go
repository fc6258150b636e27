package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sushilkumar-me/civic-monitoring/config"
	"github.com/sushilkumar-me/civic-monitoring/controllers"
	"github.com/sushilkumar-me/civic-monitoring/models"
	"github.com/sushilkumar-me/civic-monitoring/routes"
	"github.com/sushilkumar-me/civic-monitoring/services/classifier"
	"github.com/sushilkumar-me/civic-monitoring/services/detector"
	"github.com/sushilkumar-me/civic-monitoring/services/mailer"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}
	log.Println("MongoDB connection established successfully!")

	if err := models.EnsureUserEmailIndex(config.GetCollection("users")); err != nil {
		log.Printf("Failed to ensure user email index: %v", err)
	}

	config.ConnectRedis()

	classifierSvc := buildClassifier()
	authController := controllers.NewAuthController(mailer.NewFromEnv())

	uploadDir := controllers.UploadDirFromEnv()
	issueController := controllers.NewIssueController(classifierSvc, uploadDir)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.AuthRoutes(r, authController)
	routes.IssueRoutes(r, issueController)
	routes.AdminRoutes(r)

	r.Static("/uploads", uploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildClassifier wires the primary Gemini classifier and the local
// detector fallback. Either may be absent; classification then degrades to
// the remaining path.
func buildClassifier() *classifier.Service {
	var primary classifier.Primary
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		gemini, err := classifier.NewGeminiClassifier(context.Background(), apiKey)
		if err != nil {
			log.Printf("Gemini classifier unavailable: %v", err)
		} else {
			primary = gemini
		}
	} else {
		log.Println("GEMINI_API_KEY not set, using local detection only")
	}

	var fallback classifier.Detector
	if detectorURL := os.Getenv("DETECTOR_URL"); detectorURL != "" {
		fallback = detector.NewClient(detectorURL)
	} else {
		log.Println("DETECTOR_URL not set, fallback classification runs without detections")
	}

	return classifier.NewService(primary, fallback)
}

func corsOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:3000"}
	}
	return strings.Split(raw, ",")
}
