package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sushilkumar-me/civic-monitoring/config"
	"github.com/sushilkumar-me/civic-monitoring/models"
	"github.com/sushilkumar-me/civic-monitoring/services/mailer"
	authUtils "github.com/sushilkumar-me/civic-monitoring/utils"
)

// AuthController owns the two-phase login flow: password check first, then
// a mailed one-time code. The mailer is injected so tests can stub it.
type AuthController struct {
	mailer *mailer.Mailer
}

func NewAuthController(m *mailer.Mailer) *AuthController {
	return &AuthController{mailer: m}
}

// RegisterUser creates an unverified account and starts OTP verification
func (a *AuthController) RegisterUser(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role" binding:"required"`
		Ward     int    `json:"ward" binding:"gte=0"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidRole(input.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := userCollection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		log.Println("Error checking existing user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
		return
	}

	user := models.User{
		Name:       input.Name,
		Email:      input.Email,
		Password:   input.Password,
		Role:       models.Role(input.Role),
		Ward:       input.Ward,
		IsVerified: false,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := user.HashPassword(); err != nil {
		log.Println("Error hashing password:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	result, err := userCollection.InsertOne(ctx, user)
	if err != nil {
		log.Println("Error inserting user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	userID := result.InsertedID.(primitive.ObjectID)

	emailSent, demoOTP, err := a.beginOTP(ctx, userID, user.Email)
	if err != nil {
		log.Println("Error starting OTP verification:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	token, err := authUtils.GeneratePendingToken(userID.Hex())
	if err != nil {
		log.Println("Error generating pending token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	setAuthCookie(c, token, 600)

	c.JSON(http.StatusCreated, gin.H{
		"id":        userID,
		"name":      user.Name,
		"email":     user.Email,
		"emailSent": emailSent,
		"demoOtp":   demoOTP,
	})
}

// LoginUser checks the password and, when it matches, issues a one-time
// code and a pending-scope token. The session is not authenticated until
// the code is verified.
func (a *AuthController) LoginUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No account found with this email"})
		return
	}

	if !user.ComparePassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password"})
		return
	}

	emailSent, demoOTP, err := a.beginOTP(ctx, user.ID, user.Email)
	if err != nil {
		log.Println("Error starting OTP verification:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	token, err := authUtils.GeneratePendingToken(user.ID.Hex())
	if err != nil {
		log.Println("Error generating pending token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	setAuthCookie(c, token, 600)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Verification code sent",
		"email":     user.Email,
		"emailSent": emailSent,
		"demoOtp":   demoOTP,
	})
}

// VerifyOTP completes login. Wrong or expired codes are re-promptable
// errors; success marks the user verified, clears the code and swaps the
// pending cookie for a full session token carrying the role.
func (a *AuthController) VerifyOTP(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input struct {
		OTP string `json:"otp" binding:"required,len=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if user.OTPCode == nil || *user.OTPCode != input.OTP {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid OTP. Please try again."})
		return
	}

	if !authUtils.IsOTPValid(user.OTPExpiry, time.Now()) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "OTP expired. Please resend."})
		return
	}

	_, err = userCollection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{
		"$set":   bson.M{"isVerified": true, "updatedAt": time.Now()},
		"$unset": bson.M{"otpCode": "", "otpExpiry": ""},
	})
	if err != nil {
		log.Println("Error updating user verification:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	token, err := authUtils.GenerateAuthToken(user.ID.Hex(), string(user.Role), user.Name)
	if err != nil {
		log.Println("Error generating token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	setAuthCookie(c, token, 3600)

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"ward":  user.Ward,
	})
}

// ResendOTP issues a fresh code for a pending login, rate limited to one
// resend per minute per user via Redis.
func (a *AuthController) ResendOTP(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	cooldownKey := "otp_resend:" + objectID.Hex()
	ok, err := config.RedisClient.SetNX(config.Ctx, cooldownKey, 1, time.Minute).Result()
	if err == nil && !ok {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting another code"})
		return
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	emailSent, demoOTP, err := a.beginOTP(ctx, user.ID, user.Email)
	if err != nil {
		log.Println("Error resending OTP:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Verification code resent",
		"emailSent": emailSent,
		"demoOtp":   demoOTP,
	})
}

// GetMe retrieves the authenticated user's information
func (a *AuthController) GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	userCollection := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err = userCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"role":       user.Role,
		"ward":       user.Ward,
		"isVerified": user.IsVerified,
		"createdAt":  user.CreatedAt,
	})
}

// LogoutUser handles user logout by clearing the auth_token cookie
func (a *AuthController) LogoutUser(c *gin.Context) {
	environment := os.Getenv("GO_ENV")
	domain := os.Getenv("DOMAIN")

	c.SetCookie("auth_token", "", -1, "/", domain, environment == "production", true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// beginOTP stores a fresh code with its expiry on the user and dispatches
// it. When mail delivery is unavailable the code is returned so the verify
// page can display it (degraded mode); otherwise demoOTP stays nil.
func (a *AuthController) beginOTP(ctx context.Context, userID primitive.ObjectID, email string) (bool, *string, error) {
	code, err := authUtils.GenerateOTP()
	if err != nil {
		return false, nil, err
	}
	expiry := authUtils.OTPExpiry(time.Now())

	userCollection := config.GetCollection("users")
	_, err = userCollection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{"otpCode": code, "otpExpiry": expiry, "updatedAt": time.Now()},
	})
	if err != nil {
		return false, nil, err
	}

	emailSent := a.mailer.SendOTP(email, code)

	var demoOTP *string
	if !emailSent {
		demoOTP = &code
	}
	return emailSent, demoOTP, nil
}

func setAuthCookie(c *gin.Context, token string, maxAge int) {
	environment := os.Getenv("GO_ENV")
	domain := os.Getenv("DOMAIN")

	// For production, don't set domain to allow cross-origin cookies
	if environment == "production" {
		domain = ""
	}

	cookie := &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		MaxAge:   maxAge,
		Path:     "/",
		Domain:   domain,
		Secure:   environment == "production",
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	}
	http.SetCookie(c.Writer, cookie)
}
