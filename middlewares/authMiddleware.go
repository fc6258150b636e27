package middlewares

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	authUtils "github.com/sushilkumar-me/civic-monitoring/utils"
)

// The login flow moves through three session states: no token at all,
// a pending-scope token issued after the password check, and an auth-scope
// token issued after OTP verification. Each middleware admits exactly one
// scope, so a pending token can never reach a protected route.

// AuthMiddleware admits fully authenticated requests and exposes
// user_id, user_role and user_name to the handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseToken(c, authUtils.ScopeAuth)
		if !ok {
			return
		}

		c.Set("user_id", claims["user_id"])
		if role, exists := claims["role"]; exists {
			c.Set("user_role", role)
		}
		if name, exists := claims["name"]; exists {
			c.Set("user_name", name)
		}

		c.Next()
	}
}

// PendingAuthMiddleware admits requests that passed the password check but
// still owe an OTP. Only the verify and resend endpoints use it.
func PendingAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseToken(c, authUtils.ScopePending)
		if !ok {
			return
		}

		c.Set("user_id", claims["user_id"])
		c.Next()
	}
}

func parseToken(c *gin.Context, wantScope string) (jwt.MapClaims, bool) {
	tokenString := extractToken(c)
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
		c.Abort()
		return nil, false
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "JWT secret not configured"})
		c.Abort()
		return nil, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		log.Printf("Token validation failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
		c.Abort()
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		c.Abort()
		return nil, false
	}

	if _, exists := claims["user_id"]; !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		c.Abort()
		return nil, false
	}

	if scope, _ := claims["scope"].(string); scope != wantScope {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token not valid for this operation"})
		c.Abort()
		return nil, false
	}

	return claims, true
}

// extractToken reads the auth cookie, falling back to a Bearer header for
// non-browser clients.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.Request.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}
