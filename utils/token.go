package authUtils

import (
	"fmt"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Token scopes for the two-phase login flow. A pending token only proves
// the password check passed; the auth token is minted after OTP
// verification and carries the role used by the role gate.
const (
	ScopePending = "pending"
	ScopeAuth    = "auth"
)

func jwtSecret() ([]byte, error) {
	secretStr := os.Getenv("JWT_SECRET")
	if secretStr == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	return []byte(secretStr), nil
}

// GeneratePendingToken mints a short-lived token for a user whose password
// checked out but whose one-time code has not been verified yet.
func GeneratePendingToken(userID string) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"scope":   ScopePending,
		"exp":     time.Now().Add(10 * time.Minute).Unix(),
	})

	return token.SignedString(secret)
}

// GenerateAuthToken mints a full session token after OTP verification.
func GenerateAuthToken(userID, role, name string) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"scope":   ScopeAuth,
		"role":    role,
		"name":    name,
		"exp":     time.Now().Add(time.Hour * 72).Unix(), // Token expires in 72 hours
	})

	return token.SignedString(secret)
}
