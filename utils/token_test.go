package authUtils

import (
	"testing"

	"github.com/dgrijalva/jwt-go"
)

func parseClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token did not parse: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	return claims
}

func TestGeneratePendingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString, err := GeneratePendingToken("user-1")
	if err != nil {
		t.Fatalf("GeneratePendingToken: %v", err)
	}

	claims := parseClaims(t, tokenString, "test-secret")
	if claims["user_id"] != "user-1" {
		t.Errorf("user_id = %v, want user-1", claims["user_id"])
	}
	if claims["scope"] != ScopePending {
		t.Errorf("scope = %v, want %q", claims["scope"], ScopePending)
	}
	if _, hasRole := claims["role"]; hasRole {
		t.Error("pending token must not carry a role")
	}
}

func TestGenerateAuthToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString, err := GenerateAuthToken("user-1", "engineer", "Asha")
	if err != nil {
		t.Fatalf("GenerateAuthToken: %v", err)
	}

	claims := parseClaims(t, tokenString, "test-secret")
	if claims["scope"] != ScopeAuth {
		t.Errorf("scope = %v, want %q", claims["scope"], ScopeAuth)
	}
	if claims["role"] != "engineer" {
		t.Errorf("role = %v, want engineer", claims["role"])
	}
	if claims["name"] != "Asha" {
		t.Errorf("name = %v, want Asha", claims["name"])
	}
}

func TestTokenGenerationRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := GeneratePendingToken("user-1"); err == nil {
		t.Error("expected error when JWT_SECRET is unset")
	}
	if _, err := GenerateAuthToken("user-1", "admin", "x"); err == nil {
		t.Error("expected error when JWT_SECRET is unset")
	}
}
