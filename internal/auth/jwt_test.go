package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	if err := InitJWTSecret(); err != nil {
		t.Fatalf("init secret: %v", err)
	}

	tokenString, err := GenerateJWT(42, "amina", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	token, err := VerifyJWT(tokenString)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("expected map claims")
	}
	if id, _ := claims["user_id"].(float64); uint(id) != 42 {
		t.Fatalf("expected user_id 42, got %v", claims["user_id"])
	}
	if claims["role"] != "admin" {
		t.Fatalf("expected role admin, got %v", claims["role"])
	}
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	if err := InitJWTSecret(); err != nil {
		t.Fatalf("init secret: %v", err)
	}

	tokenString, err := GenerateJWT(1, "amina", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	t.Setenv("JWT_SECRET", "second-secret")
	if err := InitJWTSecret(); err != nil {
		t.Fatalf("re-init secret: %v", err)
	}

	if _, err := VerifyJWT(tokenString); err == nil {
		t.Fatalf("expected verification to fail with a different secret")
	}
}

func TestInitJWTSecretMissing(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if err := InitJWTSecret(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is unset")
	}
}
