package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateToken(t *testing.T) {
	a := NewJWTAuthenticator("test-secret", "Mesa", "Mesa", time.Hour)

	token, err := a.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	parsed, err := a.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("token is not valid")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	if sub, _ := claims["sub"].(float64); int64(sub) != 42 {
		t.Errorf("sub = %v, want 42", claims["sub"])
	}
	if claims["iss"] != "Mesa" {
		t.Errorf("iss = %v, want Mesa", claims["iss"])
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTAuthenticator("secret-a", "Mesa", "Mesa", time.Hour)
	verifier := NewJWTAuthenticator("secret-b", "Mesa", "Mesa", time.Hour)

	token, err := issuer.GenerateToken(1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("expected validation failure with a different secret")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	a := NewJWTAuthenticator("test-secret", "Mesa", "Mesa", -time.Minute)

	token, err := a.GenerateToken(1)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := a.ValidateToken(token); err == nil {
		t.Fatal("expected validation failure for an expired token")
	}
}
