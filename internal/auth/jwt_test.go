package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWTGenerateValidate(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, "issuer")
	jwtToken, err := manager.Generate(42)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	userID, err := manager.Validate(jwtToken)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if userID != 42 {
		t.Fatalf("unexpected user id: %d", userID)
	}
}

func TestJWTGenerateInvalidSubject(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, "issuer")
	if _, err := manager.Generate(0); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestJWTValidateMissing(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, "issuer")
	if _, err := manager.Validate(""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

func TestJWTValidateExpired(t *testing.T) {
	manager := NewJWTManager("secret", -time.Minute, "issuer")
	jwtToken, err := manager.Generate(7)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := manager.Validate(jwtToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error for expired token, got %v", err)
	}
}

func TestJWTValidateWrongSecret(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, "issuer")
	other := NewJWTManager("other-secret", time.Hour, "issuer")

	jwtToken, err := manager.Generate(7)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := other.Validate(jwtToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error for wrong secret, got %v", err)
	}
}

func TestTokenFromHeader(t *testing.T) {
	if _, err := TokenFromHeader("nope"); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected missing token error, got %v", err)
	}
	if token, err := TokenFromHeader("Bearer token"); err != nil || token != "token" {
		t.Fatalf("expected token, got %s err %v", token, err)
	}
	if token, err := TokenFromHeader("bearer token"); err != nil || token != "token" {
		t.Fatalf("expected lowercase scheme accepted, got %s err %v", token, err)
	}
}
