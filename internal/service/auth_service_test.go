package service

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("4821"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash pin: %v", err)
	}
	return NewAuthService("test-secret", string(hash), time.Minute, time.Hour, nil)
}

func TestUnlockWithCorrectPIN(t *testing.T) {
	svc := newTestAuth(t)

	pair, err := svc.Unlock("4821")
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens")
	}
	if pair.ExpiresIn != 60 {
		t.Fatalf("expected 60s expiry, got %d", pair.ExpiresIn)
	}

	claims, err := svc.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.TokenType != "access" || claims.Issuer != "mindfit" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestUnlockRejectsWrongPIN(t *testing.T) {
	svc := newTestAuth(t)
	if _, err := svc.Unlock("0000"); !errors.Is(err, ErrBadPIN) {
		t.Fatalf("expected ErrBadPIN, got %v", err)
	}
}

func TestRefreshRotatesAndRevokesOldToken(t *testing.T) {
	svc := newTestAuth(t)

	pair, err := svc.Unlock("4821")
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}

	next, err := svc.RefreshPair(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.AccessToken == "" {
		t.Fatalf("expected new access token")
	}

	// El refresh viejo quedó revocado.
	if _, err := svc.RefreshPair(pair.RefreshToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected revoked refresh to fail, got %v", err)
	}
}

func TestAccessTokenCannotRefresh(t *testing.T) {
	svc := newTestAuth(t)
	pair, err := svc.Unlock("4821")
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, err := svc.RefreshPair(pair.AccessToken); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("access token must not rotate, got %v", err)
	}
}

func TestDisabledAuthRejectsEverything(t *testing.T) {
	svc := NewAuthService("", "", time.Minute, time.Hour, nil)
	if svc.Enabled() {
		t.Fatalf("auth without secret must report disabled")
	}
	if _, err := svc.Unlock("4821"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}
