package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestManager() *Manager {
	return NewManager("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "a@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("expected user ID %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "a@example.com" {
		t.Errorf("expected email a@example.com, got %q", claims.Email)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	userID := uuid.New()

	token, err := m.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	got, err := m.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if got != userID {
		t.Errorf("expected user ID %s, got %s", userID, got)
	}
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := newTestManager()
	userID := uuid.New()

	access, err := m.GenerateAccessToken(userID, "a@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := m.ValidateRefreshToken(access); err == nil {
		t.Error("access token must not validate as refresh token")
	}

	refresh, err := m.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if _, err := m.ValidateAccessToken(refresh); err == nil {
		t.Error("refresh token must not validate as access token")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "a@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Error("expired token must be rejected")
	}
}

func TestHashToken(t *testing.T) {
	m := newTestManager()

	h1, err := m.HashToken("some-refresh-token")
	if err != nil {
		t.Fatalf("HashToken: %v", err)
	}
	h2, err := m.HashToken("some-refresh-token")
	if err != nil {
		t.Fatalf("HashToken: %v", err)
	}
	if h1 != h2 {
		t.Error("hashing must be deterministic")
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}

	if _, err := m.HashToken(""); err == nil {
		t.Error("empty token must be rejected")
	}
}
