package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.Issue("user-1", "Taro", "candidate")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("unexpected UserID: %s", claims.UserID)
	}
	if claims.Name != "Taro" {
		t.Fatalf("unexpected Name: %s", claims.Name)
	}
	if claims.Role != "candidate" {
		t.Fatalf("unexpected Role: %s", claims.Role)
	}
}

func TestTokenTampered(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.Issue("user-1", "Taro", "candidate")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// ペイロード部の1バイトを書き換えると署名検証に失敗する
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token format: %s", token)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := tm.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret")
	other := NewTokenManager("another-secret")

	token, err := tm.Issue("user-1", "", "")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret")
	tm.ttl = -time.Minute

	token, err := tm.Issue("user-1", "", "")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := tm.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
