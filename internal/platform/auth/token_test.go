package auth

import (
	"testing"
	"time"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 30*time.Minute)

	token, err := tm.Generate("alice@x.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	email, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if email != "alice@x.com" {
		t.Errorf("expected subject alice@x.com, got %s", email)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret", -1*time.Minute)

	token, err := tm.Generate("alice@x.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := tm.Verify(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 30*time.Minute)
	other := NewTokenManager("other-secret", 30*time.Minute)

	token, err := tm.Generate("alice@x.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Fatal("expected token signed with a different secret to be rejected")
	}
}

func TestTokenManager_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 30*time.Minute)
	if _, err := tm.Verify("not-a-token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
