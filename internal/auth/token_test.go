package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewTokenManager([]byte("test-secret"), time.Hour)

	token, err := m.Issue("alice", "alice@example.com")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verifying token: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("username = %q, want %q", claims.Username, "alice")
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("email = %q, want %q", claims.Email, "alice@example.com")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	m := NewTokenManager([]byte("test-secret"), -time.Minute)

	token, err := m.Issue("alice", "alice@example.com")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	if _, err := m.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("error = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenManager([]byte("issuer-secret"), time.Hour)
	verifier := NewTokenManager([]byte("other-secret"), time.Hour)

	token, err := issuer.Issue("alice", "alice@example.com")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	m := NewTokenManager([]byte("test-secret"), time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.Verify(token); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Verify(%q) error = %v, want ErrTokenInvalid", token, err)
		}
	}
}

func TestIssuedTokensAreUnique(t *testing.T) {
	m := NewTokenManager([]byte("test-secret"), time.Hour)

	first, err := m.Issue("alice", "alice@example.com")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}
	second, err := m.Issue("alice", "alice@example.com")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}
	if first == second {
		t.Error("two tokens for the same player are identical")
	}
}
