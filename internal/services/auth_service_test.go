package services

import (
	"testing"
	"time"
)

func TestIssueAndParse_AudienceRoundTrip(t *testing.T) {
	t.Parallel()

	auth := NewAuthService("super-secret", 20*time.Minute, 30*24*time.Hour)

	access, err := auth.IssueAccessToken(42)
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}
	got, err := auth.ParseToken(access)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if got != 42 {
		t.Fatalf("audience mismatch: got %d want 42", got)
	}

	refresh, err := auth.IssueRefreshToken(42)
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}
	got, err = auth.ParseToken(refresh)
	if err != nil {
		t.Fatalf("ParseToken refresh error: %v", err)
	}
	if got != 42 {
		t.Fatalf("refresh audience mismatch: got %d want 42", got)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	auth := NewAuthService("super-secret", -1*time.Second, 30*24*time.Hour)
	tok, err := auth.IssueAccessToken(7)
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	if _, err := auth.ParseToken(tok); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewAuthService("right-secret", time.Minute, time.Hour)
	verifier := NewAuthService("wrong-secret", time.Minute, time.Hour)

	tok, err := issuer.IssueAccessToken(7)
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}
	if _, err := verifier.ParseToken(tok); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	auth := NewAuthService("super-secret", time.Minute, time.Hour)
	if _, err := auth.ParseToken("not.a.jwt"); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	auth := NewAuthService("super-secret", time.Minute, time.Hour)

	h1, err := auth.HashPassword("longenough1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := auth.HashPassword("longenough1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected a fresh salt per hash")
	}
	if !auth.CheckPassword(h1, "longenough1") {
		t.Fatalf("expected password to verify against its hash")
	}
	if auth.CheckPassword(h1, "longenough2") {
		t.Fatalf("expected wrong password to fail verification")
	}
}
