package utils

import (
	"testing"
	"time"
)

func TestGenerateAndExtractToken(t *testing.T) {
	token, err := GenerateToken("user-1", "patient@example.test", "client", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, role, err := ExtractClaimsFromToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("userID = %q, want user-1", userID)
	}
	if role != "client" {
		t.Errorf("role = %q, want client", role)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "patient@example.test", "client", -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := ExtractClaimsFromToken(token); err == nil {
		t.Error("expected an error for an expired token")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "patient@example.test", "client", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := ExtractClaimsFromToken(token + "x"); err == nil {
		t.Error("expected an error for a tampered token")
	}
}

func TestHashTokenIsStable(t *testing.T) {
	a := HashToken("token-value")
	b := HashToken("token-value")
	if a != b {
		t.Errorf("hashes differ: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
	if HashToken("other") == a {
		t.Error("distinct tokens share a hash")
	}
}
