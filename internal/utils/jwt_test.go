package utils

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	manager := JWTManager{Secret: []byte("test-secret"), Issuer: "mindlift-test", TokenTTL: time.Hour}

	token, ttl, err := manager.IssueSessionToken("user-123", "ada@example.com", "speaker")
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}
	if ttl != time.Hour {
		t.Errorf("ttl = %v, want 1h", ttl)
	}

	claims, err := manager.ParseSessionToken(token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if claims.UserID != "user-123" || claims.Email != "ada@example.com" || claims.Role != "speaker" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Issuer != "mindlift-test" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	manager := JWTManager{Secret: []byte("test-secret"), TokenTTL: -time.Minute}

	token, _, err := manager.IssueSessionToken("user-123", "ada@example.com", "subscriber")
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	if _, err := manager.ParseSessionToken(token); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := JWTManager{Secret: []byte("secret-a"), TokenTTL: time.Hour}
	verifier := JWTManager{Secret: []byte("secret-b"), TokenTTL: time.Hour}

	token, _, err := issuer.IssueSessionToken("user-123", "ada@example.com", "subscriber")
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	if _, err := verifier.ParseSessionToken(token); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	manager := JWTManager{Secret: []byte("test-secret")}

	if _, err := manager.ParseSessionToken("not.a.jwt"); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
