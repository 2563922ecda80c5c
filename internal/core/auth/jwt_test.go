package auth

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "wineo-test", TTL: 7 * 24 * time.Hour}
	tok, err := j.Issue("user-1", "customer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := j.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UID != "user-1" || claims.Role != "customer" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) < 6*24*time.Hour {
		t.Fatal("expiry should be about 7 days out")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	a := &JWTer{Secret: []byte("secret-a"), Issuer: "wineo-test", TTL: time.Hour}
	b := &JWTer{Secret: []byte("secret-b"), Issuer: "wineo-test", TTL: time.Hour}
	tok, err := a.Issue("u", "customer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := b.Parse(tok); err == nil {
		t.Fatal("token signed with another secret must not verify")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	// Negative TTL puts the expiry beyond the parser's leeway.
	j := &JWTer{Secret: []byte("s"), Issuer: "wineo-test", TTL: -2 * time.Minute}
	tok, err := j.Issue("u", "customer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := j.Parse(tok); err == nil {
		t.Fatal("expired token must not verify")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	a := &JWTer{Secret: []byte("s"), Issuer: "someone-else", TTL: time.Hour}
	b := &JWTer{Secret: []byte("s"), Issuer: "wineo-test", TTL: time.Hour}
	tok, err := a.Issue("u", "customer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := b.Parse(tok); err == nil {
		t.Fatal("token from another issuer must not verify")
	}
}
