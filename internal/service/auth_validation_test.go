package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/chubrika/wineo-back/internal/apperr"
)

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  John.Doe@Example.COM "); got != "john.doe@example.com" {
		t.Fatalf("normalized = %q", got)
	}
}

// Validation failures short-circuit before the user store is touched.
func TestRegisterValidation(t *testing.T) {
	svc := &AuthService{}
	ctx := context.Background()

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"missing email", RegisterInput{Password: "secret1", FirstName: "A", LastName: "B"}},
		{"short password", RegisterInput{Email: "a@b.ge", Password: "12345", FirstName: "A", LastName: "B"}},
		{"physical without names", RegisterInput{Email: "a@b.ge", Password: "secret1", AccountType: "physical"}},
		{"business without name", RegisterInput{Email: "a@b.ge", Password: "secret1", AccountType: "business"}},
		{"unknown account type", RegisterInput{Email: "a@b.ge", Password: "secret1", AccountType: "corp", FirstName: "A", LastName: "B"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, c.in)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if apperr.Status(err) != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (%v)", apperr.Status(err), err)
			}
		})
	}
}
