package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/chubrika/wineo-back/internal/apperr"
	"github.com/chubrika/wineo-back/internal/core/auth"
	"github.com/chubrika/wineo-back/internal/domain"
)

type fakeUserStore struct {
	users     map[string]*domain.User // keyed by email
	createErr error
}

func (f *fakeUserStore) Create(_ context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.users == nil {
		f.users = map[string]*domain.User{}
	}
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return f.users[email], nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Update(_ context.Context, _ *domain.User) error { return nil }

func testJWTer() *auth.JWTer {
	return &auth.JWTer{Secret: []byte("test-secret"), Issuer: "wineo-test", TTL: time.Hour}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestLoginFailuresShareOneMessage(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{}, testJWTer())
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{
		Email: "user@wineo.ge", Password: "secret1", FirstName: "A", LastName: "B",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, errUnknown := svc.Login(ctx, "ghost@wineo.ge", "secret1")
	_, _, errWrong := svc.Login(ctx, "user@wineo.ge", "not-the-password")
	if errUnknown == nil || errWrong == nil {
		t.Fatal("both logins must fail")
	}
	if apperr.Status(errUnknown) != http.StatusUnauthorized || apperr.Status(errWrong) != http.StatusUnauthorized {
		t.Fatalf("statuses = %d, %d, want 401", apperr.Status(errUnknown), apperr.Status(errWrong))
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Fatalf("messages differ: %q vs %q", errUnknown.Error(), errWrong.Error())
	}
}

func TestLoginAcceptsUnnormalizedEmail(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{}, testJWTer())
	ctx := context.Background()
	if _, _, err := svc.Register(ctx, RegisterInput{
		Email: "User@Wineo.GE", Password: "secret1", FirstName: "A", LastName: "B",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := svc.Login(ctx, "  user@wineo.ge ", "secret1"); err != nil {
		t.Fatalf("login with unnormalized email: %v", err)
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	ctx := context.Background()
	in := RegisterInput{Email: "dup@wineo.ge", Password: "secret1", FirstName: "A", LastName: "B"}

	t.Run("pre-check", func(t *testing.T) {
		svc := NewAuthService(&fakeUserStore{}, testJWTer())
		if _, _, err := svc.Register(ctx, in); err != nil {
			t.Fatalf("first register: %v", err)
		}
		_, _, err := svc.Register(ctx, in)
		if apperr.Status(err) != http.StatusConflict {
			t.Fatalf("status = %d, want 409 (%v)", apperr.Status(err), err)
		}
	})

	t.Run("index violation", func(t *testing.T) {
		store := &fakeUserStore{
			createErr: errors.New(`duplicate key value violates unique constraint "idx_users_email"`),
		}
		svc := NewAuthService(store, testJWTer())
		_, _, err := svc.Register(ctx, in)
		if apperr.Status(err) != http.StatusConflict {
			t.Fatalf("status = %d, want 409 (%v)", apperr.Status(err), err)
		}
	})
}
