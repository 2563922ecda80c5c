package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	coreauth "github.com/chubrika/wineo-back/internal/core/auth"
	"github.com/chubrika/wineo-back/internal/domain"
	"github.com/chubrika/wineo-back/internal/service"
)

func init() { gin.SetMode(gin.TestMode) }

func TestRequestIDGenerated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get(KeyRequestID) == "" {
		t.Fatal("request id should be generated when absent")
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, "rid-42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get(KeyRequestID); got != "rid-42" {
		t.Fatalf("request id = %q, want rid-42", got)
	}
}

func TestAuthRequiredRejectsBadHeaders(t *testing.T) {
	j := &coreauth.JWTer{Secret: []byte("s"), Issuer: "t", TTL: time.Hour}
	r := gin.New()
	// nil AuthService is fine here: both cases fail before the user lookup.
	r.Use(AuthRequired(j, nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status %d, want 401", header, rec.Code)
		}
	}
}

type downUserStore struct{}

func (downUserStore) Create(context.Context, *domain.User) error { return errors.New("db down") }
func (downUserStore) FindByID(context.Context, string) (*domain.User, error) {
	return nil, errors.New("db down")
}
func (downUserStore) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, errors.New("db down")
}
func (downUserStore) Update(context.Context, *domain.User) error { return errors.New("db down") }

// A valid token with an unreachable user store is an infrastructure
// failure, not a credentials problem.
func TestAuthRequiredSurfacesStoreFailure(t *testing.T) {
	j := &coreauth.JWTer{Secret: []byte("s"), Issuer: "t", TTL: time.Hour}
	tok, err := j.Issue("u1", "customer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	r := gin.New()
	r.Use(AuthRequired(j, service.NewAuthService(downUserStore{}, j)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(KeyRole, "customer") }, RequireRole("admin"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRateLimitAnswers429(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(0, 0))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
}
