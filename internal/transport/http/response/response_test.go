package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chubrika/wineo-back/internal/apperr"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(err error) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/", func(c *gin.Context) { Err(c, zap.NewNop(), err) })
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestErrStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.BadRequest("bad"), http.StatusBadRequest},
		{apperr.Unauthorized("no"), http.StatusUnauthorized},
		{apperr.NotFound("gone"), http.StatusNotFound},
		{apperr.Conflict("dup"), http.StatusConflict},
		{apperr.Internal("broken", errors.New("db down")), http.StatusInternalServerError},
		{errors.New("raw"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if rec := serve(c.err); rec.Code != c.want {
			t.Errorf("status = %d, want %d", rec.Code, c.want)
		}
	}
}

func TestInternalDetailNotLeaked(t *testing.T) {
	rec := serve(apperr.Internal("query failed", errors.New("pq: password authentication failed")))
	body := rec.Body.String()
	if strings.Contains(body, "password") || strings.Contains(body, "query failed") {
		t.Fatalf("internal detail leaked: %s", body)
	}
	if !strings.Contains(body, "internal server error") {
		t.Fatalf("generic message missing: %s", body)
	}
}
