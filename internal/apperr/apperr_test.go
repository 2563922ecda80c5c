package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{BadRequest("x"), http.StatusBadRequest},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Forbidden("x"), http.StatusForbidden},
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{Internal("x", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := Status(c.err); got != c.want {
			t.Errorf("Status(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestWrappedErrorKeepsStatus(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("gone"))
	if Status(err) != http.StatusNotFound {
		t.Fatal("wrapped apperr lost its status")
	}
}

func TestIsDupKey(t *testing.T) {
	for _, msg := range []string{
		"Error 1062: Duplicate entry 'a' for key 'users.email'",
		`ERROR: duplicate key value violates unique constraint "idx_slug" (SQLSTATE 23505)`,
		"UNIQUE constraint failed: listings.slug",
	} {
		if !IsDupKey(errors.New(msg)) {
			t.Errorf("should detect dup key: %s", msg)
		}
	}
	if IsDupKey(errors.New("connection refused")) || IsDupKey(nil) {
		t.Fatal("false positive")
	}
}
