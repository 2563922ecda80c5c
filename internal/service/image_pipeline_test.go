package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/chubrika/wineo-back/internal/apperr"
)

func TestTempKeyLayout(t *testing.T) {
	k := TempKey("user-7")
	if !strings.HasPrefix(k, "tmp/user-7/") {
		t.Fatalf("temp key %q not under the user's temp prefix", k)
	}
	if k == TempKey("user-7") {
		t.Fatal("temp keys must be random per slot")
	}
}

func TestListingKeyLayout(t *testing.T) {
	if got := ThumbKey("abc"); got != "listings/abc/thumbnail.jpg" {
		t.Fatalf("thumb key = %q", got)
	}
	if got := ImageKey("abc", 1); got != "listings/abc/image-1.jpg" {
		t.Fatalf("image key = %q", got)
	}
	if got := ImageKey("abc", 12); got != "listings/abc/image-12.jpg" {
		t.Fatalf("image key = %q", got)
	}
}

func TestAllocateSlotsCountBounds(t *testing.T) {
	p := &ImagePipeline{}
	ctx := context.Background()
	for _, count := range []int{0, -1, MaxUploadSlots + 1} {
		_, err := p.AllocateSlots(ctx, "u", count)
		if err == nil {
			t.Fatalf("count %d should be rejected", count)
		}
		if apperr.Status(err) != http.StatusBadRequest {
			t.Fatalf("count %d: status = %d, want 400", count, apperr.Status(err))
		}
	}
}
