package repo

import (
	"strings"
	"testing"

	"github.com/chubrika/wineo-back/internal/domain"
)

func TestListOrderDemotesExpiredPromotions(t *testing.T) {
	if !strings.Contains(listOrder, "promotion_expires_at > current_timestamp") {
		t.Fatal("order clause must check the promotion expiry at read time")
	}
	if !strings.Contains(listOrder, "else 3 end") {
		t.Fatal("an expired promotion must sort with the rank of none")
	}
	if !strings.Contains(listOrder, "promotion_type <> 'none'") {
		t.Fatal("order clause must guard on the promotion type")
	}
	if !strings.HasSuffix(listOrder, "created_at desc") {
		t.Fatal("rows within a rank must sort newest first")
	}
	if domain.PromotionRankOf(domain.PromoNone) != 3 {
		t.Fatal("fallback rank out of step with the domain rank table")
	}
}
