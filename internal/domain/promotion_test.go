package domain

import (
	"testing"
	"time"
)

func TestNormalizePromotion(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	cases := []struct {
		name     string
		ptype    string
		expires  *time.Time
		wantType string
		wantNil  bool
	}{
		{"valid featured", PromoFeatured, &future, PromoFeatured, false},
		{"expired featured", PromoFeatured, &past, PromoNone, true},
		{"exactly now", PromoFeatured, &now, PromoNone, true},
		{"missing expiry", PromoHomepageTop, nil, PromoNone, true},
		{"unknown type", "sparkly", &future, PromoNone, true},
		{"explicit none", PromoNone, &future, PromoNone, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gotType, gotExp := NormalizePromotion(c.ptype, c.expires, now)
			if gotType != c.wantType {
				t.Errorf("type = %q, want %q", gotType, c.wantType)
			}
			if c.wantNil && gotExp != nil {
				t.Errorf("expiry = %v, want nil", gotExp)
			}
			if !c.wantNil && gotExp == nil {
				t.Error("expiry = nil, want value")
			}
		})
	}
}

func TestEffectivePromotionType(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	l := &Listing{PromotionType: PromoHighlighted, PromotionExpiresAt: &past}
	if got := l.EffectivePromotionType(now); got != PromoNone {
		t.Fatalf("expired promotion should be none, got %q", got)
	}
	future := now.Add(time.Minute)
	l.PromotionExpiresAt = &future
	if got := l.EffectivePromotionType(now); got != PromoHighlighted {
		t.Fatalf("live promotion lost: got %q", got)
	}
}

func TestPromotionRankOrdering(t *testing.T) {
	if !(PromotionRankOf(PromoHomepageTop) < PromotionRankOf(PromoFeatured) &&
		PromotionRankOf(PromoFeatured) < PromotionRankOf(PromoHighlighted) &&
		PromotionRankOf(PromoHighlighted) < PromotionRankOf(PromoNone)) {
		t.Fatal("promotion ranks out of order")
	}
	if PromotionRankOf("bogus") != PromotionRankOf(PromoNone) {
		t.Fatal("unknown type should rank as none")
	}
}

func TestApplyPromotionKeepsRankInStep(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	var l Listing
	l.ApplyPromotion(PromoHomepageTop, &future, now)
	if l.PromotionRank != 0 {
		t.Fatalf("rank = %d, want 0", l.PromotionRank)
	}
	l.ApplyPromotion(PromoHomepageTop, nil, now)
	if l.PromotionType != PromoNone || l.PromotionRank != 3 {
		t.Fatalf("normalization missed: type=%q rank=%d", l.PromotionType, l.PromotionRank)
	}
}
