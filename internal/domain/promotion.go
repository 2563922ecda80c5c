package domain

import "time"

const (
	PromoNone        = "none"
	PromoHighlighted = "highlighted"
	PromoFeatured    = "featured"
	PromoHomepageTop = "homepageTop"
)

// promoRanks orders promotions for list sorting; lower sorts first.
var promoRanks = map[string]int{
	PromoHomepageTop: 0,
	PromoFeatured:    1,
	PromoHighlighted: 2,
	PromoNone:        3,
}

// PromotionRankOf returns the sort rank for a promotion type; anything
// unrecognized ranks with none.
func PromotionRankOf(promoType string) int {
	if r, ok := promoRanks[promoType]; ok {
		return r
	}
	return promoRanks[PromoNone]
}

// NormalizePromotion coerces the (type, expiresAt) pair into a valid
// state: an unknown type, or any type without a strictly-future expiry,
// collapses to none with a nil expiry.
func NormalizePromotion(promoType string, expiresAt *time.Time, now time.Time) (string, *time.Time) {
	if _, ok := promoRanks[promoType]; !ok || promoType == PromoNone {
		return PromoNone, nil
	}
	if expiresAt == nil || !expiresAt.After(now) {
		return PromoNone, nil
	}
	return promoType, expiresAt
}

// EffectivePromotionType is the promotion the listing currently enjoys:
// none unless the stored promotion has a strictly-future expiry.
func (l *Listing) EffectivePromotionType(now time.Time) string {
	t, _ := NormalizePromotion(l.PromotionType, l.PromotionExpiresAt, now)
	return t
}

// ApplyPromotion normalizes and stores the promotion, keeping the
// denormalized rank column in step for the default list ordering.
func (l *Listing) ApplyPromotion(promoType string, expiresAt *time.Time, now time.Time) {
	l.PromotionType, l.PromotionExpiresAt = NormalizePromotion(promoType, expiresAt, now)
	l.PromotionRank = PromotionRankOf(l.PromotionType)
}
