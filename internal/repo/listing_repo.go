package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/chubrika/wineo-back/internal/domain"
)

// listOrder recomputes the promotion rank at read time. The stored
// promotion_rank column only counts while the promotion is unexpired;
// an expired or missing promotion sorts with none, whatever the row says.
var listOrder = fmt.Sprintf(
	"case when promotion_type <> '%s' and promotion_expires_at > current_timestamp then promotion_rank else %d end asc, created_at desc",
	domain.PromoNone, domain.PromotionRankOf(domain.PromoNone),
)

// ListQuery narrows the public listing search. Zero values mean "no
// constraint"; Limit is capped by the service layer.
type ListQuery struct {
	Status       string
	Type         string
	CategorySlug string
	Skip         int
	Limit        int
}

type ListingRepo struct{ db *gorm.DB }

func NewListingRepo(db *gorm.DB) *ListingRepo { return &ListingRepo{db: db} }

func (r *ListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ListingRepo) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	var l domain.Listing
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &l, err
}

func (r *ListingRepo) FindBySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	var l domain.Listing
	err := r.db.WithContext(ctx).First(&l, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &l, err
}

// SlugTaken checks slug uniqueness, excluding one listing id (self) on
// update. Best-effort pre-check; the unique index is the authority.
func (r *ListingRepo) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Listing{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

// List applies the public search constraints with the default ordering:
// effective promotion rank ascending, then newest first.
func (r *ListingRepo) List(ctx context.Context, q ListQuery) ([]domain.Listing, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Listing{})
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Type != "" {
		tx = tx.Where("type = ?", q.Type)
	}
	if q.CategorySlug != "" {
		tx = tx.Where("category_slug = ?", q.CategorySlug)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ls []domain.Listing
	err := tx.Order(listOrder).
		Offset(q.Skip).Limit(q.Limit).Find(&ls).Error
	return ls, total, err
}

func (r *ListingRepo) ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]domain.Listing, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Listing{}).Where("owner_id = ?", ownerID)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ls []domain.Listing
	err := tx.Order("created_at desc").Offset(skip).Limit(limit).Find(&ls).Error
	return ls, total, err
}

func (r *ListingRepo) Update(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *ListingRepo) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Listing{})
	return res.RowsAffected, res.Error
}

// IncrementViews bumps the view counter without racing concurrent reads.
func (r *ListingRepo) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.Listing{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
