package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/chubrika/wineo-back/internal/domain"
)

type FilterRepo struct{ db *gorm.DB }

func NewFilterRepo(db *gorm.DB) *FilterRepo { return &FilterRepo{db: db} }

func (r *FilterRepo) Create(ctx context.Context, f *domain.Filter) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FilterRepo) FindByID(ctx context.Context, id string) (*domain.Filter, error) {
	var f domain.Filter
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &f, err
}

func (r *FilterRepo) FindBySlugInCategory(ctx context.Context, categoryID, slug string) (*domain.Filter, error) {
	var f domain.Filter
	err := r.db.WithContext(ctx).First(&f, "category_id = ? AND slug = ?", categoryID, slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &f, err
}

// ListForCategories pulls the filters assigned to any of the given
// category ids; inheritance selection happens in the domain layer.
func (r *FilterRepo) ListForCategories(ctx context.Context, categoryIDs []string) ([]domain.Filter, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	var fs []domain.Filter
	err := r.db.WithContext(ctx).Where("category_id IN ?", categoryIDs).Find(&fs).Error
	return fs, err
}

// List returns filters, optionally scoped to one category; inactive rows
// are included only when all is set.
func (r *FilterRepo) List(ctx context.Context, categoryID string, all bool) ([]domain.Filter, error) {
	q := r.db.WithContext(ctx).Order("sort_order asc, name asc")
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	if !all {
		q = q.Where("active = ?", true)
	}
	var fs []domain.Filter
	err := q.Find(&fs).Error
	return fs, err
}

func (r *FilterRepo) Update(ctx context.Context, f *domain.Filter) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *FilterRepo) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Filter{})
	return res.RowsAffected, res.Error
}

// Exists reports whether every id in ids resolves to a stored filter.
func (r *FilterRepo) Exists(ctx context.Context, ids []string) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Filter{}).Where("id IN ?", ids).Count(&n).Error
	return n == int64(len(ids)), err
}
