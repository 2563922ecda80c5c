package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/chubrika/wineo-back/internal/domain"
)

type RegionRepo struct{ db *gorm.DB }

func NewRegionRepo(db *gorm.DB) *RegionRepo { return &RegionRepo{db: db} }

func (r *RegionRepo) Create(ctx context.Context, reg *domain.Region) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *RegionRepo) FindByID(ctx context.Context, id string) (*domain.Region, error) {
	var reg domain.Region
	err := r.db.WithContext(ctx).First(&reg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &reg, err
}

func (r *RegionRepo) FindBySlug(ctx context.Context, slug string) (*domain.Region, error) {
	var reg domain.Region
	err := r.db.WithContext(ctx).First(&reg, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &reg, err
}

func (r *RegionRepo) List(ctx context.Context) ([]domain.Region, error) {
	var regs []domain.Region
	err := r.db.WithContext(ctx).Order("label asc").Find(&regs).Error
	return regs, err
}

func (r *RegionRepo) Update(ctx context.Context, reg *domain.Region) error {
	return r.db.WithContext(ctx).Save(reg).Error
}

// Delete is unconditional: no cascade check on owned cities.
func (r *RegionRepo) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Region{})
	return res.RowsAffected, res.Error
}

type CityRepo struct{ db *gorm.DB }

func NewCityRepo(db *gorm.DB) *CityRepo { return &CityRepo{db: db} }

func (r *CityRepo) Create(ctx context.Context, c *domain.City) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CityRepo) FindByID(ctx context.Context, id string) (*domain.City, error) {
	var c domain.City
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *CityRepo) FindBySlugInRegion(ctx context.Context, regionID, slug string) (*domain.City, error) {
	var c domain.City
	err := r.db.WithContext(ctx).First(&c, "region_id = ? AND slug = ?", regionID, slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

// List returns all cities, optionally scoped to one region.
func (r *CityRepo) List(ctx context.Context, regionID string) ([]domain.City, error) {
	q := r.db.WithContext(ctx).Order("label asc")
	if regionID != "" {
		q = q.Where("region_id = ?", regionID)
	}
	var cs []domain.City
	err := q.Find(&cs).Error
	return cs, err
}

func (r *CityRepo) Update(ctx context.Context, c *domain.City) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CityRepo) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.City{})
	return res.RowsAffected, res.Error
}
