package service

import (
	"context"
	"strings"

	"github.com/chubrika/wineo-back/internal/apperr"
	"github.com/chubrika/wineo-back/internal/domain"
	"github.com/chubrika/wineo-back/internal/repo"
	"github.com/chubrika/wineo-back/pkg/utils"
)

type RegionInput struct {
	Slug  string
	Label string
}

type CityInput struct {
	Slug     string
	Label    string
	RegionID string
}

// TaxonomyService owns regions and cities. Slug uniqueness (global for
// regions, per-region for cities) is backed by unique indexes; the
// pre-checks here only produce friendlier conflicts.
type TaxonomyService struct {
	regions *repo.RegionRepo
	cities  *repo.CityRepo
}

func NewTaxonomyService(regions *repo.RegionRepo, cities *repo.CityRepo) *TaxonomyService {
	return &TaxonomyService{regions: regions, cities: cities}
}

func (s *TaxonomyService) CreateRegion(ctx context.Context, in RegionInput) (*domain.Region, error) {
	if strings.TrimSpace(in.Label) == "" {
		return nil, apperr.BadRequest("label is required")
	}
	slug := in.Slug
	if slug == "" {
		slug = utils.SlugOr(in.Label, utils.NewToken)
	}
	if existing, err := s.regions.FindBySlug(ctx, slug); err != nil {
		return nil, apperr.Internal("lookup region failed", err)
	} else if existing != nil {
		return nil, apperr.Conflict("region slug already exists")
	}
	reg := &domain.Region{ID: utils.NewID(), Slug: slug, Label: strings.TrimSpace(in.Label)}
	if err := s.regions.Create(ctx, reg); err != nil {
		if apperr.IsDupKey(err) {
			return nil, apperr.Conflict("region slug already exists")
		}
		return nil, apperr.Internal("create region failed", err)
	}
	return reg, nil
}

func (s *TaxonomyService) GetRegion(ctx context.Context, id string) (*domain.Region, error) {
	reg, err := s.regions.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("lookup region failed", err)
	}
	if reg == nil {
		return nil, apperr.NotFound("region not found")
	}
	return reg, nil
}

func (s *TaxonomyService) ListRegions(ctx context.Context) ([]domain.Region, error) {
	regs, err := s.regions.List(ctx)
	if err != nil {
		return nil, apperr.Internal("list regions failed", err)
	}
	return regs, nil
}

func (s *TaxonomyService) UpdateRegion(ctx context.Context, id string, in RegionInput) (*domain.Region, error) {
	reg, err := s.GetRegion(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Slug != "" && in.Slug != reg.Slug {
		if existing, err := s.regions.FindBySlug(ctx, in.Slug); err != nil {
			return nil, apperr.Internal("lookup region failed", err)
		} else if existing != nil {
			return nil, apperr.Conflict("region slug already exists")
		}
		reg.Slug = in.Slug
	}
	if strings.TrimSpace(in.Label) != "" {
		reg.Label = strings.TrimSpace(in.Label)
	}
	if err := s.regions.Update(ctx, reg); err != nil {
		if apperr.IsDupKey(err) {
			return nil, apperr.Conflict("region slug already exists")
		}
		return nil, apperr.Internal("update region failed", err)
	}
	return reg, nil
}

// DeleteRegion is unconditional; owned cities are not cascade-checked.
func (s *TaxonomyService) DeleteRegion(ctx context.Context, id string) error {
	n, err := s.regions.Delete(ctx, id)
	if err != nil {
		return apperr.Internal("delete region failed", err)
	}
	if n == 0 {
		return apperr.NotFound("region not found")
	}
	return nil
}

func (s *TaxonomyService) CreateCity(ctx context.Context, in CityInput) (*domain.City, error) {
	if strings.TrimSpace(in.Label) == "" {
		return nil, apperr.BadRequest("label is required")
	}
	if in.RegionID == "" {
		return nil, apperr.BadRequest("regionId is required")
	}
	reg, err := s.regions.FindByID(ctx, in.RegionID)
	if err != nil {
		return nil, apperr.Internal("lookup region failed", err)
	}
	if reg == nil {
		return nil, apperr.BadRequest("region not found")
	}
	slug := in.Slug
	if slug == "" {
		slug = utils.SlugOr(in.Label, utils.NewToken)
	}
	if existing, err := s.cities.FindBySlugInRegion(ctx, in.RegionID, slug); err != nil {
		return nil, apperr.Internal("lookup city failed", err)
	} else if existing != nil {
		return nil, apperr.Conflict("city slug already exists in region")
	}
	c := &domain.City{
		ID:       utils.NewID(),
		Slug:     slug,
		Label:    strings.TrimSpace(in.Label),
		RegionID: in.RegionID,
	}
	if err := s.cities.Create(ctx, c); err != nil {
		if apperr.IsDupKey(err) {
			return nil, apperr.Conflict("city slug already exists in region")
		}
		return nil, apperr.Internal("create city failed", err)
	}
	return c, nil
}

func (s *TaxonomyService) GetCity(ctx context.Context, id string) (*domain.City, error) {
	c, err := s.cities.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("lookup city failed", err)
	}
	if c == nil {
		return nil, apperr.NotFound("city not found")
	}
	return c, nil
}

func (s *TaxonomyService) ListCities(ctx context.Context, regionID string) ([]domain.City, error) {
	cs, err := s.cities.List(ctx, regionID)
	if err != nil {
		return nil, apperr.Internal("list cities failed", err)
	}
	return cs, nil
}

func (s *TaxonomyService) UpdateCity(ctx context.Context, id string, in CityInput) (*domain.City, error) {
	c, err := s.GetCity(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.RegionID != "" && in.RegionID != c.RegionID {
		reg, err := s.regions.FindByID(ctx, in.RegionID)
		if err != nil {
			return nil, apperr.Internal("lookup region failed", err)
		}
		if reg == nil {
			return nil, apperr.BadRequest("region not found")
		}
		c.RegionID = in.RegionID
	}
	if in.Slug != "" {
		c.Slug = in.Slug
	}
	if strings.TrimSpace(in.Label) != "" {
		c.Label = strings.TrimSpace(in.Label)
	}
	if existing, err := s.cities.FindBySlugInRegion(ctx, c.RegionID, c.Slug); err != nil {
		return nil, apperr.Internal("lookup city failed", err)
	} else if existing != nil && existing.ID != c.ID {
		return nil, apperr.Conflict("city slug already exists in region")
	}
	if err := s.cities.Update(ctx, c); err != nil {
		if apperr.IsDupKey(err) {
			return nil, apperr.Conflict("city slug already exists in region")
		}
		return nil, apperr.Internal("update city failed", err)
	}
	return c, nil
}

func (s *TaxonomyService) DeleteCity(ctx context.Context, id string) error {
	n, err := s.cities.Delete(ctx, id)
	if err != nil {
		return apperr.Internal("delete city failed", err)
	}
	if n == 0 {
		return apperr.NotFound("city not found")
	}
	return nil
}
