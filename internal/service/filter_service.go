package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/chubrika/wineo-back/internal/apperr"
	"github.com/chubrika/wineo-back/internal/core/cache"
	"github.com/chubrika/wineo-back/internal/domain"
	"github.com/chubrika/wineo-back/internal/repo"
	"github.com/chubrika/wineo-back/pkg/utils"
)

const filterCacheTTL = 5 * time.Minute

type FilterInput struct {
	Name            string
	Slug            string
	Type            string
	Options         []string
	Unit            string
	CategoryID      string
	ApplyToChildren *bool
	Required        *bool
	SortOrder       *int
	Active          *bool
}

type FilterService struct {
	filters    *repo.FilterRepo
	categories *repo.CategoryRepo
	cache      *cache.Cache
}

func NewFilterService(filters *repo.FilterRepo, categories *repo.CategoryRepo, c *cache.Cache) *FilterService {
	return &FilterService{filters: filters, categories: categories, cache: c}
}

func validateFilterShape(ftype string, options []string) error {
	if !domain.ValidFilterType(ftype) {
		return apperr.BadRequest("unknown filter type")
	}
	if ftype == domain.FilterSelect && len(options) == 0 {
		return apperr.BadRequest("select filters require options")
	}
	if ftype != domain.FilterSelect && len(options) > 0 {
		return apperr.BadRequest("options are only valid for select filters")
	}
	return nil
}

func (s *FilterService) Create(ctx context.Context, in FilterInput) (*domain.Filter, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.BadRequest("name is required")
	}
	if in.CategoryID == "" {
		return nil, apperr.BadRequest("categoryId is required")
	}
	if err := validateFilterShape(in.Type, in.Options); err != nil {
		return nil, err
	}
	cat, err := s.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		return nil, apperr.Internal("lookup category failed", err)
	}
	if cat == nil {
		return nil, apperr.BadRequest("category not found")
	}

	slug := in.Slug
	if slug == "" {
		slug = utils.SlugOr(in.Name, utils.NewToken)
	}
	if existing, err := s.filters.FindBySlugInCategory(ctx, in.CategoryID, slug); err != nil {
		return nil, apperr.Internal("lookup filter failed", err)
	} else if existing != nil {
		return nil, apperr.Conflict("filter slug already exists in category")
	}

	f := &domain.Filter{
		ID:         utils.NewID(),
		Name:       strings.TrimSpace(in.Name),
		Slug:       slug,
		Type:       in.Type,
		Options:    in.Options,
		Unit:       in.Unit,
		CategoryID: in.CategoryID,
		Active:     true,
	}
	if in.ApplyToChildren != nil {
		f.ApplyToChildren = *in.ApplyToChildren
	}
	if in.Required != nil {
		f.Required = *in.Required
	}
	if in.SortOrder != nil {
		f.SortOrder = *in.SortOrder
	}
	if in.Active != nil {
		f.Active = *in.Active
	}
	if err := s.filters.Create(ctx, f); err != nil {
		if apperr.IsDupKey(err) {
			return nil, apperr.Conflict("filter slug already exists in category")
		}
		return nil, apperr.Internal("create filter failed", err)
	}
	s.invalidate(ctx, f.CategoryID)
	return f, nil
}

func (s *FilterService) List(ctx context.Context, categoryID string, all bool) ([]domain.Filter, error) {
	fs, err := s.filters.List(ctx, categoryID, all)
	if err != nil {
		return nil, apperr.Internal("list filters failed", err)
	}
	return fs, nil
}

// ForCategory resolves filter inheritance: filters assigned to the
// category itself plus ancestor filters flagged applyToChildren, active
// only, ordered by (sortOrder, name). Cached read-through; staleness is
// bounded by the short TTL since ancestor edits cannot enumerate every
// affected descendant key.
func (s *FilterService) ForCategory(ctx context.Context, categoryID string) ([]domain.Filter, error) {
	load := func(ctx context.Context) ([]domain.Filter, error) {
		cat, err := s.categories.FindByID(ctx, categoryID)
		if err != nil {
			return nil, apperr.Internal("lookup category failed", err)
		}
		if cat == nil {
			return nil, apperr.NotFound("category not found")
		}
		candidates, err := s.filters.ListForCategories(ctx, append(append([]string{}, cat.Path...), cat.ID))
		if err != nil {
			return nil, apperr.Internal("list filters failed", err)
		}
		return domain.ApplicableFilters(cat, candidates), nil
	}

	if s.cache == nil {
		return load(ctx)
	}
	b, err := s.cache.GetOrLoad(ctx, "filters:cat:"+categoryID, filterCacheTTL, func(ctx context.Context) ([]byte, error) {
		fs, e := load(ctx)
		if e != nil {
			return nil, e
		}
		return json.Marshal(fs)
	})
	if err != nil {
		return nil, err
	}
	var fs []domain.Filter
	if err := json.Unmarshal(b, &fs); err != nil {
		return nil, apperr.Internal("decode cached filters failed", err)
	}
	return fs, nil
}

func (s *FilterService) Update(ctx context.Context, id string, in FilterInput) (*domain.Filter, error) {
	f, err := s.filters.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("lookup filter failed", err)
	}
	if f == nil {
		return nil, apperr.NotFound("filter not found")
	}
	if strings.TrimSpace(in.Name) != "" {
		f.Name = strings.TrimSpace(in.Name)
	}
	if in.Slug != "" {
		f.Slug = in.Slug
	}
	if in.Type != "" {
		f.Type = in.Type
	}
	if in.Options != nil {
		f.Options = in.Options
	}
	if in.Unit != "" {
		f.Unit = in.Unit
	}
	if in.ApplyToChildren != nil {
		f.ApplyToChildren = *in.ApplyToChildren
	}
	if in.Required != nil {
		f.Required = *in.Required
	}
	if in.SortOrder != nil {
		f.SortOrder = *in.SortOrder
	}
	if in.Active != nil {
		f.Active = *in.Active
	}
	if err := validateFilterShape(f.Type, f.Options); err != nil {
		return nil, err
	}
	if existing, err := s.filters.FindBySlugInCategory(ctx, f.CategoryID, f.Slug); err != nil {
		return nil, apperr.Internal("lookup filter failed", err)
	} else if existing != nil && existing.ID != f.ID {
		return nil, apperr.Conflict("filter slug already exists in category")
	}
	if err := s.filters.Update(ctx, f); err != nil {
		if apperr.IsDupKey(err) {
			return nil, apperr.Conflict("filter slug already exists in category")
		}
		return nil, apperr.Internal("update filter failed", err)
	}
	s.invalidate(ctx, f.CategoryID)
	return f, nil
}

func (s *FilterService) Delete(ctx context.Context, id string) error {
	f, err := s.filters.FindByID(ctx, id)
	if err != nil {
		return apperr.Internal("lookup filter failed", err)
	}
	if f == nil {
		return apperr.NotFound("filter not found")
	}
	if _, err := s.filters.Delete(ctx, id); err != nil {
		return apperr.Internal("delete filter failed", err)
	}
	s.invalidate(ctx, f.CategoryID)
	return nil
}

func (s *FilterService) invalidate(ctx context.Context, categoryID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, "filters:cat:"+categoryID)
	}
}
