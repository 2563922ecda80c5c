package service

import (
	"context"
	"strings"
	"time"

	"github.com/chubrika/wineo-back/internal/apperr"
	"github.com/chubrika/wineo-back/internal/core/cache"
	"github.com/chubrika/wineo-back/internal/domain"
	"github.com/chubrika/wineo-back/internal/repo"
	"github.com/chubrika/wineo-back/pkg/utils"
)

const catCacheTTL = 5 * time.Minute

type CategoryInput struct {
	Name     string
	Slug     string
	ParentID *string
}

// CategoryService maintains the category tree. Path/Level are recomputed
// from the parent on every structural write; descendants keep their
// cached placement when an ancestor moves (documented gap, callers
// re-derive or accept staleness).
type CategoryService struct {
	categories *repo.CategoryRepo
	cache      *cache.Cache
}

func NewCategoryService(categories *repo.CategoryRepo, c *cache.Cache) *CategoryService {
	return &CategoryService{categories: categories, cache: c}
}

func (s *CategoryService) resolveParent(ctx context.Context, parentID *string, selfID string) (*domain.Category, error) {
	if parentID == nil || *parentID == "" {
		return nil, nil
	}
	if *parentID == selfID {
		return nil, apperr.BadRequest("category cannot be its own parent")
	}
	parent, err := s.categories.FindByID(ctx, *parentID)
	if err != nil {
		return nil, apperr.Internal("lookup parent failed", err)
	}
	if parent == nil {
		return nil, apperr.BadRequest("parent category not found")
	}
	return parent, nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.BadRequest("name is required")
	}
	parent, err := s.resolveParent(ctx, in.ParentID, "")
	if err != nil {
		return nil, err
	}
	slug := in.Slug
	if slug == "" {
		slug = utils.SlugOr(in.Name, utils.NewToken)
	}

	var scope *string
	if parent != nil {
		scope = &parent.ID
	}
	if existing, err := s.categories.FindBySlugInScope(ctx, scope, slug); err != nil {
		return nil, apperr.Internal("lookup category failed", err)
	} else if existing != nil {
		return nil, apperr.Conflict("category slug already exists under this parent")
	}

	c := &domain.Category{
		ID:   utils.NewID(),
		Name: strings.TrimSpace(in.Name),
		Slug: slug,
	}
	c.Place(parent)
	if err := s.categories.Create(ctx, c); err != nil {
		if apperr.IsDupKey(err) {
			return nil, apperr.Conflict("category slug already exists under this parent")
		}
		return nil, apperr.Internal("create category failed", err)
	}
	s.invalidate(ctx, c)
	return c, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("lookup category failed", err)
	}
	if c == nil {
		return nil, apperr.NotFound("category not found")
	}
	return c, nil
}

// GetBySlug serves the public category page; cached read-through.
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	load := func(ctx context.Context) (*domain.Category, error) {
		return s.categories.FindBySlug(ctx, slug)
	}
	var c *domain.Category
	var err error
	if s.cache != nil {
		c, err = cache.GetOrLoadJSON[domain.Category](s.cache, ctx, "cat:slug:"+slug, catCacheTTL, load)
	} else {
		c, err = load(ctx)
	}
	if err != nil {
		return nil, apperr.Internal("lookup category failed", err)
	}
	if c == nil {
		return nil, apperr.NotFound("category not found")
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	cs, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperr.Internal("list categories failed", err)
	}
	return cs, nil
}

// Update recomputes placement when the parent changes. Descendants'
// cached path/level are intentionally not rewritten.
func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) (*domain.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldSlug := c.Slug

	if in.ParentID != nil {
		parent, err := s.resolveParent(ctx, in.ParentID, c.ID)
		if err != nil {
			return nil, err
		}
		c.Place(parent)
	}
	if strings.TrimSpace(in.Name) != "" {
		c.Name = strings.TrimSpace(in.Name)
	}
	if in.Slug != "" {
		c.Slug = in.Slug
	}

	if existing, err := s.categories.FindBySlugInScope(ctx, c.ParentID, c.Slug); err != nil {
		return nil, apperr.Internal("lookup category failed", err)
	} else if existing != nil && existing.ID != c.ID {
		return nil, apperr.Conflict("category slug already exists under this parent")
	}

	if err := s.categories.Update(ctx, c); err != nil {
		if apperr.IsDupKey(err) {
			return nil, apperr.Conflict("category slug already exists under this parent")
		}
		return nil, apperr.Internal("update category failed", err)
	}
	if s.cache != nil && oldSlug != c.Slug {
		s.cache.Invalidate(ctx, "cat:slug:"+oldSlug)
	}
	s.invalidate(ctx, c)
	return c, nil
}

// Delete refuses while children exist.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	hasKids, err := s.categories.HasChildren(ctx, id)
	if err != nil {
		return apperr.Internal("lookup children failed", err)
	}
	if hasKids {
		return apperr.Conflict("category has children")
	}
	if _, err := s.categories.Delete(ctx, id); err != nil {
		return apperr.Internal("delete category failed", err)
	}
	s.invalidate(ctx, c)
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context, c *domain.Category) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, "cat:slug:"+c.Slug, "filters:cat:"+c.ID)
}
