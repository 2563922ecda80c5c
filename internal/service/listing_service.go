package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chubrika/wineo-back/internal/apperr"
	"github.com/chubrika/wineo-back/internal/domain"
	"github.com/chubrika/wineo-back/internal/repo"
	"github.com/chubrika/wineo-back/pkg/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListingCreate struct {
	Title              string
	Slug               string
	Description        string
	Type               string
	CategoryName       string
	CategorySlug       string
	CategoryID         *string
	Attributes         []domain.Attribute
	Price              *float64
	Currency           string
	PriceType          string
	RentPeriod         string
	Images             []string
	Thumbnail          string
	Specification      map[string]string
	Region             string
	City               string
	PromotionType      string
	PromotionExpiresAt *time.Time
	SEOTitle           string
	SEODescription     string
	TempImageKeys      []string
}

type ListingUpdate struct {
	Title              *string
	Slug               *string
	Description        *string
	Type               *string
	CategoryName       *string
	CategorySlug       *string
	CategoryID         *string
	Attributes         []domain.Attribute
	Price              *float64
	Currency           *string
	PriceType          *string
	RentPeriod         *string
	Images             []string
	Thumbnail          *string
	Specification      map[string]string
	Region             *string
	City               *string
	Status             *string
	PromotionType      *string
	PromotionExpiresAt *time.Time
	SEOTitle           *string
	SEODescription     *string
	TempImageKeys      []string
}

// listingStore is the slice of the listing repo the service consumes.
type listingStore interface {
	Create(ctx context.Context, l *domain.Listing) error
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Listing, error)
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	List(ctx context.Context, q repo.ListQuery) ([]domain.Listing, int64, error)
	ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]domain.Listing, int64, error)
	Update(ctx context.Context, l *domain.Listing) error
	Delete(ctx context.Context, id string) (int64, error)
	IncrementViews(ctx context.Context, id string) error
}

type categoryFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Category, error)
}

type filterChecker interface {
	Exists(ctx context.Context, ids []string) (bool, error)
}

type imageCommitter interface {
	Commit(ctx context.Context, listingID string, tempKeys []string) ([]string, string, error)
	Append(ctx context.Context, listingID string, tempKeys []string, startIndex int) ([]string, error)
}

type ListingService struct {
	listings   listingStore
	categories categoryFinder
	filters    filterChecker
	images     imageCommitter
	log        *zap.Logger
}

func NewListingService(listings listingStore, categories categoryFinder, filters filterChecker, images imageCommitter, log *zap.Logger) *ListingService {
	return &ListingService{listings: listings, categories: categories, filters: filters, images: images, log: log}
}

func (s *ListingService) checkRefs(ctx context.Context, categoryID *string, attrs []domain.Attribute) error {
	if categoryID != nil && *categoryID != "" {
		cat, err := s.categories.FindByID(ctx, *categoryID)
		if err != nil {
			return apperr.Internal("lookup category failed", err)
		}
		if cat == nil {
			return apperr.BadRequest("referenced category does not exist")
		}
	}
	if len(attrs) > 0 {
		seen := make(map[string]struct{}, len(attrs))
		ids := make([]string, 0, len(attrs))
		for _, a := range attrs {
			if _, ok := seen[a.FilterID]; ok {
				continue
			}
			seen[a.FilterID] = struct{}{}
			ids = append(ids, a.FilterID)
		}
		ok, err := s.filters.Exists(ctx, ids)
		if err != nil {
			return apperr.Internal("lookup filters failed", err)
		}
		if !ok {
			return apperr.BadRequest("referenced filter does not exist")
		}
	}
	return nil
}

func (s *ListingService) Create(ctx context.Context, ownerID string, in ListingCreate) (*domain.Listing, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.BadRequest("title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperr.BadRequest("description is required")
	}
	if in.CategoryName == "" || in.CategorySlug == "" {
		return nil, apperr.BadRequest("category name and slug are required")
	}
	if strings.TrimSpace(in.Region) == "" || strings.TrimSpace(in.City) == "" {
		return nil, apperr.BadRequest("location region and city are required")
	}
	if !domain.ValidListingType(in.Type) {
		return nil, apperr.BadRequest("type must be sell or rent")
	}
	if in.Type == domain.ListingRent && strings.TrimSpace(in.RentPeriod) == "" {
		return nil, apperr.BadRequest("rentPeriod is required for rent listings")
	}

	priceType := in.PriceType
	if priceType == "" {
		priceType = domain.PriceFixed
	}
	if !domain.ValidPriceType(priceType) {
		return nil, apperr.BadRequest("unknown price type")
	}
	var price float64
	switch {
	case in.Price != nil:
		if *in.Price < 0 {
			return nil, apperr.BadRequest("price cannot be negative")
		}
		price = *in.Price
	case priceType == domain.PriceNegotiable:
		price = 0
	default:
		return nil, apperr.BadRequest("price is required")
	}

	currency := in.Currency
	if currency == "" {
		currency = domain.CurrencyGEL
	}
	if !domain.ValidCurrency(currency) {
		return nil, apperr.BadRequest("unknown currency")
	}

	if err := s.checkRefs(ctx, in.CategoryID, in.Attributes); err != nil {
		return nil, err
	}

	slug := in.Slug
	if slug == "" {
		slug = utils.SlugOr(in.Title, utils.NewToken)
	}
	if taken, err := s.listings.SlugTaken(ctx, slug, ""); err != nil {
		return nil, apperr.Internal("lookup slug failed", err)
	} else if taken {
		return nil, apperr.Conflict("listing slug already exists")
	}

	l := &domain.Listing{
		ID:             utils.NewID(),
		Title:          strings.TrimSpace(in.Title),
		Slug:           slug,
		Description:    in.Description,
		Type:           in.Type,
		Category:       domain.CategorySnapshot{Name: in.CategoryName, Slug: in.CategorySlug},
		CategoryID:     in.CategoryID,
		Attributes:     in.Attributes,
		Price:          price,
		Currency:       currency,
		PriceType:      priceType,
		Images:         in.Images,
		Thumbnail:      in.Thumbnail,
		Specification:  in.Specification,
		Location:       domain.Location{Region: strings.TrimSpace(in.Region), City: strings.TrimSpace(in.City)},
		OwnerID:        ownerID,
		Status:         domain.StatusActive,
		SEOTitle:       in.SEOTitle,
		SEODescription: in.SEODescription,
	}
	if l.Type == domain.ListingRent {
		l.RentPeriod = strings.TrimSpace(in.RentPeriod)
	}
	l.ApplyPromotion(in.PromotionType, in.PromotionExpiresAt, time.Now())
	if l.Thumbnail == "" && len(l.Images) > 0 {
		l.Thumbnail = l.Images[0]
	}

	if err := s.listings.Create(ctx, l); err != nil {
		if apperr.IsDupKey(err) {
			return nil, apperr.Conflict("listing slug already exists")
		}
		return nil, apperr.Internal("create listing failed", err)
	}

	if len(in.TempImageKeys) > 0 {
		urls, thumb, perr := s.images.Commit(ctx, l.ID, in.TempImageKeys)
		l.Images = append(l.Images, urls...)
		if thumb != "" {
			l.Thumbnail = thumb
		} else if l.Thumbnail == "" && len(l.Images) > 0 {
			l.Thumbnail = l.Images[0]
		}
		if err := s.listings.Update(ctx, l); err != nil {
			return nil, apperr.Internal("save listing images failed", err)
		}
		if perr != nil {
			// The row exists and keeps the committed subset; the client
			// retries the rest through an update with fresh tempImageKeys.
			s.log.Warn("image commit incomplete", zap.String("listing", l.ID), zap.Error(perr))
		}
	}
	return l, nil
}

func (s *ListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	l, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("lookup listing failed", err)
	}
	if l == nil {
		return nil, apperr.NotFound("listing not found")
	}
	return l, nil
}

// GetBySlug is the public listing page read; it bumps the view counter.
func (s *ListingService) GetBySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	l, err := s.listings.FindBySlug(ctx, slug)
	if err != nil {
		return nil, apperr.Internal("lookup listing failed", err)
	}
	if l == nil {
		return nil, apperr.NotFound("listing not found")
	}
	if err := s.listings.IncrementViews(ctx, l.ID); err != nil {
		s.log.Warn("increment views failed", zap.String("listing", l.ID), zap.Error(err))
	} else {
		l.ViewCount++
	}
	return l, nil
}

func (s *ListingService) List(ctx context.Context, q repo.ListQuery) ([]domain.Listing, int64, error) {
	if q.Status != "" && !domain.ValidListingStatus(q.Status) {
		return nil, 0, apperr.BadRequest("unknown status")
	}
	if q.Type != "" && !domain.ValidListingType(q.Type) {
		return nil, 0, apperr.BadRequest("unknown type")
	}
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	if q.Skip < 0 {
		q.Skip = 0
	}
	ls, total, err := s.listings.List(ctx, q)
	if err != nil {
		return nil, 0, apperr.Internal("list listings failed", err)
	}
	return ls, total, nil
}

func (s *ListingService) ListMine(ctx context.Context, ownerID string, skip, limit int) ([]domain.Listing, int64, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if skip < 0 {
		skip = 0
	}
	ls, total, err := s.listings.ListByOwner(ctx, ownerID, skip, limit)
	if err != nil {
		return nil, 0, apperr.Internal("list listings failed", err)
	}
	return ls, total, nil
}

func canMutate(actorID, actorRole, ownerID string) bool {
	return actorID == ownerID || actorRole == domain.RoleAdmin
}

func (s *ListingService) Update(ctx context.Context, actorID, actorRole, id string, in ListingUpdate) (*domain.Listing, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canMutate(actorID, actorRole, l.OwnerID) {
		return nil, apperr.Forbidden("not the listing owner")
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperr.BadRequest("title cannot be empty")
		}
		l.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, apperr.BadRequest("description cannot be empty")
		}
		l.Description = *in.Description
	}
	if in.Slug != nil && *in.Slug != l.Slug {
		if taken, err := s.listings.SlugTaken(ctx, *in.Slug, l.ID); err != nil {
			return nil, apperr.Internal("lookup slug failed", err)
		} else if taken {
			return nil, apperr.Conflict("listing slug already exists")
		}
		l.Slug = *in.Slug
	}
	if in.CategoryName != nil {
		l.Category.Name = *in.CategoryName
	}
	if in.CategorySlug != nil {
		l.Category.Slug = *in.CategorySlug
	}
	if in.CategoryID != nil {
		l.CategoryID = in.CategoryID
	}
	if in.Attributes != nil {
		l.Attributes = in.Attributes
	}
	if err := s.checkRefs(ctx, l.CategoryID, l.Attributes); err != nil {
		return nil, err
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, apperr.BadRequest("price cannot be negative")
		}
		l.Price = *in.Price
	}
	if in.Currency != nil {
		if !domain.ValidCurrency(*in.Currency) {
			return nil, apperr.BadRequest("unknown currency")
		}
		l.Currency = *in.Currency
	}
	if in.PriceType != nil {
		if !domain.ValidPriceType(*in.PriceType) {
			return nil, apperr.BadRequest("unknown price type")
		}
		l.PriceType = *in.PriceType
	}
	if in.RentPeriod != nil {
		l.RentPeriod = strings.TrimSpace(*in.RentPeriod)
	}
	if in.Type != nil {
		if !domain.ValidListingType(*in.Type) {
			return nil, apperr.BadRequest("type must be sell or rent")
		}
		l.Type = *in.Type
	}
	// Type/rentPeriod coherence is enforced at write time.
	switch l.Type {
	case domain.ListingSell:
		l.RentPeriod = ""
	case domain.ListingRent:
		if l.RentPeriod == "" {
			return nil, apperr.BadRequest("rentPeriod is required for rent listings")
		}
	}
	if in.Images != nil {
		l.Images = in.Images
	}
	if in.Thumbnail != nil {
		l.Thumbnail = *in.Thumbnail
	}
	if in.Specification != nil {
		l.Specification = in.Specification
	}
	if in.Region != nil {
		l.Location.Region = strings.TrimSpace(*in.Region)
	}
	if in.City != nil {
		l.Location.City = strings.TrimSpace(*in.City)
	}
	if in.Status != nil {
		if !domain.ValidListingStatus(*in.Status) {
			return nil, apperr.BadRequest("unknown status")
		}
		l.Status = *in.Status
	}
	if in.PromotionType != nil || in.PromotionExpiresAt != nil {
		pt := l.PromotionType
		if in.PromotionType != nil {
			pt = *in.PromotionType
		}
		exp := l.PromotionExpiresAt
		if in.PromotionExpiresAt != nil {
			exp = in.PromotionExpiresAt
		}
		l.ApplyPromotion(pt, exp, time.Now())
	}
	if in.SEOTitle != nil {
		l.SEOTitle = *in.SEOTitle
	}
	if in.SEODescription != nil {
		l.SEODescription = *in.SEODescription
	}

	if len(in.TempImageKeys) > 0 {
		urls, perr := s.images.Append(ctx, l.ID, in.TempImageKeys, len(l.Images))
		l.Images = append(l.Images, urls...)
		if perr != nil {
			s.log.Warn("image append incomplete", zap.String("listing", l.ID), zap.Error(perr))
		}
	}
	if l.Thumbnail == "" && len(l.Images) > 0 {
		l.Thumbnail = l.Images[0]
	}

	if err := s.listings.Update(ctx, l); err != nil {
		if apperr.IsDupKey(err) {
			return nil, apperr.Conflict("listing slug already exists")
		}
		return nil, apperr.Internal("update listing failed", err)
	}
	return l, nil
}

func (s *ListingService) Delete(ctx context.Context, actorID, actorRole, id string) error {
	l, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !canMutate(actorID, actorRole, l.OwnerID) {
		return apperr.Forbidden("not the listing owner")
	}
	if _, err := s.listings.Delete(ctx, id); err != nil {
		return apperr.Internal("delete listing failed", err)
	}
	return nil
}
