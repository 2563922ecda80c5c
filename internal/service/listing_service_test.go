package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/chubrika/wineo-back/internal/domain"
	"github.com/chubrika/wineo-back/internal/repo"
)

type fakeListingStore struct {
	saved     *domain.Listing
	slugTaken bool
}

func (f *fakeListingStore) Create(_ context.Context, l *domain.Listing) error {
	f.saved = l
	return nil
}

func (f *fakeListingStore) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	if f.saved != nil && f.saved.ID == id {
		return f.saved, nil
	}
	return nil, nil
}

func (f *fakeListingStore) FindBySlug(_ context.Context, slug string) (*domain.Listing, error) {
	if f.saved != nil && f.saved.Slug == slug {
		return f.saved, nil
	}
	return nil, nil
}

func (f *fakeListingStore) SlugTaken(_ context.Context, _, _ string) (bool, error) {
	return f.slugTaken, nil
}

func (f *fakeListingStore) List(_ context.Context, _ repo.ListQuery) ([]domain.Listing, int64, error) {
	return nil, 0, nil
}

func (f *fakeListingStore) ListByOwner(_ context.Context, _ string, _, _ int) ([]domain.Listing, int64, error) {
	return nil, 0, nil
}

func (f *fakeListingStore) Update(_ context.Context, l *domain.Listing) error {
	f.saved = l
	return nil
}

func (f *fakeListingStore) Delete(_ context.Context, _ string) (int64, error) { return 1, nil }

func (f *fakeListingStore) IncrementViews(_ context.Context, _ string) error { return nil }

type fakeImages struct {
	urls  []string
	thumb string
	err   error
}

func (f *fakeImages) Commit(_ context.Context, _ string, _ []string) ([]string, string, error) {
	return f.urls, f.thumb, f.err
}

func (f *fakeImages) Append(_ context.Context, _ string, _ []string, _ int) ([]string, error) {
	return f.urls, f.err
}

func TestCreateSellDiscardsRentPeriod(t *testing.T) {
	store := &fakeListingStore{}
	svc := NewListingService(store, nil, nil, nil, zap.NewNop())

	in := validCreate()
	in.RentPeriod = "monthly"
	l, err := svc.Create(context.Background(), "owner", in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if l.RentPeriod != "" {
		t.Fatalf("sell listing kept rentPeriod %q", l.RentPeriod)
	}
	if store.saved == nil || store.saved.RentPeriod != "" {
		t.Fatal("stored row must not carry a rentPeriod either")
	}
}

func TestCreateNegotiableDefaultsPriceToZero(t *testing.T) {
	store := &fakeListingStore{}
	svc := NewListingService(store, nil, nil, nil, zap.NewNop())

	in := validCreate()
	in.Price = nil
	in.PriceType = domain.PriceNegotiable
	l, err := svc.Create(context.Background(), "owner", in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if l.Price != 0 {
		t.Fatalf("price = %v, want 0", l.Price)
	}
	if l.PriceType != domain.PriceNegotiable {
		t.Fatalf("priceType = %q", l.PriceType)
	}
}

// A mid-commit image failure keeps the created listing with the
// committed subset instead of hiding the row behind an error.
func TestCreateKeepsListingOnPartialImageCommit(t *testing.T) {
	store := &fakeListingStore{}
	images := &fakeImages{
		urls:  []string{"http://cdn/listings/x/image-1.jpg"},
		thumb: "http://cdn/listings/x/thumbnail.jpg",
		err:   errors.New("store image failed"),
	}
	svc := NewListingService(store, nil, nil, images, zap.NewNop())

	in := validCreate()
	in.TempImageKeys = []string{"tmp/owner/a", "tmp/owner/b"}
	l, err := svc.Create(context.Background(), "owner", in)
	if err != nil {
		t.Fatalf("partial commit must still return the listing, got %v", err)
	}
	if len(l.Images) != 1 || l.Images[0] != images.urls[0] {
		t.Fatalf("images = %v, want the committed subset", l.Images)
	}
	if l.Thumbnail != images.thumb {
		t.Fatalf("thumbnail = %q", l.Thumbnail)
	}
	if store.saved == nil || len(store.saved.Images) != 1 {
		t.Fatal("committed subset must be persisted")
	}
}
