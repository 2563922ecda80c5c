package service

import (
	"context"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/chubrika/wineo-back/internal/apperr"
)

// These cases fail input validation before any store access, so the
// service can run with zero-value dependencies.
func newValidationOnlyListingService() *ListingService {
	return &ListingService{log: zap.NewNop()}
}

func validCreate() ListingCreate {
	price := 100.0
	return ListingCreate{
		Title:        "Apartment in Vake",
		Description:  "Sunny two-room apartment",
		Type:         "sell",
		CategoryName: "Apartments",
		CategorySlug: "apartments",
		Price:        &price,
		Region:       "Tbilisi Region",
		City:         "Tbilisi",
	}
}

func TestCreateListingValidation(t *testing.T) {
	svc := newValidationOnlyListingService()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*ListingCreate)
	}{
		{"missing title", func(in *ListingCreate) { in.Title = " " }},
		{"missing description", func(in *ListingCreate) { in.Description = "" }},
		{"missing category", func(in *ListingCreate) { in.CategorySlug = "" }},
		{"missing location", func(in *ListingCreate) { in.City = "" }},
		{"bad type", func(in *ListingCreate) { in.Type = "lease" }},
		{"rent without rentPeriod", func(in *ListingCreate) { in.Type = "rent"; in.RentPeriod = "" }},
		{"negative price", func(in *ListingCreate) { p := -5.0; in.Price = &p }},
		{"fixed without price", func(in *ListingCreate) { in.Price = nil; in.PriceType = "fixed" }},
		{"bad currency", func(in *ListingCreate) { in.Currency = "EUR" }},
		{"bad price type", func(in *ListingCreate) { in.PriceType = "auction" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := validCreate()
			c.mutate(&in)
			_, err := svc.Create(ctx, "owner", in)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if apperr.Status(err) != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (%v)", apperr.Status(err), err)
			}
		})
	}
}
