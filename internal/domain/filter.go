package domain

import (
	"sort"
	"time"
)

const (
	FilterSelect   = "select"
	FilterRange    = "range"
	FilterCheckbox = "checkbox"
	FilterNumber   = "number"
	FilterText     = "text"
)

// ValidFilterType reports whether t is one of the known filter types.
func ValidFilterType(t string) bool {
	switch t {
	case FilterSelect, FilterRange, FilterCheckbox, FilterNumber, FilterText:
		return true
	}
	return false
}

// Filter is a category-scoped attribute definition. Filters on an ancestor
// category apply to descendants only when ApplyToChildren is set.
type Filter struct {
	ID              string   `gorm:"primaryKey;size:32" json:"id"`
	Name            string   `gorm:"size:128;not null" json:"name"`
	Slug            string   `gorm:"size:100;not null;uniqueIndex:idx_filter_cat_slug" json:"slug"`
	Type            string   `gorm:"size:16;not null" json:"type"`
	Options         []string `gorm:"type:text;serializer:json" json:"options,omitempty"`
	Unit            string   `gorm:"size:32" json:"unit,omitempty"`
	CategoryID      string   `gorm:"size:32;not null;uniqueIndex:idx_filter_cat_slug;index" json:"categoryId"`
	ApplyToChildren bool     `gorm:"not null;default:false" json:"applyToChildren"`
	Required        bool     `gorm:"not null;default:false" json:"required"`
	SortOrder       int      `gorm:"not null;default:0" json:"sortOrder"`
	Active          bool     `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Filter) TableName() string { return "filters" }

// AppliesTo reports whether f is usable on cat: either assigned directly,
// or assigned to an ancestor with child-inheritance enabled.
func (f *Filter) AppliesTo(cat *Category) bool {
	if f.CategoryID == cat.ID {
		return true
	}
	return f.ApplyToChildren && cat.HasAncestor(f.CategoryID)
}

// ApplicableFilters selects the active filters that apply to cat and
// orders them by (sortOrder asc, name asc).
func ApplicableFilters(cat *Category, candidates []Filter) []Filter {
	out := make([]Filter, 0, len(candidates))
	for _, f := range candidates {
		if f.Active && f.AppliesTo(cat) {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out
}
