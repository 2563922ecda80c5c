package domain

import (
	"time"
)

type Region struct {
	ID    string `gorm:"primaryKey;size:32" json:"id"`
	Slug  string `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Label string `gorm:"size:128;not null" json:"label"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Region) TableName() string { return "regions" }

type City struct {
	ID       string `gorm:"primaryKey;size:32" json:"id"`
	Slug     string `gorm:"size:100;not null;uniqueIndex:idx_city_region_slug" json:"slug"`
	Label    string `gorm:"size:128;not null" json:"label"`
	RegionID string `gorm:"size:32;not null;uniqueIndex:idx_city_region_slug;index" json:"regionId"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (City) TableName() string { return "cities" }

// Category is a node of the self-referential category tree. Level and Path
// are denormalized from the parent chain: Path holds ancestor ids ordered
// root→parent and Level is the depth (root = 0). Both are recomputed on
// every structural write; descendants are NOT fixed up when an ancestor
// moves, callers re-derive or accept staleness.
type Category struct {
	ID       string   `gorm:"primaryKey;size:32" json:"id"`
	Name     string   `gorm:"size:128;not null" json:"name"`
	Slug     string   `gorm:"size:100;not null;uniqueIndex:idx_cat_parent_slug" json:"slug"`
	ParentID *string  `gorm:"size:32;uniqueIndex:idx_cat_parent_slug;index" json:"parentId,omitempty"`
	Level    int      `gorm:"not null;default:0" json:"level"`
	Path     []string `gorm:"type:text;serializer:json" json:"path"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Category) TableName() string { return "categories" }

// Place recomputes Path/Level from the given parent. A nil parent makes
// the category a root (empty path, level 0).
func (c *Category) Place(parent *Category) {
	if parent == nil {
		c.ParentID = nil
		c.Path = []string{}
		c.Level = 0
		return
	}
	c.ParentID = &parent.ID
	c.Path = append(append([]string{}, parent.Path...), parent.ID)
	c.Level = parent.Level + 1
}

// HasAncestor reports whether id is on the cached ancestor path.
func (c *Category) HasAncestor(id string) bool {
	for _, p := range c.Path {
		if p == id {
			return true
		}
	}
	return false
}
