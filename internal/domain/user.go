package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"

	AccountPhysical = "physical"
	AccountBusiness = "business"
)

type User struct {
	ID           string `gorm:"primaryKey;size:32" json:"id"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	FirstName    string `gorm:"size:64" json:"firstName,omitempty"`
	LastName     string `gorm:"size:64" json:"lastName,omitempty"`
	BusinessName string `gorm:"size:128" json:"businessName,omitempty"`
	Phone        string `gorm:"size:32" json:"phone,omitempty"`
	Role         string `gorm:"size:16;not null;default:customer" json:"role"`
	AccountType  string `gorm:"size:16;not null;default:physical" json:"accountType"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// DisplayName is the public-facing name for the account type.
func (u *User) DisplayName() string {
	if u.AccountType == AccountBusiness && u.BusinessName != "" {
		return u.BusinessName
	}
	return u.FirstName + " " + u.LastName
}
