package service

import (
	"context"
	"strings"

	"github.com/chubrika/wineo-back/internal/apperr"
	"github.com/chubrika/wineo-back/internal/core/auth"
	"github.com/chubrika/wineo-back/internal/domain"
	"github.com/chubrika/wineo-back/pkg/utils"
)

// invalidCredentials is shared by the unknown-email and wrong-password
// paths so the response does not reveal which check failed.
const invalidCredentials = "invalid email or password"

type RegisterInput struct {
	Email        string
	Password     string
	AccountType  string
	FirstName    string
	LastName     string
	BusinessName string
	Phone        string
}

type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	BusinessName *string
	Phone        *string
}

// userStore is the slice of the user repo the service consumes.
type userStore interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type AuthService struct {
	users userStore
	jwter *auth.JWTer
}

func NewAuthService(users userStore, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

// NormalizeEmail trims and lowercases, making email uniqueness
// case-insensitive at the stored-value level.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	email := NormalizeEmail(in.Email)
	if email == "" {
		return nil, "", apperr.BadRequest("email is required")
	}
	if len(in.Password) < 6 {
		return nil, "", apperr.BadRequest("password must be at least 6 characters")
	}
	accountType := in.AccountType
	if accountType == "" {
		accountType = domain.AccountPhysical
	}
	switch accountType {
	case domain.AccountPhysical:
		if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
			return nil, "", apperr.BadRequest("first and last name are required")
		}
	case domain.AccountBusiness:
		if strings.TrimSpace(in.BusinessName) == "" {
			return nil, "", apperr.BadRequest("business name is required")
		}
	default:
		return nil, "", apperr.BadRequest("unknown account type")
	}

	// Best-effort pre-check; the unique index on email is the authority.
	if existing, err := s.users.FindByEmail(ctx, email); err != nil {
		return nil, "", apperr.Internal("lookup user failed", err)
	} else if existing != nil {
		return nil, "", apperr.Conflict("email already registered")
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: utils.HashPassword(in.Password),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		BusinessName: strings.TrimSpace(in.BusinessName),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         domain.RoleCustomer,
		AccountType:  accountType,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if apperr.IsDupKey(err) {
			return nil, "", apperr.Conflict("email already registered")
		}
		return nil, "", apperr.Internal("create user failed", err)
	}

	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", apperr.Internal("issue token failed", err)
	}
	return u, tok, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, "", apperr.Internal("lookup user failed", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, "", apperr.Unauthorized(invalidCredentials)
	}
	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", apperr.Internal("issue token failed", err)
	}
	return u, tok, nil
}

// Authenticate resolves a parsed token's subject to a live user record.
func (s *AuthService) Authenticate(ctx context.Context, uid string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, apperr.Internal("lookup user failed", err)
	}
	if u == nil {
		return nil, apperr.Unauthorized("unauthorized")
	}
	return u, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, uid string, in ProfileUpdate) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, apperr.Internal("lookup user failed", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.BusinessName != nil {
		u.BusinessName = strings.TrimSpace(*in.BusinessName)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, apperr.Internal("update user failed", err)
	}
	return u, nil
}
