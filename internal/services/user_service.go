package services

import (
	"context"
	"errors"
	"strings"

	"charitybridge/internal/logger"
	"charitybridge/internal/models"
	"charitybridge/internal/repositories"
	"charitybridge/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity is what the bearer token says about the caller.
type Identity struct {
	ID    string
	Role  models.UserRole
	Email string
	Name  string
}

//go:generate mockgen -source=user_service.go -destination=mocks/user_service_mock.go -package=mocks

// UserService keeps the local user read model in step with the identity
// provider. Only recipient resolution and relation preloads read it.
type UserService interface {
	SyncUser(ctx context.Context, db *gorm.DB, identity Identity) error
	SeedFirstAdmin(ctx context.Context, db *gorm.DB, email, name string) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) SyncUser(ctx context.Context, db *gorm.DB, identity Identity) error {
	if identity.ID == "" || !identity.Role.Valid() {
		return apperrors.ErrInvalidToken
	}

	user := &models.User{
		BaseModel: models.BaseModel{ID: identity.ID},
		Name:      identity.Name,
		Email:     strings.ToLower(strings.TrimSpace(identity.Email)),
		Role:      identity.Role,
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Upsert(tx, user); err != nil {
			return apperrors.InternalError(err)
		}
		if identity.Role != models.UserRoleCharity || identity.Name == "" {
			return nil
		}

		existing, err := s.userRepo.FindByID(tx, identity.ID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if existing.CharityProfile != nil {
			return nil
		}
		profile := &models.CharityProfile{UserID: identity.ID, OrganizationName: identity.Name}
		if err := tx.Create(profile).Error; err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
}

// SeedFirstAdmin makes sure at least one admin row exists so admin-only
// flows have a recipient. It is idempotent.
func (s *userService) SeedFirstAdmin(ctx context.Context, db *gorm.DB, email, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperrors.FieldError("email", "This field is required")
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	existing, err := s.userRepo.FindByEmail(tx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	admin := &models.User{
		BaseModel: models.BaseModel{ID: uuid.NewString()},
		Name:      name,
		Email:     email,
		Role:      models.UserRoleAdmin,
	}
	if err := s.userRepo.Create(tx, admin); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "first admin seeded", "user_id", admin.ID, "email", admin.Email)
	return admin, nil
}
