// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/platform/sec"
	"github.com/taibuivan/medora/internal/platform/validate"
	"github.com/taibuivan/medora/pkg/pointer"
	"github.com/taibuivan/medora/pkg/uuid"
)

// # Errors

var (
	ErrNotFound   = apperr.NotFound("User")
	ErrEmailInUse = apperr.Conflict("Email is already registered")
)

// # Service Layer

// Service manages customer and administrator accounts.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService constructs a new user [Service].
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Register creates a customer account with role user.

Returns:
  - *User: the persisted account
  - error: ValidationError, Conflict when the email is taken
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	return service.create(ctx, input, sec.RoleUser)
}

// CreateAdmin creates an administrator. Only the admin CLI calls it.
func (service *Service) CreateAdmin(ctx context.Context, input RegisterInput) (*User, error) {
	return service.create(ctx, input, sec.RoleAdmin)
}

func (service *Service) create(ctx context.Context, input RegisterInput, role sec.Role) (*User, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)

	validator := &validate.Validator{}
	validator.Required(FieldFirstName, input.FirstName).MaxLen(FieldFirstName, input.FirstName, 80)
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.MinLen(FieldPassword, input.Password, MinPasswordLength)
	validateLocation(validator, input.Location)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// The unique index is authoritative; this only produces the friendlier message early.
	if _, err := service.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailInUse
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{
		ID:             uuid.New(),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		PasswordHash:   hash,
		Role:           role,
		Address:        input.Address,
		Location:       input.Location,
		AdditionalInfo: strings.TrimSpace(input.AdditionalInfo),
	}
	if err := service.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_created", zap.String("user_id", user.ID), zap.String("role", role.String()))
	return user, nil
}

// FindByEmail returns the account registered under email.
func (service *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	return service.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// Get returns one account.
func (service *Service) Get(ctx context.Context, id string) (*User, error) {
	return service.repo.FindByID(ctx, id)
}

// List returns every account, newest first.
func (service *Service) List(ctx context.Context) ([]*User, error) {
	return service.repo.List(ctx)
}

// UpdateProfile applies a partial update to the caller's own profile.
func (service *Service) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*User, error) {
	user, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.FirstName != nil {
		*input.FirstName = strings.TrimSpace(*input.FirstName)
		validator.Required(FieldFirstName, *input.FirstName)
	}
	validateLocation(validator, input.Location)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	pointer.Apply(&user.FirstName, input.FirstName)
	pointer.Apply(&user.LastName, input.LastName)
	pointer.Apply(&user.Phone, input.Phone)
	pointer.Apply(&user.ProfileImage, input.ProfileImage)
	pointer.Apply(&user.Address, input.Address)
	pointer.Apply(&user.AdditionalInfo, input.AdditionalInfo)
	if input.Location != nil {
		user.Location = input.Location
	}

	if err := service.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", zap.String("user_id", id))
	return user, nil
}

func validateLocation(validator *validate.Validator, location *Location) {
	if location == nil {
		return
	}
	validator.Custom(FieldLatitude, location.Latitude < -90 || location.Latitude > 90, "must be between -90 and 90")
	validator.Custom(FieldLongitude, location.Longitude < -180 || location.Longitude > 180, "must be between -180 and 180")
}
