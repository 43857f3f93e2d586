// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements sign-up, sign-in and sign-out for every principal kind.

Architecture:

  - Users and admins sign in against the users table.
  - Employees sign in against the employees table on their own route.
  - Sessions are stateless HS256 tokens; logout puts the token id on a Redis
    denylist until the token expires.
*/
package auth

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/employee"
	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/platform/sec"
	"github.com/taibuivan/medora/internal/user"
)

// # Errors

var (
	ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")
	ErrMissingCredentials = apperr.ValidationError("Email and password are required")
)

// # Contracts

// TokenIssuer signs and verifies session tokens. [sec.TokenService] implements it.
type TokenIssuer interface {
	Issue(principalID string, role sec.Role) (string, error)
	Verify(token string) (*sec.AuthClaims, error)
}

// UserAccounts is the slice of the user service that auth needs.
type UserAccounts interface {
	Register(ctx context.Context, input user.RegisterInput) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// EmployeeFinder looks up employees by login email.
type EmployeeFinder interface {
	FindByEmail(ctx context.Context, email string) (*employee.Employee, error)
}

// LoginInput holds the credentials of a sign-in attempt.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSession is the result of a user or admin login.
type UserSession struct {
	Token string
	User  *user.User
}

// EmployeeSession is the result of an employee login.
type EmployeeSession struct {
	Token    string
	Employee *employee.Employee
}

// # Service Layer

// Service implements authentication use cases.
type Service struct {
	users       UserAccounts
	employees   EmployeeFinder
	tokens      TokenIssuer
	revocations RevocationStore
	logger      *zap.Logger
	now         func() time.Time
}

// NewService constructs a new auth [Service].
func NewService(users UserAccounts, employees EmployeeFinder, tokens TokenIssuer, revocations RevocationStore, logger *zap.Logger) *Service {
	return &Service{
		users:       users,
		employees:   employees,
		tokens:      tokens,
		revocations: revocations,
		logger:      logger,
		now:         time.Now,
	}
}

// Register enrols a customer. The role is always user.
func (service *Service) Register(ctx context.Context, input user.RegisterInput) (*user.User, error) {
	return service.users.Register(ctx, input)
}

/*
Login authenticates a user or admin and issues a session token.

Unknown emails and wrong passwords produce the same error and take the
same time, so the endpoint cannot be used to enumerate accounts.
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*UserSession, error) {
	email, err := normalize(input)
	if err != nil {
		return nil, err
	}

	account, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.HasCode(err, "NOT_FOUND") {
			sec.BurnPasswordCheck(input.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := service.tokens.Issue(account.ID, account.Role)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.Info("user_logged_in", zap.String("user_id", account.ID), zap.String("role", account.Role.String()))
	return &UserSession{Token: token, User: account}, nil
}

// EmployeeLogin authenticates an employee and issues a session token.
func (service *Service) EmployeeLogin(ctx context.Context, input LoginInput) (*EmployeeSession, error) {
	email, err := normalize(input)
	if err != nil {
		return nil, err
	}

	staff, err := service.employees.FindByEmail(ctx, email)
	if err != nil {
		if apperr.HasCode(err, "NOT_FOUND") {
			sec.BurnPasswordCheck(input.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !sec.CheckPasswordHash(input.Password, staff.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := service.tokens.Issue(staff.ID, sec.RoleEmployee)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.Info("employee_logged_in", zap.String("employee_id", staff.EmployeeID))
	return &EmployeeSession{Token: token, Employee: staff}, nil
}

// Logout revokes the token the claims were read from.
func (service *Service) Logout(ctx context.Context, claims *sec.AuthClaims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	remaining := claims.ExpiresAt.Sub(service.now())
	if remaining <= 0 {
		return nil
	}

	if err := service.revocations.Revoke(ctx, claims.ID, remaining); err != nil {
		return apperr.Internal(err)
	}

	service.logger.Info("principal_logged_out", zap.String("principal_id", claims.PrincipalID))
	return nil
}

/*
VerifyToken validates the signature and claims, then consults the denylist.

A denylist lookup failure rejects the token: an unavailable Redis must not
resurrect revoked sessions.
*/
func (service *Service) VerifyToken(ctx context.Context, token string) (*sec.AuthClaims, error) {
	claims, err := service.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	if claims.ID != "" {
		revoked, err := service.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			service.logger.Error("revocation_lookup_failed", zap.Error(err))
			return nil, sec.ErrInvalidToken
		}
		if revoked {
			return nil, sec.ErrInvalidToken
		}
	}
	return claims, nil
}

func normalize(input LoginInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return "", ErrMissingCredentials
	}
	return email, nil
}
