// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package employee

import (
	"time"

	"github.com/taibuivan/medora/internal/platform/sec"
)

// Field names used in validation details.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldPassword    = "password"
	FieldNewPassword = "newPassword"
)

// MinPasswordLength applies to passwords set at creation and on change.
const MinPasswordLength = 6

// Employee is a staff account. EmployeeID is the human-facing code (MD-001).
type Employee struct {
	ID                string    `json:"id"`
	EmployeeID        string    `json:"employeeId"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	PasswordHash      string    `json:"-"`
	Role              sec.Role  `json:"role"`
	ProfileImage      string    `json:"profileImage"`
	IsPasswordChanged bool      `json:"isPasswordChanged"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// CreateInput carries the fields an admin supplies for a new employee.
type CreateInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	ProfileImage string `json:"-"`
}

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	ProfileImage *string `json:"-"`
}

// ChangePasswordInput is submitted by an employee for their own account.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
