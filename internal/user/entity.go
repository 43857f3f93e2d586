// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"time"

	"github.com/taibuivan/medora/internal/platform/sec"
)

// Field names used in validation details.
const (
	FieldFirstName = "firstName"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldLatitude  = "location.latitude"
	FieldLongitude = "location.longitude"
)

// MinPasswordLength applies at registration.
const MinPasswordLength = 6

// Address is a postal address. Every part is optional.
type Address struct {
	Street     string `json:"street"`
	Street2    string `json:"street2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// Location is a WGS84 coordinate.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// User is a customer or administrator account. Role is admin or user.
type User struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	PasswordHash   string    `json:"-"`
	Role           sec.Role  `json:"role"`
	ProfileImage   string    `json:"profileImage"`
	Address        Address   `json:"address"`
	Location       *Location `json:"location"`
	AdditionalInfo string    `json:"additionalInfo"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// RegisterInput creates an account.
type RegisterInput struct {
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Password       string    `json:"password"`
	Address        Address   `json:"address"`
	Location       *Location `json:"location"`
	AdditionalInfo string    `json:"additionalInfo"`
}

// UpdateProfileInput is a partial profile update. Email, password and role are not editable here.
type UpdateProfileInput struct {
	FirstName      *string   `json:"firstName"`
	LastName       *string   `json:"lastName"`
	Phone          *string   `json:"phone"`
	ProfileImage   *string   `json:"profileImage"`
	Address        *Address  `json:"address"`
	Location       *Location `json:"location"`
	AdditionalInfo *string   `json:"additionalInfo"`
}
