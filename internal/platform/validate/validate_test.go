// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Restock shelf", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("title", tt.value)

			if !tt.hasError {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, "title", ae.Details[0].Field)
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "e@x.com", true},
		{"display_name_rejected", "Eve <e@x.com>", false},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_ErrWithMessage verifies the top-level message and that only failures are collected.
*/
func TestValidator_ErrWithMessage(t *testing.T) {
	v := &validate.Validator{}
	v.Required("priority", "High").
		Required("status", " ")

	ae := apperr.As(v.ErrWithMessage("All fields are required"))
	require.NotNil(t, ae)
	assert.Equal(t, "All fields are required", ae.Message)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "status", ae.Details[0].Field)
}

func TestValidator_NumericBounds(t *testing.T) {
	v := &validate.Validator{}
	v.AtLeast("quantity", 0, 1).
		AtLeast("stock", 5, 1).
		NonNegative("price", -0.01).
		NonNegative("discount", 0)

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 2)
	assert.Equal(t, apperr.FieldError{Field: "quantity", Message: "Must be at least 1"}, ae.Details[0])
	assert.Equal(t, "price", ae.Details[1].Field)
}
