// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package employee

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/internal/platform/sec"
	"github.com/taibuivan/medora/pkg/pointer"
)

func newTestService(repo *memoryRepository, sequence *memorySequence) *Service {
	return NewService(repo, sequence, noTx{}, "MD", zap.NewNop())
}

func validInput(email string) CreateInput {
	return CreateInput{Name: "Lan Pham", Email: email, Phone: "0901234567", Password: "s3cret-pass"}
}

/*
TestFormatEmployeeID verifies zero padding and growth past three digits.
*/
func TestFormatEmployeeID(t *testing.T) {
	assert.Equal(t, "MD-001", FormatEmployeeID("MD", 1))
	assert.Equal(t, "MD-010", FormatEmployeeID("MD", 10))
	assert.Equal(t, "MD-999", FormatEmployeeID("MD", 999))
	assert.Equal(t, "MD-1000", FormatEmployeeID("MD", 1000))
	assert.Equal(t, "HR-042", FormatEmployeeID("HR", 42))
}

func TestMaxSuffix(t *testing.T) {
	assert.Equal(t, int64(0), MaxSuffix(nil))
	assert.Equal(t, int64(9), MaxSuffix([]string{"MD-001", "MD-009", "MD-003"}))
	assert.Equal(t, int64(12), MaxSuffix([]string{"MD-012", "garbage", "MD-", "MD-x7", "OLD-PREFIX-004"}))
	assert.Equal(t, int64(1000), MaxSuffix([]string{"MD-999", "MD-1000"}))
}

/*
TestCreate_FirstEmployee verifies an empty store allocates MD-001.
*/
func TestCreate_FirstEmployee(t *testing.T) {
	repo := newMemoryRepository()
	service := newTestService(repo, &memorySequence{})

	employee, err := service.Create(context.Background(), validInput("lan@medora.vn"))

	require.NoError(t, err)
	assert.Equal(t, "MD-001", employee.EmployeeID)
	assert.Equal(t, sec.RoleEmployee, employee.Role)
	assert.False(t, employee.IsPasswordChanged)
	assert.True(t, sec.CheckPasswordHash("s3cret-pass", employee.PasswordHash))
}

/*
TestCreate_AfterNineExisting verifies MD-001..MD-009 yields MD-010.
*/
func TestCreate_AfterNineExisting(t *testing.T) {
	var seed []*Employee
	for i := 1; i <= 9; i++ {
		seed = append(seed, &Employee{
			ID:         fmt.Sprintf("seed-%d", i),
			EmployeeID: FormatEmployeeID("MD", int64(i)),
			Email:      fmt.Sprintf("staff%d@medora.vn", i),
		})
	}
	repo := newMemoryRepository(seed...)
	service := newTestService(repo, &memorySequence{})

	highest, err := service.HighestAllocated(context.Background())
	require.NoError(t, err)
	service.sequence = &memorySequence{value: highest}

	employee, err := service.Create(context.Background(), validInput("new@medora.vn"))

	require.NoError(t, err)
	assert.Equal(t, "MD-010", employee.EmployeeID)
}

/*
TestCreate_ConcurrentCodesAreUnique verifies no two concurrent creations share a code.
*/
func TestCreate_ConcurrentCodesAreUnique(t *testing.T) {
	repo := newMemoryRepository()
	service := newTestService(repo, &memorySequence{})

	const workers = 8
	codes := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			employee, err := service.Create(context.Background(), validInput(fmt.Sprintf("w%d@medora.vn", i)))
			if assert.NoError(t, err) {
				codes <- employee.EmployeeID
			}
		}(i)
	}
	wg.Wait()
	close(codes)

	seen := map[string]bool{}
	for code := range codes {
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
	assert.Len(t, seen, workers)
	assert.True(t, seen["MD-001"])
	assert.True(t, seen[FormatEmployeeID("MD", workers)])
}

func TestCreate_Validation(t *testing.T) {
	service := newTestService(newMemoryRepository(), &memorySequence{})

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"missing_name", CreateInput{Email: "a@medora.vn", Phone: "1", Password: "secret1"}},
		{"bad_email", CreateInput{Name: "A", Email: "not-an-email", Phone: "1", Password: "secret1"}},
		{"missing_phone", CreateInput{Name: "A", Email: "a@medora.vn", Password: "secret1"}},
		{"short_password", CreateInput{Name: "A", Email: "a@medora.vn", Phone: "1", Password: "123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), tt.input)
			assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
		})
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	service := newTestService(newMemoryRepository(), &memorySequence{})

	_, err := service.Create(context.Background(), validInput("dup@medora.vn"))
	require.NoError(t, err)

	_, err = service.Create(context.Background(), validInput("DUP@medora.vn"))
	assert.True(t, apperr.HasCode(err, "CONFLICT"))
}

func TestUpdate_Partial(t *testing.T) {
	repo := newMemoryRepository()
	service := newTestService(repo, &memorySequence{})
	created, err := service.Create(context.Background(), validInput("lan@medora.vn"))
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, UpdateInput{Phone: pointer.To(" 0911000111 ")})

	require.NoError(t, err)
	assert.Equal(t, "0911000111", updated.Phone)
	assert.Equal(t, "Lan Pham", updated.Name)
	assert.Equal(t, created.EmployeeID, updated.EmployeeID)

	_, err = service.Update(context.Background(), "missing", UpdateInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	repo := newMemoryRepository()
	service := newTestService(repo, &memorySequence{})
	created, err := service.Create(context.Background(), validInput("lan@medora.vn"))
	require.NoError(t, err)

	err = service.ChangePassword(context.Background(), created.ID, ChangePasswordInput{CurrentPassword: "wrong", NewPassword: "brand-new"})
	assert.ErrorIs(t, err, ErrInvalidPassword)

	err = service.ChangePassword(context.Background(), created.ID, ChangePasswordInput{CurrentPassword: "s3cret-pass", NewPassword: "brand-new"})
	require.NoError(t, err)

	stored, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPasswordChanged)
	assert.True(t, sec.CheckPasswordHash("brand-new", stored.PasswordHash))
}

func TestLookups(t *testing.T) {
	repo := newMemoryRepository()
	service := newTestService(repo, &memorySequence{})
	created, err := service.Create(context.Background(), validInput("lan@medora.vn"))
	require.NoError(t, err)

	id, err := service.IDByCode(context.Background(), " md-001 ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	_, err = service.IDByCode(context.Background(), "MD-404")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := service.Exists(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = service.Exists(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, exists)
}
