// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package employee

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/platform/apperr"
)

// memoryRepository is an in-memory [Repository] enforcing the same unique keys as the schema.
type memoryRepository struct {
	mu   sync.Mutex
	rows map[string]*Employee
}

func newMemoryRepository(seed ...*Employee) *memoryRepository {
	repo := &memoryRepository{rows: map[string]*Employee{}}
	for _, employee := range seed {
		repo.rows[employee.ID] = employee
	}
	return repo
}

func (m *memoryRepository) Create(_ context.Context, employee *Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.Email == employee.Email {
			return apperr.Conflict("Email is already registered")
		}
		if existing.EmployeeID == employee.EmployeeID {
			return apperr.Conflict("Employee ID already allocated")
		}
	}
	employee.CreatedAt = time.Now()
	employee.UpdatedAt = employee.CreatedAt
	copied := *employee
	m.rows[employee.ID] = &copied
	return nil
}

func (m *memoryRepository) find(match func(*Employee) bool) (*Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, employee := range m.rows {
		if match(employee) {
			copied := *employee
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryRepository) FindByID(_ context.Context, id string) (*Employee, error) {
	return m.find(func(e *Employee) bool { return e.ID == id })
}

func (m *memoryRepository) FindByEmail(_ context.Context, email string) (*Employee, error) {
	return m.find(func(e *Employee) bool { return e.Email == email })
}

func (m *memoryRepository) FindByEmployeeID(_ context.Context, code string) (*Employee, error) {
	return m.find(func(e *Employee) bool { return e.EmployeeID == code })
}

func (m *memoryRepository) List(context.Context) ([]*Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	employees := make([]*Employee, 0, len(m.rows))
	for _, employee := range m.rows {
		copied := *employee
		employees = append(employees, &copied)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].EmployeeID < employees[j].EmployeeID })
	return employees, nil
}

func (m *memoryRepository) Update(_ context.Context, employee *Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[employee.ID]; !ok {
		return ErrNotFound
	}
	for _, existing := range m.rows {
		if existing.ID != employee.ID && existing.Email == employee.Email {
			return apperr.Conflict("Email is already registered")
		}
	}
	copied := *employee
	m.rows[employee.ID] = &copied
	return nil
}

func (m *memoryRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	employee, ok := m.rows[id]
	if !ok {
		return ErrNotFound
	}
	employee.PasswordHash = passwordHash
	employee.IsPasswordChanged = true
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryRepository) ListEmployeeIDs(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.rows))
	for _, employee := range m.rows {
		ids = append(ids, employee.EmployeeID)
	}
	return ids, nil
}

// memorySequence mirrors the atomic UPDATE ... RETURNING counter.
type memorySequence struct {
	mu    sync.Mutex
	value int64
}

func (s *memorySequence) Next(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value++
	return s.value, nil
}

// noTx runs the function without a transaction.
type noTx struct{}

func (noTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

// nopImages stores nothing.
type nopImages struct{}

func (nopImages) SaveOptional(*http.Request, string) (string, error) { return "", nil }
func (nopImages) Remove(string)                                     {}

func nopLogger() *zap.Logger { return zap.NewNop() }
