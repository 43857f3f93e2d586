// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"sort"
	"sync"
	"time"
)

// memoryRepository is an in-memory [Repository]. Views resolve the assignee through lookup.
type memoryRepository struct {
	mu     sync.Mutex
	rows   map[string]*Task
	lookup func(id string) Assignee
	clock  time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		rows:   map[string]*Task{},
		lookup: func(id string) Assignee { return Assignee{ID: id} },
		clock:  time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

// tick keeps timestamps strictly increasing so "newest first" is deterministic.
func (m *memoryRepository) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memoryRepository) Create(_ context.Context, task *Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	task.CreatedAt = m.tick()
	task.UpdatedAt = task.CreatedAt
	copied := *task
	m.rows[task.ID] = &copied
	return nil
}

func (m *memoryRepository) FindByID(_ context.Context, id string) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (m *memoryRepository) FindByIDForUpdate(ctx context.Context, id string) (*Task, error) {
	return m.FindByID(ctx, id)
}

func (m *memoryRepository) Update(_ context.Context, task *Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[task.ID]; !ok {
		return ErrNotFound
	}
	task.UpdatedAt = m.tick()
	copied := *task
	m.rows[task.ID] = &copied
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

func (m *memoryRepository) FindView(_ context.Context, id string) (*TaskView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.view(task), nil
}

func (m *memoryRepository) ListViews(context.Context) ([]*TaskView, error) {
	return m.views(func(*Task) bool { return true }), nil
}

func (m *memoryRepository) ListViewsByAssignee(_ context.Context, employeeID string) ([]*TaskView, error) {
	return m.views(func(task *Task) bool { return task.AssignedTo == employeeID }), nil
}

func (m *memoryRepository) views(match func(*Task) bool) []*TaskView {
	m.mu.Lock()
	defer m.mu.Unlock()
	views := make([]*TaskView, 0)
	for _, task := range m.rows {
		if match(task) {
			views = append(views, m.view(task))
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i].CreatedAt.After(views[j].CreatedAt) })
	return views
}

func (m *memoryRepository) view(task *Task) *TaskView {
	return &TaskView{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		AssignedTo:  m.lookup(task.AssignedTo),
		CreatedBy:   Creator{ID: task.CreatedBy},
		Priority:    task.Priority,
		Deadline:    task.Deadline,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// stubEmployees answers Exists from a fixed set.
type stubEmployees map[string]bool

func (s stubEmployees) Exists(_ context.Context, id string) (bool, error) {
	return s[id], nil
}
