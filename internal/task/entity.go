// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"time"
)

// Field names used in validation details.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldAssignedTo  = "assignedTo"
	FieldPriority    = "priority"
	FieldDeadline    = "deadline"
	FieldStatus      = "status"
)

// # Priority

// Priority ranks how urgently a task should be picked up.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// # Status

// Status is the lifecycle state of a task.
//
// Employees move a task between Pending and In Progress freely and may mark
// it Completed. Completed is terminal for employees; only the admin override
// path may change a completed task.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether employees are locked out of further updates.
func (s Status) Terminal() bool { return s == StatusCompleted }

// # Entities

// Task is a unit of work assigned to exactly one employee.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AssignedTo  string    `json:"assignedTo"`
	CreatedBy   string    `json:"createdBy"`
	Priority    Priority  `json:"priority"`
	Deadline    time.Time `json:"deadline"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Assignee is the employee projection embedded in a [TaskView].
type Assignee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	EmployeeID string `json:"employeeId"`
}

// Creator is the principal projection embedded in a [TaskView].
type Creator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TaskView is a task joined with its assignee and creator.
type TaskView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AssignedTo  Assignee  `json:"assignedTo"`
	CreatedBy   Creator   `json:"createdBy"`
	Priority    Priority  `json:"priority"`
	Deadline    time.Time `json:"deadline"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// # Inputs

// CreateInput is the admin payload for a new task. A submitted status is ignored.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"`
	Status      string `json:"status"`
}

// AdminUpdateInput carries the admin override. Nil fields are left untouched.
type AdminUpdateInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssignedTo  *string `json:"assignedTo"`
	Priority    *string `json:"priority"`
	Deadline    *string `json:"deadline"`
	Status      *string `json:"status"`
}

// UpdateStatusInput is the employee lifecycle payload.
type UpdateStatusInput struct {
	Status string `json:"status"`
}

// deadlineLayouts are tried in order.
var deadlineLayouts = []string{time.RFC3339, time.DateOnly}

// ParseDeadline accepts an RFC 3339 timestamp or a calendar date.
func ParseDeadline(raw string) (time.Time, bool) {
	for _, layout := range deadlineLayouts {
		if deadline, err := time.Parse(layout, raw); err == nil {
			return deadline.UTC(), true
		}
	}
	return time.Time{}, false
}
