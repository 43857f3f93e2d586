// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import (
	"strings"
	"time"
)

// Status is the read state of a notification.
type Status string

const (
	StatusUnread Status = "Unread"
	StatusRead   Status = "Read"
)

// Notification is a one-way message addressed to a single principal.
type Notification struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Message    string    `json:"message"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Sender is the principal projection embedded in a [View].
type Sender struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// View is a notification with its sender's display name resolved.
type View struct {
	ID         string    `json:"id"`
	Sender     Sender    `json:"sender"`
	ReceiverID string    `json:"receiverId"`
	Message    string    `json:"message"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SendInput targets a principal by primary key. Older clients name the
// target "receiver"; receiverId wins when both are present.
type SendInput struct {
	ReceiverID string `json:"receiverId"`
	Receiver   string `json:"receiver"`
	Message    string `json:"message"`
}

// Target returns the receiver id under either field name.
func (input SendInput) Target() string {
	if id := strings.TrimSpace(input.ReceiverID); id != "" {
		return id
	}
	return strings.TrimSpace(input.Receiver)
}

// SendToEmployeeInput targets an employee by employee code (MD-004).
type SendToEmployeeInput struct {
	EmployeeID string `json:"employeeId"`
	Message    string `json:"message"`
}
