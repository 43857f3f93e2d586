// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/platform/apperr"
	"github.com/taibuivan/medora/pkg/uuid"
)

// # Errors

var (
	ErrNotFound          = apperr.NotFound("Notification")
	ErrMissingFields     = apperr.ValidationError("Receiver and message are required")
	ErrMissingEmployee   = apperr.ValidationError("Employee ID and message are required")
	ErrInvalidReceiverID = apperr.ValidationError("Invalid receiver id")
)

// EmployeeResolver maps an employee code to the employee's primary key.
type EmployeeResolver interface {
	IDByCode(ctx context.Context, code string) (string, error)
}

// # Service Layer

// Service is the notification mailbox.
type Service struct {
	repo      Repository
	employees EmployeeResolver
	logger    *zap.Logger
}

// NewService constructs a new notification [Service].
func NewService(repo Repository, employees EmployeeResolver, logger *zap.Logger) *Service {
	return &Service{repo: repo, employees: employees, logger: logger}
}

/*
Send delivers a message to any principal by id.

The receiver is not looked up: a message to an unknown principal is stored
and simply never read.
*/
func (service *Service) Send(ctx context.Context, senderID string, input SendInput) (*Notification, error) {
	receiverID := input.Target()
	message := strings.TrimSpace(input.Message)
	if receiverID == "" || message == "" {
		return nil, ErrMissingFields
	}
	if !uuid.Valid(receiverID) {
		return nil, ErrInvalidReceiverID
	}
	return service.deliver(ctx, senderID, receiverID, message)
}

// SendToEmployee resolves an employee code such as MD-004 and delivers to that employee.
func (service *Service) SendToEmployee(ctx context.Context, senderID string, input SendToEmployeeInput) (*Notification, error) {
	code := strings.TrimSpace(input.EmployeeID)
	message := strings.TrimSpace(input.Message)
	if code == "" || message == "" {
		return nil, ErrMissingEmployee
	}

	receiverID, err := service.employees.IDByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return service.deliver(ctx, senderID, receiverID, message)
}

func (service *Service) deliver(ctx context.Context, senderID, receiverID, message string) (*Notification, error) {
	notification := &Notification{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    message,
		Status:     StatusUnread,
	}
	if err := service.repo.Create(ctx, notification); err != nil {
		return nil, err
	}

	service.logger.Info("notification_sent",
		zap.String("notification_id", notification.ID),
		zap.String("sender_id", senderID),
		zap.String("receiver_id", receiverID),
	)
	return notification, nil
}

// ListForReceiver returns the caller's mailbox, newest first.
func (service *Service) ListForReceiver(ctx context.Context, receiverID string) ([]*View, error) {
	return service.repo.ListForReceiver(ctx, receiverID)
}

// MarkRead marks one of the caller's notifications as read.
func (service *Service) MarkRead(ctx context.Context, id, receiverID string) (*Notification, error) {
	if !uuid.Valid(id) {
		return nil, ErrNotFound
	}
	return service.repo.MarkRead(ctx, id, receiverID)
}

// UnreadCount returns how many of the caller's notifications are unread.
func (service *Service) UnreadCount(ctx context.Context, receiverID string) (int, error) {
	return service.repo.CountUnread(ctx, receiverID)
}
