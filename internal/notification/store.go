// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import "context"

// Repository defines persistence operations for notifications.
type Repository interface {
	Create(ctx context.Context, notification *Notification) error

	// ListForReceiver returns the receiver's notifications, newest first.
	ListForReceiver(ctx context.Context, receiverID string) ([]*View, error)

	// MarkRead flips one notification to Read. It returns [ErrNotFound]
	// when id does not exist or belongs to another receiver.
	MarkRead(ctx context.Context, id, receiverID string) (*Notification, error)

	CountUnread(ctx context.Context, receiverID string) (int, error)
}
