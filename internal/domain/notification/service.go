package notification

import "context"

// Service is the fire-and-forget notification surface. Queueing never blocks
// the caller's operation; persistence and SSE push happen on background
// workers.
type Service interface {
	Queue(ctx context.Context, req CreateNotificationRequest) error

	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, userID string) error

	// Stop flushes the queue and stops the workers.
	Stop()
}
