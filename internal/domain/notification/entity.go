package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeAssignmentCreated   NotificationType = "assignment_created"
	TypeAssignmentCancelled NotificationType = "assignment_cancelled"
	TypePatrolAutoClosed    NotificationType = "patrol_auto_closed"
	TypeVisitsMarkedMissed  NotificationType = "visits_marked_missed"
)

// Notification is a per-guard message persisted for the inbox and pushed over
// SSE when the guard is connected.
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
