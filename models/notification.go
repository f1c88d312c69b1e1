package models

import "time"

type NotificationType string

const (
	NotificationTypeStatusChange NotificationType = "status_change"
	NotificationTypeTaskAssigned NotificationType = "task_assigned"
)

// Notification is a fire-and-forget document write; there is no delivery
// confirmation contract. A failed notification must never fail the status
// update that produced it.
type Notification struct {
	ID        string           `json:"id"`
	UserId    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	PropId    string           `json:"prop_id,omitempty"`
	ShowId    string           `json:"show_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Read      bool             `json:"read"`
}
