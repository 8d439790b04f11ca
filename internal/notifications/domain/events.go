package domain

import sharedDomain "github.com/felixgeelhaar/studyplanner/internal/shared/domain"

const (
	AggregateNotification = "Notification"

	RoutingKeyNotificationCreated = "notifications.notification.created"
)

// NotificationCreated is published when a notification is stored.
type NotificationCreated struct {
	sharedDomain.BaseEvent
	NotificationID string   `json:"notification_id"`
	Type           string   `json:"type"`
	Title          string   `json:"title"`
	Message        string   `json:"message"`
	ItemIDs        []string `json:"item_ids"`
}

func NewNotificationCreated(n *Notification) *NotificationCreated {
	return &NotificationCreated{
		BaseEvent:      sharedDomain.NewBaseEvent(n.ID(), AggregateNotification, RoutingKeyNotificationCreated),
		NotificationID: n.ID().String(),
		Type:           string(n.kind),
		Title:          n.title,
		Message:        n.message,
		ItemIDs:        n.ItemIDs(),
	}
}
