package domain

import (
	"context"

	sharedDomain "github.com/felixgeelhaar/studyplanner/internal/shared/domain"
)

// Repository stores notifications.
type Repository interface {
	sharedDomain.Repository[*Notification]
	// List returns notifications newest first.
	List(ctx context.Context, unreadOnly bool) ([]*Notification, error)
	CountUnread(ctx context.Context) (int, error)
	// HasUnreadMessage reports whether an unread notification carries exactly message.
	HasUnreadMessage(ctx context.Context, message string) (bool, error)
	MarkAllRead(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) (int, error)
}
