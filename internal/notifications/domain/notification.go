package domain

import (
	"errors"
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/studyplanner/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrMessageRequired      = errors.New("notification message is required")
	ErrInvalidType          = errors.New("notification type must be clash or reminder")
)

// Type tells what produced a notification.
type Type string

const (
	TypeClash    Type = "clash"
	TypeReminder Type = "reminder"
)

// Item types a notification can refer to.
const (
	ItemAssignment = "assignment"
	ItemExam       = "exam"
	ItemBoth       = "both"
)

// Draft is a notification that has not been stored yet.
type Draft struct {
	Type     Type
	Title    string
	Message  string
	ItemType string
	ItemIDs  []string
}

// Notification is a message shown to the student until it is read.
type Notification struct {
	sharedDomain.BaseAggregateRoot
	kind     Type
	title    string
	message  string
	itemType string
	itemIDs  []string
	read     bool
}

// NewNotification validates d and records a NotificationCreated event.
func NewNotification(d Draft) (*Notification, error) {
	if d.Type != TypeClash && d.Type != TypeReminder {
		return nil, ErrInvalidType
	}
	if strings.TrimSpace(d.Message) == "" {
		return nil, ErrMessageRequired
	}
	n := &Notification{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		kind:              d.Type,
		title:             d.Title,
		message:           d.Message,
		itemType:          d.ItemType,
		itemIDs:           append([]string(nil), d.ItemIDs...),
	}
	n.AddDomainEvent(NewNotificationCreated(n))
	return n, nil
}

// RehydrateNotification restores a notification loaded from storage.
func RehydrateNotification(id uuid.UUID, d Draft, read bool, createdAt, updatedAt time.Time) *Notification {
	return &Notification{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		kind:     d.Type,
		title:    d.Title,
		message:  d.Message,
		itemType: d.ItemType,
		itemIDs:  append([]string(nil), d.ItemIDs...),
		read:     read,
	}
}

// MarkRead flags the notification as read. It reports whether anything changed.
func (n *Notification) MarkRead() bool {
	if n.read {
		return false
	}
	n.read = true
	n.Touch()
	return true
}

func (n *Notification) Type() Type        { return n.kind }
func (n *Notification) Title() string     { return n.title }
func (n *Notification) Message() string   { return n.message }
func (n *Notification) ItemType() string  { return n.itemType }
func (n *Notification) ItemIDs() []string { return append([]string(nil), n.itemIDs...) }
func (n *Notification) IsRead() bool      { return n.read }

// JoinedItemIDs is the comma-joined storage form of the item ids.
func (n *Notification) JoinedItemIDs() string {
	return strings.Join(n.itemIDs, ",")
}

// SplitItemIDs parses the stored comma-joined form.
func SplitItemIDs(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
