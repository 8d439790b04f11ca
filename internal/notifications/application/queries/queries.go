package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/notifications/application/commands"
	"github.com/felixgeelhaar/studyplanner/internal/notifications/domain"
	planningServices "github.com/felixgeelhaar/studyplanner/internal/planning/application/services"
	planningDomain "github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	"github.com/google/uuid"
)

// ListNotificationsQuery lists stored notifications, newest first.
type ListNotificationsQuery struct {
	UnreadOnly bool
}

func (ListNotificationsQuery) QueryName() string { return "notifications.list" }

// NotificationView is the read model of a notification.
type NotificationView struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	ItemType  string    `json:"item_type"`
	ItemIDs   []string  `json:"item_ids"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ClashSummary counts current clashes without storing anything.
type ClashSummary struct {
	Total      int            `json:"total"`
	ByKind     map[string]int `json:"by_kind"`
	BySeverity map[string]int `json:"by_severity"`
}

// Handler serves the notification read side.
type Handler struct {
	repo       domain.Repository
	reader     planningDomain.CourseworkReader
	normalizer commands.Normalizer
	finder     commands.ClashFinder
}

// NewHandler creates a new notification query handler. reader, normalizer and
// finder are only needed by ClashSummary.
func NewHandler(repo domain.Repository, reader planningDomain.CourseworkReader, normalizer commands.Normalizer, finder commands.ClashFinder) *Handler {
	return &Handler{repo: repo, reader: reader, normalizer: normalizer, finder: finder}
}

// List executes the ListNotificationsQuery.
func (h *Handler) List(ctx context.Context, q ListNotificationsQuery) ([]NotificationView, error) {
	list, err := h.repo.List(ctx, q.UnreadOnly)
	if err != nil {
		return nil, err
	}
	views := make([]NotificationView, 0, len(list))
	for _, n := range list {
		views = append(views, NotificationView{
			ID:        n.ID(),
			Type:      string(n.Type()),
			Title:     n.Title(),
			Message:   n.Message(),
			ItemType:  n.ItemType(),
			ItemIDs:   n.ItemIDs(),
			IsRead:    n.IsRead(),
			CreatedAt: n.CreatedAt(),
		})
	}
	return views, nil
}

// UnreadCount returns the number of unread notifications.
func (h *Handler) UnreadCount(ctx context.Context) (int, error) {
	return h.repo.CountUnread(ctx)
}

// ClashSummary counts the clashes among pending coursework by kind and severity.
func (h *Handler) ClashSummary(ctx context.Context) (*ClashSummary, error) {
	assignments, err := h.reader.PendingAssignments(ctx)
	if err != nil {
		return nil, err
	}
	exams, err := h.reader.Exams(ctx)
	if err != nil {
		return nil, err
	}

	clashes := h.finder.FindClashes(h.normalizer.Normalize(planningServices.PlanInput{Assignments: assignments, Exams: exams}))
	summary := &ClashSummary{
		Total:      len(clashes),
		ByKind:     make(map[string]int),
		BySeverity: make(map[string]int),
	}
	for _, c := range clashes {
		summary.ByKind[c.Kind()]++
		summary.BySeverity[c.Severity.String()]++
	}
	return summary, nil
}
