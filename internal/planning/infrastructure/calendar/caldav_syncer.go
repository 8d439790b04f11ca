package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
)

// CalDAVSyncer pushes plan slots into a CalDAV calendar.
type CalDAVSyncer struct {
	baseURL      string
	username     string
	password     string
	calendarPath string
	encoder      *ICSEncoder
	httpClient   *http.Client
	logger       *slog.Logger
}

// NewCalDAVSyncer creates a syncer authenticating with basic auth.
func NewCalDAVSyncer(baseURL, username, password string, encoder *ICSEncoder, logger *slog.Logger) *CalDAVSyncer {
	if logger == nil {
		logger = slog.Default()
	}
	if encoder == nil {
		encoder = NewICSEncoder(nil)
	}
	return &CalDAVSyncer{
		baseURL:    baseURL,
		username:   username,
		password:   password,
		encoder:    encoder,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// WithCalendarPath pins the calendar collection instead of discovering it.
func (s *CalDAVSyncer) WithCalendarPath(path string) *CalDAVSyncer {
	s.calendarPath = path
	return s
}

// WithHTTPClient replaces the HTTP client, mainly for tests.
func (s *CalDAVSyncer) WithHTTPClient(client *http.Client) *CalDAVSyncer {
	s.httpClient = client
	return s
}

// Sync writes one calendar object per slot and removes planner events that
// are no longer part of the plan.
func (s *CalDAVSyncer) Sync(ctx context.Context, slots []domain.PlanSlot) (domain.CalendarSyncReport, error) {
	var result domain.CalendarSyncReport

	client, err := s.client()
	if err != nil {
		return result, err
	}
	calPath, err := s.findCalendarPath(ctx, client)
	if err != nil {
		return result, fmt.Errorf("failed to find calendar: %w", err)
	}

	keep := make(map[string]struct{}, len(slots))
	for _, slot := range slots {
		eventPath := fmt.Sprintf("%s%s.ics", calPath, slot.ID)
		keep[eventPath] = struct{}{}

		cal, err := s.encoder.SlotCalendar(slot)
		if err != nil {
			s.logger.Warn("skipping slot with invalid time", "slot_id", slot.ID, "error", err)
			result.Failed++
			continue
		}

		_, getErr := client.GetCalendarObject(ctx, eventPath)
		if _, err := client.PutCalendarObject(ctx, eventPath, cal); err != nil {
			s.logger.Warn("caldav put failed", "event_path", eventPath, "error", err)
			result.Failed++
			continue
		}
		if getErr == nil {
			result.Updated++
		} else {
			result.Created++
		}
	}

	deleted, err := s.deleteStale(ctx, client, calPath, keep)
	if err != nil {
		s.logger.Warn("caldav stale event cleanup failed", "error", err)
	}
	result.Deleted = deleted

	s.logger.Info("caldav sync finished",
		"created", result.Created,
		"updated", result.Updated,
		"deleted", result.Deleted,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *CalDAVSyncer) client() (*caldav.Client, error) {
	httpClient := webdav.HTTPClientWithBasicAuth(s.httpClient, s.username, s.password)
	client, err := caldav.NewClient(httpClient, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create caldav client: %w", err)
	}
	return client, nil
}

func (s *CalDAVSyncer) findCalendarPath(ctx context.Context, client *caldav.Client) (string, error) {
	if s.calendarPath != "" {
		return s.calendarPath, nil
	}

	principal, err := client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to find principal: %w", err)
	}
	homeSet, err := client.FindCalendarHomeSet(ctx, principal)
	if err != nil {
		return "", fmt.Errorf("failed to find calendar home set: %w", err)
	}
	cals, err := client.FindCalendars(ctx, homeSet)
	if err != nil {
		return "", fmt.Errorf("failed to find calendars: %w", err)
	}
	if len(cals) == 0 {
		return "", fmt.Errorf("no calendars found")
	}
	return cals[0].Path, nil
}

func (s *CalDAVSyncer) deleteStale(ctx context.Context, client *caldav.Client, calPath string, keep map[string]struct{}) (int, error) {
	query := &caldav.CalendarQuery{
		CompRequest: caldav.CalendarCompRequest{
			Name: ical.CompCalendar,
			Comps: []caldav.CalendarCompRequest{
				{Name: ical.CompEvent, Props: []string{ical.PropUID, PropItem}},
			},
		},
		CompFilter: caldav.CompFilter{
			Name:  ical.CompCalendar,
			Comps: []caldav.CompFilter{{Name: ical.CompEvent}},
		},
	}

	objects, err := client.QueryCalendar(ctx, calPath, query)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, obj := range objects {
		if _, ok := keep[obj.Path]; ok || !plannerObject(&obj) {
			continue
		}
		if err := client.RemoveAll(ctx, obj.Path); err != nil {
			s.logger.Warn("failed to delete caldav event", "path", obj.Path, "error", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}

func plannerObject(obj *caldav.CalendarObject) bool {
	if obj == nil || obj.Data == nil {
		return false
	}
	for _, child := range obj.Data.Children {
		if IsPlannerEvent(child) {
			return true
		}
	}
	return false
}
