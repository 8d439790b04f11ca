package subscribers_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/felixgeelhaar/studyplanner/internal/notifications/application/commands"
	"github.com/felixgeelhaar/studyplanner/internal/notifications/application/subscribers"
	"github.com/felixgeelhaar/studyplanner/internal/notifications/domain"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock detector
type mockDetector struct {
	calls  int
	result *commands.DetectClashesResult
	err    error
}

func (m *mockDetector) Handle(ctx context.Context, cmd commands.DetectClashesCommand) (*commands.DetectClashesResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &commands.DetectClashesResult{}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func assignmentEvent() *eventbus.ConsumedEvent {
	return &eventbus.ConsumedEvent{
		EventID:       uuid.New(),
		AggregateID:   uuid.New(),
		AggregateType: "Assignment",
		RoutingKey:    "coursework.assignment.updated",
	}
}

func TestClashSubscriber_EventTypes(t *testing.T) {
	subscriber := subscribers.NewClashSubscriber(nil, testLogger())

	types := subscriber.EventTypes()
	assert.Contains(t, types, "coursework.assignment.*")
	assert.Contains(t, types, "coursework.exam.*")
	assert.Len(t, types, 2)
}

func TestClashSubscriber_Handle(t *testing.T) {
	t.Run("runs detection", func(t *testing.T) {
		n, err := domain.NewNotification(domain.Draft{Type: domain.TypeClash, Title: "Exam Clash Detected", Message: "clash"})
		require.NoError(t, err)
		detector := &mockDetector{result: &commands.DetectClashesResult{ClashesFound: 1, Created: []*domain.Notification{n}}}
		subscriber := subscribers.NewClashSubscriber(detector, testLogger())

		require.NoError(t, subscriber.Handle(context.Background(), assignmentEvent()))
		assert.Equal(t, 1, detector.calls)
	})

	t.Run("skips when disabled", func(t *testing.T) {
		detector := &mockDetector{}
		subscriber := subscribers.NewClashSubscriber(detector, testLogger())
		subscriber.SetEnabled(false)

		require.NoError(t, subscriber.Handle(context.Background(), assignmentEvent()))
		assert.Zero(t, detector.calls)
	})

	t.Run("returns detection errors", func(t *testing.T) {
		detector := &mockDetector{err: errors.New("disk full")}
		subscriber := subscribers.NewClashSubscriber(detector, nil)

		err := subscriber.Handle(context.Background(), assignmentEvent())
		assert.EqualError(t, err, "disk full")
	})
}
