package subscribers

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/studyplanner/internal/notifications/application/commands"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/eventbus"
)

// ClashDetector runs clash detection.
type ClashDetector interface {
	Handle(ctx context.Context, cmd commands.DetectClashesCommand) (*commands.DetectClashesResult, error)
}

// ClashSubscriber re-runs clash detection whenever a deadline may have moved.
type ClashSubscriber struct {
	detector ClashDetector
	logger   *slog.Logger
	enabled  bool
}

// NewClashSubscriber creates a new clash subscriber.
func NewClashSubscriber(detector ClashDetector, logger *slog.Logger) *ClashSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClashSubscriber{detector: detector, logger: logger, enabled: true}
}

// SetEnabled enables or disables the subscriber.
func (s *ClashSubscriber) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// EventTypes returns the event types this subscriber handles.
func (s *ClashSubscriber) EventTypes() []string {
	return []string{
		"coursework.assignment.*",
		"coursework.exam.*",
	}
}

// Handle processes a coursework event.
func (s *ClashSubscriber) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	if !s.enabled {
		s.logger.Debug("clash subscriber disabled, skipping event", "routing_key", event.RoutingKey)
		return nil
	}

	result, err := s.detector.Handle(ctx, commands.DetectClashesCommand{})
	if err != nil {
		s.logger.Error("clash detection failed",
			"routing_key", event.RoutingKey,
			"aggregate_id", event.AggregateID,
			"error", err,
		)
		return err
	}

	if len(result.Created) > 0 {
		s.logger.Info("clash notifications created",
			"routing_key", event.RoutingKey,
			"count", len(result.Created),
		)
	}
	return nil
}
