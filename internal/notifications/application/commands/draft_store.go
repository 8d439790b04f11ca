package commands

import (
	"context"

	"github.com/felixgeelhaar/studyplanner/internal/notifications/domain"
	sharedApplication "github.com/felixgeelhaar/studyplanner/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/studyplanner/internal/shared/domain"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/studyplanner/pkg/observability"
)

// draftStore persists drafts whose message is not already waiting unread.
type draftStore struct {
	repo       domain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	metrics    observability.Metrics
}

// saveNew stores the new drafts in one unit of work. Duplicate messages within
// drafts are stored once.
func (s *draftStore) saveNew(ctx context.Context, drafts []domain.Draft) ([]*domain.Notification, error) {
	var created []*domain.Notification

	err := sharedApplication.WithUnitOfWork(ctx, s.uow, func(txCtx context.Context) error {
		created = created[:0]
		var events []sharedDomain.DomainEvent
		for _, d := range drafts {
			exists, err := s.repo.HasUnreadMessage(txCtx, d.Message)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			n, err := domain.NewNotification(d)
			if err != nil {
				return err
			}
			if err := s.repo.Save(txCtx, n); err != nil {
				return err
			}
			events = append(events, n.DomainEvents()...)
			created = append(created, n)
		}
		if len(events) == 0 {
			return nil
		}
		sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx))
		msgs, err := outbox.NewMessages(events)
		if err != nil {
			return err
		}
		return s.outboxRepo.SaveBatch(txCtx, msgs)
	})
	if err != nil {
		return nil, err
	}

	for _, n := range created {
		n.ClearDomainEvents()
		s.metrics.Counter(observability.MetricNotificationsSaved, 1, observability.T("type", string(n.Type())))
	}
	return created, nil
}
