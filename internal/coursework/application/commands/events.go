package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/studyplanner/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/studyplanner/internal/shared/domain"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/outbox"
)

// aggregate is the part of a coursework aggregate the handlers need to publish events.
type aggregate interface {
	DomainEvents() []sharedDomain.DomainEvent
	ClearDomainEvents()
}

// saveEvents stamps the pending events of agg with request metadata and writes
// them to the outbox. It must run inside the unit of work that saved agg.
func saveEvents(ctx, txCtx context.Context, repo outbox.Repository, agg aggregate) error {
	events := agg.DomainEvents()
	if len(events) == 0 {
		return nil
	}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx))
	msgs, err := outbox.NewMessages(events)
	if err != nil {
		return err
	}
	if err := repo.SaveBatch(txCtx, msgs); err != nil {
		return err
	}
	agg.ClearDomainEvents()
	return nil
}
