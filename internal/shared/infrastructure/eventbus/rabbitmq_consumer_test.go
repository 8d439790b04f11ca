package eventbus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/felixgeelhaar/studyplanner/pkg/observability"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAcknowledger struct {
	acks    int
	nacks   int
	requeue []bool
}

func (a *recordingAcknowledger) Ack(uint64, bool) error {
	a.acks++
	return nil
}

func (a *recordingAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacks++
	a.requeue = append(a.requeue, requeue)
	return nil
}

func (a *recordingAcknowledger) Reject(_ uint64, requeue bool) error {
	return a.Nack(0, false, requeue)
}

type clashConsumer struct {
	err            error
	correlationIDs []string
	routingKeys    []string
}

func (c *clashConsumer) EventTypes() []string { return []string{"coursework.#"} }

func (c *clashConsumer) Handle(ctx context.Context, event *ConsumedEvent) error {
	c.correlationIDs = append(c.correlationIDs, observability.CorrelationIDFromContext(ctx))
	c.routingKeys = append(c.routingKeys, event.RoutingKey)
	return c.err
}

func newTestDeliveryHandler(t *testing.T, consumer EventConsumer) (*RabbitMQConsumer, *observability.InMemoryMetrics) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewInMemoryMetrics()
	registry := NewConsumerRegistry(logger)
	registry.Register(consumer)
	return newDeliveryHandler(RabbitMQConsumerConfig{Metrics: metrics, Logger: logger}, registry), metrics
}

func TestSettlementFor(t *testing.T) {
	failed := errors.New("database is locked")
	tests := []struct {
		name        string
		err         error
		redelivered bool
		want        Settlement
	}{
		{"success", nil, false, SettleAck},
		{"success on redelivery", nil, true, SettleAck},
		{"first failure", failed, false, SettleRetry},
		{"second failure", failed, true, SettleDrop},
		{"malformed body", errMalformedDelivery, false, SettleAck},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SettlementFor(tt.err, tt.redelivered))
		})
	}
}

func TestDecodeDelivery_FallsBackToProperties(t *testing.T) {
	event, err := DecodeDelivery(amqp.Delivery{
		Body:          []byte(`{"payload":{"id":"e1"}}`),
		RoutingKey:    "coursework.exam.created",
		CorrelationId: "cmd-42",
	})
	require.NoError(t, err)
	assert.Equal(t, "coursework.exam.created", event.RoutingKey)
	assert.Equal(t, "cmd-42", event.Metadata.CorrelationID)

	event, err = DecodeDelivery(amqp.Delivery{
		Body:          []byte(`{"routing_key":"coursework.exam.deleted","metadata":{"correlation_id":"body-id"}}`),
		RoutingKey:    "coursework.exam.created",
		CorrelationId: "cmd-42",
	})
	require.NoError(t, err)
	assert.Equal(t, "coursework.exam.deleted", event.RoutingKey)
	assert.Equal(t, "body-id", event.Metadata.CorrelationID)
}

func TestHandleDelivery_AcksAndPropagatesCorrelation(t *testing.T) {
	consumer := &clashConsumer{}
	handler, metrics := newTestDeliveryHandler(t, consumer)
	ack := &recordingAcknowledger{}

	got := handler.HandleDelivery(context.Background(), amqp.Delivery{
		Acknowledger:  ack,
		Body:          []byte(`{"routing_key":"coursework.assignment.updated"}`),
		RoutingKey:    "coursework.assignment.updated",
		CorrelationId: "cmd-7",
	})

	assert.Equal(t, SettleAck, got)
	assert.Equal(t, 1, ack.acks)
	assert.Zero(t, ack.nacks)
	assert.Equal(t, []string{"cmd-7"}, consumer.correlationIDs)
	assert.Equal(t, int64(1), metrics.CounterValue(observability.MetricEventsConsumed,
		observability.T("routing_key", "coursework.assignment.updated"),
		observability.T("settlement", "ack"),
	))
	assert.Len(t, metrics.Observations(observability.MetricOperationDuration,
		observability.T("operation", "consume.coursework.assignment.updated")), 1)
}

func TestHandleDelivery_RetriesOnceThenDrops(t *testing.T) {
	consumer := &clashConsumer{err: errors.New("database is locked")}
	handler, metrics := newTestDeliveryHandler(t, consumer)
	ack := &recordingAcknowledger{}
	msg := amqp.Delivery{
		Acknowledger: ack,
		Body:         []byte(`{"routing_key":"coursework.exam.created"}`),
		RoutingKey:   "coursework.exam.created",
	}

	assert.Equal(t, SettleRetry, handler.HandleDelivery(context.Background(), msg))
	msg.Redelivered = true
	assert.Equal(t, SettleDrop, handler.HandleDelivery(context.Background(), msg))

	assert.Zero(t, ack.acks)
	assert.Equal(t, []bool{true, false}, ack.requeue)
	assert.Len(t, consumer.routingKeys, 2)
	assert.Equal(t, int64(2), metrics.CounterValue(observability.MetricOperationErrors,
		observability.T("operation", "consume.coursework.exam.created")))
}

func TestHandleDelivery_AcksMalformedBody(t *testing.T) {
	consumer := &clashConsumer{}
	handler, _ := newTestDeliveryHandler(t, consumer)
	ack := &recordingAcknowledger{}

	got := handler.HandleDelivery(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		Body:         []byte("not json"),
		RoutingKey:   "coursework.exam.created",
	})

	assert.Equal(t, SettleAck, got)
	assert.Equal(t, 1, ack.acks)
	assert.Empty(t, consumer.routingKeys)
}

func TestNewDeliveryHandler_Defaults(t *testing.T) {
	handler := newDeliveryHandler(RabbitMQConsumerConfig{}, nil)

	assert.Equal(t, DefaultConsumerQueueName, handler.queue)
	assert.Equal(t, ExchangeName, handler.exchange)
	assert.NotNil(t, handler.registry)
	assert.NotNil(t, handler.metrics)
}
