package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/studyplanner/pkg/observability"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultConsumerQueueName is the queue the worker binds clash detection to.
const DefaultConsumerQueueName = "studyplanner.clash-detection"

var errMalformedDelivery = errors.New("malformed event body")

// Settlement is what the consumer does with a delivery once it has been handled.
type Settlement int

const (
	// SettleAck removes the delivery from the queue.
	SettleAck Settlement = iota
	// SettleRetry puts the delivery back for one more attempt.
	SettleRetry
	// SettleDrop rejects the delivery without requeueing it.
	SettleDrop
)

func (s Settlement) String() string {
	switch s {
	case SettleAck:
		return "ack"
	case SettleRetry:
		return "retry"
	case SettleDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// SettlementFor decides the fate of a delivery. A failed event is retried once;
// a second failure drops it. Malformed bodies are acked since redelivery cannot fix them.
func SettlementFor(err error, redelivered bool) Settlement {
	switch {
	case err == nil, errors.Is(err, errMalformedDelivery):
		return SettleAck
	case redelivered:
		return SettleDrop
	default:
		return SettleRetry
	}
}

// DecodeDelivery turns an AMQP delivery into an event envelope. Routing key and
// correlation id fall back to the delivery's properties when the body omits them.
func DecodeDelivery(msg amqp.Delivery) (*ConsumedEvent, error) {
	event := &ConsumedEvent{}
	if err := json.Unmarshal(msg.Body, event); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedDelivery, err)
	}
	if event.RoutingKey == "" {
		event.RoutingKey = msg.RoutingKey
	}
	if event.Metadata.CorrelationID == "" {
		event.Metadata.CorrelationID = msg.CorrelationId
	}
	return event, nil
}

// RabbitMQConsumerConfig configures the RabbitMQ consumer.
type RabbitMQConsumerConfig struct {
	URL       string
	QueueName string
	Exchange  string
	Metrics   observability.Metrics
	Logger    *slog.Logger
}

// RabbitMQConsumer feeds events from a durable queue into a ConsumerRegistry.
type RabbitMQConsumer struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	queue     string
	exchange  string
	registry  *ConsumerRegistry
	metrics   observability.Metrics
	logger    *slog.Logger
	mu        sync.Mutex
	running   bool
	closeChan chan struct{}
}

// NewRabbitMQConsumer dials the broker and declares the exchange and queue.
func NewRabbitMQConsumer(cfg RabbitMQConsumerConfig, registry *ConsumerRegistry) (*RabbitMQConsumer, error) {
	c := newDeliveryHandler(cfg, registry)

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := declareQueue(ch, c.exchange, c.queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	c.conn, c.channel = conn, ch

	c.logger.Info("RabbitMQ consumer connected", "queue", c.queue, "exchange", c.exchange)
	return c, nil
}

// newDeliveryHandler applies config defaults without touching the network.
func newDeliveryHandler(cfg RabbitMQConsumerConfig, registry *ConsumerRegistry) *RabbitMQConsumer {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetrics{}
	}
	if cfg.QueueName == "" {
		cfg.QueueName = DefaultConsumerQueueName
	}
	if cfg.Exchange == "" {
		cfg.Exchange = ExchangeName
	}
	if registry == nil {
		registry = NewConsumerRegistry(cfg.Logger)
	}
	return &RabbitMQConsumer{
		queue:     cfg.QueueName,
		exchange:  cfg.Exchange,
		registry:  registry,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		closeChan: make(chan struct{}),
	}
}

func declareQueue(ch *amqp.Channel, exchange, queue string) error {
	if err := declareExchange(ch, exchange); err != nil {
		return err
	}
	// durable, not auto-deleted, shared between worker replicas
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	return nil
}

// RegisterConsumer adds consumer to the registry and binds each of its patterns.
// Registry patterns use the same wildcard syntax as AMQP topic bindings.
func (c *RabbitMQConsumer) RegisterConsumer(consumer EventConsumer) {
	c.registry.Register(consumer)

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, pattern := range consumer.EventTypes() {
		if err := c.channel.QueueBind(c.queue, pattern, c.exchange, false, nil); err != nil {
			c.logger.Error("failed to bind queue", "queue", c.queue, "pattern", pattern, "error", err)
			continue
		}
		c.logger.Debug("bound queue", "queue", c.queue, "pattern", pattern)
	}
}

// Start consumes until ctx is cancelled or Close is called. Deliveries are
// handled one at a time.
func (c *RabbitMQConsumer) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("consumer already running")
	}
	c.running = true
	c.mu.Unlock()

	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}
	// manual ack, server-generated consumer tag
	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	c.logger.Info("started consuming events", "queue", c.queue)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer context cancelled, stopping")
			return ctx.Err()
		case <-c.closeChan:
			c.logger.Info("consumer close requested, stopping")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed unexpectedly")
			}
			c.HandleDelivery(ctx, msg)
		}
	}
}

// HandleDelivery dispatches one delivery and settles it with the broker.
func (c *RabbitMQConsumer) HandleDelivery(ctx context.Context, msg amqp.Delivery) Settlement {
	err := c.dispatch(ctx, msg)
	settlement := SettlementFor(err, msg.Redelivered)
	if err != nil {
		c.logger.Error("failed to process delivery",
			"routing_key", msg.RoutingKey,
			"redelivered", msg.Redelivered,
			"settlement", settlement.String(),
			"error", err,
		)
	}

	var settleErr error
	switch settlement {
	case SettleAck:
		settleErr = msg.Ack(false)
	case SettleRetry:
		settleErr = msg.Nack(false, true)
	case SettleDrop:
		settleErr = msg.Nack(false, false)
	}
	if settleErr != nil {
		c.logger.Error("failed to settle delivery", "settlement", settlement.String(), "error", settleErr)
	}

	c.metrics.Counter(observability.MetricEventsConsumed, 1,
		observability.T("routing_key", msg.RoutingKey),
		observability.T("settlement", settlement.String()),
	)
	return settlement
}

func (c *RabbitMQConsumer) dispatch(ctx context.Context, msg amqp.Delivery) (err error) {
	event, err := DecodeDelivery(msg)
	if err != nil {
		return err
	}
	if event.Metadata.CorrelationID != "" {
		ctx = observability.WithCorrelationID(ctx, event.Metadata.CorrelationID)
	}

	timer := observability.StartTimer("consume." + event.RoutingKey).WithMetrics(c.metrics)
	defer func() {
		elapsed := timer.Stop(err)
		if err == nil {
			c.logger.DebugContext(ctx, "event processed",
				"routing_key", event.RoutingKey,
				"event_id", event.EventID,
				"duration_ms", elapsed.Milliseconds(),
			)
		}
	}()
	return c.registry.Dispatch(ctx, event)
}

// Close stops Start and releases the channel and connection.
func (c *RabbitMQConsumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		close(c.closeChan)
	}
	c.running = false

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Warn("error closing channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			return err
		}
	}
	c.logger.Info("RabbitMQ consumer closed")
	return nil
}
