package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

var ErrBusClosed = errors.New("event bus closed")

// EventPublisher publishes events
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *Event) error
	Close() error
}

// BusConfig configures the event bus
type BusConfig struct {
	Topic        string
	KafkaBrokers []string
}

// Bus delivers events in-process over a GoChannel and, when brokers are
// configured, forwards a copy of each one to Kafka.
type Bus struct {
	channel *gochannel.GoChannel
	forward message.Publisher
	topic   string
	logger  *slog.Logger

	mu     sync.RWMutex
	closed bool
}

func NewBus(cfg BusConfig, logger *slog.Logger) (*Bus, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("event bus topic is required")
	}

	wmLogger := watermill.NewSlogLogger(logger)
	bus := &Bus{
		channel: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, wmLogger),
		topic:   cfg.Topic,
		logger:  logger,
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
			Brokers:   cfg.KafkaBrokers,
			Marshaler: kafka.DefaultMarshaler{},
		}, wmLogger)
		if err != nil {
			_ = bus.channel.Close()
			return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
		}
		bus.forward = publisher
		logger.Info("Forwarding events to Kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.Topic)
	}

	return bus, nil
}

// PublishEvent delivers event to local subscribers. A Kafka failure is logged
// and does not fail the local delivery.
func (b *Bus) PublishEvent(ctx context.Context, event *Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("type", event.Type)
	msg.Metadata.Set("source", event.Source)
	msg.SetContext(ctx)

	if err := b.channel.Publish(b.topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	if b.forward != nil {
		if err := b.forward.Publish(b.topic, msg.Copy()); err != nil {
			b.logger.WarnContext(ctx, "Failed to forward event to Kafka",
				"event_id", event.ID,
				"event_type", event.Type,
				"error", err)
		}
	}

	b.logger.DebugContext(ctx, "Event published", "event_id", event.ID, "event_type", event.Type)
	return nil
}

// Subscribe returns the decoded events published after the call. The channel
// closes when ctx is done or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *Event, error) {
	messages, err := b.channel.Subscribe(ctx, b.topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", b.topic, err)
	}

	out := make(chan *Event)
	go func() {
		defer close(out)
		for msg := range messages {
			var event Event
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				b.logger.Warn("Dropping undecodable event", "message_uuid", msg.UUID, "error", err)
				msg.Ack()
				continue
			}
			msg.Ack()

			select {
			case out <- &event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	if b.forward != nil {
		errs = append(errs, b.forward.Close())
	}
	errs = append(errs, b.channel.Close())
	return errors.Join(errs...)
}
