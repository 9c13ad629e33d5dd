// Package events publishes orphanage domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/deppfellow/happy/internal/config"
	"github.com/deppfellow/happy/internal/model"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// TypeOrphanageCreated names the event emitted after a create.
const TypeOrphanageCreated = "OrphanageCreated"

// KafkaWriter is the part of *kafka.Writer the publisher uses, so tests
// can record messages instead of dialing a broker.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrphanageCreated is the JSON value of a TypeOrphanageCreated message.
type OrphanageCreated struct {
	Type           string    `json:"type"`
	OrphanageID    int64     `json:"orphanage_id"`
	Name           string    `json:"name"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	OpenOnWeekends bool      `json:"open_on_weekends"`
	Images         []string  `json:"images"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type Publisher struct {
	writer KafkaWriter
	topic  string
	logger *zerolog.Logger
	now    func() time.Time
}

// NewPublisher returns nil when no broker is configured; a nil *Publisher
// is valid and drops every event.
func NewPublisher(cfg *config.EventsConfig, logger *zerolog.Logger) *Publisher {
	if !cfg.Enabled() {
		logger.Info().Msg("no kafka brokers configured, domain events disabled")
		return nil
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}

	return newPublisher(writer, cfg.KafkaTopic, logger)
}

func newPublisher(writer KafkaWriter, topic string, logger *zerolog.Logger) *Publisher {
	return &Publisher{writer: writer, topic: topic, logger: logger, now: time.Now}
}

// PublishOrphanageCreated keys the message by orphanage id so every event
// of one orphanage lands on the same partition.
func (p *Publisher) PublishOrphanageCreated(ctx context.Context, o *model.Orphanage) error {
	if p == nil {
		return nil
	}

	images := make([]string, 0, len(o.Images))
	for _, image := range o.Images {
		images = append(images, image.Path)
	}

	value, err := json.Marshal(OrphanageCreated{
		Type:           TypeOrphanageCreated,
		OrphanageID:    o.ID,
		Name:           o.Name,
		Latitude:       o.Latitude,
		Longitude:      o.Longitude,
		OpenOnWeekends: o.OpenOnWeekends,
		Images:         images,
		OccurredAt:     p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode %s event: %w", TypeOrphanageCreated, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(o.ID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(TypeOrphanageCreated)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s event to %s: %w", TypeOrphanageCreated, p.topic, err)
	}

	p.logger.Debug().
		Str("topic", p.topic).
		Int64("orphanage_id", o.ID).
		Msg("published orphanage created event")
	return nil
}

// Close flushes pending messages.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
