// Package events publishes domain events about tracked health entries.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

// TypeEntrySaved is emitted after an entry is created or replaced
const TypeEntrySaved = "entry.saved"

// EntrySaved describes a stored entry without its free-text fields
type EntrySaved struct {
	Type       string       `json:"type"`
	UserID     string       `json:"user_id"`
	Date       string       `json:"date"`
	TotalScore int          `json:"total_score"`
	Rating     model.Rating `json:"rating"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// NewEntrySaved builds the event for a stored entry
func NewEntrySaved(userID string, entry *model.HealthEntry, now time.Time) EntrySaved {
	return EntrySaved{
		Type:       TypeEntrySaved,
		UserID:     userID,
		Date:       entry.Date,
		TotalScore: entry.Score.TotalScore,
		Rating:     entry.Score.Rating,
		OccurredAt: now.UTC(),
	}
}

// Publisher delivers entry events
type Publisher interface {
	PublishEntrySaved(ctx context.Context, event EntrySaved) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a Kafka topic keyed by user, so one user's events stay ordered
type KafkaPublisher struct {
	writer messageWriter
	logger *zap.Logger
}

// NewKafkaPublisher creates a synchronous publisher for the given brokers and topic
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}, logger)
}

func newKafkaPublisher(writer messageWriter, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		logger: logger,
	}
}

// PublishEntrySaved sends one entry.saved event
func (p *KafkaPublisher) PublishEntrySaved(ctx context.Context, event EntrySaved) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event",
			zap.Error(err),
			zap.String("type", event.Type),
			zap.String("user_id", event.UserID),
		)
		return fmt.Errorf("failed to write message: %w", err)
	}

	p.logger.Debug("Event published", zap.String("type", event.Type), zap.String("user_id", event.UserID))
	return nil
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event
type NoopPublisher struct{}

// PublishEntrySaved does nothing
func (NoopPublisher) PublishEntrySaved(context.Context, EntrySaved) error { return nil }

// Close does nothing
func (NoopPublisher) Close() error { return nil }
