// Package kafkanotify delivers workflow notifications to Kafka.
//
// Each audience gets its own topic so downstream consumers (customer push
// gateway, garage portal, driver app, operations dashboard) subscribe only to
// what they serve. Delivery is fire-and-forget: the workflow has already
// committed by the time Notify runs, so a broker outage loses a notification
// but never a state transition. Failures are logged, not returned.
package kafkanotify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const publishTimeout = 5 * time.Second

// messageWriter abstracts kafka.Writer for testing.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaNotifier implements ports.Notifier on top of a Kafka producer.
type KafkaNotifier struct {
	writer      messageWriter
	topicPrefix string
	logger      *slog.Logger
}

// NewKafkaNotifier creates a notifier producing to the given brokers. Topics
// are named "<prefix>.<audience>", e.g. "fulfillment.notifications.customer".
func NewKafkaNotifier(brokers []string, topicPrefix string, logger *slog.Logger) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	return &KafkaNotifier{
		writer:      writer,
		topicPrefix: topicPrefix,
		logger:      logger.With("component", "kafkanotify"),
	}
}

// Close flushes and shuts down the underlying producer.
func (n *KafkaNotifier) Close() error {
	if closer, ok := n.writer.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// envelope is the wire format of one notification.
type envelope struct {
	Event       string         `json:"event"`
	Audience    string         `json:"audience"`
	RecipientID string         `json:"recipient_id,omitempty"`
	Payload     map[string]any `json:"payload"`
	SentAt      time.Time      `json:"sent_at"`
}

// Notify publishes the notification to the audience topic. Safe for
// concurrent use. Never returns an error: marshalling or broker failures are
// logged and dropped.
func (n *KafkaNotifier) Notify(notification ports.Notification) {
	value, err := json.Marshal(envelope{
		Event:       notification.Event,
		Audience:    string(notification.Audience),
		RecipientID: notification.RecipientID,
		Payload:     notification.Payload,
		SentAt:      time.Now().UTC(),
	})
	if err != nil {
		n.logger.Error("marshal notification",
			"event", notification.Event, "error", err)
		return
	}

	message := kafka.Message{
		Topic: n.topicPrefix + "." + string(notification.Audience),
		Value: value,
	}
	// Operations broadcasts have no recipient, let the balancer pick a partition
	if notification.RecipientID != "" {
		message.Key = []byte(notification.RecipientID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := n.writer.WriteMessages(ctx, message); err != nil {
		n.logger.Error("publish notification",
			"event", notification.Event,
			"audience", notification.Audience,
			"error", err)
		return
	}

	n.logger.Debug("notification published",
		"event", notification.Event,
		"audience", notification.Audience)
}
