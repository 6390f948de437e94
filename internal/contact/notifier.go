package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"
)

// LogNotifier records submissions in the structured log. Used when no topic is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier builds a LogNotifier; a nil logger yields a no-op logger.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs the submission. Message bodies are not logged.
func (n *LogNotifier) Notify(_ context.Context, sub Submission) error {
	n.logger.Info("contact submission received",
		zap.String("submission_id", sub.ID),
		zap.String("email", sub.Email),
		zap.String("company", sub.Company),
		zap.String("package", sub.Package),
		zap.Int("message_len", len(sub.Message)),
	)
	return nil
}

// PubSubNotifier publishes submissions to a Pub/Sub topic.
type PubSubNotifier struct {
	topic   *pubsub.Topic
	marshal func(any) ([]byte, error)
}

// NewPubSubNotifier constructs a Pub/Sub backed notifier.
func NewPubSubNotifier(topic *pubsub.Topic) (*PubSubNotifier, error) {
	if topic == nil {
		return nil, errors.New("pubsub contact notifier: topic is required")
	}
	return &PubSubNotifier{topic: topic, marshal: json.Marshal}, nil
}

// Notify publishes the submission and waits for the server ack.
func (n *PubSubNotifier) Notify(ctx context.Context, sub Submission) error {
	if n == nil || n.topic == nil {
		return ErrNotifierUnavailable
	}
	data, err := n.marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal contact submission: %w", err)
	}
	attrs := map[string]string{"submissionId": sub.ID}
	if v := strings.TrimSpace(sub.Locale); v != "" {
		attrs["locale"] = v
	}
	if v := strings.TrimSpace(sub.Package); v != "" {
		attrs["package"] = v
	}
	result := n.topic.Publish(ctx, &pubsub.Message{Data: data, Attributes: attrs})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrNotifierUnavailable, err)
	}
	return nil
}

// Stop flushes pending publishes.
func (n *PubSubNotifier) Stop() {
	if n != nil && n.topic != nil {
		n.topic.Stop()
	}
}
