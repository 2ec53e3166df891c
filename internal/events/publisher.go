package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Activity event types published on post/comment/like creation.
const (
	TypePostCreated    = "post.created"
	TypeCommentCreated = "comment.created"
	TypeLikeAdded      = "like.added"
)

type ActivityEvent struct {
	Type      string    `json:"type"`
	ActorID   string    `json:"actor_id"`
	ObjectID  string    `json:"object_id"`
	PostID    string    `json:"post_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher emits activity events for downstream notification consumers.
// A nil Publisher is valid and drops everything.
type Publisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewPublisher(brokers []string, topic string, log *zap.Logger) *Publisher {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	w := kafka.NewWriter(kafka.WriterConfig{Brokers: brokers, Topic: topic, Balancer: &kafka.LeastBytes{}})
	return &Publisher{writer: w, log: log}
}

// PublishActivity is fire-and-forget: a broker failure is logged, never
// surfaced to the request.
func (p *Publisher) PublishActivity(ctx context.Context, ev ActivityEvent) {
	if p == nil || p.writer == nil {
		return
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	msg := kafka.Message{Key: []byte(ev.ActorID), Value: b, Time: time.Now()}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Warn("publish activity event failed", zap.String("type", ev.Type), zap.Error(err))
	}
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
