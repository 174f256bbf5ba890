package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/NordCoder/Remindus/internal/domain/notification"

	"google.golang.org/protobuf/types/known/structpb"
)

// PushEventsKafka hands reminders to a downstream push gateway through a
// topic. A send succeeds once the broker acknowledges the write.
type PushEventsKafka struct {
	p     *Producer
	clock notification.Clock
}

func NewPushEventsKafka(p *Producer) *PushEventsKafka {
	return &PushEventsKafka{p: p, clock: notification.SystemClock{}}
}

var _ notification.Transport = (*PushEventsKafka)(nil)

func (e *PushEventsKafka) Send(ctx context.Context, token, title, body string) error {
	if token == "" {
		return fmt.Errorf("push request: %w", notification.ErrInvalidInput)
	}
	msg, err := structpb.NewStruct(map[string]any{
		"token":        token,
		"title":        title,
		"body":         body,
		"requested_at": e.clock.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	return e.p.PublishProto(ctx, []byte(token), msg)
}
