package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/NordCoder/Remindus/internal/domain/notification"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type recordingWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

type stubClock struct{ t time.Time }

func (c stubClock) Now() time.Time { return c.t }

func TestPushEventsKafka_Send(t *testing.T) {
	w := &recordingWriter{}
	e := NewPushEventsKafka(newProducer(w, "remindus.push.request").WithLogger(zap.NewNop()))
	e.clock = stubClock{t: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)}

	require.NoError(t, e.Send(context.Background(), "abc", "title", "body"))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("abc"), w.msgs[0].Key)

	var got structpb.Struct
	require.NoError(t, proto.Unmarshal(w.msgs[0].Value, &got))
	fields := got.AsMap()
	assert.Equal(t, "abc", fields["token"])
	assert.Equal(t, "title", fields["title"])
	assert.Equal(t, "body", fields["body"])
	assert.Equal(t, "2026-10-16T09:00:00Z", fields["requested_at"])
}

func TestPushEventsKafka_EmptyToken(t *testing.T) {
	w := &recordingWriter{}
	e := NewPushEventsKafka(newProducer(w, "t"))

	err := e.Send(context.Background(), "", "title", "body")

	require.ErrorIs(t, err, notification.ErrInvalidInput)
	assert.Empty(t, w.msgs)
}

func TestPushEventsKafka_WriteError(t *testing.T) {
	w := &recordingWriter{err: errors.New("leader not available")}
	e := NewPushEventsKafka(newProducer(w, "t"))

	err := e.Send(context.Background(), "abc", "title", "body")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}

func TestEnsureTopic_NoBrokers(t *testing.T) {
	err := EnsureTopic(context.Background(), nil, TopicSpec{Name: "t"}, nil)
	require.ErrorIs(t, err, ErrNoBrokers)
}
