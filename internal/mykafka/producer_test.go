package mykafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs     []kafka.Message
	err      error
	closed   bool
	deadline bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	_, f.deadline = ctx.Deadline()
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestProducer_PublishEvent(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	p := NewProducerWithWriter(w)

	ev := LeaveEvent{Type: EventLeaveCreated, LeaveID: "l1", UserID: "u1", ActorID: "u1", OccurredAt: time.Now().UTC()}
	require.NoError(t, p.PublishEvent(context.Background(), TopicLeaveEvents, "l1", ev))

	require.Len(t, w.msgs, 1)
	assert.True(t, w.deadline)
	msg := w.msgs[0]
	assert.Equal(t, TopicLeaveEvents, msg.Topic)
	assert.Equal(t, "l1", string(msg.Key))

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "leave_created", got["type"])
	assert.Equal(t, "l1", got["leaveID"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProducer_PublishEvent_Errors(t *testing.T) {
	t.Parallel()

	p := NewProducerWithWriter(&fakeWriter{err: errors.New("broker down")})
	err := p.PublishEvent(context.Background(), TopicUserEvents, "u1", UserEvent{Type: EventUserRegistered})
	require.ErrorContains(t, err, "broker down")

	err = p.PublishEvent(context.Background(), TopicUserEvents, "u1", make(chan int))
	require.ErrorContains(t, err, "json.Marshal")
}
