package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/Domenick1991/airops/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type fakeReader struct {
	msgs      []kafka.Message
	committed []int64
	commitErr error
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		return kafka.Message{}, io.EOF
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	if r.commitErr != nil {
		return r.commitErr
	}
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "airops.events")
	assert.NotNil(t, p)
	assert.NoError(t, p.Close())
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{topic: "airops.events", writer: w}
	event := domain.NewEvent(domain.EventReservationCreated, "R3", map[string]string{"status": "reserved"})

	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "airops.events", w.msgs[0].Topic)
	assert.Equal(t, []byte("R3"), w.msgs[0].Key)

	var decoded domain.Event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, "reserved", decoded.Attributes["status"])
}

func TestProducer_PublishError(t *testing.T) {
	p := &Producer{topic: "t", writer: &fakeWriter{err: errors.New("broker down")}}
	err := p.Publish(context.Background(), domain.NewEvent(domain.EventRepairLogged, "P1", nil))
	assert.ErrorContains(t, err, "broker down")
}

func TestProducer_CheckConnectionNoBrokers(t *testing.T) {
	p := &Producer{}
	assert.Error(t, p.CheckConnection(context.Background()))
}

func TestConsumer_ConsumeSkipsMalformed(t *testing.T) {
	good, err := json.Marshal(domain.NewEvent(domain.EventAccountCreated, "alice", nil))
	require.NoError(t, err)

	r := &fakeReader{msgs: []kafka.Message{
		{Offset: 4, Value: []byte("{not json")},
		{Offset: 5, Value: good},
	}}
	c := &Consumer{reader: r}

	var got []domain.Event
	err = c.Consume(context.Background(), func(ctx context.Context, e domain.Event) error {
		got = append(got, e)
		return nil
	})

	assert.ErrorIs(t, err, io.EOF)
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Subject)
	assert.Equal(t, []int64{4, 5}, r.committed)
}

func TestConsumer_HandlerErrorStops(t *testing.T) {
	body, _ := json.Marshal(domain.NewEvent(domain.EventAccountCreated, "alice", nil))
	r := &fakeReader{msgs: []kafka.Message{{Offset: 1, Value: body}, {Offset: 2, Value: body}}}
	c := &Consumer{reader: r}

	calls := 0
	err := c.Consume(context.Background(), func(ctx context.Context, e domain.Event) error {
		calls++
		return errors.New("boom")
	})

	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, calls)
	assert.Empty(t, r.committed)
}

func TestConsumer_CommitError(t *testing.T) {
	body, _ := json.Marshal(domain.NewEvent(domain.EventAccountCreated, "alice", nil))
	c := &Consumer{reader: &fakeReader{msgs: []kafka.Message{{Offset: 9, Value: body}}, commitErr: errors.New("rebalance")}}

	err := c.Consume(context.Background(), func(ctx context.Context, e domain.Event) error { return nil })

	assert.EqualError(t, err, "failed to commit offset 9: rebalance")
}

func TestConsumer_CloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}
