package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type fakeReader struct {
	mu        sync.Mutex
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

type funcHandler struct {
	topic string
	fn    func(context.Context, []byte) error
}

func (h funcHandler) Topic() string                              { return h.topic }
func (h funcHandler) Handle(ctx context.Context, b []byte) error { return h.fn(ctx, b) }

func withTestIO(r Reader, dlq Writer) ConsumerOption {
	return func(c *ConsumerConfig) {
		c.newReader = func(string) Reader { return r }
		c.dlqWriter = dlq
	}
}

func TestProducerPublishEncodesJSON(t *testing.T) {
	w := &fakeWriter{}
	p, err := NewProducer(WithWriter(w))
	require.NoError(t, err)

	require.NoError(t, p.Publish(context.Background(), "changes", []byte("gdp"), map[string]any{"key": "gdp"}))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "changes", w.msgs[0].Topic)
	assert.Equal(t, []byte("gdp"), w.msgs[0].Key)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "gdp", got["key"])

	require.NoError(t, p.PublishMessage(context.Background(), "logs", "raw"))
	assert.Equal(t, []byte("raw"), w.msgs[1].Value)
}

func TestProducerPublishBatchWrapsError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p, err := NewProducer(WithWriter(w))
	require.NoError(t, err)

	err = p.PublishBatch(context.Background(), "changes", []Message{{Key: []byte("a"), Value: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")

	assert.NoError(t, p.PublishBatch(context.Background(), "changes", nil))
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)
}

func TestConsumerRetriesThenSucceeds(t *testing.T) {
	r := &fakeReader{}
	c, err := NewConsumer(withTestIO(r, nil), WithConsumerRetry(3, time.Millisecond, 2*time.Millisecond))
	require.NoError(t, err)

	calls := 0
	c.RegisterHandler(funcHandler{topic: "ingest", fn: func(context.Context, []byte) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}})
	c.readers["ingest"] = r

	c.process(&message{topic: "ingest", km: kafka.Message{Offset: 7, Value: []byte("{}")}})
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int64{7}, r.committed)
}

func TestConsumerRoutesExhaustedMessagesToDLQ(t *testing.T) {
	r := &fakeReader{}
	dlq := &fakeWriter{}
	c, err := NewConsumer(withTestIO(r, dlq), WithConsumerDLQ("ingest.dlq"), WithConsumerRetry(1, time.Millisecond, time.Millisecond))
	require.NoError(t, err)

	c.RegisterHandler(funcHandler{topic: "ingest", fn: func(context.Context, []byte) error {
		return errors.New("bad payload")
	}})
	c.readers["ingest"] = r

	c.process(&message{topic: "ingest", km: kafka.Message{Offset: 3, Value: []byte("x")}})

	require.Len(t, dlq.msgs, 1)
	assert.Equal(t, "ingest.dlq", dlq.msgs[0].Topic)
	assert.Equal(t, []byte("x"), dlq.msgs[0].Value)
	assert.Equal(t, []int64{3}, r.committed)
}

func TestConsumerWithoutDLQDoesNotCommitFailures(t *testing.T) {
	r := &fakeReader{}
	c, err := NewConsumer(withTestIO(r, nil), WithConsumerRetry(0, time.Millisecond, time.Millisecond))
	require.NoError(t, err)
	c.RegisterHandler(funcHandler{topic: "ingest", fn: func(context.Context, []byte) error {
		return errors.New("nope")
	}})
	c.readers["ingest"] = r

	c.process(&message{topic: "ingest", km: kafka.Message{Offset: 1}})
	assert.Empty(t, r.committed)
}

func TestConsumerStartStop(t *testing.T) {
	r := &fakeReader{}
	c, err := NewConsumer(withTestIO(r, nil))
	require.NoError(t, err)
	require.Error(t, c.Start())

	c.RegisterHandler(funcHandler{topic: "ingest", fn: func(context.Context, []byte) error { return nil }})
	require.NoError(t, c.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Stop(ctx))
}

func TestHookChainRecoversPanics(t *testing.T) {
	var errSeen error
	chain := NewHookChain(
		HookFuncs{Before: func(context.Context, string, kafka.Message, []byte) (context.Context, kafka.Message, []byte, error) {
			panic("boom")
		}},
		HookFuncs{Err: func(_ context.Context, _ string, _ kafka.Message, _ []byte, err error) { errSeen = err }},
		nil,
	)

	_, _, _, err := chain.BeforeHandle(context.Background(), "t", kafka.Message{}, nil)
	var he *HookError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "ERR_PANIC", he.Code)
	assert.Equal(t, err, errSeen)
}

func TestLoggingHookStampsTraceID(t *testing.T) {
	h := NewLoggingHook(nil)
	km := kafka.Message{Headers: []kafka.Header{{Key: "trace_id", Value: []byte("abc")}}}
	ctx, _, _, err := h.BeforeHandle(context.Background(), "t", km, nil)
	require.NoError(t, err)
	assert.Equal(t, "abc", TraceIDFrom(ctx))
}

func TestBackoffWithJitterBounds(t *testing.T) {
	for attempt := 1; attempt < 10; attempt++ {
		d := backoffWithJitter(10*time.Millisecond, 100*time.Millisecond, attempt)
		assert.Greater(t, d, time.Duration(0))
		assert.LessOrEqual(t, d, 100*time.Millisecond)
	}
}
