package logger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	mu      sync.Mutex
	topic   string
	reports []LogReport
}

func (p *capturePublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topic = topic
	p.reports = append(p.reports, payload.(LogReport))
	return nil
}

func TestCollectorAggregatesDuplicates(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 10,
		Topic:          "datahub.logs",
		Publisher:      pub,
		Source:         "datahub",
	})

	c.AddLog("error", "store down", map[string]interface{}{"key": "a"}, "x.go:1")
	c.AddLog("error", "store down", map[string]interface{}{"key": "a"}, "x.go:1")
	c.AddLog("error", "upstream down", nil, "y.go:2")
	assert.Equal(t, 2, c.Pending())

	c.Close()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.Len(t, pub.reports, 1)
	assert.Equal(t, "datahub.logs", pub.topic)
	report := pub.reports[0]
	assert.Equal(t, "datahub", report.Source)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, "store down", report.Entries[0].Message)
	assert.Equal(t, 2, report.Entries[0].Count)
}

func TestCollectorFlushesAtThreshold(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 2, Publisher: pub})
	defer c.Close()

	c.AddLog("error", "a", nil, "")
	c.AddLog("error", "b", nil, "")

	assert.Equal(t, 0, c.Pending())
	assert.Eventually(t, func() bool {
		pub.mu.Lock()
		defer pub.mu.Unlock()
		return len(pub.reports) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestLoggerErrorFeedsCollector(t *testing.T) {
	l := Nop()
	l.AddCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 100})
	defer l.RemoveCollector()

	l.Error("boom", String("ticker", "AAPL"))
	l.Info("ignored")
	assert.Equal(t, 1, l.collector.Pending())

	child := l.With(String("component", "test"))
	child.Error("boom again")
	assert.Equal(t, 2, l.collector.Pending())
}
