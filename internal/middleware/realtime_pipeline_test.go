package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"DataHub/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProc struct {
	mu    sync.Mutex
	fail  int
	seen  []*models.Trade
	calls int
}

func (f *fakeProc) Process(_ context.Context, t *models.Trade) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail > 0 {
		f.fail--
		return errors.New("store busy")
	}
	f.seen = append(f.seen, t)
	return nil
}

func (f *fakeProc) applied() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}

func trade(sym string, price float64) *models.Trade {
	return &models.Trade{Symbol: sym, Price: price, Timestamp: time.Now()}
}

func TestRealtimePipeline_Validation(t *testing.T) {
	p := NewRealtimePipeline(&fakeProc{}, nil)

	assert.Error(t, p.Process(context.Background(), nil))
	assert.Error(t, p.Process(context.Background(), &models.Trade{Price: 1, Timestamp: time.Now()}))
	assert.Error(t, p.Process(context.Background(), &models.Trade{Symbol: "EDP.LS", Price: 1}))
	assert.Error(t, p.Process(context.Background(), trade("EDP.LS", 0)))
}

func TestRealtimePipeline_ThrottlesPerSymbol(t *testing.T) {
	proc := &fakeProc{}
	p := NewRealtimePipeline(proc, nil, WithMaxRPS(2))

	for i := 0; i < 5; i++ {
		require.NoError(t, p.Process(context.Background(), trade("EDP.LS", 3.9)))
	}
	require.NoError(t, p.Process(context.Background(), trade("GALP.LS", 15)))

	assert.Equal(t, 3, proc.applied())
}

func TestRealtimePipeline_BuffersAndFlushes(t *testing.T) {
	proc := &fakeProc{fail: 2}
	p := NewRealtimePipeline(proc, nil, WithBufferSize(4))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := p.Process(ctx, trade("NOS.LS", 4.1))
	require.Error(t, err)
	assert.Equal(t, 1, p.Buffered())

	p.Start(ctx)
	defer p.Stop()

	assert.Eventually(t, func() bool { return proc.applied() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, p.Buffered())
}

func TestRealtimePipeline_StopIsIdempotent(t *testing.T) {
	p := NewRealtimePipeline(&fakeProc{}, nil)
	p.Stop()
	p.Start(context.Background())
	p.Stop()
	p.Stop()
}
