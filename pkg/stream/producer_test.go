package stream

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hferrors "github.com/histflow/histflow/internal/errors"
)

// collector is a test consumer that records every sample it sees.
type collector[S any] struct {
	mu      sync.Mutex
	samples []S
	aux     []AuxData
}

func (c *collector[S]) Consume(sample S, aux AuxData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.samples = append(c.samples, sample)
	c.aux = append(c.aux, aux)
}

func (c *collector[S]) collected() []S {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]S, len(c.samples))
	copy(out, c.samples)
	return out
}

func TestProducerEmitDelivers(t *testing.T) {
	p := NewProducer[float64]()
	c := &collector[float64]{}

	sub, err := p.Attach(c)
	require.NoError(t, err)
	require.NotEmpty(t, sub.ID())

	ctx := context.Background()
	for _, v := range []float64{1, 2, 3} {
		require.NoError(t, p.Emit(ctx, v, AuxData{"origin": "test"}))
	}

	assert.Equal(t, []float64{1, 2, 3}, c.collected())
	require.Len(t, c.aux, 3)
	assert.Equal(t, "test", c.aux[0]["origin"])
}

func TestProducerFanOut(t *testing.T) {
	p := NewProducer[int]()
	a := &collector[int]{}
	b := &collector[int]{}

	_, err := p.Attach(a)
	require.NoError(t, err)
	_, err = p.Attach(b)
	require.NoError(t, err)

	require.NoError(t, p.Emit(context.Background(), 7, nil))

	assert.Equal(t, []int{7}, a.collected())
	assert.Equal(t, []int{7}, b.collected())

	s := p.Stats()
	assert.Equal(t, uint64(1), s.Emitted)
	assert.Equal(t, uint64(2), s.Delivered)
	assert.Equal(t, 2, s.Subscribers)
}

func TestProducerAttachNil(t *testing.T) {
	p := NewProducer[float64]()

	sub, err := p.Attach(nil)
	assert.Nil(t, sub)
	assert.ErrorIs(t, err, hferrors.ErrNilConsumer)
}

func TestProducerClosed(t *testing.T) {
	p := NewProducer[float64]()
	c := &collector[float64]{}

	_, err := p.Attach(c)
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close()) // idempotent

	err = p.Emit(context.Background(), 1, nil)
	assert.ErrorIs(t, err, hferrors.ErrProducerClosed)

	_, err = p.Attach(&collector[float64]{})
	assert.ErrorIs(t, err, hferrors.ErrProducerClosed)

	assert.Empty(t, c.collected())
	assert.Equal(t, 0, p.Stats().Subscribers)
}

func TestSubscriptionClose(t *testing.T) {
	p := NewProducer[int]()
	stay := &collector[int]{}
	leave := &collector[int]{}

	_, err := p.Attach(stay)
	require.NoError(t, err)
	sub, err := p.Attach(leave)
	require.NoError(t, err)

	require.NoError(t, p.Emit(context.Background(), 1, nil))

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close()) // idempotent

	require.NoError(t, p.Emit(context.Background(), 2, nil))

	assert.Equal(t, []int{1, 2}, stay.collected())
	assert.Equal(t, []int{1}, leave.collected())
	assert.Equal(t, 1, p.Stats().Subscribers)
}

// slowConsumer tracks whether a Consume call is still running.
type slowConsumer struct {
	delay  time.Duration
	active atomic.Int32
	calls  atomic.Int32
}

func (s *slowConsumer) Consume(sample float64, aux AuxData) {
	s.active.Add(1)
	time.Sleep(s.delay)
	s.calls.Add(1)
	s.active.Add(-1)
}

func TestSubscriptionCloseDrains(t *testing.T) {
	p := NewProducer[float64]()
	slow := &slowConsumer{delay: 50 * time.Millisecond}

	sub, err := p.Attach(slow)
	require.NoError(t, err)

	emitted := make(chan struct{})
	go func() {
		defer close(emitted)
		_ = p.Emit(context.Background(), 1, nil)
	}()

	// Wait until the delivery is in flight, then detach.
	require.Eventually(t, func() bool {
		return slow.active.Load() == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, sub.Close())

	// The drain guarantee: after Close returns, no Consume call is still
	// running and none will start.
	assert.Equal(t, int32(0), slow.active.Load())
	assert.Equal(t, int32(1), slow.calls.Load())

	<-emitted
	require.NoError(t, p.Emit(context.Background(), 2, nil))
	assert.Equal(t, int32(1), slow.calls.Load())
}

func TestProducerCloseDrains(t *testing.T) {
	p := NewProducer[float64]()
	slow := &slowConsumer{delay: 50 * time.Millisecond}

	_, err := p.Attach(slow)
	require.NoError(t, err)

	go func() {
		_ = p.Emit(context.Background(), 1, nil)
	}()

	require.Eventually(t, func() bool {
		return slow.active.Load() == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, p.Close())

	assert.Equal(t, int32(0), slow.active.Load())
	assert.Equal(t, int32(1), slow.calls.Load())
}

func TestProducerEmitCanceled(t *testing.T) {
	p := NewProducer[float64]()
	c := &collector[float64]{}

	_, err := p.Attach(c)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = p.Emit(ctx, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, c.collected())

	s := p.Stats()
	assert.Equal(t, uint64(1), s.Emitted)
	assert.Equal(t, uint64(0), s.Delivered)
	assert.Equal(t, uint64(1), s.Dropped)
}

func TestProducerConcurrentEmit(t *testing.T) {
	p := NewProducer[int]()
	c := &collector[int]{}

	_, err := p.Attach(c)
	require.NoError(t, err)

	const (
		goroutines = 10
		perWorker  = 100
	)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_ = p.Emit(context.Background(), base+j, nil)
			}
		}(g * perWorker)
	}
	wg.Wait()

	assert.Len(t, c.collected(), goroutines*perWorker)

	s := p.Stats()
	assert.Equal(t, uint64(goroutines*perWorker), s.Emitted)
	assert.Equal(t, uint64(goroutines*perWorker), s.Delivered)
}

func TestProducerName(t *testing.T) {
	p := NewProducer[int]()
	assert.Equal(t, "producer", p.Name())

	named := NewProducer[int](WithName("sampler"))
	assert.Equal(t, "sampler", named.Name())
}

func TestSubscriptionCloseAfterProducerClose(t *testing.T) {
	p := NewProducer[int]()
	sub, err := p.Attach(&collector[int]{})
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.NoError(t, sub.Close())
}
