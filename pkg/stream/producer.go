package stream

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	hferrors "github.com/histflow/histflow/internal/errors"
	"github.com/histflow/histflow/pkg/telemetry"
)

// Producer delivers samples to attached consumers. Deliveries are
// synchronous: Emit calls each consumer in the emitting goroutine and
// returns once all of them have seen the sample.
//
// Teardown is drain-safe. Closing a subscription or the whole producer
// waits for deliveries already in flight, so a consumer may be destroyed
// as soon as the corresponding Close returns. A consumer must not close
// its own subscription from inside Consume; that deadlocks on the drain
// wait.
type Producer[S any] struct {
	name   string
	logger *zap.Logger
	tracer telemetry.Tracer

	mu     sync.RWMutex
	subs   map[string]*subscriber[S]
	closed bool

	stats counters
}

type subscriber[S any] struct {
	id       string
	consumer Consumer[S]
	inflight sync.WaitGroup
}

// NewProducer creates a producer for samples of type S.
func NewProducer[S any](opts ...Option) *Producer[S] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Producer[S]{
		name:   o.name,
		logger: o.logger.Named("stream").With(zap.String("producer", o.name)),
		tracer: o.tracer,
		subs:   make(map[string]*subscriber[S]),
	}
}

// Name returns the producer name.
func (p *Producer[S]) Name() string {
	return p.name
}

// Attach subscribes a consumer to all future emissions. The returned
// subscription detaches the consumer when closed.
func (p *Producer[S]) Attach(c Consumer[S]) (*Subscription[S], error) {
	if c == nil {
		return nil, hferrors.ErrNilConsumer
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, hferrors.ErrProducerClosed
	}

	sub := &subscriber[S]{
		id:       uuid.NewString(),
		consumer: c,
	}
	p.subs[sub.id] = sub

	p.logger.Debug("consumer attached", zap.String("subscription", sub.id))

	return &Subscription[S]{producer: p, sub: sub}, nil
}

// Emit delivers one sample to every attached consumer. It blocks until all
// consumers have processed the sample or ctx is canceled. After Close it
// returns ErrProducerClosed.
func (p *Producer[S]) Emit(ctx context.Context, sample S, aux AuxData) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return hferrors.ErrProducerClosed
	}
	// Reserve each delivery before releasing the lock so a concurrent
	// Close waits for this emission to drain.
	targets := make([]*subscriber[S], 0, len(p.subs))
	for _, sub := range p.subs {
		sub.inflight.Add(1)
		targets = append(targets, sub)
	}
	p.mu.RUnlock()

	_, end := p.startSpan(ctx, telemetry.SpanEmit, telemetry.WithAttributes(telemetry.SpanAttributes{
		Producer:    p.name,
		Subscribers: int64(len(targets)),
	}.ToMap()))

	var err error
	for i, sub := range targets {
		if cerr := ctx.Err(); cerr != nil {
			for _, rest := range targets[i:] {
				rest.inflight.Done()
			}
			p.stats.dropped.Add(uint64(len(targets) - i))
			err = cerr
			break
		}
		sub.consumer.Consume(sample, aux)
		// Count before releasing the reservation so stats are settled
		// once Close returns.
		p.stats.delivered.Add(1)
		sub.inflight.Done()
	}

	p.stats.emitted.Add(1)
	end(err)
	return err
}

// Stats returns current producer statistics.
func (p *Producer[S]) Stats() Stats {
	p.mu.RLock()
	n := len(p.subs)
	p.mu.RUnlock()
	return p.stats.snapshot(n)
}

// Close marks the producer closed, detaches all consumers, and waits for
// in-flight deliveries to finish. After Close returns no consumer receives
// further samples. Close is idempotent.
func (p *Producer[S]) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	targets := make([]*subscriber[S], 0, len(p.subs))
	for _, sub := range p.subs {
		targets = append(targets, sub)
	}
	p.subs = make(map[string]*subscriber[S])
	p.mu.Unlock()

	_, end := p.startSpan(context.Background(), telemetry.SpanDrain, telemetry.WithAttributes(telemetry.SpanAttributes{
		Producer:    p.name,
		Subscribers: int64(len(targets)),
	}.ToMap()))
	for _, sub := range targets {
		sub.inflight.Wait()
	}
	end(nil)

	s := p.stats.snapshot(0)
	p.logger.Info("producer closed",
		zap.Uint64("emitted", s.Emitted),
		zap.Uint64("delivered", s.Delivered),
		zap.Uint64("dropped", s.Dropped),
	)
	return nil
}

func (p *Producer[S]) startSpan(ctx context.Context, name string, opts ...telemetry.SpanOption) (context.Context, telemetry.SpanEnder) {
	if p.tracer != nil {
		return p.tracer.StartSpan(ctx, name, opts...)
	}
	return telemetry.StartSpan(ctx, name, opts...)
}

// Subscription ties one consumer to a producer.
type Subscription[S any] struct {
	producer *Producer[S]
	sub      *subscriber[S]
	once     sync.Once
}

// ID returns the unique subscription identifier.
func (s *Subscription[S]) ID() string {
	return s.sub.id
}

// Close detaches the consumer and waits for any delivery in flight. After
// Close returns the consumer will not be called again and may be
// destroyed. Close is idempotent and safe to call after the producer
// itself has closed.
func (s *Subscription[S]) Close() error {
	s.once.Do(func() {
		p := s.producer

		p.mu.Lock()
		delete(p.subs, s.sub.id)
		p.mu.Unlock()

		s.sub.inflight.Wait()

		p.logger.Debug("consumer detached", zap.String("subscription", s.sub.id))
	})
	return nil
}
