package stream

import (
	"context"

	hferrors "github.com/histflow/histflow/internal/errors"
)

// ComponentSplitter consumes vector samples and re-emits one component as
// a scalar stream. It implements Consumer[[]S] on the input side and
// exposes the producer API on the output side, so scalar consumers such as
// histograms can be attached to a single coordinate of a vector-valued
// stream.
type ComponentSplitter[S any] struct {
	component int
	out       *Producer[S]
}

// NewComponentSplitter creates a splitter extracting the given zero-based
// component from incoming vectors.
func NewComponentSplitter[S any](component int, opts ...Option) (*ComponentSplitter[S], error) {
	if component < 0 {
		return nil, hferrors.ErrInvalidComponent
	}
	return &ComponentSplitter[S]{
		component: component,
		out:       NewProducer[S](opts...),
	}, nil
}

// Component returns the extracted component index.
func (cs *ComponentSplitter[S]) Component() int {
	return cs.component
}

// Consume extracts the configured component and emits it downstream.
// Vectors too short to contain the component are counted as dropped. The
// auxiliary data is forwarded unchanged.
func (cs *ComponentSplitter[S]) Consume(sample []S, aux AuxData) {
	if cs.component >= len(sample) {
		cs.out.stats.dropped.Add(1)
		return
	}
	if err := cs.out.Emit(context.Background(), sample[cs.component], aux); err != nil {
		cs.out.stats.dropped.Add(1)
	}
}

// Attach subscribes a consumer to the scalar output stream.
func (cs *ComponentSplitter[S]) Attach(c Consumer[S]) (*Subscription[S], error) {
	return cs.out.Attach(c)
}

// Stats returns statistics for the scalar output stream.
func (cs *ComponentSplitter[S]) Stats() Stats {
	return cs.out.Stats()
}

// Close drains and closes the scalar output stream.
func (cs *ComponentSplitter[S]) Close() error {
	return cs.out.Close()
}
