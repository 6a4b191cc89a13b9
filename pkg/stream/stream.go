package stream

// AuxData carries optional metadata alongside a sample, keyed by short
// descriptive strings. Producers may attach anything; consumers ignore
// keys they do not understand. A nil AuxData is valid and means no
// metadata.
type AuxData map[string]any

// Consumer receives samples from a producer. Consume is called in the
// emitting goroutine; implementations must be safe for concurrent calls
// when the producer emits from multiple goroutines.
type Consumer[S any] interface {
	Consume(sample S, aux AuxData)
}

// ConsumerFunc adapts a function to the Consumer interface.
type ConsumerFunc[S any] func(sample S, aux AuxData)

// Consume calls f(sample, aux).
func (f ConsumerFunc[S]) Consume(sample S, aux AuxData) {
	f(sample, aux)
}
