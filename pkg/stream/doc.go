// Package stream provides the producer/consumer plumbing that feeds
// samples into accumulators.
//
// # Overview
//
// A Producer fans each emitted sample out to every attached Consumer,
// synchronously, in the emitting goroutine. Consumers attach through
// subscriptions and detach by closing them.
//
//	p := stream.NewProducer[float64](stream.WithName("sampler"))
//
//	sub, err := p.Attach(myConsumer)
//	if err != nil {
//		return err
//	}
//
//	for _, v := range samples {
//		if err := p.Emit(ctx, v, nil); err != nil {
//			return err
//		}
//	}
//
//	_ = sub.Close() // myConsumer sees no further samples
//	_ = p.Close()
//
// # Teardown Contract
//
// Both Subscription.Close and Producer.Close wait for deliveries already
// in flight before returning. A consumer may therefore be destroyed the
// moment its subscription's Close returns; no Consume call can still be
// running or arrive later. The price is that a consumer must never close
// its own subscription from inside Consume.
//
// # Vector Streams
//
// ComponentSplitter bridges vector-valued producers to scalar consumers by
// re-emitting a single coordinate:
//
//	split, _ := stream.NewComponentSplitter[float64](0)
//	sub, _ := vecProducer.Attach(split)     // split is a Consumer[[]float64]
//	hsub, _ := split.Attach(myHistogram)    // histogram sees component 0
package stream
