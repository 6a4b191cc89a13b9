package stream

import "sync/atomic"

// Stats is a point-in-time snapshot of producer activity.
type Stats struct {
	Emitted     uint64 // Samples accepted by Emit
	Delivered   uint64 // Individual consumer deliveries
	Dropped     uint64 // Samples not delivered (canceled or undeliverable)
	Subscribers int    // Currently attached consumers
}

type counters struct {
	emitted   atomic.Uint64
	delivered atomic.Uint64
	dropped   atomic.Uint64
}

func (c *counters) snapshot(subscribers int) Stats {
	return Stats{
		Emitted:     c.emitted.Load(),
		Delivered:   c.delivered.Load(),
		Dropped:     c.dropped.Load(),
		Subscribers: subscribers,
	}
}
