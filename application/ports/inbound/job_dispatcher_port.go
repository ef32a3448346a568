package inbound

import "context"

// JobDispatcherPort consumes the pending queue with a bounded set of
// workers. Start returns after the workers are launched; they stop when the
// context is cancelled.
type JobDispatcherPort interface {
	Start(ctx context.Context) error
}
