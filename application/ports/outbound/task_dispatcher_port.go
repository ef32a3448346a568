package outbound

// TaskDispatcher submits work to a bounded pool. *ants.Pool satisfies it.
type TaskDispatcher interface {
	Submit(task func()) error
}
