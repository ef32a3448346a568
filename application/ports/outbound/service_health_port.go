package outbound

import "context"

// ServiceHealthPort reports reachability of every pipeline collaborator,
// keyed by service name.
type ServiceHealthPort interface {
	CheckAll(ctx context.Context) map[string]bool
}
