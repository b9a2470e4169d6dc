package tx

import "context"

// Manager wraps the record-store write and the index reprojection that follow
// a quest mutation in one boundary.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
