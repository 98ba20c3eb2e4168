package ports

import "context"

type ReadinessWaiter interface {
	WaitForDir(ctx context.Context, path string) error
}
