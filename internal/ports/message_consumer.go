package ports

import "context"

// MessageConsumer is a long-running background reader stopped by ctx or Close.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
