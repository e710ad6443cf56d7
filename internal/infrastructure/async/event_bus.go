package async

import (
	"context"

	"go.uber.org/zap"

	"projectview/internal/domain"
)

// AsyncEventBus writes domain events to the log from a worker pool so
// that publishing never blocks a request.
type AsyncEventBus struct {
	pool *WorkerPool
	log  *zap.Logger
}

func NewAsyncEventBus(ctx context.Context, poolSize int, log *zap.Logger) *AsyncEventBus {
	return &AsyncEventBus{
		pool: NewWorkerPool(ctx, poolSize, log),
		log:  log,
	}
}

func (b *AsyncEventBus) Publish(ctx context.Context, e domain.Event) {
	ok := b.pool.Submit(func(_ context.Context) {
		b.log.Info("domain_event",
			zap.String("type", e.Type),
			zap.String("workspace", e.Workspace),
			zap.Any("payload", e.Payload),
		)
	})
	if !ok {
		b.log.Debug("event dropped",
			zap.String("type", e.Type),
			zap.String("workspace", e.Workspace),
		)
	}
}

func (b *AsyncEventBus) Close() {
	b.pool.Shutdown()
}
