package queue

import "context"

// Source reads annotation queues and their items from the backend.
type Source interface {
	GetAnnotationQueue(ctx context.Context, workspace, id string) (AnnotationQueue, error)
	ListTraces(ctx context.Context, p ItemsParams) (*ItemsPage, error)
	ListThreads(ctx context.Context, p ItemsParams) (*ItemsPage, error)
}
