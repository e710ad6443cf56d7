package project

import "context"

// Source fetches the two paginated listings the merge is built from.
// Implementations translate backend client errors (4xx) into
// *domain.DomainError; any other error is treated as transient.
type Source interface {
	ListProjects(ctx context.Context, p ListParams) (*Snapshot, error)
	ListProjectStatistics(ctx context.Context, p ListParams) (*Snapshot, error)
}
