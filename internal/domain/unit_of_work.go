package domain

import "context"

// UnitOfWork runs fn in a transaction. Repositories called with the ctx
// passed to fn take part in it; a non-nil error rolls it back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
