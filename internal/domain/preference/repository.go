package preference

import "context"

type Repository interface {
	Get(ctx context.Context, workspace, key string) (Preference, error)
	GetMany(ctx context.Context, workspace string, keys []string) ([]Preference, error)
	Upsert(ctx context.Context, p Preference) (Preference, error)
	Delete(ctx context.Context, workspace, key string) error
}
