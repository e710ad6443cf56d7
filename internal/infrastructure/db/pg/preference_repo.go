package pg

import (
	"context"
	"database/sql"
	"errors"

	"projectview/internal/domain"
	"projectview/internal/domain/preference"
)

type PreferenceRepository struct {
	db *sql.DB
}

func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

func (r *PreferenceRepository) Get(ctx context.Context, workspace, key string) (preference.Preference, error) {
	p := preference.Preference{Workspace: workspace, Key: key}
	var value []byte
	err := conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT value, updated_at
		   FROM view_preferences
		  WHERE workspace = $1 AND pref_key = $2`,
		workspace, key,
	).Scan(&value, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return preference.Preference{}, domain.NotFound("preference not found")
	}
	if err != nil {
		return preference.Preference{}, err
	}
	p.Value = value
	return p, nil
}

func (r *PreferenceRepository) GetMany(ctx context.Context, workspace string, keys []string) ([]preference.Preference, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT pref_key, value, updated_at
		   FROM view_preferences
		  WHERE workspace = $1 AND pref_key = ANY($2)
		  ORDER BY pref_key`,
		workspace, keys,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []preference.Preference
	for rows.Next() {
		p := preference.Preference{Workspace: workspace}
		var value []byte
		if err := rows.Scan(&p.Key, &value, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Value = value
		res = append(res, p)
	}

	return res, rows.Err()
}

func (r *PreferenceRepository) Upsert(ctx context.Context, p preference.Preference) (preference.Preference, error) {
	err := conn(ctx, r.db).QueryRowContext(ctx,
		`INSERT INTO view_preferences (workspace, pref_key, value, updated_at)
		 VALUES ($1, $2, $3::jsonb, NOW())
		 ON CONFLICT (workspace, pref_key) DO UPDATE
		   SET value = EXCLUDED.value,
		       updated_at = NOW()
		 RETURNING updated_at`,
		p.Workspace, p.Key, string(p.Value),
	).Scan(&p.UpdatedAt)
	if err != nil {
		return preference.Preference{}, err
	}
	return p, nil
}

func (r *PreferenceRepository) Delete(ctx context.Context, workspace, key string) error {
	res, err := conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM view_preferences WHERE workspace = $1 AND pref_key = $2`,
		workspace, key,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound("preference not found")
	}
	return nil
}
