package pg_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"projectview/internal/domain"
	"projectview/internal/domain/preference"
	"projectview/internal/infrastructure/db/pg"
)

const migrationsDir = "../../../../migrations"

var migrateOnce sync.Once

// getTestDB connects to TEST_DATABASE_URL and skips when it is not set.
func getTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := pg.Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var migErr error
	migrateOnce.Do(func() {
		migErr = pg.Migrate(db, migrationsDir)
	})
	if migErr != nil {
		t.Fatalf("migrate: %v", migErr)
	}

	if _, err := db.ExecContext(ctx, `TRUNCATE TABLE view_preferences`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	return db
}

func TestPreferenceRepository_CRUD(t *testing.T) {
	db := getTestDB(t)
	repo := pg.NewPreferenceRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "ws", "size")
	var de *domain.DomainError
	if !errors.As(err, &de) || de.Code != domain.ErrorCodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	saved, err := repo.Upsert(ctx, preference.Preference{Workspace: "ws", Key: "size", Value: json.RawMessage(`50`)})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if saved.UpdatedAt.IsZero() {
		t.Fatalf("expected updated_at")
	}

	if _, err := repo.Upsert(ctx, preference.Preference{Workspace: "ws", Key: "size", Value: json.RawMessage(`25`)}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.Get(ctx, "ws", "size")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got.Value) != "25" {
		t.Fatalf("unexpected value %s", got.Value)
	}

	if _, err := repo.Upsert(ctx, preference.Preference{Workspace: "ws", Key: "order", Value: json.RawMessage(`["a","b"]`)}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if _, err := repo.Upsert(ctx, preference.Preference{Workspace: "other", Key: "size", Value: json.RawMessage(`10`)}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	many, err := repo.GetMany(ctx, "ws", []string{"size", "order", "missing"})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(many) != 2 || many[0].Key != "order" || many[1].Key != "size" {
		t.Fatalf("unexpected preferences %+v", many)
	}

	if err := repo.Delete(ctx, "ws", "size"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "ws", "size"); !errors.As(err, &de) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestUnitOfWork_RollsBack(t *testing.T) {
	db := getTestDB(t)
	repo := pg.NewPreferenceRepository(db)
	uow := pg.NewUnitOfWork(db)
	svc := preference.NewService(uow, repo, nil)
	ctx := context.Background()

	err := svc.SaveMany(ctx, "ws", preference.Values{
		"a-key": json.RawMessage(`1`),
		"b-key": json.RawMessage(`2`),
	})
	if err != nil {
		t.Fatalf("SaveMany: %v", err)
	}

	boom := errors.New("boom")
	err = uow.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := repo.Upsert(ctx, preference.Preference{Workspace: "ws", Key: "a-key", Value: json.RawMessage(`99`)}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, err := repo.Get(ctx, "ws", "a-key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got.Value) != "1" {
		t.Fatalf("rolled back write is visible: %s", got.Value)
	}
}
