package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	trmcontext "github.com/avito-tech/go-transaction-manager/trm/v2/context"
	trmmanager "github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"projectview/internal/domain"
)

// Open connects to Postgres through the pgx stdlib driver and waits for the
// server to answer a ping.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

func Migrate(db *sql.DB, dir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

type unitOfWork struct {
	tm trm.Manager
}

// NewUnitOfWork returns a UnitOfWork whose transaction is carried in the
// context, so repositories called inside WithinTx join it.
func NewUnitOfWork(db *sql.DB) domain.UnitOfWork {
	return &unitOfWork{
		tm: trmmanager.Must(
			trmsql.NewDefaultFactory(db),
			trmmanager.WithCtxManager(trmcontext.DefaultManager),
		),
	}
}

func (u *unitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return u.tm.Do(ctx, fn)
}

// conn is the active transaction of ctx, or db outside of one.
func conn(ctx context.Context, db *sql.DB) trmsql.Tr {
	return trmsql.DefaultCtxGetter.DefaultTrOrDB(ctx, db)
}
