package repository

import (
	"context"
	"database/sql"
)

// DBTX is the common interface satisfied by both *sqlx.DB and
// *sqlx.Tx, letting repositories run either standalone or inside an
// ambient transaction.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}
