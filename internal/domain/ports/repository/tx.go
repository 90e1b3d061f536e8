package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

type Tx interface{}

// NoTX marks the non-transactional path; repositories accept it wherever a
// transaction handle is not needed.
var NoTX Tx

// TransactionManager executes a function within a database transaction,
// passing the underlying transaction handle via tx. The concrete type of tx is
// infra-defined (pgx.Tx for Postgres). Repositories must gracefully accept a
// nil tx and fall back to the pool.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
