package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/lignum-storefront/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB — часть *pgxpool.Pool, которой пользуются репозитории.
type DB interface {
	tr.Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

const uniqueViolationCode = "23505"

// postgresDuplicate сообщает, что запись нарушила уникальный индекс.
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
