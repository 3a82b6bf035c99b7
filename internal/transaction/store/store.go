package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a row in selectColumns order.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr string

	var subtitle, receipt sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.Owner, &typeStr, &tx.Category, &subtitle, &tx.Amount, &tx.Currency,
		&tx.Description, &tx.Date, &receipt, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)

	if subtitle.Valid {
		tx.Subtitle = &subtitle.String
	}

	if receipt.Valid {
		tx.ReceiptRef = &receipt.String
	}

	return &tx, nil
}

const selectColumns = `
	id, owner, type, category, subtitle, amount, currency,
	description, date, receipt_ref, created_at, updated_at
`

const insertQuery = `
	INSERT INTO transactions (owner, type, category, subtitle, amount, currency, description, date, receipt_ref, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, clock_timestamp(), clock_timestamp())
	RETURNING id, created_at
`

// listOrder is insertion order. seq is assigned per row, so rows written by
// one bulk insert keep their input order.
const listOrder = " ORDER BY created_at ASC, seq ASC"

// execer lets inserts run against the pool or inside a sql.Tx.
type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insert(ctx context.Context, db execer, tx *transaction.Transaction) error {
	return db.QueryRowContext(ctx, insertQuery,
		tx.Owner,
		tx.Type,
		tx.Category,
		tx.Subtitle,
		tx.Amount,
		tx.Currency,
		tx.Description,
		tx.Date,
		tx.ReceiptRef,
	).Scan(&tx.ID, &tx.CreatedAt)
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	if err := insert(ctx, s.db, tx); err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

// CreateTransactions inserts every row inside one database transaction.
// Either all rows land and their count is returned, or none do.
func (s *Store) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) (int, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning bulk insert: %w", err)
	}
	defer dbTx.Rollback()

	count := 0

	for _, tx := range txs {
		if err := insert(ctx, dbTx, tx); err != nil {
			return 0, fmt.Errorf("inserting transaction %d: %w", count, err)
		}

		count++
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("committing bulk insert: %w", err)
	}

	return count, nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectColumns + `
		FROM transactions
		WHERE id = $1 AND deleted_at IS NULL`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectColumns + `
		FROM transactions
		WHERE deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Owner != nil {
		query += fmt.Sprintf(" AND owner = $%d", argIdx)

		args = append(args, *filter.Owner)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += listOrder

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET owner = $1, type = $2, category = $3, subtitle = $4, amount = $5, currency = $6,
			description = $7, date = $8, receipt_ref = $9, updated_at = NOW()
		WHERE id = $10 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query,
		tx.Owner,
		tx.Type,
		tx.Category,
		tx.Subtitle,
		tx.Amount,
		tx.Currency,
		tx.Description,
		tx.Date,
		tx.ReceiptRef,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return requireAffected(res)
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE transactions
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}
