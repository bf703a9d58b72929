package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/wizardbeardstudio/centralbank/internal/domain"
)

// PostgresStore persists the ledger in a `ledger_transactions` table via
// database/sql over the pgx/v5 stdlib driver, the same pairing the teacher
// uses for its own ledger persistence.
type PostgresStore struct {
	db *sql.DB
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS ledger_transactions (
	id            BIGINT PRIMARY KEY,
	performed_at  TIMESTAMPTZ NOT NULL,
	hash_prev     TEXT NOT NULL,
	hash_curr     TEXT NOT NULL,
	transaction   JSONB NOT NULL
)`

// OpenPostgresStore connects, creates the ledger table if it does not
// already exist (there is no migration framework — see spec.md's "no
// schema migrations" non-goal), and returns a ready store.
func OpenPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure ledger table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Append(ctx context.Context, tx domain.Transaction) error {
	raw, err := domain.MarshalTransaction(tx)
	if err != nil {
		return err
	}

	dbtx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ledger append: %w", err)
	}
	defer func() { _ = dbtx.Rollback() }()

	var last sql.NullString
	row := dbtx.QueryRowContext(ctx, `SELECT hash_curr FROM ledger_transactions ORDER BY id DESC LIMIT 1`)
	if err := row.Scan(&last); err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("read last hash: %w", err)
	}
	prevHash := genesisHash
	if last.Valid {
		prevHash = last.String
	}

	const insert = `
INSERT INTO ledger_transactions (id, performed_at, hash_prev, hash_curr, transaction)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING`
	_, err = dbtx.ExecContext(ctx, insert, tx.ID, tx.PerformedAt, prevHash, computeHash(prevHash, raw), raw)
	if err != nil {
		return fmt.Errorf("insert ledger transaction: %w", err)
	}
	return dbtx.Commit()
}

func (s *PostgresStore) Scan(ctx context.Context) ([]domain.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT hash_prev, hash_curr, transaction FROM ledger_transactions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("scan ledger: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	prev := genesisHash
	for rows.Next() {
		var hashPrev, hashCurr string
		var raw json.RawMessage
		if err := rows.Scan(&hashPrev, &hashCurr, &raw); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		if hashPrev != prev || computeHash(prev, raw) != hashCurr {
			return nil, ErrCorruptChain
		}
		prev = hashCurr
		tx, err := domain.UnmarshalTransaction(raw)
		if err != nil {
			return nil, fmt.Errorf("decode ledger transaction: %w", err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan ledger: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
