package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// lockBalance acquires an exclusive, transaction-scoped lock on the account
// row and returns its balance. Every read that feeds a debit or credit
// decision goes through here, so concurrent mutators of the same account
// serialize on the row lock.
func lockBalance(ctx context.Context, tx pgx.Tx, accountID string) (int64, error) {
	var balance int64
	err := tx.QueryRow(ctx,
		`SELECT balance FROM wallet_accounts WHERE account_id = $1 FOR UPDATE`,
		accountID,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	if err != nil {
		return 0, fmt.Errorf("lock account %s: %w", accountID, err)
	}
	return balance, nil
}

// adjustBalance applies balance += delta. The caller must already hold the
// row lock from lockBalance; sufficiency for negative deltas is the
// caller's responsibility.
func adjustBalance(ctx context.Context, tx pgx.Tx, accountID string, delta int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE wallet_accounts SET balance = balance + $1, updated_at = now() WHERE account_id = $2`,
		delta, accountID,
	)
	if err != nil {
		return fmt.Errorf("adjust account %s: %w", accountID, err)
	}
	return nil
}

// Balance is a plain read used by CheckBalance; it takes no lock.
func (s *Store) Balance(ctx context.Context, accountID string) (int64, error) {
	var balance int64
	err := s.pool.QueryRow(ctx,
		`SELECT balance FROM wallet_accounts WHERE account_id = $1`,
		accountID,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	if err != nil {
		return 0, fmt.Errorf("read account %s: %w", accountID, err)
	}
	return balance, nil
}

// CreateAccount inserts a wallet account with an opening balance. Used by
// the seeder and tests.
func (s *Store) CreateAccount(ctx context.Context, accountID string, balance int64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO wallet_accounts (account_id, balance, created_at, updated_at)
		 VALUES ($1, $2, now(), now())`,
		accountID, balance,
	)
	if err != nil {
		return fmt.Errorf("create account %s: %w", accountID, err)
	}
	return nil
}

// StuckPending lists reservations that have sat in PENDING longer than
// maxAge. The reconciler rolls them back through the normal path.
func (s *Store) StuckPending(ctx context.Context, maxAge time.Duration, limit int) ([]string, error) {
	cutoff := time.Now().Add(-maxAge)
	rows, err := s.pool.Query(ctx,
		`SELECT reservation_id::text FROM reservations
		 WHERE status = 'PENDING' AND created_at < $1
		 ORDER BY created_at LIMIT $2`,
		cutoff, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list stuck reservations: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan reservation id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
