package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// EnsureUser returns the user for externalID, creating it with the given
// starting balance on first sight. A positive starting balance gets a
// starting_balance ledger entry in the same transaction as the insert, so
// the seed is visible in the audit trail like every other mutation.
func (s *Store) EnsureUser(ctx context.Context, externalID string, startingBalance int64) (*User, error) {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var u User
	row := tx.QueryRow(ctx, `
		INSERT INTO users (id, external_id, balance) VALUES ($1,$2,$3)
		ON CONFLICT (external_id) DO NOTHING
		RETURNING id, external_id, balance, created_at
	`, NewID(), externalID, startingBalance)
	err = row.Scan(&u.ID, &u.ExternalID, &u.Balance, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Conflict: the identity already exists, nothing was written.
		return s.GetUserByExternalID(ctx, externalID)
	}
	if err != nil {
		return nil, err
	}
	if startingBalance > 0 {
		if err := insertLedgerEntry(ctx, tx, u.ID, "starting_balance", startingBalance, "signup", u.ID); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByExternalID(ctx context.Context, externalID string) (*User, error) {
	row := s.Pool.QueryRow(ctx, `SELECT id, external_id, balance, created_at FROM users WHERE external_id = $1`, externalID)
	var u User
	if err := row.Scan(&u.ID, &u.ExternalID, &u.Balance, &u.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*User, error) {
	row := s.Pool.QueryRow(ctx, `SELECT id, external_id, balance, created_at FROM users WHERE id = $1`, id)
	var u User
	if err := row.Scan(&u.ID, &u.ExternalID, &u.Balance, &u.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

func (s *Store) GetUserBalance(ctx context.Context, userID string) (int64, error) {
	row := s.Pool.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1`, userID)
	var bal int64
	if err := row.Scan(&bal); err != nil {
		return 0, mapNotFound(err)
	}
	return bal, nil
}

// Credit adds amount to the user's balance and records a ledger entry in
// the same transaction. Returns the new balance.
func (s *Store) Credit(ctx context.Context, userID string, amount int64, entryType, refType, refID string) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var bal int64
	row := tx.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1 FOR UPDATE`, userID)
	if err := row.Scan(&bal); err != nil {
		return 0, mapNotFound(err)
	}
	newBal := bal + amount
	if _, err := tx.Exec(ctx, `UPDATE users SET balance = $1 WHERE id = $2`, newBal, userID); err != nil {
		return 0, err
	}
	if err := insertLedgerEntry(ctx, tx, userID, entryType, amount, refType, refID); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newBal, nil
}
