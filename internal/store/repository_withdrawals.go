package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const maxWithdrawNoteLen = 200

// RequestWithdrawTx moves an owned inventory record to withdraw_requested
// and creates its pending withdraw request in the same transaction. The
// one-directional status transition guarantees at most one pending request
// per record. Notes are capped at 200 characters, counted in runes so a
// multi-byte note is never cut mid-character.
func (s *Store) RequestWithdrawTx(ctx context.Context, userID, inventoryID, note string) (string, error) {
	if r := []rune(note); len(r) > maxWithdrawNoteLen {
		note = string(r[:maxWithdrawNoteLen])
	}
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var status string
	row := tx.QueryRow(ctx, `SELECT status FROM inventory WHERE id = $1 AND user_id = $2 FOR UPDATE`, inventoryID, userID)
	if err := row.Scan(&status); err != nil {
		return "", mapNotFound(err)
	}
	if status != InvOwned {
		return "", ErrInvalidState
	}
	if _, err := tx.Exec(ctx, `UPDATE inventory SET status = $1 WHERE id = $2`, InvWithdrawRequested, inventoryID); err != nil {
		return "", err
	}
	reqID := NewID()
	if _, err := tx.Exec(ctx, `
		INSERT INTO withdraw_requests (id, user_id, inventory_id, note, status)
		VALUES ($1,$2,$3,$4,$5)
	`, reqID, userID, inventoryID, note, WithdrawPending); err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return reqID, nil
}

// ResolveWithdrawTx transitions a withdraw request and keeps the linked
// inventory record consistent:
//
//	pending  -> approved   inventory stays withdraw_requested
//	pending  -> rejected   inventory returns to owned
//	pending  -> done       inventory becomes withdraw_done
//	approved -> done       inventory becomes withdraw_done
//
// Everything else is an invalid transition.
func (s *Store) ResolveWithdrawTx(ctx context.Context, requestID, decision string) (*WithdrawRequest, error) {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var req WithdrawRequest
	row := tx.QueryRow(ctx, `
		SELECT id, user_id, inventory_id, note, status, created_at
		FROM withdraw_requests WHERE id = $1 FOR UPDATE
	`, requestID)
	if err := row.Scan(&req.ID, &req.UserID, &req.InventoryID, &req.Note, &req.Status, &req.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}

	var invStatus string
	switch {
	case req.Status == WithdrawPending && decision == WithdrawApproved:
		invStatus = InvWithdrawRequested
	case req.Status == WithdrawPending && decision == WithdrawRejected:
		invStatus = InvOwned
	case (req.Status == WithdrawPending || req.Status == WithdrawApproved) && decision == WithdrawDone:
		invStatus = InvWithdrawDone
	default:
		return nil, ErrInvalidState
	}

	if _, err := tx.Exec(ctx, `UPDATE withdraw_requests SET status = $1 WHERE id = $2`, decision, requestID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `UPDATE inventory SET status = $1 WHERE id = $2`, invStatus, req.InventoryID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	req.Status = decision
	return &req, nil
}

func (s *Store) GetWithdrawRequest(ctx context.Context, id string) (*WithdrawRequest, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT id, user_id, inventory_id, note, status, created_at
		FROM withdraw_requests WHERE id = $1
	`, id)
	var req WithdrawRequest
	if err := row.Scan(&req.ID, &req.UserID, &req.InventoryID, &req.Note, &req.Status, &req.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &req, nil
}

func (s *Store) ListWithdrawRequests(ctx context.Context, limit, offset int) ([]WithdrawRequestDetail, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT wr.id, wr.user_id, wr.inventory_id, wr.note, wr.status, wr.created_at,
		       it.id, it.name, it.rarity, it.image, it.value, it.created_at
		FROM withdraw_requests wr
		JOIN inventory inv ON inv.id = wr.inventory_id
		JOIN items it ON it.id = inv.item_id
		ORDER BY wr.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []WithdrawRequestDetail{}
	for rows.Next() {
		var d WithdrawRequestDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.InventoryID, &d.Note, &d.Status, &d.CreatedAt,
			&d.Item.ID, &d.Item.Name, &d.Item.Rarity, &d.Item.Image, &d.Item.Value, &d.Item.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
