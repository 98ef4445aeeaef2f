package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// OpenCaseTx performs the purchase half of a case open as one transaction:
// lock the user's balance row, check it covers price, debit, insert an
// owned inventory record for itemID, and write the audit ledger entry.
// Either all of it commits or none of it does.
func (s *Store) OpenCaseTx(ctx context.Context, userID, caseID, itemID string, price int64) (*InventoryRecord, int64, error) {
	if price <= 0 {
		return nil, 0, ErrInvalidAmount
	}
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback(ctx)

	var bal int64
	row := tx.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1 FOR UPDATE`, userID)
	if err := row.Scan(&bal); err != nil {
		return nil, 0, mapNotFound(err)
	}
	if bal < price {
		return nil, 0, ErrInsufficientBalance
	}
	newBal := bal - price
	if _, err := tx.Exec(ctx, `UPDATE users SET balance = $1 WHERE id = $2`, newBal, userID); err != nil {
		return nil, 0, err
	}

	rec := InventoryRecord{ID: NewID(), UserID: userID, ItemID: itemID, Status: InvOwned}
	row = tx.QueryRow(ctx, `
		INSERT INTO inventory (id, user_id, item_id, status) VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, rec.ID, rec.UserID, rec.ItemID, rec.Status)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		return nil, 0, err
	}
	if err := insertLedgerEntry(ctx, tx, userID, "case_debit", -price, "case", caseID); err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return &rec, newBal, nil
}

// SellTx converts an owned inventory record back into balance: lock the
// record, verify ownership and status, mark it sold, and credit the item's
// configured value. Returns the credited value and the new balance.
func (s *Store) SellTx(ctx context.Context, userID, inventoryID string) (int64, int64, error) {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback(ctx)

	var status string
	var value int64
	row := tx.QueryRow(ctx, `
		SELECT inv.status, it.value
		FROM inventory inv
		JOIN items it ON it.id = inv.item_id
		WHERE inv.id = $1 AND inv.user_id = $2
		FOR UPDATE OF inv
	`, inventoryID, userID)
	if err := row.Scan(&status, &value); err != nil {
		return 0, 0, mapNotFound(err)
	}
	if status != InvOwned {
		return 0, 0, ErrInvalidState
	}
	if _, err := tx.Exec(ctx, `UPDATE inventory SET status = $1 WHERE id = $2`, InvSold, inventoryID); err != nil {
		return 0, 0, err
	}
	var newBal int64
	row = tx.QueryRow(ctx, `UPDATE users SET balance = balance + $1 WHERE id = $2 RETURNING balance`, value, userID)
	if err := row.Scan(&newBal); err != nil {
		return 0, 0, err
	}
	if err := insertLedgerEntry(ctx, tx, userID, "sale_credit", value, "inventory", inventoryID); err != nil {
		return 0, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, 0, err
	}
	return value, newBal, nil
}

func (s *Store) ListInventory(ctx context.Context, userID string, limit, offset int) ([]InventoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT inv.id, inv.user_id, inv.item_id, inv.status, inv.created_at,
		       it.id, it.name, it.rarity, it.image, it.value, it.created_at
		FROM inventory inv
		JOIN items it ON it.id = inv.item_id
		WHERE inv.user_id = $1
		ORDER BY inv.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []InventoryEntry{}
	for rows.Next() {
		var e InventoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ItemID, &e.Status, &e.CreatedAt,
			&e.Item.ID, &e.Item.Name, &e.Item.Rarity, &e.Item.Image, &e.Item.Value, &e.Item.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) GetInventoryRecord(ctx context.Context, id string) (*InventoryRecord, error) {
	row := s.Pool.QueryRow(ctx, `SELECT id, user_id, item_id, status, created_at FROM inventory WHERE id = $1`, id)
	var r InventoryRecord
	if err := row.Scan(&r.ID, &r.UserID, &r.ItemID, &r.Status, &r.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &r, nil
}
