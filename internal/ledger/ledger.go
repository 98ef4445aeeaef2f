package ledger

import (
	"context"

	"case-armory/internal/store"
)

// Ledger gives ledger entry types a single home so balance mutations done
// outside the store's own transactions stay consistently labelled.
type Ledger struct {
	Store *store.Store
}

func New(s *store.Store) *Ledger {
	return &Ledger{Store: s}
}

func (l *Ledger) CreditTopup(ctx context.Context, userID, refID string, amount int64) (int64, error) {
	return l.Store.Credit(ctx, userID, amount, "topup_credit", "topup", refID)
}

// CreditStartingBalance resolves an external identity to its user, granting
// the signup balance on first sight. Creation, balance seed and the
// starting_balance audit entry commit atomically; a known identity comes
// back untouched.
func (l *Ledger) CreditStartingBalance(ctx context.Context, externalID string, amount int64) (*store.User, error) {
	return l.Store.EnsureUser(ctx, externalID, amount)
}

func (l *Ledger) Entries(ctx context.Context, f store.LedgerFilter, limit, offset int) ([]store.LedgerEntry, error) {
	return l.Store.ListLedgerEntries(ctx, f, limit, offset)
}
