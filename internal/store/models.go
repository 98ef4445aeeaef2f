package store

import "time"

// InventoryRecord lifecycle. Transitions are one-directional; sold and
// withdraw_done are terminal. A rejected withdrawal puts the record back
// to owned.
const (
	InvOwned             = "owned"
	InvSold              = "sold"
	InvWithdrawRequested = "withdraw_requested"
	InvWithdrawDone      = "withdraw_done"
)

const (
	WithdrawPending  = "pending"
	WithdrawApproved = "approved"
	WithdrawRejected = "rejected"
	WithdrawDone     = "done"
)

type User struct {
	ID         string
	ExternalID string
	Balance    int64
	CreatedAt  time.Time
}

type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rarity    string    `json:"rarity"`
	Image     string    `json:"image"`
	Value     int64     `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

type Case struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Price     int64     `json:"price"`
	Cover     string    `json:"cover"`
	CreatedAt time.Time `json:"created_at"`
}

// CaseDrop is one weighted outcome of a case.
type CaseDrop struct {
	Item   Item
	Weight int64
}

type InventoryRecord struct {
	ID        string
	UserID    string
	ItemID    string
	Status    string
	CreatedAt time.Time
}

// InventoryEntry is an inventory record joined with its item metadata.
type InventoryEntry struct {
	InventoryRecord
	Item Item
}

type WithdrawRequest struct {
	ID          string
	UserID      string
	InventoryID string
	Note        string
	Status      string
	CreatedAt   time.Time
}

// WithdrawRequestDetail joins the request with the item under withdrawal.
type WithdrawRequestDetail struct {
	WithdrawRequest
	Item Item
}

type LedgerEntry struct {
	ID        string
	UserID    string
	Type      string
	Amount    int64
	RefType   string
	RefID     string
	CreatedAt time.Time
}
