package player

import (
	"time"

	"case-armory/internal/store"
)

type MeResponse struct {
	UserID     string    `json:"user_id"`
	ExternalID string    `json:"external_id"`
	Balance    int64     `json:"balance"`
	CreatedAt  time.Time `json:"created_at"`
}

type CasesResponse struct {
	Items []store.Case `json:"items"`
}

type InventoryResponse struct {
	Items  []InventoryItem `json:"items"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type InventoryItem struct {
	InventoryID string    `json:"inventory_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	Item        ItemView  `json:"item"`
}

type ItemView struct {
	ItemID string `json:"item_id"`
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Image  string `json:"image"`
	Value  int64  `json:"value"`
}

type OpenCaseResponse struct {
	Case        store.Case `json:"case"`
	Drop        ItemView   `json:"drop"`
	InventoryID string     `json:"inventory_id"`
	Balance     int64      `json:"balance"`
}

type SellResponse struct {
	InventoryID string `json:"inventory_id"`
	Credited    int64  `json:"credited"`
	Balance     int64  `json:"balance"`
}

type WithdrawResponse struct {
	RequestID   string `json:"request_id"`
	InventoryID string `json:"inventory_id"`
	Status      string `json:"status"`
}
