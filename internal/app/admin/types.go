package admin

import (
	"time"

	"case-armory/internal/store"
)

type CreateItemInput struct {
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Image  string `json:"image"`
	Value  int64  `json:"value"`
}

type ItemsResponse struct {
	Items  []store.Item `json:"items"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

type CreateCaseInput struct {
	Title string `json:"title"`
	Price int64  `json:"price"`
	Cover string `json:"cover"`
}

type AddCaseItemInput struct {
	ItemID string `json:"item_id"`
	Weight int64  `json:"weight"`
}

type TopupInput struct {
	ExternalID string `json:"external_id"`
	Amount     int64  `json:"amount"`
}

type TopupResponse struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

type WithdrawalsResponse struct {
	Items  []WithdrawalItem `json:"items"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type WithdrawalItem struct {
	RequestID   string    `json:"request_id"`
	UserID      string    `json:"user_id"`
	InventoryID string    `json:"inventory_id"`
	Note        string    `json:"note"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	ItemName    string    `json:"item_name"`
	ItemRarity  string    `json:"item_rarity"`
	ItemImage   string    `json:"item_image"`
	ItemValue   int64     `json:"item_value"`
}

type ResolveWithdrawInput struct {
	Decision string `json:"decision"`
}

type ResolveWithdrawResponse struct {
	RequestID   string `json:"request_id"`
	InventoryID string `json:"inventory_id"`
	Status      string `json:"status"`
}

type LedgerResponse struct {
	Items  []store.LedgerEntry `json:"items"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}
