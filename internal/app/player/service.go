package player

import (
	"context"
	"errors"

	"case-armory/internal/gacha"
	"case-armory/internal/store"

	"github.com/rs/zerolog/log"
)

type Service struct {
	store  *store.Store
	drawer *gacha.Drawer
}

func NewService(st *store.Store, drawer *gacha.Drawer) *Service {
	return &Service{store: st, drawer: drawer}
}

func (s *Service) Me(ctx context.Context, user *store.User) (*MeResponse, error) {
	if user == nil {
		return nil, ErrInvalidRequest
	}
	balance, err := s.store.GetUserBalance(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &MeResponse{
		UserID:     user.ID,
		ExternalID: user.ExternalID,
		Balance:    balance,
		CreatedAt:  user.CreatedAt,
	}, nil
}

func (s *Service) Cases(ctx context.Context) (*CasesResponse, error) {
	items, err := s.store.ListCases(ctx)
	if err != nil {
		return nil, err
	}
	return &CasesResponse{Items: items}, nil
}

func (s *Service) Inventory(ctx context.Context, userID string, limit, offset int) (*InventoryResponse, error) {
	entries, err := s.store.ListInventory(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]InventoryItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, InventoryItem{
			InventoryID: e.ID,
			Status:      e.Status,
			CreatedAt:   e.CreatedAt,
			Item:        itemView(e.Item),
		})
	}
	return &InventoryResponse{Items: out, Limit: limit, Offset: offset}, nil
}

// OpenCase is the purchase transaction: resolve the case, check the
// balance covers its price, draw one weighted item, then debit and credit
// the inventory atomically. The in-transaction balance check is the
// authoritative one; the early check only orders the error ahead of
// case_empty for broke users.
func (s *Service) OpenCase(ctx context.Context, userID, caseID string) (*OpenCaseResponse, error) {
	if caseID == "" {
		return nil, ErrInvalidRequest
	}
	c, err := s.store.GetCase(ctx, caseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	balance, err := s.store.GetUserBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance < c.Price {
		return nil, ErrInsufficientBalance
	}
	drops, err := s.store.ListCaseDrops(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if len(drops) == 0 {
		return nil, ErrCaseEmpty
	}
	drop, err := s.drawer.Draw(drops)
	if err != nil {
		return nil, ErrCaseEmpty
	}
	rec, newBal, err := s.store.OpenCaseTx(ctx, userID, caseID, drop.Item.ID, c.Price)
	if err != nil {
		if errors.Is(err, store.ErrInsufficientBalance) {
			return nil, ErrInsufficientBalance
		}
		return nil, err
	}
	log.Info().
		Str("user_id", userID).
		Str("case_id", caseID).
		Str("item_id", drop.Item.ID).
		Int64("price", c.Price).
		Msg("case opened")
	return &OpenCaseResponse{
		Case:        *c,
		Drop:        itemView(drop.Item),
		InventoryID: rec.ID,
		Balance:     newBal,
	}, nil
}

func (s *Service) Sell(ctx context.Context, userID, inventoryID string) (*SellResponse, error) {
	if inventoryID == "" {
		return nil, ErrInvalidRequest
	}
	credited, newBal, err := s.store.SellTx(ctx, userID, inventoryID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return &SellResponse{InventoryID: inventoryID, Credited: credited, Balance: newBal}, nil
}

func (s *Service) RequestWithdraw(ctx context.Context, userID, inventoryID, note string) (*WithdrawResponse, error) {
	if inventoryID == "" {
		return nil, ErrInvalidRequest
	}
	reqID, err := s.store.RequestWithdrawTx(ctx, userID, inventoryID, note)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return &WithdrawResponse{RequestID: reqID, InventoryID: inventoryID, Status: store.WithdrawPending}, nil
}

func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrInvalidState):
		return ErrInvalidState
	case errors.Is(err, store.ErrInsufficientBalance):
		return ErrInsufficientBalance
	default:
		return err
	}
}

func itemView(it store.Item) ItemView {
	return ItemView{
		ItemID: it.ID,
		Name:   it.Name,
		Rarity: it.Rarity,
		Image:  it.Image,
		Value:  it.Value,
	}
}
