package admin

import (
	"context"
	"errors"
	"strings"

	"case-armory/internal/ledger"
	"case-armory/internal/store"

	"github.com/rs/zerolog/log"
)

type Service struct {
	store  *store.Store
	ledger *ledger.Ledger
}

func NewService(st *store.Store, led *ledger.Ledger) *Service {
	return &Service{store: st, ledger: led}
}

func (s *Service) CreateItem(ctx context.Context, in CreateItemInput) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Rarity = strings.TrimSpace(in.Rarity)
	if in.Rarity == "" {
		in.Rarity = "common"
	}
	if in.Name == "" || in.Value <= 0 {
		return "", ErrInvalidRequest
	}
	return s.store.CreateItem(ctx, in.Name, in.Rarity, strings.TrimSpace(in.Image), in.Value)
}

func (s *Service) Items(ctx context.Context, limit, offset int) (*ItemsResponse, error) {
	items, err := s.store.ListItems(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &ItemsResponse{Items: items, Limit: limit, Offset: offset}, nil
}

func (s *Service) CreateCase(ctx context.Context, in CreateCaseInput) (string, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.Price <= 0 {
		return "", ErrInvalidRequest
	}
	return s.store.CreateCase(ctx, in.Title, in.Price, strings.TrimSpace(in.Cover))
}

func (s *Service) AddCaseItem(ctx context.Context, caseID string, in AddCaseItemInput) (string, error) {
	if caseID == "" || in.ItemID == "" {
		return "", ErrInvalidRequest
	}
	if _, err := s.store.GetCase(ctx, caseID); err != nil {
		return "", mapStoreErr(err)
	}
	if _, err := s.store.GetItem(ctx, in.ItemID); err != nil {
		return "", mapStoreErr(err)
	}
	return s.store.AddCaseItem(ctx, caseID, in.ItemID, in.Weight)
}

// Topup credits a user's balance, creating the user with zero balance when
// the external identity has never been seen.
func (s *Service) Topup(ctx context.Context, in TopupInput) (*TopupResponse, error) {
	in.ExternalID = strings.TrimSpace(in.ExternalID)
	if in.ExternalID == "" || in.Amount <= 0 {
		return nil, ErrInvalidRequest
	}
	u, err := s.store.EnsureUser(ctx, in.ExternalID, 0)
	if err != nil {
		return nil, err
	}
	bal, err := s.ledger.CreditTopup(ctx, u.ID, store.NewID(), in.Amount)
	if err != nil {
		return nil, err
	}
	log.Info().Str("user_id", u.ID).Int64("amount", in.Amount).Msg("admin topup")
	return &TopupResponse{UserID: u.ID, Balance: bal}, nil
}

func (s *Service) Withdrawals(ctx context.Context, limit, offset int) (*WithdrawalsResponse, error) {
	items, err := s.store.ListWithdrawRequests(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]WithdrawalItem, 0, len(items))
	for _, it := range items {
		out = append(out, WithdrawalItem{
			RequestID:   it.ID,
			UserID:      it.UserID,
			InventoryID: it.InventoryID,
			Note:        it.Note,
			Status:      it.Status,
			CreatedAt:   it.CreatedAt,
			ItemName:    it.Item.Name,
			ItemRarity:  it.Item.Rarity,
			ItemImage:   it.Item.Image,
			ItemValue:   it.Item.Value,
		})
	}
	return &WithdrawalsResponse{Items: out, Limit: limit, Offset: offset}, nil
}

func (s *Service) ResolveWithdraw(ctx context.Context, requestID string, in ResolveWithdrawInput) (*ResolveWithdrawResponse, error) {
	decision := strings.ToLower(strings.TrimSpace(in.Decision))
	switch decision {
	case store.WithdrawApproved, store.WithdrawRejected, store.WithdrawDone:
	default:
		return nil, ErrInvalidRequest
	}
	req, err := s.store.ResolveWithdrawTx(ctx, requestID, decision)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	log.Info().Str("request_id", requestID).Str("decision", decision).Msg("withdraw resolved")
	return &ResolveWithdrawResponse{
		RequestID:   req.ID,
		InventoryID: req.InventoryID,
		Status:      req.Status,
	}, nil
}

func (s *Service) Ledger(ctx context.Context, f store.LedgerFilter, limit, offset int) (*LedgerResponse, error) {
	items, err := s.ledger.Entries(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}
	return &LedgerResponse{Items: items, Limit: limit, Offset: offset}, nil
}

func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrInvalidState):
		return ErrInvalidState
	default:
		return err
	}
}
