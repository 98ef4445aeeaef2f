package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	appplayer "case-armory/internal/app/player"

	"github.com/go-chi/chi/v5"
)

type PlayerHandlers struct {
	playerSvc *appplayer.Service
}

func NewPlayerHandlers(playerSvc *appplayer.Service) *PlayerHandlers {
	return &PlayerHandlers{playerSvc: playerSvc}
}

func (h *PlayerHandlers) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())
		resp, err := h.playerSvc.Me(r.Context(), user)
		if err != nil {
			writePlayerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayerHandlers) Cases() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.playerSvc.Cases(r.Context())
		if err != nil {
			writePlayerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayerHandlers) Inventory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())
		if user == nil {
			WriteHTTPError(w, http.StatusUnauthorized, "player_id_required")
			return
		}
		limit, offset := ParsePagination(r)
		resp, err := h.playerSvc.Inventory(r.Context(), user.ID, limit, offset)
		if err != nil {
			writePlayerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayerHandlers) OpenCase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())
		if user == nil {
			WriteHTTPError(w, http.StatusUnauthorized, "player_id_required")
			return
		}
		resp, err := h.playerSvc.OpenCase(r.Context(), user.ID, chi.URLParam(r, "case_id"))
		if err != nil {
			writePlayerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayerHandlers) Sell() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())
		if user == nil {
			WriteHTTPError(w, http.StatusUnauthorized, "player_id_required")
			return
		}
		resp, err := h.playerSvc.Sell(r.Context(), user.ID, chi.URLParam(r, "inventory_id"))
		if err != nil {
			writePlayerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PlayerHandlers) RequestWithdraw() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())
		if user == nil {
			WriteHTTPError(w, http.StatusUnauthorized, "player_id_required")
			return
		}
		var body struct {
			Note string `json:"note"`
		}
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
				return
			}
		}
		resp, err := h.playerSvc.RequestWithdraw(r.Context(), user.ID, chi.URLParam(r, "inventory_id"), body.Note)
		if err != nil {
			writePlayerError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func writePlayerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appplayer.ErrInvalidRequest):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	case errors.Is(err, appplayer.ErrNotFound):
		WriteHTTPError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, appplayer.ErrCaseNotFound):
		WriteHTTPError(w, http.StatusNotFound, "case_not_found")
	case errors.Is(err, appplayer.ErrCaseEmpty):
		WriteHTTPError(w, http.StatusBadRequest, "case_empty")
	case errors.Is(err, appplayer.ErrInvalidState):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_state")
	case errors.Is(err, appplayer.ErrInsufficientBalance):
		WriteHTTPError(w, http.StatusBadRequest, "insufficient_balance")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
