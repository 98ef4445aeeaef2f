package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	appadmin "case-armory/internal/app/admin"
	"case-armory/internal/store"

	"github.com/go-chi/chi/v5"
)

type AdminHandlers struct {
	adminSvc *appadmin.Service
	store    *store.Store
}

func NewAdminHandlers(adminSvc *appadmin.Service, st *store.Store) *AdminHandlers {
	return &AdminHandlers{adminSvc: adminSvc, store: st}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.store.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "db": "down"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "db": "up"})
	}
}

func (h *AdminHandlers) CreateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in appadmin.CreateItemInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		id, err := h.adminSvc.CreateItem(r.Context(), in)
		if err != nil {
			writeAdminError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "item_id": id})
	}
}

func (h *AdminHandlers) Items() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		resp, err := h.adminSvc.Items(r.Context(), limit, offset)
		if err != nil {
			writeAdminError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *AdminHandlers) CreateCase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in appadmin.CreateCaseInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		id, err := h.adminSvc.CreateCase(r.Context(), in)
		if err != nil {
			writeAdminError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "case_id": id})
	}
}

func (h *AdminHandlers) AddCaseItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in appadmin.AddCaseItemInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		id, err := h.adminSvc.AddCaseItem(r.Context(), chi.URLParam(r, "case_id"), in)
		if err != nil {
			writeAdminError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "case_item_id": id})
	}
}

func (h *AdminHandlers) Topup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in appadmin.TopupInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.adminSvc.Topup(r.Context(), in)
		if err != nil {
			writeAdminError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *AdminHandlers) Withdrawals() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		resp, err := h.adminSvc.Withdrawals(r.Context(), limit, offset)
		if err != nil {
			writeAdminError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *AdminHandlers) ResolveWithdraw() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in appadmin.ResolveWithdrawInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.adminSvc.ResolveWithdraw(r.Context(), chi.URLParam(r, "request_id"), in)
		if err != nil {
			writeAdminError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *AdminHandlers) Ledger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		f := store.LedgerFilter{
			UserID: r.URL.Query().Get("user_id"),
			Type:   r.URL.Query().Get("type"),
		}
		if v := r.URL.Query().Get("from"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.From = &t
			}
		}
		if v := r.URL.Query().Get("to"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.To = &t
			}
		}
		resp, err := h.adminSvc.Ledger(r.Context(), f, limit, offset)
		if err != nil {
			writeAdminError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func writeAdminError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appadmin.ErrInvalidRequest):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	case errors.Is(err, appadmin.ErrNotFound):
		WriteHTTPError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, appadmin.ErrInvalidState):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_state")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
