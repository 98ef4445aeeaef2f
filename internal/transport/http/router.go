package httptransport

import (
	appadmin "case-armory/internal/app/admin"
	appplayer "case-armory/internal/app/player"
	"case-armory/internal/config"
	"case-armory/internal/gacha"
	"case-armory/internal/ledger"
	"case-armory/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(st *store.Store, cfg config.ServerConfig, drawer *gacha.Drawer) *chi.Mux {
	led := ledger.New(st)
	playerSvc := appplayer.NewService(st, drawer)
	adminSvc := appadmin.NewService(st, led)

	playerHandlers := NewPlayerHandlers(playerSvc)
	adminHandlers := NewAdminHandlers(adminSvc, st)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())

		r.Group(func(r chi.Router) {
			r.Use(PlayerAuthMiddleware(led, cfg.StartingBalance))
			r.Get("/me", playerHandlers.Me())
			r.Get("/cases", playerHandlers.Cases())
			r.Get("/inventory", playerHandlers.Inventory())
			r.Post("/cases/{case_id}/open", playerHandlers.OpenCase())
			r.Post("/inventory/{inventory_id}/sell", playerHandlers.Sell())
			r.Post("/inventory/{inventory_id}/withdraw", playerHandlers.RequestWithdraw())
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminAPIKey))
			r.Post("/items", adminHandlers.CreateItem())
			r.Get("/items", adminHandlers.Items())
			r.Post("/cases", adminHandlers.CreateCase())
			r.Post("/cases/{case_id}/items", adminHandlers.AddCaseItem())
			r.Post("/topup", adminHandlers.Topup())
			r.Get("/withdrawals", adminHandlers.Withdrawals())
			r.Post("/withdrawals/{request_id}/resolve", adminHandlers.ResolveWithdraw())
			r.Get("/ledger", adminHandlers.Ledger())
		})
	})

	return r
}
