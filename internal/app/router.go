package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/koperasi-erp/koperasi-erp/internal/installments"
	"github.com/koperasi-erp/koperasi-erp/internal/masterdata/products"
	"github.com/koperasi-erp/koperasi-erp/internal/masterdata/suppliers"
	"github.com/koperasi-erp/koperasi-erp/internal/purchasing"
	"github.com/koperasi-erp/koperasi-erp/internal/stockopname"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	SuppliersHandler    *suppliers.Handler
	ProductsHandler     *products.Handler
	PurchasingHandler   *purchasing.Handler
	InstallmentsHandler *installments.Handler
	StockOpnameHandler  *stockopname.Handler
}

// NewRouter constructs the chi.Router with service defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/masterdata", func(r chi.Router) {
		if params.SuppliersHandler != nil {
			params.SuppliersHandler.MountRoutes(r)
		}
		if params.ProductsHandler != nil {
			params.ProductsHandler.MountRoutes(r)
		}
	})
	if params.PurchasingHandler != nil {
		r.Route("/purchasing", params.PurchasingHandler.MountRoutes)
	}
	if params.InstallmentsHandler != nil {
		r.Route("/installments", params.InstallmentsHandler.MountRoutes)
	}
	if params.StockOpnameHandler != nil {
		r.Route("/stockopname", params.StockOpnameHandler.MountRoutes)
	}

	return r
}
