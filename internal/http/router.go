package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Pageblan/Carepulse/internal/session"
)

// RouterConfig carries the handlers and session manager the router wires
// together.
type RouterConfig struct {
	Sessions     *session.Manager
	Cart         *CartHandler
	Checkout     *CheckoutHandler
	Medicines    *MedicineHandler
	Appointments *AppointmentHandler
	News         *NewsHandler

	RequestTimeout time.Duration
}

// NewRouter builds the HTTP surface: storefront cart and checkout routes,
// the catalog, the admin appointment dashboard, and the news page.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware(cfg.Sessions))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Cart.GetCart)
			r.Post("/items", cfg.Cart.AddItem)
			r.Patch("/items/{product_id}", cfg.Cart.AdjustQuantity)
			r.Delete("/items/{product_id}", cfg.Cart.RemoveItem)
			r.Patch("/selector", cfg.Cart.AdjustSelector)
		})

		r.Post("/checkout", cfg.Checkout.Checkout)

		r.Route("/medicines", func(r chi.Router) {
			r.Get("/", cfg.Medicines.List)
			r.Post("/", cfg.Medicines.Create)
			r.Get("/{id}", cfg.Medicines.Get)
			r.Get("/{id}/image", cfg.Medicines.Image)
		})

		r.Post("/appointments", cfg.Appointments.Book)
		r.Route("/admin/appointments", func(r chi.Router) {
			r.Get("/", cfg.Appointments.Dashboard)
			r.Patch("/{id}", cfg.Appointments.UpdateStatus)
		})

		r.Get("/news", cfg.News.Headlines)
	})

	// Payment provider redirect targets
	r.Get("/checkout/success", cfg.Checkout.Success)
	r.Get("/checkout/cancel", cfg.Checkout.Cancel)

	return otelhttp.NewHandler(r, "carepulse")
}
