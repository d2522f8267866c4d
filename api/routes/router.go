package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/modabuy/storefront-backend/api/controllers"
	"github.com/modabuy/storefront-backend/api/middleware"
	"github.com/modabuy/storefront-backend/internal/auth"
	"github.com/modabuy/storefront-backend/internal/cart"
	"github.com/modabuy/storefront-backend/internal/catalog"
	"github.com/modabuy/storefront-backend/internal/checkout"
	"github.com/modabuy/storefront-backend/pkg/config"
	"github.com/modabuy/storefront-backend/pkg/logger"
	"github.com/modabuy/storefront-backend/pkg/metrics"
)

// Deps carries everything the router mounts.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Metrics  *metrics.HTTPMetrics
	Sessions middleware.SessionResolver
	Auth     auth.Service
	Catalog  catalog.Service
	Cart     cart.Service
	Checkout checkout.Service
	Orders   controllers.HistoryLister
	Pingers  []controllers.Pinger
}

// New assembles the HTTP surface. Goods browsing is public; cart, checkout
// and order history sit behind the session gate.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(d.Logger))
	r.Use(middleware.RequestID(d.Logger))
	r.Use(middleware.Logging(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(middleware.CORS())

	r.Get("/health/live", controllers.Live())
	r.Get("/health/ready", controllers.Ready(d.Logger, d.Pingers...))
	if d.Metrics != nil {
		r.Method("GET", "/metrics", d.Metrics.Handler())
	}

	r.Post("/auth/login", controllers.Login(d.Auth, d.Config.Session, d.Logger))
	r.Post("/auth/logout", controllers.Logout(d.Auth, d.Config.Session, d.Logger))

	r.Route("/goods", func(r chi.Router) {
		r.Get("/", controllers.ListGoods(d.Catalog, d.Logger))
		r.Get("/search", controllers.SearchGoods(d.Catalog, d.Logger))
		r.Get("/{goodsId}", controllers.GetGoodsDetail(d.Catalog, d.Logger))
		r.Delete("/pit/{pitId}", controllers.ClosePIT(d.Catalog, d.Logger))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(d.Config.Session, d.Sessions, d.Logger))

		r.Route("/cart", func(r chi.Router) {
			r.Post("/", controllers.AddToCart(d.Cart, d.Logger))
			r.Get("/", controllers.GetCart(d.Cart, d.Logger))
			r.Delete("/", controllers.ClearCart(d.Cart, d.Logger))
			r.Delete("/{productId}", controllers.RemoveCartLine(d.Cart, d.Logger))

			r.Get("/checkout", controllers.GetCheckout(d.Checkout, d.Logger))
			r.Post("/order", controllers.CreateOrder(d.Checkout, d.Logger))
		})

		r.Get("/orders", controllers.ListOrders(d.Orders, d.Logger))
	})

	return r
}
