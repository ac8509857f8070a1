package http

import (
	_ "github.com/DRSN-tech/lignum-storefront/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router     *chi.Mux
	logger     logger.Logger
	swaggerURL string
}

func NewRouter(router *chi.Mux, logger logger.Logger, swaggerURL string) *Router {
	return &Router{router: router, logger: logger, swaggerURL: swaggerURL}
}

func (r *Router) Init(catalogUC usecase.CatalogUC, cartUC usecase.CartUC, checkoutUC usecase.CheckoutUC, settingsUC usecase.SettingsUC) {
	r.router.Use(middleware.RequestID, middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(r.swaggerURL), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		catalogHandler := NewCatalogHandler(catalogUC, r.logger)
		cartHandler := NewCartHandler(cartUC, r.logger)
		checkoutHandler := NewCheckoutHandler(checkoutUC, r.logger)
		settingsHandler := NewSettingsHandler(settingsUC, r.logger)

		registerCatalogRoutes(v1, catalogHandler)
		registerCartRoutes(v1, cartHandler, checkoutHandler)
		registerOrderRoutes(v1, checkoutHandler)
		registerAdminRoutes(v1, catalogHandler, checkoutHandler, settingsHandler)
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.listProducts)
		pr.Get("/{id}", h.getProduct)
	})
	router.Get("/categories", h.listCategories)
}

func registerCartRoutes(router chi.Router, h *CartHandler, checkout *CheckoutHandler) {
	router.Route("/carts", func(cr chi.Router) {
		cr.Post("/", h.newSession)
		cr.Route("/{sessionID}", func(s chi.Router) {
			s.Get("/", h.getCart)
			s.Delete("/", h.clearCart)
			s.Post("/items", h.addItem)
			s.Patch("/items/{productID}", h.updateQuantity)
			s.Delete("/items/{productID}", h.removeItem)
			s.Get("/quote", h.quote)
			s.Post("/checkout", checkout.checkout)
		})
	})
}

func registerOrderRoutes(router chi.Router, h *CheckoutHandler) {
	router.Post("/orders/{orderID}/confirm-payment", h.confirmPayment)
}

func registerAdminRoutes(router chi.Router, catalog *CatalogHandler, checkout *CheckoutHandler, settings *SettingsHandler) {
	router.Route("/admin", func(ar chi.Router) {
		ar.Post("/products", catalog.registerNewProduct)
		ar.Delete("/products/{id}", catalog.archiveProduct)
		ar.Post("/categories", catalog.createCategory)
		ar.Delete("/categories/{id}", catalog.archiveCategory)
		ar.Get("/orders", checkout.listOrders)
		ar.Get("/config", settings.getSettings)
		ar.Put("/config", settings.updateSettings)
	})
}
