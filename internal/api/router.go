package api

import (
	"net/http"

	"storefront-gateway-service/internal/api/handlers"
	"storefront-gateway-service/internal/ports"
	"storefront-gateway-service/internal/services"
)

// Deps carries everything the HTTP surface needs. The composition root
// in cmd/server fills it; handlers stay unaware of concrete adapters.
type Deps struct {
	Auth      ports.Authenticator
	Catalog   ports.Catalog
	Orders    ports.OrderPlacer
	Coupons   ports.CouponValidator
	Resolver  ports.LocationResolver
	Addresses ports.AddressRepository
	Carts     ports.CartRepository
	Checkout  *services.CheckoutService
	Nearby    *services.NearbyShopsService
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	authHandler := &handlers.AuthHandler{Auth: d.Auth}
	shopHandler := &handlers.ShopHandler{Catalog: d.Catalog, Nearby: d.Nearby}
	productHandler := &handlers.ProductHandler{Catalog: d.Catalog}
	orderHandler := &handlers.OrderHandler{
		Checkout:  d.Checkout,
		Orders:    d.Orders,
		Addresses: d.Addresses,
	}
	cartHandler := &handlers.CartHandler{Carts: d.Carts}
	addressHandler := &handlers.AddressHandler{Repo: d.Addresses, Resolver: d.Resolver}
	couponHandler := &handlers.CouponHandler{Coupons: d.Coupons}
	locationHandler := &handlers.LocationHandler{Resolver: d.Resolver}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/refresh", authHandler.Refresh)

	mux.HandleFunc("GET /shops", shopHandler.List)
	mux.HandleFunc("GET /shops/nearby", shopHandler.ListNearby)
	mux.HandleFunc("GET /shops/{shopID}", shopHandler.Get)
	mux.HandleFunc("GET /shops/{shopID}/products", productHandler.ListByShop)
	mux.HandleFunc("GET /products/{productID}", productHandler.Get)

	mux.HandleFunc("POST /orders", orderHandler.Create)
	mux.HandleFunc("POST /orders/quote", orderHandler.Quote)
	mux.HandleFunc("GET /orders", orderHandler.List)
	mux.HandleFunc("GET /orders/{orderID}", orderHandler.Get)
	mux.HandleFunc("POST /orders/{orderID}/cancel", orderHandler.Cancel)

	mux.HandleFunc("GET /carts/{shopID}", cartHandler.Get)
	mux.HandleFunc("PUT /carts/{shopID}/items", cartHandler.UpsertItem)
	mux.HandleFunc("DELETE /carts/{shopID}/items/{productID}", cartHandler.RemoveItem)
	mux.HandleFunc("DELETE /carts/{shopID}", cartHandler.Clear)

	mux.HandleFunc("GET /addresses", addressHandler.List)
	mux.HandleFunc("POST /addresses", addressHandler.Create)
	mux.HandleFunc("GET /addresses/{addressID}", addressHandler.Get)
	mux.HandleFunc("PUT /addresses/{addressID}", addressHandler.Update)
	mux.HandleFunc("DELETE /addresses/{addressID}", addressHandler.Delete)
	mux.HandleFunc("POST /addresses/{addressID}/default", addressHandler.SetDefault)

	mux.HandleFunc("POST /coupons/validate", couponHandler.Validate)

	mux.HandleFunc("GET /location/geocode", locationHandler.Geocode)
	mux.HandleFunc("GET /location/distance", locationHandler.Distance)
	mux.HandleFunc("POST /location/route/decode", locationHandler.DecodeRoute)

	return loggingMiddleware(authMiddleware(mux))
}
