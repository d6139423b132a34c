package handlers

import (
	"net/http"

	"storefront-gateway-service/internal/api/dto"
	"storefront-gateway-service/internal/domain"
	"storefront-gateway-service/internal/ports"
)

// ProductHandler exposes the upstream product catalog.
type ProductHandler struct {
	Catalog ports.Catalog
}

func (h *ProductHandler) ListByShop(w http.ResponseWriter, r *http.Request) {
	shopID := r.PathValue("shopID")
	category := r.URL.Query().Get("category")

	products, err := h.Catalog.ListProducts(r.Context(), shopID, category)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}

	res := dto.ListProductsResponse{Products: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		res.Products = append(res.Products, toProductResponse(p))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.Catalog.GetProduct(r.Context(), r.PathValue("productID"))
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toProductResponse(product))
}

func toProductResponse(p domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ProductID:   p.ProductID,
		ShopID:      p.ShopID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		InStock:     p.InStock,
	}
}
