package upstream

import (
	"context"
	"fmt"
	"net/url"

	"storefront-gateway-service/internal/domain"
)

type shopPayload struct {
	ShopID      string  `json:"shop_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Lon         float64 `json:"lon"`
	Lat         float64 `json:"lat"`
	Rating      float64 `json:"rating"`
	IsOpen      bool    `json:"is_open"`
	CoverURL    string  `json:"cover_url"`
}

func (p shopPayload) toDomain() domain.Shop {
	return domain.Shop{
		ShopID:      p.ShopID,
		Name:        p.Name,
		Description: p.Description,
		Address:     p.Address,
		Coordinates: domain.Coordinates{Lon: p.Lon, Lat: p.Lat},
		Rating:      p.Rating,
		IsOpen:      p.IsOpen,
		CoverURL:    p.CoverURL,
	}
}

type productPayload struct {
	ProductID   string `json:"product_id"`
	ShopID      string `json:"shop_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"image_url"`
	InStock     bool   `json:"in_stock"`
}

func (p productPayload) toDomain() domain.Product {
	return domain.Product(p)
}

// ListShops returns the full shop catalog.
func (c *Client) ListShops(ctx context.Context) ([]domain.Shop, error) {
	var resp struct {
		Shops []shopPayload `json:"shops"`
	}
	if err := c.getJSON(ctx, "/shops", nil, &resp); err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}

	shops := make([]domain.Shop, 0, len(resp.Shops))
	for _, s := range resp.Shops {
		shops = append(shops, s.toDomain())
	}
	return shops, nil
}

// GetShop returns a single shop by id.
func (c *Client) GetShop(ctx context.Context, shopID string) (domain.Shop, error) {
	var resp shopPayload
	if err := c.getJSON(ctx, "/shops/"+url.PathEscape(shopID), nil, &resp); err != nil {
		return domain.Shop{}, fmt.Errorf("get shop %q: %w", shopID, err)
	}
	return resp.toDomain(), nil
}

// ListProducts returns a shop's products, optionally filtered by category.
func (c *Client) ListProducts(ctx context.Context, shopID, category string) ([]domain.Product, error) {
	query := map[string]string{}
	if category != "" {
		query["category"] = category
	}

	var resp struct {
		Products []productPayload `json:"products"`
	}
	path := "/shops/" + url.PathEscape(shopID) + "/products"
	if err := c.getJSON(ctx, path, query, &resp); err != nil {
		return nil, fmt.Errorf("list products for shop %q: %w", shopID, err)
	}

	products := make([]domain.Product, 0, len(resp.Products))
	for _, p := range resp.Products {
		products = append(products, p.toDomain())
	}
	return products, nil
}

// GetProduct returns a single product by id.
func (c *Client) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	var resp productPayload
	if err := c.getJSON(ctx, "/products/"+url.PathEscape(productID), nil, &resp); err != nil {
		return domain.Product{}, fmt.Errorf("get product %q: %w", productID, err)
	}
	return resp.toDomain(), nil
}
