package dto

type ShopResponse struct {
	ShopID      string  `json:"shop_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Address     string  `json:"address"`
	Lon         float64 `json:"lon"`
	Lat         float64 `json:"lat"`
	Rating      float64 `json:"rating"`
	IsOpen      bool    `json:"is_open"`
	CoverURL    string  `json:"cover_url,omitempty"`

	// Travel annotation, present only on nearby listings that resolved.
	DistanceMeters  int    `json:"distance_meters,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	DistanceText    string `json:"distance_text,omitempty"`
	DurationText    string `json:"duration_text,omitempty"`
}

type ListShopsResponse struct {
	Shops []ShopResponse `json:"shops"`
}

type ProductResponse struct {
	ProductID   string `json:"product_id"`
	ShopID      string `json:"shop_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"image_url,omitempty"`
	InStock     bool   `json:"in_stock"`
}

type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}
