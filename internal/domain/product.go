package domain

// Product is a single sellable item belonging to a shop.
// Prices are integer minor currency units.
type Product struct {
	ProductID   string
	ShopID      string
	Name        string
	Description string
	Category    string
	Price       int64
	ImageURL    string
	InStock     bool
}
