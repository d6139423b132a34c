package domain

// Shop is a storefront as presented by the upstream marketplace catalog.
// Coordinates may be zero when the shop has not been geocoded upstream;
// callers fall back to geocoding the address text.
type Shop struct {
	ShopID      string
	Name        string
	Description string
	Address     string
	Coordinates Coordinates
	Rating      float64
	IsOpen      bool
	CoverURL    string
}
