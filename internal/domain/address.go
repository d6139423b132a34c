package domain

// Address is a saved delivery address. Coordinates are resolved lazily
// via geocoding and may be zero until first use.
type Address struct {
	AddressID   string
	UserID      string
	Label       string
	Recipient   string
	Phone       string
	Line        string
	Ward        string
	City        string
	Coordinates Coordinates
	IsDefault   bool
}
