package dto

type AddressRequest struct {
	Label     string  `json:"label"`
	Recipient string  `json:"recipient"`
	Phone     string  `json:"phone"`
	Line      string  `json:"line"`
	Ward      string  `json:"ward"`
	City      string  `json:"city"`
	Lon       float64 `json:"lon"`
	Lat       float64 `json:"lat"`
}

type AddressResponse struct {
	AddressID string  `json:"address_id"`
	Label     string  `json:"label,omitempty"`
	Recipient string  `json:"recipient"`
	Phone     string  `json:"phone"`
	Line      string  `json:"line"`
	Ward      string  `json:"ward,omitempty"`
	City      string  `json:"city,omitempty"`
	Lon       float64 `json:"lon"`
	Lat       float64 `json:"lat"`
	IsDefault bool    `json:"is_default"`
}

type ListAddressesResponse struct {
	Addresses []AddressResponse `json:"addresses"`
}
