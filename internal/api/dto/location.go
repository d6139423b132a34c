package dto

type GeocodeResponse struct {
	Address  string  `json:"address"`
	Lon      float64 `json:"lon"`
	Lat      float64 `json:"lat"`
	Resolved bool    `json:"resolved"`
}

type DistanceResponse struct {
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
	DistanceText    string `json:"distance_text"`
	DurationText    string `json:"duration_text"`
}

type DecodeRouteRequest struct {
	Polyline  string  `json:"polyline"`
	Precision float64 `json:"precision,omitempty"`
}

type RoutePointResponse struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type DecodeRouteResponse struct {
	Points []RoutePointResponse `json:"points"`
}
