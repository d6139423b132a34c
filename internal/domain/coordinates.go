package domain

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// IsZero reports whether the coordinates are the unresolved sentinel (0, 0).
// Failed geocode lookups resolve to the zero value rather than an error.
func (c Coordinates) IsZero() bool { return c.Lon == 0 && c.Lat == 0 }

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }
