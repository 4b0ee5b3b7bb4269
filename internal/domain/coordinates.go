package domain

// Coordinates is a geocoded location (longitude, latitude) used for distance lookups.
type Coordinates struct {
	Lon float64
	Lat float64
}

// LonLat returns the pair in the [lon, lat] order routing APIs expect.
func (c Coordinates) LonLat() []float64 { return []float64{c.Lon, c.Lat} }
