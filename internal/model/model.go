package model

// NearbyRequest contains nearby-station search parameters.
type NearbyRequest struct {
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	MaxDistanceKm float64 `json:"maxDistanceKm"`
	Limit         int     `json:"limit"`
}

// NearbyStation is one search result with its distance from the request
// location.
type NearbyStation struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Country    string  `json:"country"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distanceKm"`
}
