package dto

type AirportResponse struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

type ArcResponse struct {
	From            string `json:"from"`
	To              string `json:"to"`
	DistanceKm      int    `json:"distance_km"`
	DurationMinutes int    `json:"duration_minutes"`
}

type NetworkResponse struct {
	Airports []AirportResponse `json:"airports"`
	Arcs     []ArcResponse     `json:"arcs"`
}
