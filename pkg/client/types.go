package client

// Post is a single search hit.
type Post struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}

// HealthStatus represents the aggregated service health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok" or "degraded"
	Checks map[string]string `json:"checks"` // component -> "ok"/"error"
}

type searchRequest struct {
	Question string `json:"question"`
}

type searchResponse struct {
	Results []Post `json:"results"`
}
