package domain

// MatchCount is the fixed top-k requested from the similarity procedure.
const MatchCount = 5

// VectorConfig holds internal vectorization settings, not exposed to clients.
type VectorConfig struct {
	Model     string
	Procedure string
}

// DefaultVectorConfig returns the defaults matching the indexed posts (ada-002 via match_posts).
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Model:     "text-embedding-ada-002",
		Procedure: "match_posts",
	}
}
