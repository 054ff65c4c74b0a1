// internal/tracking/models.go
package tracking

// TrackRequest is the POST /track body. Timestamp is stored as sent.
type TrackRequest struct {
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}

type TrackResponse struct {
	Status string `json:"status"`
}

// Interaction is one row of the visit log.
type Interaction struct {
	ID        int64
	Timestamp string
	Path      string
	UserToken string
}
