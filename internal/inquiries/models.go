// internal/inquiries/models.go
package inquiries

import "time"

// Kind names the two submission types. It doubles as the table name.
type Kind string

const (
	KindProjectInitiation Kind = "project_initiations"
	KindMeeting           Kind = "meetings"
)

type ProjectInitiationRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	BusinessType string `json:"business_type"`
	Website      string `json:"website,omitempty"`
	Requirements string `json:"requirements"`
}

type MeetingRequest struct {
	Email string `json:"email"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Goals string `json:"goals"`
}

type ProjectInitiation struct {
	ID           string
	Name         string
	Email        string
	BusinessType string
	Website      string
	Requirements string
	CreatedAt    time.Time
}

type Meeting struct {
	ID        string
	Email     string
	Date      string
	Time      string
	Goals     string
	CreatedAt time.Time
}

type CreatedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
