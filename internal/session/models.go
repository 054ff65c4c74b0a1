// internal/session/models.go
package session

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// DetailResponse carries a 401 reason.
type DetailResponse struct {
	Detail string `json:"detail"`
}

type CheckResponse struct {
	LoggedIn bool   `json:"logged_in"`
	Token    string `json:"token,omitempty"`
}
