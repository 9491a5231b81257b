package handler

import (
	"encoding/json"
	"net/http"

	"github.com/alienbase/auth-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message   string `json:"message,omitempty"`
	Warning   string `json:"warning,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// AuthEnvelope wraps signup, login and OAuth responses. Bearer carries the
// session token; Token carries short-lived single-purpose tokens such as the
// email-verify token returned after OTP verification.
type AuthEnvelope struct {
	Bearer       string       `json:"Bearer,omitempty"`
	Token        string       `json:"token,omitempty"`
	User         *domain.User `json:"user,omitempty"`
	IsNewAccount bool         `json:"is_new_account"`
	Message      string       `json:"message,omitempty"`
	Warning      string       `json:"warning,omitempty"`
	Error        string       `json:"error,omitempty"`
}

// PaginatedUsersEnvelope wraps cursor-paginated user list responses.
type PaginatedUsersEnvelope struct {
	Data       []domain.User `json:"data"`
	NextCursor string        `json:"next_cursor,omitempty"`
	Error      string        `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
