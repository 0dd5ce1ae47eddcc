package respond

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StatusResponse is the body of every structured success or denial.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Role    string `json:"role,omitempty"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Success writes {"status":"success"} with an optional message.
func Success(w http.ResponseWriter, status int, message string) {
	JSON(w, status, StatusResponse{Status: StatusSuccess, Message: message})
}

// Fail writes a structured denial with an explicit status code.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, StatusResponse{Status: StatusError, Message: message})
}

// Error writes err as a structured denial. The status comes from the domain
// error taxonomy; internal errors never leak their text.
func Error(w http.ResponseWriter, err error) {
	status := domain.StatusCode(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	Fail(w, status, msg)
}
