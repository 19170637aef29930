package web

import (
	"encoding/json"
	"net/http"
)

// envelope is the wire format of every action response. Application
// failures travel as success=false with a message in data; transport
// level failures use non-200 statuses.
type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type failureData struct {
	Message string `json:"message"`
}

// writeSuccess writes {"success":true,"data":...} with status 200.
func writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

// writeFailure writes {"success":false,"data":{"message":...}}.
// Application errors keep status 200 so clients read the message from
// the envelope rather than treating them as connection problems.
func writeFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Data: failureData{Message: message}})
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response for non-action
// endpoints such as login and session.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
