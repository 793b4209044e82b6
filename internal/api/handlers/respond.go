package handlers

import (
	"encoding/json"
	"net/http"
)

// encodeFailedBody is sent when a reply cannot be encoded
var encodeFailedBody = []byte(`{"error":"Failed to encode response","code":"INTERNAL"}` + "\n")

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// RespondJSON writes data as JSON with the given status.
// The body is encoded before the header is written; encoding failures reply 500.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		body = encodeFailedBody
	} else {
		body = append(body, '\n')
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// RespondError writes an ErrorResponse
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message, Code: code})
}
