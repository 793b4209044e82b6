package obs

import "net/http"

// StatusRecorder wraps ResponseWriter to capture the status code
type StatusRecorder struct {
	http.ResponseWriter
	status int
}

// NewStatusRecorder constructs a status recorder with default 200 status
func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader stores the status code before delegating
func (sr *StatusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Status returns the response status code
func (sr *StatusRecorder) Status() int { return sr.status }
