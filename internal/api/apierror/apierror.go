// Package apierror writes the flat {"error": message} body this API's
// clients branch on, logging the underlying failure through the
// request-scoped zerolog logger.
package apierror

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

type errorBody struct {
	Error string `json:"error"`
}

// Write serializes message into the JSON error body. message is what the
// caller sees; err is only logged. 5xx failures log at error level, 4xx at
// warn level.
func Write(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if message == "" {
		message = http.StatusText(status)
	}

	if r != nil {
		logger := zerolog.Ctx(r.Context())
		event := logger.Warn()
		if status >= 500 {
			event = logger.Error()
		}
		event.
			Err(err).
			Int("status", status).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg(message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: message})
}
