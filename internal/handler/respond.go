package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	pkgerrors "github.com/guardianlab/guardian/pkg/errors"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors to statuses. Unclassified failures become a
// bare 500 so no internal detail crosses the service boundary.
func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}

	var verr *pkgerrors.ValidationError
	if errors.As(err, &verr) {
		resp.Error = "validation failed"
		resp.Fields = verr.Fields
	}
	if status == http.StatusInternalServerError {
		resp.Error = "internal error"
		resp.Fields = nil
	}
	writeJSON(w, status, resp)
}

func writeHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
