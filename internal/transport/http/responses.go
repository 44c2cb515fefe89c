package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"domainshark/pkg/apperrors"
)

// writeJSON writes a JSON body with the shared CORS headers already applied
// by middleware.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError translates an error into the stable JSON error envelope.
// Messages are surfaced only for client-error codes; admission rejections
// and upstream failures get the bare code so thresholds and infrastructure
// detail never leak.
func writeError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	status := apperrors.ToHTTPStatus(code)

	body := map[string]any{"error": string(code)}
	switch code {
	case apperrors.CodeQuotaExceeded:
		// The caller-facing contract pins remainingChecks to zero here.
		body["remainingChecks"] = 0
	case apperrors.CodeRateLimited:
		body["message"] = "Rate limit exceeded. Please try again later."
	case apperrors.CodeBadRequest, apperrors.CodeUnsupportedTLD, apperrors.CodeNotFound:
		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Message != "" {
			body["message"] = appErr.Message
		}
	}

	writeJSON(w, status, body)
}

// writeBadRequest is shorthand for a descriptive validation failure; no
// sensitive data is exposed by validation messages.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, apperrors.New(apperrors.CodeBadRequest, message))
}
