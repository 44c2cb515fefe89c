// Package httptransport is the thin HTTP layer. Handlers validate the
// request shape and delegate to the premium and whois services; transport
// concerns stay isolated here.
package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"domainshark/internal/domainname"
	"domainshark/internal/premium"
	"domainshark/internal/whois"
)

type Handler struct {
	premium *premium.Service
	whois   *whois.Service
	logger  *slog.Logger
}

func NewHandler(premiumSvc *premium.Service, whoisSvc *whois.Service, logger *slog.Logger) *Handler {
	return &Handler{
		premium: premiumSvc,
		whois:   whoisSvc,
		logger:  logger,
	}
}

type checkRequest struct {
	Domain string `json:"domain"`
}

type premiumCheckResponse struct {
	Status          string `json:"status"`
	RemainingChecks int    `json:"remainingChecks"`
}

type whoisCheckResponse struct {
	Status string `json:"status"`
}

// parseCheckRequest enforces the shared request contract for both check
// endpoints and returns the normalized domain.
func parseCheckRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		writeBadRequest(w, "Content-Type must be application/json")
		return "", false
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Request body is not valid JSON")
		return "", false
	}

	if req.Domain == "" {
		writeBadRequest(w, "Missing required field: domain")
		return "", false
	}

	domain := domainname.Normalize(req.Domain)
	if !domainname.IsValid(domain) {
		writeBadRequest(w, "Invalid domain format")
		return "", false
	}
	return domain, true
}

func (h *Handler) handlePremiumCheck(w http.ResponseWriter, r *http.Request) {
	domain, ok := parseCheckRequest(w, r)
	if !ok {
		return
	}

	result, err := h.premium.Check(r.Context(), GetClientIP(r.Context()), domain)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, premiumCheckResponse{
		Status:          string(result.Status),
		RemainingChecks: result.RemainingChecks,
	})
}

func (h *Handler) handleWhoisCheck(w http.ResponseWriter, r *http.Request) {
	domain, ok := parseCheckRequest(w, r)
	if !ok {
		return
	}

	status, err := h.whois.Check(r.Context(), GetClientIP(r.Context()), domain, domainname.TLD(domain))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, whoisCheckResponse{Status: string(status)})
}
