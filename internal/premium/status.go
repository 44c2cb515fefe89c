// Package premium fronts the paid Domainr lookup: an upstream client, the
// status-token classifier, and the orchestrator that runs every check
// through the admission gates before spending money.
package premium

import "strings"

// Status is the simplified availability classification exposed to callers.
type Status string

const (
	StatusAvailable Status = "available"
	StatusTaken     Status = "taken"
	StatusParked    Status = "parked"
	StatusPremium   Status = "premium"
	StatusForSale   Status = "for_sale"
	StatusUnknown   Status = "unknown"
)

// MapTokens classifies Domainr's space-separated status tokens. The
// vocabulary is free text, not an enum; key terms are checked in priority
// order and the first match wins.
func MapTokens(statusString string) Status {
	if statusString == "" {
		return StatusUnknown
	}

	lower := strings.ToLower(statusString)
	tokens := make(map[string]bool)
	for _, token := range strings.Fields(lower) {
		tokens[token] = true
	}

	switch {
	case tokens["marketed"] || tokens["forsale"] || strings.Contains(lower, "for sale"):
		return StatusForSale
	case tokens["priced"]:
		return StatusPremium
	case tokens["parked"]:
		return StatusParked
	case tokens["active"]:
		return StatusTaken
	case tokens["inactive"]:
		return StatusAvailable
	default:
		return StatusUnknown
	}
}

// StatusResponse is the Domainr reply shape: a list of per-domain records.
type StatusResponse struct {
	Status []StatusRecord `json:"status"`
}

// StatusRecord is one record in a Domainr reply.
type StatusRecord struct {
	Domain  string `json:"domain"`
	Status  string `json:"status"`
	Summary string `json:"summary"`
}

// Classify extracts the simplified status for the requested domain from a
// Domainr reply. The record matching the requested domain is preferred
// (case-insensitive); otherwise the first record is used.
func Classify(resp *StatusResponse, requestedDomain string) Status {
	if resp == nil || len(resp.Status) == 0 {
		return StatusUnknown
	}

	record := resp.Status[0]
	normalized := strings.ToLower(requestedDomain)
	for _, candidate := range resp.Status {
		if strings.ToLower(candidate.Domain) == normalized {
			record = candidate
			break
		}
	}

	statusString := record.Status
	if statusString == "" {
		statusString = record.Summary
	}
	return MapTokens(statusString)
}
