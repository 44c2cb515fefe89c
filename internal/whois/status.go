// Package whois resolves domain availability for a fixed allow-list of TLDs
// by speaking the legacy plaintext WHOIS protocol over TCP port 43. WHOIS
// has no machine-readable format, so each supported server carries its own
// query syntax and heuristic response parser.
package whois

// Status is the classified registration state of a domain.
type Status string

const (
	StatusAvailable Status = "available"
	StatusTaken     Status = "taken"
	StatusUnknown   Status = "unknown"
)

// Result is the ephemeral outcome of one WHOIS query. The raw response text
// and the queried domain must never be logged or persisted.
type Result struct {
	Status Status
	Raw    string
}
