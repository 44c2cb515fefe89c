package whois

import "strings"

// Parsers map raw server replies to a Status via textual markers. Replies
// are lowercased and whitespace-collapsed before matching since registries
// pad fields with tabs and variable spacing. Marker order is significant
// per server: DENIC's free replies still contain a "Domain:" field so its
// availability markers are checked first, while DNS Belgium reports
// registered names as "Status: NOT AVAILABLE" so its taken markers must
// win.

// ParseFunc classifies one raw WHOIS reply. A blank reply, or one matching
// no marker, classifies as unknown rather than raising an error.
type ParseFunc func(raw string) Status

func availabilityFirst(available, taken []string) ParseFunc {
	return func(raw string) Status {
		text := normalizeReply(raw)
		if text == "" {
			return StatusUnknown
		}
		if containsAny(text, available) {
			return StatusAvailable
		}
		if containsAny(text, taken) {
			return StatusTaken
		}
		return StatusUnknown
	}
}

func takenFirst(taken, available []string) ParseFunc {
	return func(raw string) Status {
		text := normalizeReply(raw)
		if text == "" {
			return StatusUnknown
		}
		if containsAny(text, taken) {
			return StatusTaken
		}
		if containsAny(text, available) {
			return StatusAvailable
		}
		return StatusUnknown
	}
}

func normalizeReply(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

func containsAny(text string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// parseDENIC handles whois.denic.de (.de). Free replies carry
// "Status: free" alongside the echoed Domain field.
var parseDENIC = availabilityFirst(
	[]string{"status: free"},
	[]string{"status: connect", "domain name:", "domain:"},
)

// parseNicAT handles whois.nic.at (.at).
var parseNicAT = availabilityFirst(
	[]string{"% nothing found"},
	[]string{"domain:", "registrant:"},
)

// parseSwitch handles SWITCH/whois.nic.ch (.ch) and whois.nic.li (.li).
var parseSwitch = availabilityFirst(
	[]string{"we do not have an entry in our database matching your query"},
	[]string{"domain name:", "holder of domain name:"},
)

// parseSIDN handles whois.domain-registry.nl (.nl).
var parseSIDN = availabilityFirst(
	[]string{"is free"},
	[]string{"status: active", "domain name:"},
)

// parseDNSBelgium handles whois.dns.be (.be). "NOT AVAILABLE" contains
// "available", hence the taken-first order.
var parseDNSBelgium = takenFirst(
	[]string{"not available", "registered:"},
	[]string{"status: available"},
)

// parseEURid handles whois.eu (.eu).
var parseEURid = availabilityFirst(
	[]string{"status: available"},
	[]string{"registrar:", "please visit www.eurid.eu for webbased whois"},
)

// parseAFNIC handles whois.nic.fr (.fr).
var parseAFNIC = availabilityFirst(
	[]string{"%% no entries found"},
	[]string{"domain:", "registrar:"},
)

// parseNicIT handles whois.nic.it (.it).
var parseNicIT = availabilityFirst(
	[]string{"status: available"},
	[]string{"status: ok", "created:"},
)

// parsePunktumDK handles whois.punktum.dk (.dk).
var parsePunktumDK = availabilityFirst(
	[]string{"no entries found for the selected source"},
	[]string{"registered:", "domain:"},
)

// parseIIS handles whois.iis.se (.se).
var parseIIS = availabilityFirst(
	[]string{"not found."},
	[]string{"state:", "domain:"},
)

// parseTraficom handles whois.fi (.fi).
var parseTraficom = availabilityFirst(
	[]string{"domain not found"},
	[]string{"status: registered", "domain:"},
)

// parseNASK handles whois.dns.pl (.pl).
var parseNASK = availabilityFirst(
	[]string{"no information available about domain name"},
	[]string{"domain name:", "registrar:"},
)
