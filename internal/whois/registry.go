package whois

import "fmt"

// ServerProfile describes one supported registry WHOIS server. Profiles are
// data, not behavior: the registry selects among pure formatter and parser
// functions keyed by TLD.
type ServerProfile struct {
	TLD         string
	Host        string
	FormatQuery func(domain string) string
	Parse       ParseFunc
}

// Registry is the immutable allow-list of supported TLDs, resolved once at
// process start. The allow-list is the authoritative gate: unsupported TLDs
// are rejected before any network call.
type Registry struct {
	profiles map[string]ServerProfile
}

func plainQuery(domain string) string {
	return domain
}

// denicQuery requests the domain object in ASCII form; DENIC answers bare
// queries with an error instead of a record.
func denicQuery(domain string) string {
	return fmt.Sprintf("-T dn,ace %s", domain)
}

// NewRegistry builds the allow-list of the 13 supported TLDs. These are the
// European ccTLDs without reliable structured (RDAP) lookup; everything
// else goes through the paid premium path.
func NewRegistry() *Registry {
	profiles := []ServerProfile{
		{TLD: "de", Host: "whois.denic.de", FormatQuery: denicQuery, Parse: parseDENIC},
		{TLD: "at", Host: "whois.nic.at", FormatQuery: plainQuery, Parse: parseNicAT},
		{TLD: "ch", Host: "whois.nic.ch", FormatQuery: plainQuery, Parse: parseSwitch},
		{TLD: "li", Host: "whois.nic.li", FormatQuery: plainQuery, Parse: parseSwitch},
		{TLD: "nl", Host: "whois.domain-registry.nl", FormatQuery: plainQuery, Parse: parseSIDN},
		{TLD: "be", Host: "whois.dns.be", FormatQuery: plainQuery, Parse: parseDNSBelgium},
		{TLD: "eu", Host: "whois.eu", FormatQuery: plainQuery, Parse: parseEURid},
		{TLD: "fr", Host: "whois.nic.fr", FormatQuery: plainQuery, Parse: parseAFNIC},
		{TLD: "it", Host: "whois.nic.it", FormatQuery: plainQuery, Parse: parseNicIT},
		{TLD: "dk", Host: "whois.punktum.dk", FormatQuery: plainQuery, Parse: parsePunktumDK},
		{TLD: "se", Host: "whois.iis.se", FormatQuery: plainQuery, Parse: parseIIS},
		{TLD: "fi", Host: "whois.fi", FormatQuery: plainQuery, Parse: parseTraficom},
		{TLD: "pl", Host: "whois.dns.pl", FormatQuery: plainQuery, Parse: parseNASK},
	}

	byTLD := make(map[string]ServerProfile, len(profiles))
	for _, p := range profiles {
		byTLD[p.TLD] = p
	}
	return &Registry{profiles: byTLD}
}

// Profile returns the server profile for a TLD, if supported.
func (r *Registry) Profile(tld string) (ServerProfile, bool) {
	p, ok := r.profiles[tld]
	return p, ok
}

// Supports reports whether tld is on the allow-list.
func (r *Registry) Supports(tld string) bool {
	_, ok := r.profiles[tld]
	return ok
}

// SupportedTLDs returns the number of allow-listed TLDs.
func (r *Registry) SupportedTLDs() int {
	return len(r.profiles)
}
