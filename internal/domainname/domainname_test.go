package domainname

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	valid := []string{
		"example.com",
		"sub.example.co.uk",
		"EXAMPLE.COM",
		"a-b.de",
		"1.2.3.4.example",
		strings.Repeat("a", 63) + ".com",
	}
	for _, domain := range valid {
		assert.True(t, IsValid(domain), "expected %q to be valid", domain)
	}

	invalid := []string{
		"",
		"com",
		"localhost",
		"-bad.com",
		"bad-.com",
		"bad..com",
		".com",
		"example.",
		"exa mple.com",
		"exämple.com",
		"under_score.com",
		strings.Repeat("a", 64) + ".com",
		strings.Repeat("a", 300) + ".com",
	}
	for _, domain := range invalid {
		assert.False(t, IsValid(domain), "expected %q to be invalid", domain)
	}
}

func TestTLD(t *testing.T) {
	assert.Equal(t, "com", TLD("example.com"))
	assert.Equal(t, "de", TLD("sub.example.DE"))
	assert.Equal(t, "", TLD("nodots"))
	assert.Equal(t, "", TLD("trailing."))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "example.com", Normalize("  EXAMPLE.com \n"))
}
