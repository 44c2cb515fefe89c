package premium

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapTokens(t *testing.T) {
	cases := []struct {
		tokens string
		want   Status
	}{
		{"undelegated inactive", StatusAvailable},
		{"inactive", StatusAvailable},
		{"active", StatusTaken},
		{"undelegated active", StatusTaken},
		{"marketed", StatusForSale},
		{"marketed priced", StatusForSale},
		{"forsale", StatusForSale},
		{"active for sale", StatusForSale},
		{"priced", StatusPremium},
		{"priced active", StatusPremium},
		{"parked", StatusParked},
		{"parked active", StatusParked},
		{"", StatusUnknown},
		{"zone unregistrable", StatusUnknown},
		{"ACTIVE", StatusTaken},
	}

	for _, tc := range cases {
		t.Run(tc.tokens, func(t *testing.T) {
			assert.Equal(t, tc.want, MapTokens(tc.tokens))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Run("prefers record matching requested domain", func(t *testing.T) {
		resp := &StatusResponse{Status: []StatusRecord{
			{Domain: "other.com", Status: "active"},
			{Domain: "Example.COM", Status: "undelegated inactive"},
		}}
		assert.Equal(t, StatusAvailable, Classify(resp, "example.com"))
	})

	t.Run("falls back to first record", func(t *testing.T) {
		resp := &StatusResponse{Status: []StatusRecord{
			{Domain: "other.com", Status: "parked"},
			{Domain: "another.com", Status: "active"},
		}}
		assert.Equal(t, StatusParked, Classify(resp, "example.com"))
	})

	t.Run("uses summary when status is empty", func(t *testing.T) {
		resp := &StatusResponse{Status: []StatusRecord{
			{Domain: "example.com", Summary: "inactive"},
		}}
		assert.Equal(t, StatusAvailable, Classify(resp, "example.com"))
	})

	t.Run("empty response is unknown", func(t *testing.T) {
		assert.Equal(t, StatusUnknown, Classify(nil, "example.com"))
		assert.Equal(t, StatusUnknown, Classify(&StatusResponse{}, "example.com"))
	})
}
