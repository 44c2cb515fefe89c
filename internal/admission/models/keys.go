package models

import (
	"fmt"
	"strings"
	"time"
)

// Counter keys embed a time bucket so that store expiry alone reclaims
// state — there is no reset job. Three scope families exist:
//
//	rate:{client}:{minuteBucket}  per-client requests in a 60s window
//	quota:{client}:{yearMonth}    per-client checks this calendar month
//	circuit:{yearMonth}           global paid lookups this calendar month

// SanitizeKeySegment escapes the key delimiter in client-derived segments to
// prevent collision attacks where an identifier containing ':' could
// manipulate adjacent counter buckets.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// RateLimitKey returns the fixed-window rate counter key for a client at
// the given instant (UTC minute bucket).
func RateLimitKey(client string, now time.Time) string {
	return fmt.Sprintf("rate:%s:%d", SanitizeKeySegment(client), now.Unix()/60)
}

// QuotaKey returns the per-client monthly quota counter key.
func QuotaKey(client string, now time.Time) string {
	return fmt.Sprintf("quota:%s:%s", SanitizeKeySegment(client), YearMonth(now))
}

// CircuitKey returns the global monthly circuit-breaker counter key.
func CircuitKey(now time.Time) string {
	return fmt.Sprintf("circuit:%s", YearMonth(now))
}

// YearMonth renders the UTC calendar month of t as "YYYY-MM".
func YearMonth(t time.Time) string {
	return t.UTC().Format("2006-01")
}
