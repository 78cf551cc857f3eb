// Package roster holds the student roster model used for campaign targeting:
// normalization rules, the seat/phone derivation used to backfill missing
// contact data, and the target resolution engine.
package roster

import "strings"

// NormalizePhone strips every non-digit character and keeps at most the last
// 10 digits. Two raw phone strings identify the same recipient iff their
// normalized forms are equal.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}

// NormalizeName trims, lowercases and collapses internal whitespace.
func NormalizeName(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}
