package extract

import "regexp"

var (
	// Permissive: favors recall over RFC-strict validation.
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+`)

	// Optional leading '+', then 8+ characters drawn from digits, spaces
	// and hyphens, first and last being digits. Literal space only, so
	// numbers on adjacent lines never merge. ID numbers that happen to
	// fit are an accepted precision trade-off.
	phonePattern = regexp.MustCompile(`\+?\d[\d -]{6,}\d`)
)

// FieldMatches holds the deduplicated regex hits for the high-precision
// contact fields.
type FieldMatches struct {
	Emails []string
	Phones []string
}

// ExtractFields locates email addresses and phone numbers anywhere in text.
// Each list is deduplicated, preserving first-seen order.
func ExtractFields(text string) FieldMatches {
	return FieldMatches{
		Emails: dedupe(emailPattern.FindAllString(text, -1)),
		Phones: dedupe(phonePattern.FindAllString(text, -1)),
	}
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
