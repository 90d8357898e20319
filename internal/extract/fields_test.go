package extract

import (
	"testing"
)

func TestExtractFields_Emails(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want []string
	}{
		{"Single", "contact me at jane@example.com today", []string{"jane@example.com"}},
		{"DuplicateDeduped", "a@b.com appears twice: a@b.com", []string{"a@b.com"}},
		{"MultiplePreserveOrder", "first x@y.com then z@w.org", []string{"x@y.com", "z@w.org"}},
		{"DotsAndHyphens", "jane.doe-smith@mail-server.co.uk", []string{"jane.doe-smith@mail-server.co.uk"}},
		{"None", "no contact details here", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractFields(tc.text).Emails
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d emails, got %d (%v)", len(tc.want), len(got), got)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("email %d: expected %q, got %q", i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestExtractFields_Phones(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want []string
	}{
		{"International", "call +1 555-123-4567 now", []string{"+1 555-123-4567"}},
		{"PlainDigits", "phone: 08012345678", []string{"08012345678"}},
		{"DuplicateDeduped", "12345678 and again 12345678", []string{"12345678"}},
		{"SeparateLinesStaySeparate", "+1 555-123-4567\n+44 20-7946-0958", []string{"+1 555-123-4567", "+44 20-7946-0958"}},
		{"TooShort", "pin 1234567", []string{}},
		{"None", "no numbers at all", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractFields(tc.text).Phones
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d phones, got %d (%v)", len(tc.want), len(got), got)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("phone %d: expected %q, got %q", i, tc.want[i], got[i])
				}
			}
		})
	}
}
