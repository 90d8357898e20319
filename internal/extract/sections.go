package extract

import "strings"

const defaultExperienceWindow = 9

var (
	defaultEducationKeywords = []string{"university", "college", "institute", "school", "bachelor", "master", "phd"}
	defaultExperienceAnchors = []string{"experience", "work history", "employment"}
)

// Segmenter locates education and experience sections using keyword
// anchors over the text split into lines. The experience rule (first
// anchor, fixed window, no section-end detection) lives here so a smarter
// segmenter can replace it without touching the rest of the pipeline.
type Segmenter struct {
	educationKeywords []string
	experienceAnchors []string
	experienceWindow  int
}

func NewSegmenter() *Segmenter {
	return &Segmenter{
		educationKeywords: defaultEducationKeywords,
		experienceAnchors: defaultExperienceAnchors,
		experienceWindow:  defaultExperienceWindow,
	}
}

// FindEducation collects every line whose lowercased content mentions an
// education keyword, trimmed, in document order. The whole document is
// scanned; there is no early termination.
func (s *Segmenter) FindEducation(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, kw := range s.educationKeywords {
			if strings.Contains(lower, kw) {
				out = append(out, strings.TrimSpace(line))
				break
			}
		}
	}
	return out
}

// FindExperience scans for the first anchor line, then collects up to the
// next experienceWindow non-empty trimmed lines. Only one block is ever
// captured, even if an anchor reappears later; no anchor means an empty
// result.
func (s *Segmenter) FindExperience(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !s.isAnchor(line) {
			continue
		}
		out := make([]string, 0, s.experienceWindow)
		for _, next := range lines[i+1:] {
			trimmed := strings.TrimSpace(next)
			if trimmed == "" {
				continue
			}
			out = append(out, trimmed)
			if len(out) == s.experienceWindow {
				break
			}
		}
		return out
	}
	return nil
}

func (s *Segmenter) isAnchor(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range s.experienceAnchors {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
