package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/tundex/resume-parser/constants"
)

func TestExtractor_EndToEndDOCX(t *testing.T) {
	tagger := stubTagger(
		Span{Text: "Jane Smith", Label: "PERSON"},
		Span{Text: "Acme", Label: "ORG"},
	)
	e := NewExtractor(
		NewReader(),
		NewRecognizer(tagger, []string{"go", "python"}, nil),
		NewSegmenter(),
		nil,
	)

	data := buildDOCX(t,
		"Jane Smith",
		"jane@x.com | +1 555-123-4567",
		"Stanford University",
		"Experience",
		"Engineer at Acme",
		"Built data pipelines in Go and Python",
	)

	res, err := e.Extract(context.Background(), RawDocument{Data: data, Format: constants.DOCX})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Name == nil || *res.Name != "Jane Smith" {
		t.Errorf("name: expected Jane Smith, got %v", res.Name)
	}
	if res.Email == nil || *res.Email != "jane@x.com" {
		t.Errorf("email: expected jane@x.com, got %v", res.Email)
	}
	if res.Phone == nil || *res.Phone != "+1 555-123-4567" {
		t.Errorf("phone: expected +1 555-123-4567, got %v", res.Phone)
	}
	if len(res.Education) != 1 || res.Education[0] != "Stanford University" {
		t.Errorf("education: expected [Stanford University], got %v", res.Education)
	}
	if len(res.Experience) == 0 || res.Experience[0] != "Engineer at Acme" {
		t.Errorf("experience: expected first line Engineer at Acme, got %v", res.Experience)
	}
	if len(res.Skills) != 2 {
		t.Fatalf("skills: expected 2 vocabulary hits, got %v", res.Skills)
	}
	for _, s := range res.Skills {
		if s != strings.ToLower(s) {
			t.Errorf("skill %q not lowercased", s)
		}
	}
}

func TestExtractor_SkillsAliasEntities(t *testing.T) {
	e := NewExtractor(
		NewReader(),
		NewRecognizer(stubTagger(), []string{"go"}, nil),
		NewSegmenter(),
		nil,
	)

	data := buildDOCX(t, "Writes Go services")
	res, err := e.Extract(context.Background(), RawDocument{Data: data, Format: constants.DOCX})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	skills := res.Entities[constants.CategorySkill]
	if len(res.Skills) != 1 || len(skills) != 1 {
		t.Fatalf("expected one skill on both views, got %v / %v", res.Skills, skills)
	}
	// Skills is the SKILL bucket, not a copy of it.
	if &res.Skills[0] != &skills[0] {
		t.Error("Skills must alias the SKILL entity bucket")
	}
}

func TestExtractor_ScalarFieldsFirstValueWins(t *testing.T) {
	tagger := stubTagger(
		Span{Text: "Jane Smith", Label: "PERSON"},
		Span{Text: "John Doe", Label: "PERSON"},
	)
	e := NewExtractor(
		NewReader(),
		NewRecognizer(tagger, []string{}, nil),
		NewSegmenter(),
		nil,
	)

	data := buildDOCX(t,
		"Jane Smith and John Doe",
		"a@x.com then b@y.com",
		"+1 555-123-4567 or 08012345678",
	)

	res, err := e.Extract(context.Background(), RawDocument{Data: data, Format: constants.DOCX})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := res.Entities[constants.CategoryEmail]; len(got) != 2 {
		t.Fatalf("expected 2 emails in entity map, got %v", got)
	}
	if got := res.Entities[constants.CategoryPhone]; len(got) != 2 {
		t.Fatalf("expected 2 phones in entity map, got %v", got)
	}

	if res.Name == nil || *res.Name != "Jane Smith" {
		t.Errorf("name: expected first PERSON Jane Smith, got %v", res.Name)
	}
	if res.Email == nil || *res.Email != "a@x.com" {
		t.Errorf("email: expected first match a@x.com, got %v", res.Email)
	}
	if res.Phone == nil || *res.Phone != "+1 555-123-4567" {
		t.Errorf("phone: expected first match +1 555-123-4567, got %v", res.Phone)
	}
}

func TestExtractor_MissingFieldsNil(t *testing.T) {
	e := NewExtractor(
		NewReader(),
		NewRecognizer(stubTagger(), []string{}, nil),
		NewSegmenter(),
		nil,
	)

	data := buildDOCX(t, "just some text without anything useful")
	res, err := e.Extract(context.Background(), RawDocument{Data: data, Format: constants.DOCX})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Name != nil || res.Email != nil || res.Phone != nil {
		t.Errorf("expected nil scalars, got name=%v email=%v phone=%v", res.Name, res.Email, res.Phone)
	}
	if res.Education == nil || res.Experience == nil || res.Skills == nil {
		t.Error("slice fields must be empty, not nil")
	}
	if len(res.Education) != 0 || len(res.Experience) != 0 || len(res.Skills) != 0 {
		t.Errorf("expected empty slices, got %v / %v / %v", res.Education, res.Experience, res.Skills)
	}
}

func TestExtractor_CancelledContext(t *testing.T) {
	e := NewExtractor(
		NewReader(),
		NewRecognizer(stubTagger(), []string{}, nil),
		NewSegmenter(),
		nil,
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := buildDOCX(t, "anything")
	if _, err := e.Extract(ctx, RawDocument{Data: data, Format: constants.DOCX}); err == nil {
		t.Fatal("expected context error")
	}
}
