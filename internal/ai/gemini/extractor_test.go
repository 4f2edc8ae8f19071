package gemini

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hireloop/talent-scout/internal/ai"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestExtractorParsesFullResponse(t *testing.T) {
	stub := &stubGenerator{response: `{
		"jobTitle": "Backend Developer",
		"education": "BSc Computer Science",
		"location": "Remote",
		"skills": ["Go", "SQL"],
		"experienceRange": [2, 6]
	}`}
	extractor := NewExtractor(stub, zap.NewNop(), 0)

	filter, err := extractor.Extract(context.Background(), "We are hiring a backend developer...")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filter.JobTitle != "Backend Developer" {
		t.Fatalf("unexpected job title: %q", filter.JobTitle)
	}
	if filter.Location != "Remote" {
		t.Fatalf("unexpected location: %q", filter.Location)
	}
	if !reflect.DeepEqual(filter.Skills, []string{"Go", "SQL"}) {
		t.Fatalf("unexpected skills: %v", filter.Skills)
	}
	if filter.Experience != [2]float64{2, 6} {
		t.Fatalf("unexpected range: %v", filter.Experience)
	}

	if !strings.Contains(stub.lastPrompt, "We are hiring a backend developer...") {
		t.Fatalf("expected job description in prompt")
	}
}

func TestExtractorStripsMarkdownFences(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"jobTitle\": \"Designer\", \"skills\": []}\n```"}
	extractor := NewExtractor(stub, zap.NewNop(), 0)

	filter, err := extractor.Extract(context.Background(), "jd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.JobTitle != "Designer" {
		t.Fatalf("unexpected job title: %q", filter.JobTitle)
	}
}

func TestExtractorAppliesDefaults(t *testing.T) {
	stub := &stubGenerator{response: `{"jobTitle": "Backend Developer"}`}
	extractor := NewExtractor(stub, zap.NewNop(), 0)

	filter, err := extractor.Extract(context.Background(), "jd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filter.Education != "" || filter.Location != "" {
		t.Fatalf("expected empty defaults, got %q / %q", filter.Education, filter.Location)
	}
	if filter.Skills == nil || len(filter.Skills) != 0 {
		t.Fatalf("expected empty skills list, got %v", filter.Skills)
	}
	if filter.Experience != [2]float64{0, 10} {
		t.Fatalf("expected default range, got %v", filter.Experience)
	}
}

func TestExtractorRangeCoercion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		want     [2]float64
	}{
		{name: "numeric strings", response: `{"experienceRange": ["2", "6"]}`, want: [2]float64{2, 6}},
		{name: "inverted falls back", response: `{"experienceRange": [9, 2]}`, want: [2]float64{0, 10}},
		{name: "wrong arity falls back", response: `{"experienceRange": [3]}`, want: [2]float64{0, 10}},
		{name: "garbage falls back", response: `{"experienceRange": "senior"}`, want: [2]float64{0, 10}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubGenerator{response: tc.response}
			extractor := NewExtractor(stub, zap.NewNop(), 0)

			filter, err := extractor.Extract(context.Background(), "jd")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if filter.Experience != tc.want {
				t.Fatalf("unexpected range: %v", filter.Experience)
			}
		})
	}
}

func TestExtractorWrapsGeneratorFailure(t *testing.T) {
	cause := errors.New("deadline exceeded")
	stub := &stubGenerator{err: cause}
	extractor := NewExtractor(stub, zap.NewNop(), 0)

	filter, err := extractor.Extract(context.Background(), "jd")
	if filter != nil {
		t.Fatalf("expected no filter, got %+v", filter)
	}

	var normErr *ai.NormalizationError
	if !errors.As(err, &normErr) {
		t.Fatalf("expected NormalizationError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be wrapped, got %v", err)
	}
	if normErr.Stage != "generate" {
		t.Fatalf("unexpected stage: %q", normErr.Stage)
	}
}

func TestExtractorWrapsUnparsableResponse(t *testing.T) {
	stub := &stubGenerator{response: "I cannot help with that."}
	extractor := NewExtractor(stub, zap.NewNop(), 0)

	_, err := extractor.Extract(context.Background(), "jd")

	var normErr *ai.NormalizationError
	if !errors.As(err, &normErr) {
		t.Fatalf("expected NormalizationError, got %v", err)
	}
	if normErr.Stage != "parse" {
		t.Fatalf("unexpected stage: %q", normErr.Stage)
	}
}

func TestExtractorRejectsEmptyInput(t *testing.T) {
	stub := &stubGenerator{response: "{}"}
	extractor := NewExtractor(stub, zap.NewNop(), 0)

	if _, err := extractor.Extract(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty job description")
	}
	if stub.lastPrompt != "" {
		t.Fatal("expected no generator call for empty input")
	}
}

func TestExtractJSONHandlesFenceVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: `{"a": 1}`, want: `{"a": 1}`},
		{name: "json fence", input: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "bare fence", input: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "backticks", input: "`{\"a\": 1}`", want: `{"a": 1}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.input); got != tc.want {
				t.Fatalf("extractJSON(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
