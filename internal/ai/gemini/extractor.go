package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/hireloop/talent-scout/internal/ai"
	"github.com/hireloop/talent-scout/internal/search"
	"github.com/hireloop/talent-scout/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Extractor derives a search filter from a job description with a single
// Gemini call. No retries: a failure surfaces immediately.
type Extractor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200

	defaultExperienceMin = 0
	defaultExperienceMax = 10
)

func NewExtractor(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (e *Extractor) Extract(ctx context.Context, jobDescription string) (*search.Filter, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return nil, errors.New("job description must not be empty")
	}

	prompt := buildPrompt(jobDescription)

	e.logger.Debug("gemini extract request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, &ai.NormalizationError{Stage: "generate", Err: err}
	}

	e.logger.Debug("gemini extract response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	filter, err := parseFilter(raw)
	if err != nil {
		return nil, &ai.NormalizationError{Stage: "parse", Err: err}
	}

	return filter, nil
}

func buildPrompt(jobDescription string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Extract jobTitle, education, location, skills array and experienceRange [min,max] as JSON from:\n{{JOB_DESCRIPTION}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{JOB_DESCRIPTION}}", jobDescription)
}

// parseFilter parses the model output into a fully-populated filter, applying
// the documented defaults for any key the model omitted.
func parseFilter(raw string) (*search.Filter, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	filter := &search.Filter{
		JobTitle:   coerceString(data["jobTitle"]),
		Education:  coerceString(data["education"]),
		Location:   coerceString(data["location"]),
		Skills:     coerceStrings(data["skills"]),
		Experience: coerceRange(data["experienceRange"]),
	}

	return filter, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	default:
		return ""
	}
}

func coerceStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// coerceRange accepts [min, max] with numeric or numeric-string elements and
// falls back to the default range on anything else, including inverted
// bounds.
func coerceRange(v any) [2]float64 {
	fallback := [2]float64{defaultExperienceMin, defaultExperienceMax}

	items, ok := v.([]any)
	if !ok || len(items) != 2 {
		return fallback
	}

	low, okLow := coerceFloat(items[0])
	high, okHigh := coerceFloat(items[1])
	if !okLow || !okHigh || low > high {
		return fallback
	}

	return [2]float64{low, high}
}

func coerceFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
