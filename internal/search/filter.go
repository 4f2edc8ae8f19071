package search

import (
	"fmt"
	"math"
	"strings"
)

// UnboundedExperience is the upper bound used when a filter carries no
// experience constraint.
const UnboundedExperience = math.MaxFloat64

// Filter is one search request. Empty strings and an empty skills list mean
// "no constraint on this field". A filter is built once per request and not
// modified while a match runs.
type Filter struct {
	JobTitle   string
	Education  string
	Location   string
	Skills     []string
	Experience [2]float64
}

// NewFilter returns a filter with no constraints.
func NewFilter() *Filter {
	return &Filter{Experience: [2]float64{0, UnboundedExperience}}
}

// InvalidFilterError reports a filter that violates the range invariant.
// Bounds are never silently swapped or corrected.
type InvalidFilterError struct {
	Field  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter: %s: %s", e.Field, e.Reason)
}

func (f *Filter) Validate() error {
	low, high := f.Experience[0], f.Experience[1]
	if math.IsNaN(low) || math.IsNaN(high) {
		return &InvalidFilterError{Field: "experience", Reason: "bounds must be numeric"}
	}
	if low > high {
		return &InvalidFilterError{
			Field:  "experience",
			Reason: fmt.Sprintf("min %g is greater than max %g", low, high),
		}
	}
	return nil
}

// splitKeywords turns a comma-separated filter value into lowercased trimmed
// tokens, dropping empties.
func splitKeywords(value string) []string {
	parts := strings.Split(value, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}
