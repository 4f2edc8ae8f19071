package ai

import (
	"context"
	"fmt"

	"github.com/hireloop/talent-scout/internal/search"
)

// Extractor turns an unstructured job description into a structured filter.
// A single attempt only: a failed extraction is surfaced to the caller so it
// can fall back to manual filter entry. Cancelling the context abandons an
// in-flight extraction when a newer submission supersedes it.
type Extractor interface {
	Extract(ctx context.Context, jobDescription string) (*search.Filter, error)
}

// NormalizationError reports that the text-understanding service failed,
// timed out or returned content that could not be parsed. The caller never
// receives a partially-applied filter alongside it.
type NormalizationError struct {
	Stage string
	Err   error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize job description: %s: %v", e.Stage, e.Err)
}

func (e *NormalizationError) Unwrap() error { return e.Err }
