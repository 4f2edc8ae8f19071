// Package store loads full candidate snapshots from an external document
// store. Sources only bulk-read; persistence, indexing and replication stay
// with the backing database.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/hireloop/talent-scout/internal/candidate"
)

// Source returns every candidate record in one read.
type Source interface {
	FetchAll(ctx context.Context) (*candidate.Candidates, error)
}

// decodeRecords turns raw document maps into typed candidates and applies
// the ingest defaults so the matcher never sees a missing field.
func decodeRecords(records []map[string]any) (*candidate.Candidates, error) {
	var items []*candidate.Candidate

	cfg := &mapstructure.DecoderConfig{
		Result:           &items,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("build decoder: %w", err)
	}
	if err := decoder.Decode(records); err != nil {
		return nil, fmt.Errorf("decode candidate records: %w", err)
	}

	candidates := &candidate.Candidates{Items: items}
	applyDefaults(candidates)
	return candidates, nil
}

func applyDefaults(candidates *candidate.Candidates) {
	for _, c := range candidates.Items {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		c.Normalize()
	}
}
