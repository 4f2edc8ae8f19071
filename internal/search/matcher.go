// Package search narrows an in-memory candidate pool through a sequential
// stage pipeline: fuzzy job title, education keywords, fuzzy location, skill
// union and experience range. Fuzzy stages establish the result order; the
// remaining stages preserve it.
package search

import (
	"go.uber.org/zap"

	"github.com/hireloop/talent-scout/internal/candidate"
)

type Matcher struct {
	logger *zap.Logger
	stages []stage
}

func NewMatcher(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		logger: logger,
		stages: []stage{
			jobTitleStage{},
			educationStage{},
			locationStage{},
			skillsStage{},
			experienceStage{},
		},
	}
}

// Match runs the pipeline over the pool and returns the matching candidates.
// It never modifies the pool and is safe to call concurrently with the same
// arguments; identical inputs always produce identical output. An empty
// result is a normal outcome, a malformed filter is an *InvalidFilterError.
func (m *Matcher) Match(pool *candidate.Candidates, f *Filter) (*candidate.Candidates, error) {
	if f == nil {
		f = NewFilter()
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	all := pool.Items
	working := make([]*candidate.Candidate, len(all))
	copy(working, all)

	for _, s := range m.stages {
		if !s.Enabled(f) {
			continue
		}

		next, info := s.Apply(all, working, f)
		m.logger.Info("match stage",
			zap.String("name", s.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)
		working = next
	}

	m.logger.Info("match completed",
		zap.Int("pool", len(all)),
		zap.Int("matched", len(working)),
	)

	return &candidate.Candidates{Items: working}, nil
}
