package search

import (
	"strings"

	"github.com/hireloop/talent-scout/internal/candidate"
)

// stage is a single narrowing step of the match pipeline.
type stage interface {
	Name() string
	Enabled(f *Filter) bool
	// Apply receives the full pool and the current working set and returns
	// the next working set. Fuzzy stages rank against the full pool and
	// replace the working set; keyword and range stages narrow it in place
	// order.
	Apply(pool, working []*candidate.Candidate, f *Filter) ([]*candidate.Candidate, Step)
}

// Step describes the result of executing one pipeline stage.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

type jobTitleStage struct{}

func (jobTitleStage) Name() string { return "job_title" }

func (jobTitleStage) Enabled(f *Filter) bool { return strings.TrimSpace(f.JobTitle) != "" }

func (jobTitleStage) Apply(pool, working []*candidate.Candidate, f *Filter) ([]*candidate.Candidate, Step) {
	initial := len(working)
	next := rankAll(f.JobTitle, pool)
	return next, Step{Initial: initial, Dropped: initial - len(next), Left: len(next)}
}

type educationStage struct{}

func (educationStage) Name() string { return "education" }

func (educationStage) Enabled(f *Filter) bool { return strings.TrimSpace(f.Education) != "" }

func (educationStage) Apply(_, working []*candidate.Candidate, f *Filter) ([]*candidate.Candidate, Step) {
	initial := len(working)
	tokens := splitKeywords(f.Education)
	if len(tokens) == 0 {
		return working, Step{Initial: initial, Dropped: 0, Left: initial}
	}

	next := make([]*candidate.Candidate, 0, initial)
	for _, c := range working {
		education := strings.ToLower(c.Education)
		for _, token := range tokens {
			if strings.Contains(education, token) {
				next = append(next, c)
				break
			}
		}
	}
	return next, Step{Initial: initial, Dropped: initial - len(next), Left: len(next)}
}

type locationStage struct{}

func (locationStage) Name() string { return "location" }

func (locationStage) Enabled(f *Filter) bool { return strings.TrimSpace(f.Location) != "" }

func (locationStage) Apply(pool, working []*candidate.Candidate, f *Filter) ([]*candidate.Candidate, Step) {
	initial := len(working)
	// Ranks against the full pool and replaces the working set, discarding
	// prior narrowing. Compatibility with the observed upstream behavior;
	// do not change to an intersection without confirming the intent.
	next := rankAll(f.Location, pool)
	return next, Step{Initial: initial, Dropped: initial - len(next), Left: len(next)}
}

type skillsStage struct{}

func (skillsStage) Name() string { return "skills" }

func (skillsStage) Enabled(f *Filter) bool {
	for _, skill := range f.Skills {
		if strings.TrimSpace(skill) != "" {
			return true
		}
	}
	return false
}

func (skillsStage) Apply(pool, working []*candidate.Candidate, f *Filter) ([]*candidate.Candidate, Step) {
	initial := len(working)

	union := make(map[*candidate.Candidate]struct{})
	for _, skill := range f.Skills {
		if skill = strings.TrimSpace(skill); skill == "" {
			continue
		}
		for _, c := range pool {
			if matchesAny(skill, c) {
				union[c] = struct{}{}
			}
		}
	}

	// An empty union leaves the working set untouched instead of zeroing
	// the results.
	if len(union) == 0 {
		return working, Step{Initial: initial, Dropped: 0, Left: initial}
	}

	next := make([]*candidate.Candidate, 0, initial)
	for _, c := range working {
		if _, ok := union[c]; ok {
			next = append(next, c)
		}
	}
	return next, Step{Initial: initial, Dropped: initial - len(next), Left: len(next)}
}

type experienceStage struct{}

func (experienceStage) Name() string { return "experience" }

func (experienceStage) Enabled(*Filter) bool { return true }

func (experienceStage) Apply(_, working []*candidate.Candidate, f *Filter) ([]*candidate.Candidate, Step) {
	initial := len(working)
	low, high := f.Experience[0], f.Experience[1]

	next := make([]*candidate.Candidate, 0, initial)
	for _, c := range working {
		// A record without the field fails the comparison.
		if c.Experience == nil {
			continue
		}
		if *c.Experience >= low && *c.Experience <= high {
			next = append(next, c)
		}
	}
	return next, Step{Initial: initial, Dropped: initial - len(next), Left: len(next)}
}
