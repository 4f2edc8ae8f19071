package search

import "github.com/hireloop/talent-scout/internal/candidate"

// Paginate returns the 1-indexed page of the matched set. A page past the
// end is an empty slice, not an error.
func Paginate(matched []*candidate.Candidate, page, pageSize int) []*candidate.Candidate {
	if page < 1 || pageSize < 1 {
		return []*candidate.Candidate{}
	}

	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []*candidate.Candidate{}
	}

	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end]
}

// TotalPages returns ceil(matched / pageSize).
func TotalPages(matched, pageSize int) int {
	if matched <= 0 || pageSize < 1 {
		return 0
	}
	return (matched + pageSize - 1) / pageSize
}
