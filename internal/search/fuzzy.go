package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/hireloop/talent-scout/internal/candidate"
)

// rankAll scores the query against every candidate's searchable fields and
// returns the matching candidates ordered best-first. The rank of a candidate
// is the smallest Levenshtein distance across its fields; ties keep the
// original collection order.
func rankAll(query string, pool []*candidate.Candidate) []*candidate.Candidate {
	query = strings.TrimSpace(query)
	if query == "" {
		return pool
	}

	type hit struct {
		c    *candidate.Candidate
		rank int
	}

	hits := make([]hit, 0, len(pool))
	for _, c := range pool {
		best := -1
		for _, field := range c.SearchFields() {
			rank := fuzzy.RankMatchNormalizedFold(query, field)
			if rank < 0 {
				continue
			}
			if best < 0 || rank < best {
				best = rank
			}
		}
		if best < 0 {
			continue
		}
		hits = append(hits, hit{c: c, rank: best})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })

	matched := make([]*candidate.Candidate, 0, len(hits))
	for _, h := range hits {
		matched = append(matched, h.c)
	}
	return matched
}

// matchesAny reports whether the query fuzzy-matches any searchable field.
func matchesAny(query string, c *candidate.Candidate) bool {
	for _, field := range c.SearchFields() {
		if fuzzy.MatchNormalizedFold(query, field) {
			return true
		}
	}
	return false
}
