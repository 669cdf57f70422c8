// Package names resolves loosely typed names (organ parameters, activation
// functions) to their canonical spelling.
package names

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type phrase struct {
	canonical string
	alias     string
}

type Registry struct {
	phrases []phrase
}

type Match struct {
	Canonical string
	Score     float64
	Source    string
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(canonical string, aliases ...string) {
	canonical = Normalise(canonical)
	if canonical == "" {
		return
	}
	r.phrases = append(r.phrases, phrase{canonical: canonical, alias: canonical})
	for _, a := range aliases {
		n := Normalise(a)
		if n == "" {
			continue
		}
		r.phrases = append(r.phrases, phrase{canonical: canonical, alias: n})
	}
}

// Resolve returns the best candidate for raw. Exact and alias hits win over
// prefixes, which win over edit-distance matches.
func (r *Registry) Resolve(raw string) (Match, bool) {
	in := Normalise(raw)
	if in == "" {
		return Match{}, false
	}
	cands := make([]Match, 0, len(r.phrases))
	for _, p := range r.phrases {
		if in == p.alias {
			score := 1.0
			source := "exact"
			if p.alias != p.canonical {
				score = 0.97
				source = "alias"
			}
			cands = append(cands, Match{Canonical: p.canonical, Score: score, Source: source})
			continue
		}
		if len(in) >= 3 && strings.HasPrefix(p.alias, in) {
			cands = append(cands, Match{Canonical: p.canonical, Score: 0.9, Source: "prefix"})
			continue
		}
		if len(in) < 3 {
			continue
		}
		dist := levenshtein.ComputeDistance(in, p.alias)
		if dist > levenshteinLimit(len(p.alias)) {
			continue
		}
		cands = append(cands, Match{Canonical: p.canonical, Score: 0.72 - (0.08 * float64(dist)), Source: "lev"})
	}
	if len(cands) == 0 {
		return Match{}, false
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score == cands[j].Score {
			return cands[i].Canonical < cands[j].Canonical
		}
		return cands[i].Score > cands[j].Score
	})
	best := cands[0]
	// Two different names tied on a prefix is ambiguous ("inverse").
	if len(cands) > 1 && cands[1].Score == best.Score && cands[1].Canonical != best.Canonical {
		return Match{}, false
	}
	return best, true
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
