// internal/quoting/limits/limits.go

// Package limits implements best-fit coverage-limit negotiation between a
// requested limit tuple and the tuple list a carrier supports.
package limits

import (
	"fmt"
	"strconv"
	"strings"

	"carrier-quoting/internal/models"
)

// BestFit returns the supported tuple that best satisfies the request.
//
// A candidate is acceptable only when every component is at least the
// corresponding requested component; a zero requested component is treated
// as "don't care" and skipped. Among acceptable candidates the one with the
// smallest first component wins, ties broken by the second component, then
// the third, so the cheapest adequate coverage is always preferred over
// richer alternatives.
//
// ok is false when no candidate is acceptable. Callers must treat that as
// an appetite mismatch (autodecline), not a failure: the carrier simply
// does not offer what was asked for.
func BestFit(requested models.LimitTuple, supported []models.RawLimitTuple) (best models.LimitTuple, ok bool) {
	for _, raw := range supported {
		candidate, err := Normalize(raw)
		if err != nil {
			// Unusable config row; it can never be offered.
			continue
		}
		if !dominates(candidate, requested) {
			continue
		}
		if !ok || lessPreferred(best, candidate) {
			best = candidate
			ok = true
		}
	}
	return best, ok
}

// dominates reports whether candidate offers at least the requested amount
// in every slot the request cares about.
func dominates(candidate, requested models.LimitTuple) bool {
	for i := range requested {
		if requested[i] == 0 {
			continue
		}
		if candidate[i] < requested[i] {
			return false
		}
	}
	return true
}

// lessPreferred reports whether challenger should replace current under the
// smallest-first-component ordering.
func lessPreferred(current, challenger models.LimitTuple) bool {
	for i := range current {
		if challenger[i] != current[i] {
			return challenger[i] < current[i]
		}
	}
	return false
}

// Normalize converts a configured limit row to whole-dollar integers.
// Carrier limit lists arrive with commas, currency symbols and stray
// whitespace ("$1,000,000").
func Normalize(raw models.RawLimitTuple) (models.LimitTuple, error) {
	var out models.LimitTuple
	for i, s := range raw {
		v, err := ParseAmount(s)
		if err != nil {
			return models.LimitTuple{}, fmt.Errorf("limit component %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// ParseAmount parses one monetary limit component to a whole-dollar int.
func ParseAmount(s string) (int, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', '$', ' ', '\t':
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return 0, fmt.Errorf("empty limit value %q", s)
	}
	v, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, fmt.Errorf("malformed limit value %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative limit value %q", s)
	}
	return v, nil
}
