package condtable

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggestDistance is the largest edit distance worth suggesting.
const suggestDistance = 3

// Validate checks rules and group declarations against the columns at
// authoring time. Rendering never calls it: at render time bad rules simply
// do not apply. Every problem found is returned, joined.
func Validate(columns []Column, rules []Rule, groups []Group) error {
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = c.Key
	}

	var errs []error
	for _, r := range rules {
		if !slices.Contains(keys, r.Column) {
			errs = append(errs, unknownColumn("rule", r.Column, keys))
		}
		if r.ConditionalColumn != "" && !slices.Contains(keys, r.ConditionalColumn) {
			errs = append(errs, unknownColumn("conditional column of "+r.Column, r.ConditionalColumn, keys))
		}
		if r.TotalFormula != "" {
			if err := CheckFormula(r.TotalFormula); err != nil {
				errs = append(errs, fmt.Errorf("rule %q: %w", r.Column, err))
			}
		}
		for i, rg := range r.Ranges {
			for _, b := range []*Boundary{rg.Lower, rg.Upper} {
				if !boundaryPresent(b) {
					continue
				}
				if _, err := ParseSymbol(string(b.Symbol)); err != nil {
					errs = append(errs, fmt.Errorf("rule %q range %d: %w", r.Column, i, err))
				}
			}
		}
	}
	for _, g := range groups {
		for _, child := range g.Children {
			if !slices.Contains(keys, child.ColumnKey) {
				errs = append(errs, unknownColumn("group "+g.Label, child.ColumnKey, keys))
			}
		}
	}
	return errors.Join(errs...)
}

func unknownColumn(owner, key string, keys []string) error {
	if s := closest(key, keys); s != "" {
		return fmt.Errorf("%s: %w %q (did you mean %q?)", owner, ErrUnknownColumn, key, s)
	}
	return fmt.Errorf("%s: %w %q", owner, ErrUnknownColumn, key)
}

// closest returns the key nearest to s by edit distance, or "" when none is
// close enough.
func closest(s string, keys []string) string {
	best, bestDist := "", suggestDistance+1
	for _, k := range keys {
		d := levenshtein.ComputeDistance(strings.ToLower(s), strings.ToLower(k))
		if d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}
