package app

import (
	"titanicdash/domain/passenger"
)

// ApplyFilter returns the records satisfying every predicate of c, in their
// original order. The input slice is never modified.
func ApplyFilter(records []passenger.Record, c passenger.FilterCriteria) []passenger.Record {
	if len(c.Sexes) == 0 || c.Ages.Empty() {
		return []passenger.Record{}
	}

	out := make([]passenger.Record, 0, len(records))
	for _, r := range records {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
