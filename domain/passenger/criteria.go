package passenger

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"titanicdash/domain/core"
)

// AgeRange is an inclusive [Min, Max] bound on age
type AgeRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports Min <= age <= Max
func (r AgeRange) Contains(age float64) bool {
	return r.Min <= age && age <= r.Max
}

// Empty reports whether no age can satisfy the range
func (r AgeRange) Empty() bool {
	return r.Min > r.Max
}

// SexSet is a set of genders. The zero value is the empty set.
type SexSet map[Sex]struct{}

// NewSexSet builds a set from the given genders
func NewSexSet(sexes ...Sex) SexSet {
	set := make(SexSet, len(sexes))
	for _, s := range sexes {
		set[s] = struct{}{}
	}
	return set
}

// Contains reports membership
func (s SexSet) Contains(sex Sex) bool {
	_, ok := s[sex]
	return ok
}

// Sorted returns members in alphabetical order
func (s SexSet) Sorted() []Sex {
	out := make([]Sex, 0, len(s))
	for sex := range s {
		out = append(out, sex)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ClassFilter is either the wildcard All or one specific Class.
// The zero value is All.
type ClassFilter struct {
	class Class
}

// AllClasses returns the wildcard filter
func AllClasses() ClassFilter { return ClassFilter{} }

// OnlyClass returns a filter matching exactly c
func OnlyClass(c Class) ClassFilter { return ClassFilter{class: c} }

// IsAll reports whether the class predicate is bypassed
func (f ClassFilter) IsAll() bool { return f.class == 0 }

// Class returns the selected class; ok is false for All
func (f ClassFilter) Class() (Class, bool) {
	return f.class, f.class != 0
}

// Matches applies the class predicate
func (f ClassFilter) Matches(c Class) bool {
	return f.IsAll() || f.class == c
}

func (f ClassFilter) String() string {
	if f.IsAll() {
		return ClassAllLabel
	}
	return f.class.String()
}

// ClassAllLabel is the wildcard option shown in the class selector
const ClassAllLabel = "All"

// ParseClassFilter accepts "All" (any case) or 1, 2, 3
func ParseClassFilter(s string) (ClassFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, ClassAllLabel) {
		return AllClasses(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || !Class(n).Valid() {
		return ClassFilter{}, fmt.Errorf("%w: %q", core.ErrInvalidClass, s)
	}
	return OnlyClass(Class(n)), nil
}

// MarshalText renders the filter as "All" or the class digit
func (f ClassFilter) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText parses the form produced by MarshalText
func (f *ClassFilter) UnmarshalText(b []byte) error {
	parsed, err := ParseClassFilter(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// FilterCriteria is the tuple of constraints selected in the UI
type FilterCriteria struct {
	Ages  AgeRange    `json:"age_range"`
	Sexes SexSet      `json:"-"`
	Class ClassFilter `json:"class"`
}

// Matches reports whether r satisfies all three predicates
func (c FilterCriteria) Matches(r Record) bool {
	return c.Ages.Contains(r.Age) && c.Sexes.Contains(r.Sex) && c.Class.Matches(r.Class)
}
