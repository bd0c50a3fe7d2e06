package passenger

import (
	"fmt"
	"strings"
	"time"

	"titanicdash/domain/core"
)

// Sex is the recorded gender of a passenger
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// AllSexes lists the selectable genders in display order
var AllSexes = []Sex{SexMale, SexFemale}

// ParseSex normalizes a raw cell or control value
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male":
		return SexMale, nil
	case "female":
		return SexFemale, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrInvalidSex, s)
}

func (s Sex) String() string { return string(s) }

// Class is the passenger ticket class (1, 2 or 3)
type Class int

const (
	FirstClass  Class = 1
	SecondClass Class = 2
	ThirdClass  Class = 3
)

// AllClassValues lists the concrete classes in ascending order
var AllClassValues = []Class{FirstClass, SecondClass, ThirdClass}

// Valid reports whether c is one of the three ticket classes
func (c Class) Valid() bool {
	return c >= FirstClass && c <= ThirdClass
}

func (c Class) String() string { return fmt.Sprintf("%d", int(c)) }

// Record is one cleaned passenger row. Age is always known.
type Record struct {
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	Age      float64 `json:"age" yaml:"age"`
	Sex      Sex     `json:"sex" yaml:"sex"`
	Class    Class   `json:"pclass" yaml:"pclass"`
	Survived bool    `json:"survived" yaml:"survived"`
}

// SurvivedCode returns the 0/1 outcome code used by the source data
func (r Record) SurvivedCode() int {
	if r.Survived {
		return 1
	}
	return 0
}

// Meta describes where a dataset came from
type Meta struct {
	Source      string    `json:"source"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Version     string    `json:"version,omitempty"`
	Description string    `json:"description,omitempty"` // markdown
	Fingerprint core.Hash `json:"fingerprint,omitempty"`
	RawRows     int       `json:"raw_rows"`
	DroppedRows int       `json:"dropped_rows"` // rows removed for unknown age
	LoadedAt    time.Time `json:"loaded_at"`
}

// Dataset is the full cleaned passenger table, loaded once per process
type Dataset struct {
	Records []Record `json:"records"`
	Meta    Meta     `json:"meta"`
}

// Len returns the number of records
func (d Dataset) Len() int { return len(d.Records) }

// AgesOf extracts the age column from records
func AgesOf(records []Record) []float64 {
	ages := make([]float64, len(records))
	for i, r := range records {
		ages[i] = r.Age
	}
	return ages
}
