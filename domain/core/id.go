package core

import (
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// RenderID identifies one load→filter→present run.
type RenderID ID

// NewRenderID creates a fresh render identifier
func NewRenderID() RenderID { return RenderID(NewID()) }

func (id RenderID) String() string { return ID(id).String() }

// Short returns the last (random) block of the UUID, enough to correlate log lines.
// The leading blocks of a v7 UUID are a timestamp and repeat across runs.
func (id RenderID) Short() string {
	s := string(id)
	if i := strings.LastIndexByte(s, '-'); i >= 0 && i < len(s)-1 {
		return s[i+1:]
	}
	return s
}
