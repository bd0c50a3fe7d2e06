package ports

import (
	"errors"

	"titanicdash/domain/passenger"
)

// SurvivalGroup is the record count for one (sex, survived) pair
type SurvivalGroup struct {
	Sex      passenger.Sex `json:"sex" yaml:"sex"`
	Survived int           `json:"survived" yaml:"survived"`
	Count    int           `json:"count" yaml:"count"`
}

// Histogram holds equal-width bin edges (len = bins+1) and per-bin counts
type Histogram struct {
	Edges  []float64 `json:"edges" yaml:"edges"`
	Counts []int     `json:"counts" yaml:"counts"`
}

// Bins returns the number of bins
func (h Histogram) Bins() int { return len(h.Counts) }

// Empty reports whether the histogram has no bins
func (h Histogram) Empty() bool { return len(h.Counts) == 0 }

// Image is a rendered chart ready for the UI surface
type Image struct {
	MIMEType string
	Data     []byte
}

// ChartRenderer turns aggregated chart data into images
type ChartRenderer interface {
	SurvivalByGender(groups []SurvivalGroup) (*Image, error)
	AgeHistogram(h Histogram) (*Image, error)
}

// ErrNoChartData is returned by renderers given nothing to draw
var ErrNoChartData = errors.New("no data to chart")
