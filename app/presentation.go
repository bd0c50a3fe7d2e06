package app

import (
	"fmt"
	"math"
	"sort"

	"titanicdash/domain/core"
	"titanicdash/domain/passenger"
	"titanicdash/ports"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram bin bounds for the age chart slider
const (
	MinBins     = 5
	MaxBins     = 50
	DefaultBins = 20
)

// MeanAge is the arithmetic mean of age; NaN when records is empty
func MeanAge(records []passenger.Record) float64 {
	mean, err := stats.Mean(passenger.AgesOf(records))
	if err != nil {
		return math.NaN()
	}
	return mean
}

// FormatMean renders the statistic with two decimals, NaN as "NaN"
func FormatMean(mean float64) string {
	if math.IsNaN(mean) {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", mean)
}

// SurvivalByGender counts records per (sex, survived). Groups are ordered
// by sex then outcome; groups with no members are absent.
func SurvivalByGender(records []passenger.Record) []ports.SurvivalGroup {
	counts := make(map[ports.SurvivalGroup]int)
	for _, r := range records {
		counts[ports.SurvivalGroup{Sex: r.Sex, Survived: r.SurvivedCode()}]++
	}

	groups := make([]ports.SurvivalGroup, 0, len(counts))
	for key, n := range counts {
		key.Count = n
		groups = append(groups, key)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Sex != groups[j].Sex {
			return groups[i].Sex < groups[j].Sex
		}
		return groups[i].Survived < groups[j].Survived
	})
	return groups
}

// AgeHistogram partitions the observed age range into bins equal-width
// bins. Bins are left-closed; the maximum age falls into the last bin.
func AgeHistogram(records []passenger.Record, bins int) (ports.Histogram, error) {
	if bins < MinBins || bins > MaxBins {
		return ports.Histogram{}, core.NewInvalidBinsError(bins, MinBins, MaxBins)
	}
	if len(records) == 0 {
		return ports.Histogram{}, nil
	}

	ages := passenger.AgesOf(records)
	sort.Float64s(ages)
	lo, hi := ages[0], ages[len(ages)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	edges := floats.Span(make([]float64, bins+1), lo, hi)
	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	weighted := stat.Histogram(nil, dividers, ages, nil)
	counts := make([]int, bins)
	for i, w := range weighted {
		counts[i] = int(w)
	}
	return ports.Histogram{Edges: edges, Counts: counts}, nil
}

// Result is everything the page shows for one set of controls
type Result struct {
	Filtered  []passenger.Record
	MeanAge   float64
	Survival  []ports.SurvivalGroup
	Histogram ports.Histogram
}

// Count returns the number of filtered records
func (r Result) Count() int { return len(r.Filtered) }

// Empty reports whether no record passed the filter
func (r Result) Empty() bool { return len(r.Filtered) == 0 }

// Render is the pure load-independent part of a run: filter, then compute
// the statistic and both chart inputs.
func Render(ds passenger.Dataset, criteria passenger.FilterCriteria, bins int) (Result, error) {
	filtered := ApplyFilter(ds.Records, criteria)

	hist, err := AgeHistogram(filtered, bins)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Filtered:  filtered,
		MeanAge:   MeanAge(filtered),
		Survival:  SurvivalByGender(filtered),
		Histogram: hist,
	}, nil
}
