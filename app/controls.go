package app

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"titanicdash/domain/core"
	"titanicdash/domain/passenger"
	"titanicdash/internal/dataset"
)

// Query parameter names shared by the HTML form, the JSON API and the CLI
const (
	ParamAgeMin    = "age_min"
	ParamAgeMax    = "age_max"
	ParamSex       = "sex"
	ParamClass     = "class"
	ParamBins      = "bins"
	ParamSubmitted = "submitted"
)

// DefaultAgeRange is the initial age selection, clamped to the slider bounds
var DefaultAgeRange = passenger.AgeRange{Min: 0, Max: 80}

// Controls are the current values of every widget
type Controls struct {
	Criteria passenger.FilterCriteria
	Bins     int
}

// SliderBounds are the integer limits of the age slider
type SliderBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// AgeSliderBounds spans the observed ages, widened to whole years
func AgeSliderBounds(ds passenger.Dataset) SliderBounds {
	lo, hi, ok := dataset.AgeBounds(ds.Records)
	if !ok {
		return SliderBounds{Min: int(DefaultAgeRange.Min), Max: int(DefaultAgeRange.Max)}
	}
	return SliderBounds{Min: int(math.Floor(lo)), Max: int(math.Ceil(hi))}
}

func (b SliderBounds) clamp(v float64) float64 {
	return math.Max(float64(b.Min), math.Min(float64(b.Max), v))
}

// DefaultControls are the widget defaults: ages 0-80, both genders, all classes, 20 bins
func DefaultControls(bounds SliderBounds) Controls {
	return Controls{
		Criteria: passenger.FilterCriteria{
			Ages: passenger.AgeRange{
				Min: bounds.clamp(DefaultAgeRange.Min),
				Max: bounds.clamp(DefaultAgeRange.Max),
			},
			Sexes: passenger.NewSexSet(passenger.AllSexes...),
			Class: passenger.AllClasses(),
		},
		Bins: DefaultBins,
	}
}

// ParseControls reads widget values from query parameters. Numbers are
// clamped into the widget domain; tokens no widget can produce are errors.
// Without the submitted marker an absent sex list means the default
// selection, with it the selection is empty.
func ParseControls(values url.Values, bounds SliderBounds) (Controls, error) {
	c := DefaultControls(bounds)

	if raw := values.Get(ParamAgeMin); raw != "" {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(v) {
			return Controls{}, fmt.Errorf("%s: invalid number %q", ParamAgeMin, raw)
		}
		c.Criteria.Ages.Min = bounds.clamp(v)
	}
	if raw := values.Get(ParamAgeMax); raw != "" {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(v) {
			return Controls{}, fmt.Errorf("%s: invalid number %q", ParamAgeMax, raw)
		}
		c.Criteria.Ages.Max = bounds.clamp(v)
	}

	if raw, ok := values[ParamSex]; ok || values.Get(ParamSubmitted) != "" {
		sexes := passenger.NewSexSet()
		for _, s := range raw {
			if strings.TrimSpace(s) == "" {
				continue
			}
			sex, err := passenger.ParseSex(s)
			if err != nil {
				return Controls{}, err
			}
			sexes[sex] = struct{}{}
		}
		c.Criteria.Sexes = sexes
	}

	if raw := values.Get(ParamClass); raw != "" {
		f, err := passenger.ParseClassFilter(raw)
		if err != nil {
			return Controls{}, err
		}
		c.Criteria.Class = f
	}

	if raw := values.Get(ParamBins); raw != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Controls{}, fmt.Errorf("%w: %q", core.ErrInvalidBins, raw)
		}
		c.Bins = clampInt(n, MinBins, MaxBins)
	}

	return c, nil
}

// Values encodes controls back into query parameters
func (c Controls) Values() url.Values {
	v := url.Values{}
	v.Set(ParamAgeMin, strconv.FormatFloat(c.Criteria.Ages.Min, 'f', -1, 64))
	v.Set(ParamAgeMax, strconv.FormatFloat(c.Criteria.Ages.Max, 'f', -1, 64))
	for _, s := range c.Criteria.Sexes.Sorted() {
		v.Add(ParamSex, s.String())
	}
	v.Set(ParamClass, c.Criteria.Class.String())
	v.Set(ParamBins, strconv.Itoa(c.Bins))
	v.Set(ParamSubmitted, "1")
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
