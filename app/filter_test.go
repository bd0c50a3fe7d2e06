package app

import (
	"testing"

	"titanicdash/domain/passenger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioDataset is the three-passenger table used throughout the tests
func scenarioDataset() passenger.Dataset {
	return passenger.Dataset{Records: []passenger.Record{
		{Age: 22, Sex: passenger.SexMale, Class: passenger.ThirdClass, Survived: false},
		{Age: 40, Sex: passenger.SexFemale, Class: passenger.FirstClass, Survived: true},
		{Age: 5, Sex: passenger.SexMale, Class: passenger.ThirdClass, Survived: true},
	}}
}

func criteria(min, max float64, class passenger.ClassFilter, sexes ...passenger.Sex) passenger.FilterCriteria {
	return passenger.FilterCriteria{
		Ages:  passenger.AgeRange{Min: min, Max: max},
		Sexes: passenger.NewSexSet(sexes...),
		Class: class,
	}
}

func TestApplyFilterAllCriteria(t *testing.T) {
	ds := scenarioDataset()
	got := ApplyFilter(ds.Records, criteria(0, 80, passenger.AllClasses(), passenger.SexMale, passenger.SexFemale))
	assert.Equal(t, ds.Records, got)
}

func TestApplyFilterMalesOnly(t *testing.T) {
	ds := scenarioDataset()
	got := ApplyFilter(ds.Records, criteria(0, 80, passenger.AllClasses(), passenger.SexMale))
	assert.Equal(t, []passenger.Record{ds.Records[0], ds.Records[2]}, got)
}

func TestApplyFilterAgeLowerBoundAndClass(t *testing.T) {
	ds := scenarioDataset()
	got := ApplyFilter(ds.Records, criteria(10, 80, passenger.OnlyClass(passenger.ThirdClass), passenger.SexMale, passenger.SexFemale))
	assert.Equal(t, []passenger.Record{ds.Records[0]}, got)
}

func TestApplyFilterEmptyGenderSet(t *testing.T) {
	ds := scenarioDataset()
	for _, class := range []passenger.ClassFilter{passenger.AllClasses(), passenger.OnlyClass(passenger.ThirdClass)} {
		got := ApplyFilter(ds.Records, criteria(0, 80, class))
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}

	got := ApplyFilter(ds.Records, passenger.FilterCriteria{Ages: passenger.AgeRange{Min: 0, Max: 80}})
	assert.Empty(t, got, "nil set is the empty set")
}

func TestApplyFilterInvertedRange(t *testing.T) {
	ds := scenarioDataset()
	got := ApplyFilter(ds.Records, criteria(50, 10, passenger.AllClasses(), passenger.SexMale, passenger.SexFemale))
	assert.Empty(t, got)
}

func TestApplyFilterInclusiveBounds(t *testing.T) {
	ds := scenarioDataset()
	got := ApplyFilter(ds.Records, criteria(5, 22, passenger.AllClasses(), passenger.SexMale))
	assert.Len(t, got, 2)
}

func TestApplyFilterDoesNotMutateInput(t *testing.T) {
	ds := scenarioDataset()
	before := append([]passenger.Record(nil), ds.Records...)
	_ = ApplyFilter(ds.Records, criteria(10, 80, passenger.OnlyClass(passenger.FirstClass), passenger.SexFemale))
	assert.Equal(t, before, ds.Records)
}

// TestApplyFilterConjunctionAndCompleteness checks every criteria combination
// over a grid of passengers: each result row satisfies the predicate, and every
// dataset row satisfying it appears exactly once in original order.
func TestApplyFilterConjunctionAndCompleteness(t *testing.T) {
	var records []passenger.Record
	for age := 0.0; age <= 80; age += 7.5 {
		for _, sex := range passenger.AllSexes {
			for _, class := range passenger.AllClassValues {
				records = append(records, passenger.Record{Age: age, Sex: sex, Class: class, Survived: int(age)%2 == 0})
			}
		}
	}

	sexSets := [][]passenger.Sex{{}, {passenger.SexMale}, {passenger.SexFemale}, passenger.AllSexes}
	classes := []passenger.ClassFilter{passenger.AllClasses(), passenger.OnlyClass(1), passenger.OnlyClass(2), passenger.OnlyClass(3)}
	ranges := []passenger.AgeRange{{Min: 0, Max: 80}, {Min: 10, Max: 30}, {Min: 15, Max: 15}, {Min: 60, Max: 20}}

	for _, sexes := range sexSets {
		for _, class := range classes {
			for _, ages := range ranges {
				c := passenger.FilterCriteria{Ages: ages, Sexes: passenger.NewSexSet(sexes...), Class: class}
				got := ApplyFilter(records, c)

				for _, r := range got {
					require.True(t, ages.Min <= r.Age && r.Age <= ages.Max)
					require.True(t, c.Sexes.Contains(r.Sex))
					require.True(t, class.IsAll() || class.Matches(r.Class))
				}

				var want []passenger.Record
				for _, r := range records {
					if c.Matches(r) {
						want = append(want, r)
					}
				}
				if want == nil {
					want = []passenger.Record{}
				}
				require.Equal(t, want, got)
			}
		}
	}
}
