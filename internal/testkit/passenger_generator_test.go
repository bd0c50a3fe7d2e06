package testkit

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassengerGenerator_Deterministic(t *testing.T) {
	config := PassengerGeneratorConfig{Count: 50, MissingAgeRate: 0.3, FemaleRate: 0.4, Seed: 7}

	a := NewPassengerGenerator(config).Generate()
	b := NewPassengerGenerator(config).Generate()
	assert.Equal(t, a, b)
	assert.Len(t, a, 50)
}

func TestPassengerGenerator_Domain(t *testing.T) {
	rows := NewPassengerGenerator(DefaultPassengerConfig()).Generate()

	missing := 0
	for _, r := range rows {
		assert.True(t, r.Record.Class.Valid())
		assert.GreaterOrEqual(t, r.Record.Age, 0.42)
		assert.LessOrEqual(t, r.Record.Age, 80.0)
		if r.Age == nil {
			missing++
		}
	}
	assert.Positive(t, missing)
	assert.Len(t, KnownAge(rows), len(rows)-missing)
}

func TestCSV_MissingMarker(t *testing.T) {
	rows := NewPassengerGenerator(PassengerGeneratorConfig{Count: 20, MissingAgeRate: 1, Seed: 1}).Generate()

	records, err := csv.NewReader(bytes.NewReader(CSV(rows))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 21)
	assert.Equal(t, []string{"pclass", "survived", "name", "sex", "age"}, records[0])
	for _, rec := range records[1:] {
		assert.Equal(t, "?", rec[4])
	}
	assert.Empty(t, KnownAge(rows))
}
