package testkit

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"titanicdash/domain/passenger"
)

// PassengerGeneratorConfig configures the synthetic passenger generator
type PassengerGeneratorConfig struct {
	Count          int     `json:"count"`
	MissingAgeRate float64 `json:"missing_age_rate"`
	FemaleRate     float64 `json:"female_rate"`
	Seed           int64   `json:"seed"`
}

// DefaultPassengerConfig roughly matches the shape of the 1912 manifest
func DefaultPassengerConfig() PassengerGeneratorConfig {
	return PassengerGeneratorConfig{
		Count:          891,
		MissingAgeRate: 0.2,
		FemaleRate:     0.35,
		Seed:           42,
	}
}

// PassengerGenerator produces realistic raw passenger rows
type PassengerGenerator struct {
	config PassengerGeneratorConfig
	rng    *rand.Rand
}

// NewPassengerGenerator creates a new generator
func NewPassengerGenerator(config PassengerGeneratorConfig) *PassengerGenerator {
	return &PassengerGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GeneratedRow is a raw row; Age is nil when the age is unknown
type GeneratedRow struct {
	Record passenger.Record
	Age    *float64
}

// Generate produces Count rows
func (g *PassengerGenerator) Generate() []GeneratedRow {
	rows := make([]GeneratedRow, 0, g.config.Count)
	for i := 0; i < g.config.Count; i++ {
		rows = append(rows, g.row(i))
	}
	return rows
}

func (g *PassengerGenerator) row(i int) GeneratedRow {
	sex := passenger.SexMale
	if g.rng.Float64() < g.config.FemaleRate {
		sex = passenger.SexFemale
	}

	class := passenger.ThirdClass
	switch p := g.rng.Float64(); {
	case p < 0.24:
		class = passenger.FirstClass
	case p < 0.45:
		class = passenger.SecondClass
	}

	// women and upper classes survived more often
	survival := 0.15
	if sex == passenger.SexFemale {
		survival = 0.7
	}
	survival += 0.1 * float64(passenger.ThirdClass-class)

	age := math.Round((29.7+g.rng.NormFloat64()*14.5)*100) / 100
	if age < 0.42 {
		age = 0.42
	}
	if age > 80 {
		age = 80
	}

	row := GeneratedRow{Record: passenger.Record{
		Name:     fmt.Sprintf("Passenger %04d", i+1),
		Age:      age,
		Sex:      sex,
		Class:    class,
		Survived: g.rng.Float64() < survival,
	}}
	if g.rng.Float64() >= g.config.MissingAgeRate {
		row.Age = &age
	}
	return row
}

// CSV renders rows the way OpenML serves them, with "?" for unknown ages
func CSV(rows []GeneratedRow) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"pclass", "survived", "name", "sex", "age"})
	for _, r := range rows {
		age := "?"
		if r.Age != nil {
			age = strconv.FormatFloat(*r.Age, 'f', -1, 64)
		}
		_ = w.Write([]string{
			r.Record.Class.String(),
			strconv.Itoa(r.Record.SurvivedCode()),
			r.Record.Name,
			r.Record.Sex.String(),
			age,
		})
	}
	w.Flush()
	return buf.Bytes()
}

// KnownAge returns the records of rows whose age is known, in order
func KnownAge(rows []GeneratedRow) []passenger.Record {
	var out []passenger.Record
	for _, r := range rows {
		if r.Age != nil {
			out = append(out, r.Record)
		}
	}
	return out
}
