package dataset

import (
	"math"
	"strconv"
	"strings"

	"titanicdash/domain/core"
	"titanicdash/domain/passenger"
	"titanicdash/internal/table"

	"github.com/montanaflynn/stats"
)

// Required source columns
const (
	ColumnAge      = "age"
	ColumnSex      = "sex"
	ColumnClass    = "pclass"
	ColumnSurvived = "survived"
	ColumnName     = "name"
)

// missingMarkers are the cell spellings treated as an unknown value
var missingMarkers = map[string]bool{
	"":     true,
	"?":    true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

// IsMissing reports whether a raw cell holds no value
func IsMissing(cell string) bool {
	return missingMarkers[strings.ToLower(strings.TrimSpace(cell))]
}

type columns struct {
	age, sex, class, survived, name string
}

func resolveColumns(tbl *table.Table) (columns, error) {
	var cols columns
	required := []struct {
		name string
		dst  *string
	}{
		{ColumnAge, &cols.age},
		{ColumnSex, &cols.sex},
		{ColumnClass, &cols.class},
		{ColumnSurvived, &cols.survived},
	}
	for _, r := range required {
		h, ok := tbl.Column(r.name)
		if !ok {
			return cols, core.NewMissingColumnError(r.name)
		}
		*r.dst = h
	}
	cols.name, _ = tbl.Column(ColumnName)
	return cols, nil
}

// Clean coerces raw rows into passenger records in source order.
// Rows with an unknown age are dropped and counted; any other
// unparseable required cell fails the whole load.
func Clean(tbl *table.Table) ([]passenger.Record, int, error) {
	if tbl == nil {
		return nil, 0, core.NewMissingColumnError(ColumnAge)
	}
	cols, err := resolveColumns(tbl)
	if err != nil {
		return nil, 0, err
	}

	records := make([]passenger.Record, 0, len(tbl.Rows))
	dropped := 0
	for i, row := range tbl.Rows {
		line := i + 2 // header is line 1

		rawAge := row[cols.age]
		if IsMissing(rawAge) {
			dropped++
			continue
		}
		age, err := strconv.ParseFloat(strings.TrimSpace(rawAge), 64)
		if err != nil || math.IsNaN(age) || math.IsInf(age, 0) || age < 0 {
			return nil, 0, core.NewMalformedCellError(line, ColumnAge, rawAge)
		}

		sex, err := passenger.ParseSex(row[cols.sex])
		if err != nil {
			return nil, 0, core.NewMalformedCellError(line, ColumnSex, row[cols.sex])
		}

		class, ok := parseCode(row[cols.class])
		if !ok || !passenger.Class(class).Valid() {
			return nil, 0, core.NewMalformedCellError(line, ColumnClass, row[cols.class])
		}

		survived, ok := parseCode(row[cols.survived])
		if !ok || (survived != 0 && survived != 1) {
			return nil, 0, core.NewMalformedCellError(line, ColumnSurvived, row[cols.survived])
		}

		rec := passenger.Record{
			Age:      age,
			Sex:      sex,
			Class:    passenger.Class(class),
			Survived: survived == 1,
		}
		if cols.name != "" {
			rec.Name = row[cols.name]
		}
		records = append(records, rec)
	}

	return records, dropped, nil
}

// parseCode reads an integral code that may be written as "3", "3.0" or "true"
func parseCode(cell string) (int, bool) {
	cell = strings.TrimSpace(cell)
	switch strings.ToLower(cell) {
	case "true":
		return 1, true
	case "false":
		return 0, true
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// AgeBounds returns the observed age range; ok is false for no records
func AgeBounds(records []passenger.Record) (lo, hi float64, ok bool) {
	ages := passenger.AgesOf(records)
	lo, err := stats.Min(ages)
	if err != nil {
		return 0, 0, false
	}
	hi, err = stats.Max(ages)
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}
