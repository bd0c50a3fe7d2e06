package excel

import (
	"fmt"
	"io"

	"titanicdash/domain/passenger"

	"github.com/xuri/excelize/v2"
)

// PassengerSheet is the sheet name used for exports
const PassengerSheet = "Passengers"

var exportHeaders = []interface{}{"name", "age", "sex", "pclass", "survived"}

// WriteRecords writes records as an xlsx workbook with one header row
func WriteRecords(w io.Writer, records []passenger.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PassengerSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(PassengerSheet, "A1", &exportHeaders); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Name, r.Age, r.Sex.String(), int(r.Class), r.SurvivedCode()}
		if err := f.SetSheetRow(PassengerSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
