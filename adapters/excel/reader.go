package excel

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"titanicdash/internal/table"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV passenger files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Key identifies the file for memoization
func (r *DataReader) Key() string {
	return "file:" + r.filePath
}

// Fetch reads the file into a table. The context is only checked up front;
// local reads are not interruptible.
func (r *DataReader) Fetch(ctx context.Context) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var (
		tbl *table.Table
		err error
	)
	switch r.fileType {
	case "csv":
		tbl, err = r.readCSVData()
	case "xlsx":
		tbl, err = r.readExcelData()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	tbl.Info.Name = strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(tbl.Headers), tbl.Len())
	return tbl, nil
}

// readExcelData reads the first sheet of a workbook
func (r *DataReader) readExcelData() (*table.Table, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheets[0], err)
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows)", sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("Excel file must have at least a header row and one data row")
	}
	return table.FromRows(rows)
}

// readCSVData reads CSV data into a table
func (r *DataReader) readCSVData() (*table.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	readStart := time.Now()
	tbl, err := table.ReadCSV(file)
	if err != nil {
		return nil, err
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, tbl.Len())

	if tbl.Len() < 1 {
		return nil, fmt.Errorf("CSV file must have at least a header row and one data row")
	}
	return tbl, nil
}
