package postgres

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"titanicdash/internal/table"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PassengerSource reads passenger rows from a Postgres query. It never writes.
type PassengerSource struct {
	db    *sqlx.DB
	query string
}

// Open prepares a lazily connecting pool; no connection is made until Fetch
func Open(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxIdleTime(time.Minute)
	return db, nil
}

// NewPassengerSource creates a source running query against db
func NewPassengerSource(db *sqlx.DB, query string) *PassengerSource {
	return &PassengerSource{db: db, query: query}
}

// Key identifies the query for memoization
func (s *PassengerSource) Key() string {
	return "postgres:" + s.query
}

// Fetch runs the query and returns every row as strings keyed by column
func (s *PassengerSource) Fetch(ctx context.Context) (*table.Table, error) {
	startTime := time.Now()

	rows, err := s.db.QueryxContext(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("failed to query passengers: %w", err)
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	tbl := &table.Table{Headers: headers, Info: table.Info{Name: "passengers"}}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", tbl.Len()+1, err)
		}
		row := make(table.Row, len(headers))
		for i, v := range values {
			row[headers[i]] = formatValue(v)
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	log.Printf("[Postgres] Read %d passenger rows in %.2fms", tbl.Len(), float64(time.Since(startTime).Nanoseconds())/1e6)
	return tbl, nil
}

// formatValue renders a driver value the way a CSV export would; NULL becomes ""
func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}
