package ports

import (
	"context"

	"titanicdash/domain/passenger"
	"titanicdash/internal/table"
)

// DatasetProvider yields the cleaned passenger dataset
type DatasetProvider interface {
	// LoadDataset returns the full table with unknown-age rows removed.
	// Fails with core.ErrDataUnavailable when the source cannot be read.
	LoadDataset(ctx context.Context) (passenger.Dataset, error)
}

// RowSource fetches raw tabular rows from an upstream repository
type RowSource interface {
	// Key identifies the fetch parameters; equal keys mean equal data.
	Key() string
	Fetch(ctx context.Context) (*table.Table, error)
}
