package dataset

import (
	"context"
	"time"

	"titanicdash/domain/core"
	"titanicdash/domain/passenger"
	"titanicdash/internal"
	"titanicdash/ports"
)

// SourceProvider loads a dataset from one RowSource on every call.
// Wrap it in cache.MemoProvider for load-once semantics.
type SourceProvider struct {
	source  ports.RowSource
	kind    string
	timeout time.Duration
	logger  *internal.Logger
}

// NewSourceProvider creates a provider; a zero timeout disables the deadline
func NewSourceProvider(kind string, source ports.RowSource, timeout time.Duration) *SourceProvider {
	return &SourceProvider{
		source:  source,
		kind:    kind,
		timeout: timeout,
		logger:  internal.DefaultLogger.With("Dataset"),
	}
}

// Key returns the memoization key of the underlying source
func (p *SourceProvider) Key() string {
	return p.source.Key()
}

// LoadDataset fetches, cleans and returns the passenger table
func (p *SourceProvider) LoadDataset(ctx context.Context) (passenger.Dataset, error) {
	start := time.Now()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	tbl, err := p.source.Fetch(ctx)
	if err != nil {
		p.logger.Error("fetch from %s failed: %v", p.source.Key(), err)
		return passenger.Dataset{}, core.NewDataUnavailableError(p.source.Key(), err)
	}

	records, dropped, err := Clean(tbl)
	if err != nil {
		p.logger.Error("parse of %s failed: %v", p.source.Key(), err)
		return passenger.Dataset{}, core.NewDataUnavailableError(p.source.Key(), err)
	}

	fingerprint := tbl.Info.Fingerprint
	if fingerprint.IsEmpty() {
		fingerprint = tbl.ComputeFingerprint()
	}

	p.logger.Info("loaded %s: %d rows, %d dropped for unknown age (%.2fms)",
		p.source.Key(), tbl.Len(), dropped, float64(time.Since(start).Nanoseconds())/1e6)

	return passenger.Dataset{
		Records: records,
		Meta: passenger.Meta{
			Source:      p.kind,
			Key:         p.source.Key(),
			Name:        tbl.Info.Name,
			Version:     tbl.Info.Version,
			Description: tbl.Info.Description,
			Fingerprint: fingerprint,
			RawRows:     tbl.Len(),
			DroppedRows: dropped,
			LoadedAt:    time.Now().UTC(),
		},
	}, nil
}
