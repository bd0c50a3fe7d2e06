package app

import (
	"context"
	"errors"
	"time"

	"titanicdash/domain/core"
	"titanicdash/domain/passenger"
	"titanicdash/internal"
	"titanicdash/ports"
)

// DashboardService runs one load→filter→present pass per interaction
type DashboardService struct {
	provider ports.DatasetProvider
	renderer ports.ChartRenderer
	logger   *internal.Logger
}

// NewDashboardService creates a service. renderer may be nil when only
// the aggregated numbers are needed.
func NewDashboardService(provider ports.DatasetProvider, renderer ports.ChartRenderer) *DashboardService {
	return &DashboardService{
		provider: provider,
		renderer: renderer,
		logger:   internal.DefaultLogger.With("Dashboard"),
	}
}

// View is the output of one run
type View struct {
	RenderID      core.RenderID
	Meta          passenger.Meta
	Total         int
	Bounds        SliderBounds
	Controls      Controls
	Result        Result
	SurvivalChart *ports.Image // nil when there is nothing to draw
	AgeChart      *ports.Image
}

// MeanDisplay is the statistic as shown on the page
func (v *View) MeanDisplay() string { return FormatMean(v.Result.MeanAge) }

// Dataset loads the (memoized) dataset
func (s *DashboardService) Dataset(ctx context.Context) (passenger.Dataset, error) {
	return s.provider.LoadDataset(ctx)
}

// Bounds loads the dataset and returns the age slider limits
func (s *DashboardService) Bounds(ctx context.Context) (SliderBounds, error) {
	ds, err := s.provider.LoadDataset(ctx)
	if err != nil {
		return SliderBounds{}, err
	}
	return AgeSliderBounds(ds), nil
}

// Run executes a full pass for the given controls
func (s *DashboardService) Run(ctx context.Context, controls Controls) (*View, error) {
	start := time.Now()
	id := core.NewRenderID()

	ds, err := s.provider.LoadDataset(ctx)
	if err != nil {
		s.logger.Error("run %s: load failed: %v", id.Short(), err)
		return nil, err
	}

	result, err := Render(ds, controls.Criteria, controls.Bins)
	if err != nil {
		return nil, err
	}

	view := &View{
		RenderID: id,
		Meta:     ds.Meta,
		Total:    ds.Len(),
		Bounds:   AgeSliderBounds(ds),
		Controls: controls,
		Result:   result,
	}

	if s.renderer != nil {
		if view.SurvivalChart, err = chartOrNone(s.renderer.SurvivalByGender(result.Survival)); err != nil {
			return nil, err
		}
		if view.AgeChart, err = chartOrNone(s.renderer.AgeHistogram(result.Histogram)); err != nil {
			return nil, err
		}
	}

	s.logger.Info("run %s: %d/%d passengers, mean age %s, %d bins (%.2fms)",
		id.Short(), result.Count(), ds.Len(), FormatMean(result.MeanAge), controls.Bins,
		float64(time.Since(start).Nanoseconds())/1e6)
	return view, nil
}

func chartOrNone(img *ports.Image, err error) (*ports.Image, error) {
	if errors.Is(err, ports.ErrNoChartData) {
		return nil, nil
	}
	return img, err
}
