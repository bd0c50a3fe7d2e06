package testkit

import (
	"context"
	"sync/atomic"

	"titanicdash/domain/passenger"
	"titanicdash/ports"

	"github.com/stretchr/testify/mock"
)

// ScenarioRecords are three passengers whose results are easy to verify by hand:
// mean age 22.33, one female survivor, one male of each outcome.
func ScenarioRecords() []passenger.Record {
	return []passenger.Record{
		{Name: "Braund, Mr. Owen Harris", Age: 22, Sex: passenger.SexMale, Class: passenger.ThirdClass, Survived: false},
		{Name: "Cumings, Mrs. John Bradley", Age: 40, Sex: passenger.SexFemale, Class: passenger.FirstClass, Survived: true},
		{Name: "Palsson, Master. Gosta Leonard", Age: 5, Sex: passenger.SexMale, Class: passenger.ThirdClass, Survived: true},
	}
}

// ScenarioDataset wraps ScenarioRecords with fixture metadata
func ScenarioDataset() passenger.Dataset {
	return passenger.Dataset{
		Records: ScenarioRecords(),
		Meta: passenger.Meta{
			Source:      "fixture",
			Key:         "fixture:scenario",
			Name:        "scenario",
			Version:     "1",
			Description: "**Three** passengers used in tests.",
			RawRows:     4,
			DroppedRows: 1,
		},
	}
}

// StaticProvider serves a fixed dataset and counts loads
type StaticProvider struct {
	Dataset passenger.Dataset
	Err     error
	calls   atomic.Int64
}

// NewStaticProvider creates a provider that always returns ds
func NewStaticProvider(ds passenger.Dataset) *StaticProvider {
	return &StaticProvider{Dataset: ds}
}

// LoadDataset returns the configured dataset or error
func (p *StaticProvider) LoadDataset(ctx context.Context) (passenger.Dataset, error) {
	p.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return passenger.Dataset{}, err
	}
	if p.Err != nil {
		return passenger.Dataset{}, p.Err
	}
	return p.Dataset, nil
}

// Key identifies the fixture for memoization
func (p *StaticProvider) Key() string { return p.Dataset.Meta.Key }

// Calls returns how many times LoadDataset ran
func (p *StaticProvider) Calls() int { return int(p.calls.Load()) }

var _ ports.DatasetProvider = (*StaticProvider)(nil)

// MockRenderer is a testify mock of ports.ChartRenderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) SurvivalByGender(groups []ports.SurvivalGroup) (*ports.Image, error) {
	args := m.Called(groups)
	img, _ := args.Get(0).(*ports.Image)
	return img, args.Error(1)
}

func (m *MockRenderer) AgeHistogram(h ports.Histogram) (*ports.Image, error) {
	args := m.Called(h)
	img, _ := args.Get(0).(*ports.Image)
	return img, args.Error(1)
}

var _ ports.ChartRenderer = (*MockRenderer)(nil)

// FakeRenderer returns a one-byte image per chart, or ErrNoChartData for empty input
type FakeRenderer struct{}

func (FakeRenderer) SurvivalByGender(groups []ports.SurvivalGroup) (*ports.Image, error) {
	if len(groups) == 0 {
		return nil, ports.ErrNoChartData
	}
	return &ports.Image{MIMEType: "image/png", Data: []byte{'s'}}, nil
}

func (FakeRenderer) AgeHistogram(h ports.Histogram) (*ports.Image, error) {
	if h.Empty() {
		return nil, ports.ErrNoChartData
	}
	return &ports.Image{MIMEType: "image/png", Data: []byte{'h'}}, nil
}
