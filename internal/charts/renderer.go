// Package charts draws the dashboard charts with go-chart.
package charts

import (
	"bytes"
	"fmt"
	"io"

	"titanicdash/domain/passenger"
	"titanicdash/internal/errors"
	"titanicdash/ports"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart titles and axis labels
const (
	SurvivalTitle  = "Survival Count by Gender"
	SurvivalXLabel = "Gender"
	SurvivalYLabel = "Count"
	AgeTitle       = "Age Distribution of Passengers"
	AgeXLabel      = "Age"
	AgeYLabel      = "Frequency"
)

// Image formats
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// ErrNoData is returned when a chart has nothing to draw
var ErrNoData = ports.ErrNoChartData

var (
	colorDied     = drawing.ColorFromHex("c44e52")
	colorSurvived = drawing.ColorFromHex("55a868")
	colorAges     = drawing.ColorFromHex("87ceeb")
)

// Options control the rendered image
type Options struct {
	Format string
	Width  int
	Height int
}

// Renderer implements ports.ChartRenderer
type Renderer struct {
	opts     Options
	provider chart.RendererProvider
	mimeType string
}

// NewRenderer creates a renderer for the given format and size
func NewRenderer(opts Options) (*Renderer, error) {
	r := &Renderer{opts: opts}
	switch opts.Format {
	case FormatPNG, "":
		r.opts.Format = FormatPNG
		r.provider, r.mimeType = chart.PNG, "image/png"
	case FormatSVG:
		r.provider, r.mimeType = chart.SVG, "image/svg+xml"
	default:
		return nil, errors.ConfigInvalid(fmt.Sprintf("unsupported chart format %q", opts.Format))
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.ConfigInvalid(fmt.Sprintf("invalid chart size %dx%d", opts.Width, opts.Height))
	}
	return r, nil
}

// Format returns the image format name (png or svg)
func (r *Renderer) Format() string { return r.opts.Format }

// SurvivalByGender draws one bar per gender, stacked by outcome
func (r *Renderer) SurvivalByGender(groups []ports.SurvivalGroup) (*ports.Image, error) {
	if len(groups) == 0 {
		return nil, ErrNoData
	}

	var bars []chart.StackedBar
	index := make(map[passenger.Sex]int)
	for _, g := range groups {
		i, ok := index[g.Sex]
		if !ok {
			i = len(bars)
			index[g.Sex] = i
			bars = append(bars, chart.StackedBar{Name: g.Sex.String()})
		}
		bars[i].Values = append(bars[i].Values, chart.Value{
			Value: float64(g.Count),
			Label: fmt.Sprintf("%d", g.Count),
			Style: outcomeStyle(g.Survived),
		})
	}

	sbc := chart.StackedBarChart{
		Title:      SurvivalTitle,
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 24, Right: 24, Bottom: 32}},
		BarSpacing: r.opts.Width / 8,
		Bars:       bars,
	}
	sbc.Elements = []chart.Renderable{
		axisLabels(SurvivalXLabel, SurvivalYLabel),
		legend([]legendItem{{"0 (died)", colorDied}, {"1 (survived)", colorSurvived}}),
	}

	return r.render(sbc.Render)
}

// AgeHistogram draws one bar per bin over the histogram edges
func (r *Renderer) AgeHistogram(h ports.Histogram) (*ports.Image, error) {
	if h.Empty() || len(h.Edges) != h.Bins()+1 {
		return nil, ErrNoData
	}

	xs := make([]float64, h.Bins())
	ys := make([]float64, h.Bins())
	peak := 0
	for i, c := range h.Counts {
		xs[i] = (h.Edges[i] + h.Edges[i+1]) / 2
		ys[i] = float64(c)
		if c > peak {
			peak = c
		}
	}

	ch := chart.Chart{
		Title:      AgeTitle,
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           AgeXLabel,
			Range:          &chart.ContinuousRange{Min: h.Edges[0], Max: h.Edges[h.Bins()]},
			ValueFormatter: wholeNumber,
		},
		YAxis: chart.YAxis{
			Name:           AgeYLabel,
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(peak) * 1.1},
			ValueFormatter: wholeNumber,
		},
		Series: []chart.Series{
			chart.HistogramSeries{
				Name: AgeYLabel,
				Style: chart.Style{
					StrokeColor: chart.ColorBlack,
					FillColor:   colorAges,
					StrokeWidth: 1,
				},
				InnerSeries: chart.ContinuousSeries{XValues: xs, YValues: ys},
			},
		},
	}

	return r.render(ch.Render)
}

func (r *Renderer) render(draw func(chart.RendererProvider, io.Writer) error) (*ports.Image, error) {
	var buf bytes.Buffer
	if err := draw(r.provider, &buf); err != nil {
		return nil, errors.Wrap(err, "chart render failed")
	}
	return &ports.Image{MIMEType: r.mimeType, Data: buf.Bytes()}, nil
}

func outcomeStyle(survived int) chart.Style {
	col := colorDied
	if survived == 1 {
		col = colorSurvived
	}
	return chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1}
}

func wholeNumber(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%v", v)
}

var _ ports.ChartRenderer = (*Renderer)(nil)
