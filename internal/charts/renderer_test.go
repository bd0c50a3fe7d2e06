package charts

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"titanicdash/domain/passenger"
	"titanicdash/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var groups = []ports.SurvivalGroup{
	{Sex: passenger.SexFemale, Survived: 0, Count: 64},
	{Sex: passenger.SexFemale, Survived: 1, Count: 197},
	{Sex: passenger.SexMale, Survived: 0, Count: 360},
	{Sex: passenger.SexMale, Survived: 1, Count: 93},
}

var histogram = ports.Histogram{
	Edges:  []float64{0, 16, 32, 48, 64, 80},
	Counts: []int{100, 346, 188, 69, 11},
}

func newRenderer(t *testing.T, format string) *Renderer {
	t.Helper()
	r, err := NewRenderer(Options{Format: format, Width: 640, Height: 480})
	require.NoError(t, err)
	return r
}

func TestRendererPNG(t *testing.T) {
	r := newRenderer(t, FormatPNG)

	for name, render := range map[string]func() (*ports.Image, error){
		"survival": func() (*ports.Image, error) { return r.SurvivalByGender(groups) },
		"ages":     func() (*ports.Image, error) { return r.AgeHistogram(histogram) },
	} {
		img, err := render()
		require.NoError(t, err, name)
		assert.Equal(t, "image/png", img.MIMEType)

		cfg, err := png.DecodeConfig(bytes.NewReader(img.Data))
		require.NoError(t, err, name)
		assert.Equal(t, 640, cfg.Width)
		assert.Equal(t, 480, cfg.Height)
	}
}

func TestRendererSVG(t *testing.T) {
	r := newRenderer(t, FormatSVG)

	img, err := r.SurvivalByGender(groups)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", img.MIMEType)
	assert.True(t, strings.HasPrefix(string(img.Data), "<svg"))
	assert.Contains(t, string(img.Data), SurvivalTitle)

	img, err = r.AgeHistogram(histogram)
	require.NoError(t, err)
	assert.Contains(t, string(img.Data), AgeTitle)
}

func TestRendererSingleGroup(t *testing.T) {
	r := newRenderer(t, FormatPNG)
	img, err := r.SurvivalByGender([]ports.SurvivalGroup{{Sex: passenger.SexMale, Survived: 1, Count: 1}})
	require.NoError(t, err)
	assert.NotEmpty(t, img.Data)
}

func TestRendererNoData(t *testing.T) {
	r := newRenderer(t, FormatPNG)

	_, err := r.SurvivalByGender(nil)
	assert.True(t, errors.Is(err, ports.ErrNoChartData))

	_, err = r.AgeHistogram(ports.Histogram{})
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestNewRendererValidation(t *testing.T) {
	_, err := NewRenderer(Options{Format: "gif", Width: 640, Height: 480})
	assert.Error(t, err)

	_, err = NewRenderer(Options{Format: FormatSVG, Width: 0, Height: 480})
	assert.Error(t, err)

	r, err := NewRenderer(Options{Width: 320, Height: 240})
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, r.Format())
}
