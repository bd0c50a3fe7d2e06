package charts

import (
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const labelFontSize = 10.0

type legendItem struct {
	label string
	color drawing.Color
}

// legend draws a swatch per item in the top right corner of the canvas.
// StackedBarChart has no built-in legend.
func legend(items []legendItem) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
		r.SetFont(defaults.Font)
		r.SetFontSize(labelFontSize)
		r.SetFontColor(chart.ColorBlack)

		const swatch = 10
		y := canvas.Top - 28
		x := canvas.Right
		for i := len(items) - 1; i >= 0; i-- {
			box := r.MeasureText(items[i].label)
			x -= box.Width()
			r.Text(items[i].label, x, y+swatch)
			x -= swatch + 4

			r.SetFillColor(items[i].color)
			r.SetStrokeColor(items[i].color)
			r.SetStrokeWidth(1)
			r.MoveTo(x, y)
			r.LineTo(x+swatch, y)
			r.LineTo(x+swatch, y+swatch)
			r.LineTo(x, y+swatch)
			r.Close()
			r.FillStroke()
			x -= 12
		}
	}
}

// axisLabels names both axes of a StackedBarChart, which only draws ticks
func axisLabels(x, y string) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
		r.SetFont(defaults.Font)
		r.SetFontSize(labelFontSize)
		r.SetFontColor(chart.ColorBlack)

		xb := r.MeasureText(x)
		r.Text(x, canvas.Left+(canvas.Width()-xb.Width())/2, canvas.Bottom+28)

		yb := r.MeasureText(y)
		r.Text(y, canvas.Right+6, canvas.Top-yb.Height()-6)
	}
}
