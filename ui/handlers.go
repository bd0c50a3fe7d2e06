package ui

import (
	"fmt"
	"html/template"
	"log"
	"net/http"

	"titanicdash/adapters/excel"
	"titanicdash/app"
	"titanicdash/domain/passenger"
	"titanicdash/internal/errors"

	"github.com/gin-gonic/gin"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

// indexPage is the data behind templates/index.html
type indexPage struct {
	Title       string
	RenderID    string
	MeanDisplay string
	Count       int
	Total       int

	Bounds  app.SliderBounds
	AgeMin  float64
	AgeMax  float64
	Sexes   []option
	Classes []option
	Bins    int
	MinBins int
	MaxBins int

	SurvivalChart template.URL
	AgeChart      template.URL
	ExportURL     string

	DatasetName string
	Version     string
	Dropped     int
	About       template.HTML
}

type errorPage struct {
	Title   string
	Status  int
	Heading string
	Message string
}

func (s *Server) handleIndex(c *gin.Context) {
	controls, ok := s.controls(c)
	if !ok {
		return
	}

	view, err := s.dashboard.Run(c.Request.Context(), controls)
	if err != nil {
		s.renderError(c, err)
		return
	}

	s.renderTemplate(c, http.StatusOK, "index.html", newIndexPage(view))
}

func newIndexPage(view *app.View) indexPage {
	criteria := view.Controls.Criteria

	page := indexPage{
		Title:         PageTitle,
		RenderID:      view.RenderID.String(),
		MeanDisplay:   view.MeanDisplay(),
		Count:         view.Result.Count(),
		Total:         view.Total,
		Bounds:        view.Bounds,
		AgeMin:        criteria.Ages.Min,
		AgeMax:        criteria.Ages.Max,
		Bins:          view.Controls.Bins,
		MinBins:       app.MinBins,
		MaxBins:       app.MaxBins,
		SurvivalChart: dataURI(view.SurvivalChart),
		AgeChart:      dataURI(view.AgeChart),
		ExportURL:     "/export.xlsx?" + view.Controls.Values().Encode(),
		DatasetName:   view.Meta.Name,
		Version:       view.Meta.Version,
		Dropped:       view.Meta.DroppedRows,
		About:         renderMarkdown(view.Meta.Description),
	}

	for _, sex := range passenger.AllSexes {
		page.Sexes = append(page.Sexes, option{
			Value:    sex.String(),
			Label:    sex.String(),
			Selected: criteria.Sexes.Contains(sex),
		})
	}

	classes := append([]passenger.ClassFilter{passenger.AllClasses()}, classFilters()...)
	for _, f := range classes {
		page.Classes = append(page.Classes, option{
			Value:    f.String(),
			Label:    f.String(),
			Selected: f == criteria.Class,
		})
	}
	return page
}

func classFilters() []passenger.ClassFilter {
	out := make([]passenger.ClassFilter, 0, len(passenger.AllClassValues))
	for _, c := range passenger.AllClassValues {
		out = append(out, passenger.OnlyClass(c))
	}
	return out
}

func (s *Server) handleExport(c *gin.Context) {
	controls, ok := s.controls(c)
	if !ok {
		return
	}

	ds, err := s.dashboard.Dataset(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	filtered := app.ApplyFilter(ds.Records, controls.Criteria)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="passengers.xlsx"`)
	c.Status(http.StatusOK)
	if err := excel.WriteRecords(c.Writer, filtered); err != nil {
		log.Printf("[Export] Error writing workbook: %v", err)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// controls parses the widget values against the current slider bounds and
// writes the error page itself when that is impossible
func (s *Server) controls(c *gin.Context) (app.Controls, bool) {
	bounds, err := s.dashboard.Bounds(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return app.Controls{}, false
	}

	controls, err := app.ParseControls(c.Request.URL.Query(), bounds)
	if err != nil {
		s.renderError(c, errors.InvalidInput("invalid controls", err))
		return app.Controls{}, false
	}
	return controls, true
}

func (s *Server) renderError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	page := errorPage{Title: PageTitle, Status: status, Message: err.Error()}

	switch status {
	case http.StatusServiceUnavailable:
		page.Heading = "Dataset unavailable"
		log.Printf("[UI] Data unavailable: %v", err)
	case http.StatusBadRequest:
		page.Heading = "Invalid options"
	default:
		page.Heading = fmt.Sprintf("Error %d", status)
		log.Printf("[UI] Request failed: %v", err)
	}
	s.renderTemplate(c, status, "error.html", page)
}
