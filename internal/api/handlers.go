package api

import (
	"encoding/json"
	"log"
	"math"
	"net/http"

	"titanicdash/app"
	"titanicdash/domain/passenger"
	"titanicdash/internal/errors"
	"titanicdash/ports"
)

// SummaryResponse is the body of GET /api/v1/summary
type SummaryResponse struct {
	RenderID       string                `json:"render_id"`
	Count          int                   `json:"count"`
	Total          int                   `json:"total"`
	MeanAge        *float64              `json:"mean_age"` // null when no passenger matches
	MeanAgeDisplay string                `json:"mean_age_display"`
	Criteria       CriteriaResponse      `json:"criteria"`
	Survival       []ports.SurvivalGroup `json:"survival"`
	Histogram      ports.Histogram       `json:"histogram"`
}

// CriteriaResponse echoes the controls after clamping
type CriteriaResponse struct {
	AgeMin float64               `json:"age_min"`
	AgeMax float64               `json:"age_max"`
	Sexes  []passenger.Sex       `json:"sexes"`
	Class  passenger.ClassFilter `json:"class"`
	Bins   int                   `json:"bins"`
}

// DatasetResponse is the body of GET /api/v1/dataset
type DatasetResponse struct {
	Meta   passenger.Meta   `json:"meta"`
	Count  int              `json:"count"`
	Bounds app.SliderBounds `json:"age_bounds"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleSummary(w http.ResponseWriter, r *http.Request) {
	bounds, err := a.dashboard.Bounds(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	controls, err := app.ParseControls(r.URL.Query(), bounds)
	if err != nil {
		writeError(w, errors.InvalidInput("invalid controls", err))
		return
	}

	view, err := a.dashboard.Run(r.Context(), controls)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newSummaryResponse(view))
}

func newSummaryResponse(view *app.View) SummaryResponse {
	criteria := view.Controls.Criteria
	resp := SummaryResponse{
		RenderID:       view.RenderID.String(),
		Count:          view.Result.Count(),
		Total:          view.Total,
		MeanAgeDisplay: view.MeanDisplay(),
		Criteria: CriteriaResponse{
			AgeMin: criteria.Ages.Min,
			AgeMax: criteria.Ages.Max,
			Sexes:  criteria.Sexes.Sorted(),
			Class:  criteria.Class,
			Bins:   view.Controls.Bins,
		},
		Survival:  view.Result.Survival,
		Histogram: view.Result.Histogram,
	}
	if !math.IsNaN(view.Result.MeanAge) {
		mean := view.Result.MeanAge
		resp.MeanAge = &mean
	}
	if resp.Survival == nil {
		resp.Survival = []ports.SurvivalGroup{}
	}
	if resp.Histogram.Edges == nil {
		resp.Histogram.Edges = []float64{}
	}
	if resp.Histogram.Counts == nil {
		resp.Histogram.Counts = []int{}
	}
	return resp
}

func (a *API) handleDataset(w http.ResponseWriter, r *http.Request) {
	ds, err := a.dashboard.Dataset(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DatasetResponse{
		Meta:   ds.Meta,
		Count:  ds.Len(),
		Bounds: app.AgeSliderBounds(ds),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[API] Request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: errors.GetCode(err)})
}
