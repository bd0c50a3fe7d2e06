package openml

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"titanicdash/domain/core"
	"titanicdash/internal/errors"
	"titanicdash/internal/table"

	"github.com/tidwall/gjson"
)

// Config addresses one dataset in an OpenML repository
type Config struct {
	BaseURL string
	Name    string
	Version int
	Timeout time.Duration
}

// Reader fetches a dataset by name and version from OpenML
type Reader struct {
	config     Config
	httpClient *http.Client
}

// NewReader creates a new OpenML reader
func NewReader(config Config) *Reader {
	return &Reader{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Key identifies the fetch parameters for memoization
func (r *Reader) Key() string {
	return fmt.Sprintf("openml:%s@%d", r.config.Name, r.config.Version)
}

// datasetRef is what the list endpoint tells us about a dataset
type datasetRef struct {
	ID     int64
	FileID int64
	Status string
}

// Fetch resolves the dataset, reads its description and downloads the CSV
func (r *Reader) Fetch(ctx context.Context) (*table.Table, error) {
	startTime := time.Now()

	ref, err := r.resolve(ctx)
	if err != nil {
		return nil, err
	}

	description, err := r.describe(ctx, ref.ID)
	if err != nil {
		// the description only feeds the About panel
		log.Printf("[OpenML] Warning: description for dataset %d unavailable: %v", ref.ID, err)
	}

	body, err := r.get(ctx, fmt.Sprintf("%s/data/get_csv/%d", r.config.BaseURL, ref.FileID))
	if err != nil {
		return nil, fmt.Errorf("failed to download CSV: %w", err)
	}

	tbl, err := table.ReadCSV(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV for dataset %d: %w", ref.ID, err)
	}
	tbl.Info = table.Info{
		Name:        r.config.Name,
		Version:     strconv.Itoa(r.config.Version),
		Description: description,
		Fingerprint: core.NewHash(body),
	}

	log.Printf("[OpenML] Fetched %s (id %d, file %d): %d rows in %.2fms",
		r.Key(), ref.ID, ref.FileID, tbl.Len(), float64(time.Since(startTime).Nanoseconds())/1e6)

	return tbl, nil
}

// resolve maps name+version onto dataset and file ids
func (r *Reader) resolve(ctx context.Context) (datasetRef, error) {
	url := fmt.Sprintf("%s/api/v1/json/data/list/data_name/%s/data_version/%d/limit/1",
		r.config.BaseURL, r.config.Name, r.config.Version)

	body, err := r.get(ctx, url)
	if err != nil {
		return datasetRef{}, fmt.Errorf("failed to resolve %s: %w", r.Key(), err)
	}

	first := gjson.GetBytes(body, "data.dataset.0")
	if !first.Exists() {
		return datasetRef{}, fmt.Errorf("dataset %s not listed", r.Key())
	}

	ref := datasetRef{
		ID:     first.Get("did").Int(),
		FileID: first.Get("file_id").Int(),
		Status: first.Get("status").String(),
	}
	if ref.ID == 0 || ref.FileID == 0 {
		return datasetRef{}, fmt.Errorf("dataset %s listing has no id or file_id", r.Key())
	}
	if ref.Status != "" && ref.Status != "active" {
		log.Printf("[OpenML] Warning: dataset %s has status %q", r.Key(), ref.Status)
	}
	return ref, nil
}

// describe returns the markdown description of a dataset
func (r *Reader) describe(ctx context.Context, id int64) (string, error) {
	body, err := r.get(ctx, fmt.Sprintf("%s/api/v1/json/data/%d", r.config.BaseURL, id))
	if err != nil {
		return "", err
	}
	desc := gjson.GetBytes(body, "data_set_description.description")
	if !desc.Exists() {
		return "", fmt.Errorf("no description field")
	}
	return desc.String(), nil
}

// get performs a GET and returns the body of a 200 response
func (r *Reader) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/csv")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, errors.ExternalServiceError("openml", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, errors.ExternalServiceError("openml", fmt.Errorf("GET %s returned status %d: %s", url, resp.StatusCode, msg))
	}
	return body, nil
}
