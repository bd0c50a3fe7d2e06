package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"titanicdash/internal/config"
	"titanicdash/internal/container"
	"titanicdash/internal/testkit"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// withScenarioFile points the CLI at a CSV holding the three scenario
// passengers plus one row without an age
func withScenarioFile(t *testing.T) {
	t.Helper()

	var rows []testkit.GeneratedRow
	for _, r := range testkit.ScenarioRecords() {
		age := r.Age
		rows = append(rows, testkit.GeneratedRow{Record: r, Age: &age})
	}
	rows = append(rows, testkit.GeneratedRow{Record: testkit.ScenarioRecords()[0]})

	path := filepath.Join(t.TempDir(), "passengers.csv")
	require.NoError(t, os.WriteFile(path, testkit.CSV(rows), 0o644))

	orig := newContainer
	newContainer = func() (*container.Container, error) {
		cfg := config.Default()
		cfg.Data.Source = config.SourceFile
		cfg.Data.File = path
		return container.New(cfg)
	}
	t.Cleanup(func() { newContainer = orig })

	color.NoColor = true
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSummaryText(t *testing.T) {
	withScenarioFile(t)

	out, err := execute(t, "summary", "--bins", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Mean age of filtered passengers: 22.33 years")
	assert.Contains(t, out, "Passengers: 3 of 3")
	assert.Contains(t, out, "Age distribution (5 bins)")
	assert.Contains(t, out, "[33.00, 40.00]")
}

func TestSummaryJSONMalesOnly(t *testing.T) {
	withScenarioFile(t)

	out, err := execute(t, "summary", "--sex", "male", "--format", "json")
	require.NoError(t, err)

	var got summaryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.Count)
	require.Len(t, got.Survival, 2)
	assert.Equal(t, 0, got.Survival[0].Survived)
	assert.Equal(t, 1, got.Survival[1].Survived)
}

func TestSummaryYAMLClassFilter(t *testing.T) {
	withScenarioFile(t)

	out, err := execute(t, "summary", "--age-min", "10", "--class", "3", "--format", "yaml")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got["count"])
	assert.Equal(t, "22.00", got["mean_age_display"])
	assert.Equal(t, "3", got["class"])
}

func TestSummaryNoGenders(t *testing.T) {
	withScenarioFile(t)

	out, err := execute(t, "summary", "--sex", "", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"mean_age": null`)
	assert.Contains(t, out, `"mean_age_display": "NaN"`)
}

func TestSummaryRejectsUnknownFormat(t *testing.T) {
	withScenarioFile(t)

	_, err := execute(t, "summary", "--format", "xml")
	assert.Error(t, err)

	_, err = execute(t, "summary", "--class", "first")
	assert.Error(t, err)
}

func TestExportWritesFiles(t *testing.T) {
	withScenarioFile(t)
	dir := t.TempDir()

	out, err := execute(t, "export", "--dir", dir, "--sex", "female")
	require.NoError(t, err)
	assert.Contains(t, out, "passengers.xlsx (1 passengers)")

	for _, name := range []string{"survival_by_gender.png", "age_distribution.png", "passengers.xlsx"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size())
	}

	f, err := excelize.OpenFile(filepath.Join(dir, "passengers.xlsx"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestExportEmptySelectionSkipsCharts(t *testing.T) {
	withScenarioFile(t)
	dir := t.TempDir()

	out, err := execute(t, "export", "--dir", dir, "--sex", "")
	require.NoError(t, err)
	assert.Contains(t, out, "skipped survival_by_gender.png")
	assert.NoFileExists(t, filepath.Join(dir, "age_distribution.png"))
	assert.FileExists(t, filepath.Join(dir, "passengers.xlsx"))
}
