package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"titanicdash/app"
	"titanicdash/domain/passenger"
	"titanicdash/ports"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type summaryOutput struct {
	Source         string                `json:"source" yaml:"source"`
	Count          int                   `json:"count" yaml:"count"`
	Total          int                   `json:"total" yaml:"total"`
	MeanAge        *float64              `json:"mean_age" yaml:"mean_age"`
	MeanAgeDisplay string                `json:"mean_age_display" yaml:"mean_age_display"`
	Class          passenger.ClassFilter `json:"class" yaml:"class"`
	Survival       []ports.SurvivalGroup `json:"survival" yaml:"survival"`
	Histogram      ports.Histogram       `json:"histogram" yaml:"histogram"`
}

func newSummaryCmd() *cobra.Command {
	var flags controlFlags
	var format string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the mean age, survival counts and age histogram",
		Long: `Print the summary statistic and both chart tables for a filter.

Example: titanicdash-cli summary --sex female --class 1 --bins 10 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "text" && format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q (use text, json or yaml)", format)
			}

			c, err := newContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			view, err := flags.run(cmd, c.Summary)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), format, view)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")
	return cmd
}

func newSummaryOutput(view *app.View) summaryOutput {
	out := summaryOutput{
		Source:         view.Meta.Key,
		Count:          view.Result.Count(),
		Total:          view.Total,
		MeanAgeDisplay: view.MeanDisplay(),
		Class:          view.Controls.Criteria.Class,
		Survival:       view.Result.Survival,
		Histogram:      view.Result.Histogram,
	}
	if !math.IsNaN(view.Result.MeanAge) {
		mean := view.Result.MeanAge
		out.MeanAge = &mean
	}
	return out
}

func writeSummary(w io.Writer, format string, view *app.View) error {
	out := newSummaryOutput(view)
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(out)
	}
	return writeSummaryText(w, view)
}

func writeSummaryText(w io.Writer, view *app.View) error {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	dim := color.New(color.Faint)

	_, _ = bold.Fprintln(w, "Titanic Dataset Analysis")
	_, _ = dim.Fprintf(w, "source %s, render %s\n\n", view.Meta.Key, view.RenderID.Short())
	_, _ = fmt.Fprintf(w, "Mean age of filtered passengers: %s years\n", bold.Sprint(view.MeanDisplay()))
	_, _ = fmt.Fprintf(w, "Passengers: %d of %d\n\n", view.Result.Count(), view.Total)

	if view.Result.Empty() {
		_, _ = dim.Fprintln(w, "No passengers match the current filters.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, bold.Sprint("SEX")+"\t"+bold.Sprint("SURVIVED")+"\t"+bold.Sprint("COUNT"))
	for _, g := range view.Result.Survival {
		outcome := red.Sprint("0")
		if g.Survived == 1 {
			outcome = green.Sprint("1")
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\n", g.Sex, outcome, g.Count)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	h := view.Result.Histogram
	_, _ = fmt.Fprintf(w, "\n%s\n", bold.Sprintf("Age distribution (%d bins)", h.Bins()))
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, n := range h.Counts {
		closing := ")"
		if i == h.Bins()-1 {
			closing = "]"
		}
		_, _ = fmt.Fprintf(tw, "[%.2f, %.2f%s\t%d\n", h.Edges[i], h.Edges[i+1], closing, n)
	}
	return tw.Flush()
}
