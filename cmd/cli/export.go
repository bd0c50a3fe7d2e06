package main

import (
	"fmt"
	"os"
	"path/filepath"

	"titanicdash/adapters/excel"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var flags controlFlags
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write both charts and the filtered rows to a directory",
		Long: `Render the survival and age charts and save the filtered passengers as xlsx.

Example: titanicdash-cli export --dir out --age-min 10 --class 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newContainer()
			if err != nil {
				return err
			}
			defer c.Close()

			view, err := flags.run(cmd, c.Dashboard)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			w := cmd.OutOrStdout()
			green := color.New(color.FgGreen)
			dim := color.New(color.Faint)
			ext := "." + c.Charts.Format()

			images := []struct {
				name string
				data []byte
			}{
				{"survival_by_gender" + ext, nil},
				{"age_distribution" + ext, nil},
			}
			if view.SurvivalChart != nil {
				images[0].data = view.SurvivalChart.Data
			}
			if view.AgeChart != nil {
				images[1].data = view.AgeChart.Data
			}
			for _, img := range images {
				if img.data == nil {
					_, _ = dim.Fprintf(w, "skipped %s (no passengers match)\n", img.name)
					continue
				}
				path := filepath.Join(dir, img.name)
				if err := os.WriteFile(path, img.data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				_, _ = green.Fprintf(w, "wrote %s\n", path)
			}

			path := filepath.Join(dir, "passengers.xlsx")
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			if err := excel.WriteRecords(f, view.Result.Filtered); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			_, _ = green.Fprintf(w, "wrote %s (%d passengers)\n", path, view.Result.Count())
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&dir, "dir", ".", "output directory")
	return cmd
}
