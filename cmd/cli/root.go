package main

import (
	"log"
	"net/url"
	"strconv"

	"titanicdash/app"
	"titanicdash/internal"
	"titanicdash/internal/config"
	"titanicdash/internal/container"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newContainer builds the application from .env and the environment.
// Tests replace it to point at a fixture file.
var newContainer = func() (*container.Container, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	internal.DefaultLogger.SetLevel(internal.ParseLogLevel(cfg.Log.Level))
	return container.New(cfg)
}

func newRootCmd() *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:           "titanicdash-cli",
		Short:         "Filter the Titanic passenger list and summarize it from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newSummaryCmd(),
		newExportCmd(),
	)
	return root
}

// controlFlags mirror the dashboard widgets
type controlFlags struct {
	ageMin float64
	ageMax float64
	sexes  []string
	class  string
	bins   int
}

func (f *controlFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&f.ageMin, "age-min", app.DefaultAgeRange.Min, "lowest age to include")
	fs.Float64Var(&f.ageMax, "age-max", app.DefaultAgeRange.Max, "highest age to include")
	fs.StringSliceVar(&f.sexes, "sex", []string{"male", "female"}, "genders to include (repeatable, empty for none)")
	fs.StringVar(&f.class, "class", "All", "passenger class: All, 1, 2 or 3")
	fs.IntVar(&f.bins, "bins", app.DefaultBins, "number of histogram bins (5-50)")
}

// values encodes the flags as dashboard query parameters so the CLI goes
// through the same parsing and clamping as the web surfaces
func (f *controlFlags) values() url.Values {
	v := url.Values{}
	v.Set(app.ParamAgeMin, strconv.FormatFloat(f.ageMin, 'f', -1, 64))
	v.Set(app.ParamAgeMax, strconv.FormatFloat(f.ageMax, 'f', -1, 64))
	v.Set(app.ParamClass, f.class)
	v.Set(app.ParamBins, strconv.Itoa(f.bins))
	v.Set(app.ParamSubmitted, "1")
	for _, s := range f.sexes {
		v.Add(app.ParamSex, s)
	}
	return v
}

// run loads the dataset and executes one dashboard pass
func (f *controlFlags) run(cmd *cobra.Command, svc *app.DashboardService) (*app.View, error) {
	bounds, err := svc.Bounds(cmd.Context())
	if err != nil {
		return nil, err
	}
	controls, err := app.ParseControls(f.values(), bounds)
	if err != nil {
		return nil, err
	}
	return svc.Run(cmd.Context(), controls)
}
