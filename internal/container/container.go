package container

import (
	"fmt"
	"log"

	"titanicdash/adapters/excel"
	"titanicdash/adapters/openml"
	"titanicdash/adapters/postgres"
	"titanicdash/app"
	"titanicdash/internal/cache"
	"titanicdash/internal/charts"
	"titanicdash/internal/config"
	"titanicdash/internal/dataset"
	"titanicdash/internal/errors"
	"titanicdash/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure; DB is only set for the postgres source
	DB *sqlx.DB

	Source   ports.RowSource
	Provider *cache.MemoProvider
	Charts   *charts.Renderer

	// Dashboard renders chart images, Summary only computes the numbers
	Dashboard *app.DashboardService
	Summary   *app.DashboardService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{Config: cfg}

	if err := c.initSource(); err != nil {
		return nil, fmt.Errorf("failed to initialize data source: %w", err)
	}

	renderer, err := charts.NewRenderer(charts.Options{
		Format: cfg.Charts.Format,
		Width:  cfg.Charts.Width,
		Height: cfg.Charts.Height,
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize chart renderer: %w", err)
	}
	c.Charts = renderer

	c.Provider = cache.NewMemoProvider(dataset.NewSourceProvider(cfg.Data.Source, c.Source, cfg.Data.FetchTimeout))
	c.Dashboard = app.NewDashboardService(c.Provider, c.Charts)
	c.Summary = app.NewDashboardService(c.Provider, nil)

	log.Printf("Container initialized: source=%s charts=%s %dx%d",
		c.Source.Key(), renderer.Format(), cfg.Charts.Width, cfg.Charts.Height)
	return c, nil
}

// initSource picks the RowSource named by the configuration
func (c *Container) initSource() error {
	data := c.Config.Data
	switch data.Source {
	case config.SourceOpenML:
		c.Source = openml.NewReader(openml.Config{
			BaseURL: data.OpenMLBaseURL,
			Name:    data.DatasetName,
			Version: data.DatasetVersion,
			Timeout: data.FetchTimeout,
		})
	case config.SourceFile:
		if data.File == "" {
			return errors.ConfigInvalid("DATA_FILE is required for the file source")
		}
		c.Source = excel.NewDataReader(data.File)
	case config.SourcePostgres:
		if data.DatabaseURL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required for the postgres source")
		}
		db, err := postgres.Open(data.DatabaseURL)
		if err != nil {
			return err
		}
		c.DB = db
		c.Source = postgres.NewPassengerSource(db, data.PassengerQuery)
	default:
		return errors.ConfigInvalid(fmt.Sprintf("unknown data source %q", data.Source))
	}
	return nil
}

// Close releases the database handle, if any
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
