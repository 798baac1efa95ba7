package config

import (
	"log/slog"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gonum.org/v1/plot/vg"

	"velocity/pkg/domain/model"
	"velocity/pkg/render"
)

// Chart holds output configuration
type Chart struct {
	PlotDir string
	Order   string
	Display bool
	Save    bool
	Title   string
	Width   float64
	Height  float64
}

// Flags returns CLI flags for Chart configuration
func (c *Chart) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "plot-dir",
			Usage:       "Directory receiving <name>.png, relative to the working directory unless absolute",
			Category:    "Output",
			Value:       filepath.Join("plots", "velocity"),
			Sources:     cli.EnvVars("VELOCITY_PLOT_DIR"),
			Destination: &c.PlotDir,
		},
		&cli.StringFlag{
			Name:        "order",
			Usage:       "Point order on the chart (first-seen, time)",
			Category:    "Output",
			Value:       "first-seen",
			Sources:     cli.EnvVars("VELOCITY_ORDER"),
			Destination: &c.Order,
		},
		&cli.BoolFlag{
			Name:        "display",
			Usage:       "Open the interactive terminal viewer",
			Category:    "Output",
			Sources:     cli.EnvVars("VELOCITY_DISPLAY"),
			Destination: &c.Display,
		},
		&cli.BoolFlag{
			Name:        "save",
			Usage:       "Write the PNG chart",
			Category:    "Output",
			Value:       true,
			Sources:     cli.EnvVars("VELOCITY_SAVE"),
			Destination: &c.Save,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Chart title",
			Category:    "Output",
			Sources:     cli.EnvVars("VELOCITY_TITLE"),
			Destination: &c.Title,
		},
		&cli.FloatFlag{
			Name:        "width",
			Usage:       "Chart width in inches",
			Category:    "Output",
			Value:       10,
			Sources:     cli.EnvVars("VELOCITY_WIDTH"),
			Destination: &c.Width,
		},
		&cli.FloatFlag{
			Name:        "height",
			Usage:       "Chart height in inches",
			Category:    "Output",
			Value:       5,
			Sources:     cli.EnvVars("VELOCITY_HEIGHT"),
			Destination: &c.Height,
		},
	}
}

// Path returns the chart file for name.
func (c *Chart) Path(cwd, name string) string {
	return resolve(cwd, c.PlotDir, name+".png")
}

// Configure converts the flags into a render.Config for name.
func (c *Chart) Configure(cwd, name string) (render.Config, error) {
	if err := c.Validate(); err != nil {
		return render.Config{}, err
	}

	order, err := model.ParseOrder(c.Order)
	if err != nil {
		return render.Config{}, err
	}

	cfg := render.Config{
		Display: c.Display,
		Order:   order,
		Title:   c.Title,
		Width:   vg.Length(c.Width) * vg.Inch,
		Height:  vg.Length(c.Height) * vg.Inch,
	}
	if c.Save {
		cfg.SavePath = c.Path(cwd, name)
	}
	return cfg, nil
}

// Validate validates the chart configuration
func (c *Chart) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return goerr.New("chart size must be positive",
			goerr.V("width", c.Width),
			goerr.V("height", c.Height),
			goerr.T(model.ErrTagInvalidOption))
	}
	return nil
}

// LogValue returns structured log value
func (c Chart) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("plot_dir", c.PlotDir),
		slog.String("order", c.Order),
		slog.Bool("display", c.Display),
		slog.Bool("save", c.Save),
	)
}
