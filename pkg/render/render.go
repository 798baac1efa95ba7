package render

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"gonum.org/v1/plot/vg"

	"velocity/pkg/domain/model"
)

// Default canvas size of the saved chart
const (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

// Config selects what Render does. Display and SavePath are independent:
// either, both or neither may be set.
type Config struct {
	// Display opens the interactive terminal viewer.
	Display bool
	// SavePath is the PNG destination. Empty disables saving.
	SavePath string
	// Order sequences the plotted points.
	Order  model.Order
	Title  string
	Width  vg.Length
	Height vg.Length
}

// LogValue returns structured log value
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("display", c.Display),
		slog.String("save_path", c.SavePath),
		slog.String("order", c.Order.String()),
		slog.String("title", c.Title),
	)
}

// Render saves and/or displays the chart for h.
func Render(ctx context.Context, h *model.Histogram, cfg Config) error {
	logger := ctxlog.From(ctx)

	if cfg.SavePath != "" {
		if err := Save(h, cfg); err != nil {
			return err
		}
		logger.Info("chart saved", "path", cfg.SavePath, "points", h.Len())
	}

	if cfg.Display {
		if err := Display(ctx, h, cfg); err != nil {
			return err
		}
	}

	return nil
}

// Save writes the chart for h as PNG to cfg.SavePath. The parent directory
// must already exist.
func Save(h *model.Histogram, cfg Config) error {
	path := cfg.SavePath
	if path == "" {
		return goerr.New("no output path", goerr.T(model.ErrTagInvalidOption))
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return goerr.Wrap(err, "output directory is not accessible",
			goerr.V("dir", dir),
			goerr.T(model.ErrTagFileAccess))
	}
	if !info.IsDir() {
		return goerr.New("output directory is not a directory",
			goerr.V("dir", dir),
			goerr.T(model.ErrTagFileAccess))
	}

	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	p, err := newPlot(h.Points(cfg.Order), h.Location(), cfg.Title)
	if err != nil {
		return err
	}

	data, err := encodePNG(p, width, height)
	if err != nil {
		return goerr.Wrap(err, "failed to render chart", goerr.V("path", path))
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return goerr.Wrap(err, "failed to write chart",
			goerr.V("path", path),
			goerr.T(model.ErrTagFileAccess))
	}

	return nil
}
