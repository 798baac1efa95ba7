package render_test

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"gonum.org/v1/plot/vg"

	"velocity/pkg/domain/model"
	"velocity/pkg/render"
)

func scenarioA() *model.Histogram {
	h := model.NewHistogram(time.UTC)
	h.AddUnix(1000)
	h.AddUnix(1000)
	h.AddUnix(2000)
	return h
}

func decodePNG(t *testing.T, path string) (width, height int) {
	t.Helper()
	data, err := os.ReadFile(path)
	gt.NoError(t, err)
	gt.True(t, len(data) > 0)

	img, err := png.Decode(bytes.NewReader(data))
	gt.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestSave(t *testing.T) {
	t.Run("writes a PNG", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tweets.png")
		gt.NoError(t, render.Save(scenarioA(), render.Config{SavePath: path}))
		w, h := decodePNG(t, path)
		gt.True(t, w > 0)
		gt.True(t, h > 0)
	})

	t.Run("empty histogram gives a blank chart", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.png")
		gt.NoError(t, render.Save(model.NewHistogram(time.UTC), render.Config{SavePath: path}))
		decodePNG(t, path)
	})

	t.Run("single point", func(t *testing.T) {
		h := model.NewHistogram(time.UTC)
		h.AddUnix(1_700_000_000)
		path := filepath.Join(t.TempDir(), "one.png")
		gt.NoError(t, render.Save(h, render.Config{SavePath: path, Order: model.OrderChronological}))
		decodePNG(t, path)
	})

	t.Run("canvas size follows config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sized.png")
		cfg := render.Config{
			SavePath: path,
			Width:    4 * vg.Inch,
			Height:   2 * vg.Inch,
		}
		gt.NoError(t, render.Save(scenarioA(), cfg))
		w, h := decodePNG(t, path)
		gt.True(t, w > h)
	})

	t.Run("missing parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "tweets.png")
		err := render.Save(scenarioA(), render.Config{SavePath: path})
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagFileAccess))
		_, statErr := os.Stat(path)
		gt.True(t, os.IsNotExist(statErr))
	})

	t.Run("parent is a file", func(t *testing.T) {
		parent := filepath.Join(t.TempDir(), "plots")
		gt.NoError(t, os.WriteFile(parent, []byte("x"), 0o644))
		err := render.Save(scenarioA(), render.Config{SavePath: filepath.Join(parent, "tweets.png")})
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagFileAccess))
	})

	t.Run("no path", func(t *testing.T) {
		err := render.Save(scenarioA(), render.Config{})
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidOption))
	})
}

func TestRender(t *testing.T) {
	ctx := context.Background()

	t.Run("save only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tweets.png")
		gt.NoError(t, render.Render(ctx, scenarioA(), render.Config{SavePath: path}))
		decodePNG(t, path)
	})

	t.Run("nothing enabled is a no-op", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, render.Render(ctx, scenarioA(), render.Config{}))
		entries, err := os.ReadDir(dir)
		gt.NoError(t, err)
		gt.A(t, entries).Length(0)
	})

	t.Run("save failure is returned", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope", "tweets.png")
		err := render.Render(ctx, scenarioA(), render.Config{SavePath: path})
		gt.True(t, goerr.HasTag(err, model.ErrTagFileAccess))
	})
}
