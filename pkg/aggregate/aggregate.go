package aggregate

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"velocity/pkg/domain/model"
)

// Aggregator folds JSON-lines records into a per-second histogram.
type Aggregator struct {
	field    jp.Expr
	location *time.Location
}

// Option configures an Aggregator
type Option func(*Aggregator) error

// WithField sets the timestamp field, either a top-level name or a JSONPath
// expression such as "$.data.created_ms".
func WithField(field string) Option {
	return func(a *Aggregator) error {
		x, err := compileField(field)
		if err != nil {
			return err
		}
		a.field = x
		return nil
	}
}

// WithLocation sets the time zone the timestamps are converted to.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) error {
		if loc != nil {
			a.location = loc
		}
		return nil
	}
}

// New creates an Aggregator. By default it reads "timestamp_ms" and converts
// to local time.
func New(opts ...Option) (*Aggregator, error) {
	x, err := compileField(DefaultField)
	if err != nil {
		return nil, err
	}

	a := &Aggregator{
		field:    x,
		location: time.Local,
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// AggregateFile opens path and aggregates its content. gzip, bzip2 and xz
// inputs are decompressed transparently.
func (a *Aggregator) AggregateFile(ctx context.Context, path string) (*model.Histogram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open input file",
			goerr.V("path", path),
			goerr.T(model.ErrTagFileAccess))
	}
	defer f.Close()

	r, kind, err := decompress(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to prepare input",
			goerr.V("path", path),
			goerr.T(model.ErrTagFileAccess))
	}
	if closer, ok := r.(io.Closer); ok {
		defer closer.Close()
	}

	ctxlog.From(ctx).Debug("reading input",
		"path", path,
		"compression", kind.String(),
	)

	h, err := a.Aggregate(ctx, r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to aggregate input", goerr.V("path", path))
	}
	return h, nil
}

// Aggregate reads every line of r and counts records per second. Lines that
// are not JSON or lack a numeric timestamp are skipped and only show up in
// the histogram Stats. Read errors abort the whole run.
func (a *Aggregator) Aggregate(ctx context.Context, r io.Reader) (*model.Histogram, error) {
	h := model.NewHistogram(a.location)

	// Invalid UTF-8 sequences become U+FFFD and a leading BOM is dropped.
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	br := bufio.NewReader(decoded)

	for {
		if err := ctx.Err(); err != nil {
			return nil, goerr.Wrap(err, "aggregation interrupted")
		}

		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, goerr.Wrap(readErr, "failed to read input",
				goerr.V("line", h.Stats.Lines+1),
				goerr.T(model.ErrTagFileAccess))
		}

		if line != "" {
			h.Stats.Lines++
			a.fold(h, line)
		}

		if readErr == io.EOF {
			break
		}
	}

	return h, nil
}

func (a *Aggregator) fold(h *model.Histogram, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		h.Stats.Malformed++
		return
	}

	data, err := oj.ParseString(line)
	if err != nil {
		h.Stats.Malformed++
		return
	}

	ms, ok := epochMillis(a.field.First(data))
	if !ok {
		h.Stats.MissingField++
		return
	}

	h.AddUnix(epochSecond(ms))
	h.Stats.Records++
}
