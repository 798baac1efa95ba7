package config

import (
	"log/slog"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"velocity/pkg/aggregate"
)

// Input holds where and how records are read
type Input struct {
	DataDir string
	Field   string
}

// Flags returns CLI flags for Input configuration
func (i *Input) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "Directory holding <name>.jsonl, relative to the working directory unless absolute",
			Category:    "Input",
			Value:       filepath.Join("data", "velocity"),
			Sources:     cli.EnvVars("VELOCITY_DATA_DIR"),
			Destination: &i.DataDir,
		},
		&cli.StringFlag{
			Name:        "field",
			Usage:       "Record field with the epoch milliseconds, a name or a JSONPath expression",
			Category:    "Input",
			Value:       aggregate.DefaultField,
			Sources:     cli.EnvVars("VELOCITY_FIELD"),
			Destination: &i.Field,
		},
	}
}

// Path returns the input file for name.
func (i *Input) Path(cwd, name string) string {
	return resolve(cwd, i.DataDir, name+".jsonl")
}

// Configure creates the aggregator.
func (i *Input) Configure() (*aggregate.Aggregator, error) {
	return aggregate.New(aggregate.WithField(i.Field))
}

// LogValue returns structured log value
func (i Input) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("data_dir", i.DataDir),
		slog.String("field", i.Field),
	)
}

func resolve(cwd, dir, file string) string {
	if filepath.IsAbs(dir) {
		return filepath.Join(dir, file)
	}
	return filepath.Join(cwd, dir, file)
}
