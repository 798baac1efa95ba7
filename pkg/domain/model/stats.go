package model

import "log/slog"

// Stats summarises one aggregation run.
type Stats struct {
	// Lines is the number of lines read, blank ones included.
	Lines int
	// Records is the number of lines that contributed to the histogram.
	Records int
	// Malformed is the number of lines that were not valid JSON.
	Malformed int
	// MissingField is the number of JSON lines without a usable timestamp.
	MissingField int
}

// Skipped returns the number of lines that did not contribute.
func (s Stats) Skipped() int {
	return s.Malformed + s.MissingField
}

// LogValue returns structured log value
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("lines", s.Lines),
		slog.Int("records", s.Records),
		slog.Int("malformed", s.Malformed),
		slog.Int("missing_field", s.MissingField),
	)
}
