package render

// Time layouts used by the chart and the terminal viewer
const (
	// TickLayout formats x axis ticks and histogram labels.
	TickLayout = "2006-01-02 15:04"
	// RowLayout formats one per-second row in the viewer list.
	RowLayout = "2006-01-02 15:04:05"
)
