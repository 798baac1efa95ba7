package render

var (
	RenderBars = renderBars
	LabelRow   = labelRow
)

func (m *Viewer) RenderRows() string {
	return m.renderRows()
}
