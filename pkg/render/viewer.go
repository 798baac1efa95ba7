package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/m-mizutani/goerr/v2"

	"velocity/pkg/domain/model"
)

const (
	barHeight   = 5
	maxRowStars = 50
	accentColor = lipgloss.Color("#874BFD")
)

// Viewer is the interactive terminal view of a histogram: a binned bar chart
// on top, a filter prompt and a scrollable per-second table below.
type Viewer struct {
	hist  *model.Histogram
	title string
	order model.Order

	width  int
	height int
	ready  bool

	viewport   viewport.Model
	textInput  textinput.Model
	filterMode bool
	filter     string
}

// NewViewer creates the viewer model for h.
func NewViewer(h *model.Histogram, cfg Config) *Viewer {
	ti := textinput.New()
	ti.Placeholder = "filter rows, e.g. 2024-05-01 13:"
	ti.CharLimit = 64

	return &Viewer{
		hist:      h,
		title:     cfg.Title,
		order:     cfg.Order,
		width:     80,
		textInput: ti,
	}
}

// Display runs the viewer until the user quits or ctx is done.
func Display(ctx context.Context, h *model.Histogram, cfg Config, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(NewViewer(h, cfg), opts...).Run(); err != nil {
		return goerr.Wrap(err, "terminal viewer failed")
	}
	return nil
}

func (m *Viewer) Init() tea.Cmd {
	return nil
}

func (m *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// bars, labels, borders, prompt
		vpHeight := msg.Height - (barHeight + 1 + 2) - 3 - 2
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = vpHeight
		}
		m.viewport.SetContent(m.renderRows())
		return m, nil

	case tea.KeyMsg:
		if m.filterMode {
			switch msg.String() {
			case "enter":
				m.filter = strings.TrimSpace(m.textInput.Value())
				m.filterMode = false
				m.textInput.Blur()
				m.refresh()
				return m, nil
			case "esc":
				m.filterMode = false
				m.textInput.Blur()
				m.textInput.SetValue(m.filter)
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "/":
			m.filterMode = true
			return m, m.textInput.Focus()
		case "o":
			if m.order == model.OrderFirstSeen {
				m.order = model.OrderChronological
			} else {
				m.order = model.OrderFirstSeen
			}
			m.refresh()
			return m, nil
		}
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m *Viewer) refresh() {
	if m.ready {
		m.viewport.SetContent(m.renderRows())
		m.viewport.GotoTop()
	}
}

func (m *Viewer) View() string {
	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1)

	header := lipgloss.NewStyle().Bold(true).Render(m.summary())
	histogramView := header + "\n" + renderBars(m.hist.Points(model.OrderChronological), m.width-4, barHeight)
	histogramBox := borderStyle.Width(m.width - borderStyle.GetHorizontalFrameSize() + 2).Render(histogramView)

	inputStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(accentColor).
		Padding(0, 1)

	label := "cmd"
	if m.filterMode {
		label = "flt"
	}
	labelText := lipgloss.NewStyle().Bold(true).Render(label)
	prompt := m.textInput.View()
	if !m.filterMode {
		prompt = fmt.Sprintf("order=%s filter=%q  / filter  o order  q quit", m.order, m.filter)
	}
	commandInput := inputStyle.Width(m.width - inputStyle.GetHorizontalFrameSize() + 2).Render(labelText + " > " + prompt)

	rowsView := m.renderRows()
	if m.ready {
		rowsView = m.viewport.View()
	}
	rowsStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accentColor)
	rowsBox := rowsStyle.Width(m.width - rowsStyle.GetHorizontalFrameSize()).Render(rowsView)

	return lipgloss.JoinVertical(lipgloss.Left,
		histogramBox,
		commandInput,
		rowsBox,
	)
}

func (m *Viewer) summary() string {
	s := fmt.Sprintf("%d events in %d seconds, peak %d/s", m.hist.Total(), m.hist.Len(), m.hist.Peak())
	if m.title != "" {
		s = m.title + ": " + s
	}
	return s
}

// renderRows lists one line per second, filtered by substring.
func (m *Viewer) renderRows() string {
	peak := m.hist.Peak()
	if peak == 0 {
		return "no events"
	}

	var sb strings.Builder
	for _, pt := range m.hist.Points(m.order) {
		ts := pt.Time.Format(RowLayout)
		if m.filter != "" && !strings.Contains(ts, m.filter) {
			continue
		}
		stars := pt.Count * maxRowStars / peak
		if stars == 0 {
			stars = 1
		}
		fmt.Fprintf(&sb, "%s | %s (%d)\n", ts, strings.Repeat("*", stars), pt.Count)
	}
	if sb.Len() == 0 {
		return "no rows match " + m.filter
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// renderBars bins chronologically sorted points into width columns and draws
// them as a bar chart of the given height, followed by a start/mid/end label row.
func renderBars(points []model.Point, width, height int) string {
	if len(points) == 0 {
		return "no events"
	}
	if width < 2 || height < 1 {
		return "not enough room for the histogram"
	}

	startTime := points[0].Time
	endTime := points[len(points)-1].Time
	totalDuration := endTime.Sub(startTime)
	if totalDuration == 0 {
		totalDuration = time.Second
	}
	binDuration := totalDuration / time.Duration(width)
	if binDuration <= 0 {
		binDuration = 1
	}

	binCounts := make([]int, width)
	for _, pt := range points {
		binIdx := int(pt.Time.Sub(startTime) / binDuration)
		if binIdx >= width {
			binIdx = width - 1
		}
		if binIdx < 0 {
			binIdx = 0
		}
		binCounts[binIdx] += pt.Count
	}

	maxCount := 0
	for _, c := range binCounts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	var sb strings.Builder
	for i := 0; i < height; i++ {
		for _, count := range binCounts {
			h := (count * height) / maxCount
			if count > 0 && h == 0 {
				h = 1
			}
			if height-i-1 < h {
				sb.WriteString("█")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(labelRow(startTime, endTime, width))
	return sb.String()
}

func labelRow(startTime, endTime time.Time, width int) string {
	startLabel := startTime.Format(TickLayout)
	midLabel := startTime.Add(endTime.Sub(startTime) / 2).Format(TickLayout)
	endLabel := endTime.Format(TickLayout)

	row := []rune(strings.Repeat(" ", width))
	copy(row, []rune(startLabel))
	if width >= 3*len(midLabel)+2 {
		midPos := width/2 - len(midLabel)/2
		copy(row[midPos:], []rune(midLabel))
	}
	if endPos := width - len(endLabel); endPos > len(startLabel) {
		copy(row[endPos:], []rune(endLabel))
	}
	return string(row)
}
