package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rkaushal27/tailorcv/internal/config"
	"github.com/rkaushal27/tailorcv/internal/ledger"
	"github.com/rkaushal27/tailorcv/internal/score"
)

// Lines per record item in the list view (company line + subtitle + blank separator).
const recordItemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")) // bright blue

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("39"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	companyStyle = lipgloss.NewStyle().
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	selectedCompanyStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")). // bright white
				Background(lipgloss.Color("24"))  // dark blue bg

	selectedSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("24"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(16)

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)
)

// scoreColors maps interpretation color hints to terminal colors.
var scoreColors = map[string]lipgloss.Color{
	"green":  lipgloss.Color("42"),
	"blue":   lipgloss.Color("39"),
	"orange": lipgloss.Color("214"),
	"red":    lipgloss.Color("196"),
	"gray":   lipgloss.Color("245"),
}

type browseModel struct {
	records  []ledger.Record
	scoring  config.ScoringConfig
	viewport viewport.Model
	cursor   int
	width    int
	height   int
	ready    bool

	view           viewState
	detailViewport viewport.Model
}

// Run opens the interactive ledger browser over the given records.
func Run(records []ledger.Record, scoring config.ScoringConfig) error {
	m := browseModel{records: records, scoring: scoring}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("ledger browser: %w", err)
	}
	return nil
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detailViewport.Width = m.width - 4
			m.detailViewport.Height = m.height - 4
			m.detailViewport.SetContent(m.renderDetail())
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}

	return m, nil
}

func (m browseModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil
	case "enter":
		return m.openDetailView()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m browseModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *browseModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(len(m.records)-1, 0))
}

func (m *browseModel) ensureCursorVisible() {
	cursorTop := m.cursor * recordItemHeight
	cursorBottom := cursorTop + recordItemHeight - 1

	if cursorTop < m.viewport.YOffset {
		m.viewport.SetYOffset(cursorTop)
	} else if cursorBottom >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(cursorBottom - m.viewport.Height + 1)
	}
}

func (m browseModel) openDetailView() (tea.Model, tea.Cmd) {
	if len(m.records) == 0 {
		return m, nil
	}
	m.view = viewDetail
	m.detailViewport = viewport.New(m.width-4, m.height-4)
	m.detailViewport.SetContent(m.renderDetail())
	return m, nil
}

func (m *browseModel) recalcLayout() {
	contentHeight := m.height - 5 // header + border + status bar
	if contentHeight < 3 {
		contentHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(m.width-2, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width - 2
		m.viewport.Height = contentHeight
	}
	m.recalcContent()
}

func (m *browseModel) recalcContent() {
	m.viewport.SetContent(m.renderList())
}

func (m browseModel) scoreLabel(rec ledger.Record) string {
	interp := score.Interpret(rec.ATSScore, m.scoring)
	color, ok := scoreColors[interp.Color]
	if !ok {
		color = scoreColors["gray"]
	}
	label := "score n/a"
	if rec.ATSScore != nil {
		label = fmt.Sprintf("score %d (%s)", *rec.ATSScore, interp.Category)
	}
	return lipgloss.NewStyle().Foreground(color).Render(label)
}

func (m browseModel) renderList() string {
	if len(m.records) == 0 {
		return subtitleStyle.Render("no applications recorded yet")
	}

	var b strings.Builder
	for i, rec := range m.records {
		created := "review only"
		if rec.ResumeCreated {
			created = "resume created"
		}
		subtitle := fmt.Sprintf("%s · %s · %s",
			rec.Date.Format("2006-01-02 15:04"), created, m.scoreLabel(rec))

		if i == m.cursor {
			b.WriteString(selectedCompanyStyle.Render(" "+rec.Company+" ") + "\n")
			b.WriteString(selectedSubtitleStyle.Render(" "+subtitle+" ") + "\n\n")
		} else {
			b.WriteString(companyStyle.Render(rec.Company) + "\n")
			b.WriteString(subtitleStyle.Render(subtitle) + "\n\n")
		}
	}
	return b.String()
}

func (m browseModel) renderDetail() string {
	rec := m.records[m.cursor]

	field := func(label, value string) string {
		if value == "" {
			value = "—"
		}
		return detailLabelStyle.Render(label) + value + "\n"
	}

	scoreValue := "not recorded"
	if rec.ATSScore != nil {
		interp := score.Interpret(rec.ATSScore, m.scoring)
		scoreValue = fmt.Sprintf("%d/100 (%s)", *rec.ATSScore, interp.Interpretation)
	}
	created := "No"
	if rec.ResumeCreated {
		created = "Yes"
	}

	var b strings.Builder
	b.WriteString(detailTitleStyle.Render(rec.Company) + "\n")
	b.WriteString(field("Applied", rec.Date.Format(ledger.DateLayout)))
	b.WriteString(field("Resume created", created))
	b.WriteString(field("ATS score", scoreValue))
	b.WriteString(field("Changes", rec.ChangesRequired))
	b.WriteString("\n" + detailLabelStyle.Render("Job summary") + "\n")
	b.WriteString(rec.JobSummary + "\n")
	if rec.Notes != "" {
		b.WriteString("\n" + detailLabelStyle.Render("Notes") + "\n")
		b.WriteString(rec.Notes + "\n")
	}
	return b.String()
}

func (m browseModel) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.view == viewDetail {
		header := headerStyle.Render("Application Detail")
		body := borderStyle.Width(m.width - 2).Render(m.detailViewport.View())
		status := statusBarStyle.Width(m.width).Render("esc back · ↑/↓ scroll · q quit")
		return header + "\n" + body + "\n" + status
	}

	header := headerStyle.Render(fmt.Sprintf("Applications (%d)", len(m.records)))
	body := borderStyle.Width(m.width - 2).Render(m.viewport.View())
	status := statusBarStyle.Width(m.width).Render("↑/↓ move · enter detail · q quit")
	return header + "\n" + body + "\n" + status
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
