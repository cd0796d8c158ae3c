// Package tui provides the interactive skill browser built on Bubble Tea.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/skilldex/skilldex/internal/model"
)

// BrowseAction represents the action the user took on a selected skill.
type BrowseAction int

const (
	// BrowseActionNone means no action was taken (user quit).
	BrowseActionNone BrowseAction = iota
	// BrowseActionShow means the user wants the skill printed after exit.
	BrowseActionShow
)

// BrowseResult contains the result of the browse TUI interaction.
type BrowseResult struct {
	Action BrowseAction
	Skill  model.Skill
}

// browseKeyMap defines the key bindings for the browser.
type browseKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Detail   key.Binding
	Show     key.Binding
	Filter   key.Binding
	ClearFlt key.Binding
	Help     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func defaultBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter/v", "details"),
		),
		Show: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "show"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ClearFlt: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Styles for the browse TUI.
var browseStyles = struct {
	Title       lipgloss.Style
	Help        lipgloss.Style
	Filter      lipgloss.Style
	FilterInput lipgloss.Style
	Status      lipgloss.Style
	DetailTitle lipgloss.Style
}{
	Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Filter:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	FilterInput: lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
	DetailTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
}

type browsePhase int

const (
	browsePhaseList browsePhase = iota
	browsePhaseDetail
)

const (
	browseNameWidth      = 22
	browseKeywordsWidth  = 28
	browseCompanionWidth = 12
	browseDescWidth      = 40
	browseColumnPadding  = 2
	browseColumnCount    = 4
)

type browseColumnWidths struct {
	name       int
	keywords   int
	companions int
	desc       int
}

// BrowseModel is the BubbleTea model for the interactive skill browser.
type BrowseModel struct {
	table        table.Model
	skills       []model.Skill
	filtered     []model.Skill
	keys         browseKeyMap
	result       BrowseResult
	filter       string
	filtering    bool
	showHelp     bool
	width        int
	height       int
	columnWidths browseColumnWidths
	phase        browsePhase
	detailSkill  model.Skill
	viewport     viewport.Model
	ready        bool
	quitting     bool
}

// NewBrowseModel creates a browse model over the given skills.
func NewBrowseModel(skills []model.Skill) BrowseModel {
	sort.Slice(skills, func(i, j int) bool {
		return strings.ToLower(skills[i].Name) < strings.ToLower(skills[j].Name)
	})

	columns, columnWidths := browseColumns(0, skills)

	m := BrowseModel{
		skills:       skills,
		filtered:     skills,
		keys:         defaultBrowseKeyMap(),
		columnWidths: columnWidths,
		phase:        browsePhaseList,
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(m.skillsToRows(skills)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m.table = t
	return m
}

func (m BrowseModel) skillsToRows(skills []model.Skill) []table.Row {
	rows := make([]table.Row, len(skills))
	for i, s := range skills {
		companions := strings.Join(s.Companions(), ", ")
		if companions == "" {
			companions = "-"
		}
		rows[i] = table.Row{
			truncateText(s.Name, m.columnWidths.name),
			truncateText(s.DisplayKeywords(), m.columnWidths.keywords),
			truncateText(companions, m.columnWidths.companions),
			truncateText(s.Description, m.columnWidths.desc),
		}
	}
	return rows
}

func browseColumns(totalWidth int, skills []model.Skill) ([]table.Column, browseColumnWidths) {
	widths := browseColumnWidths{
		name:       browseNameWidth,
		keywords:   browseKeywordsWidth,
		companions: browseCompanionWidth,
		desc:       browseDescWidth,
	}

	if totalWidth > 0 {
		baseTotal := widths.name + widths.keywords + widths.companions + widths.desc +
			(browseColumnPadding * browseColumnCount)
		extra := totalWidth - baseTotal
		if extra > 0 {
			maxNameWidth := widths.name
			for _, skill := range skills {
				if w := runewidth.StringWidth(skill.Name); w > maxNameWidth {
					maxNameWidth = w
				}
			}

			nameNeeded := maxNameWidth - widths.name
			if nameNeeded > 0 {
				nameExtra := min(nameNeeded, extra)
				widths.name += nameExtra
				extra -= nameExtra
			}

			keywordExtra := extra / 3
			widths.keywords += keywordExtra
			widths.desc += extra - keywordExtra
		}
	}

	columns := []table.Column{
		{Title: "Name", Width: widths.name},
		{Title: "Keywords", Width: widths.keywords},
		{Title: "Companions", Width: widths.companions},
		{Title: "Description", Width: widths.desc},
	}

	return columns, widths
}

func (m *BrowseModel) updateColumns(totalWidth int) {
	columns, widths := browseColumns(totalWidth, m.skills)
	m.columnWidths = widths
	m.table.SetColumns(columns)
}

// Init implements tea.Model.
func (m BrowseModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case browsePhaseDetail:
		return m.updateDetail(msg)
	default:
		return m.updateList(msg)
	}
}

func (m BrowseModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-8, 5))
		m.updateColumns(msg.Width)
		m.table.SetRows(m.skillsToRows(m.filtered))

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter":
				m.filtering = false
				return m, nil
			case "esc":
				m.filter = ""
				m.filtering = false
				m.applyFilter()
				return m, nil
			case "backspace":
				if len(m.filter) > 0 {
					m.filter = m.filter[:len(m.filter)-1]
					m.applyFilter()
				}
				return m, nil
			default:
				if len(msg.String()) == 1 {
					m.filter += msg.String()
					m.applyFilter()
				}
				return m, nil
			}
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
			return m, nil

		case key.Matches(msg, m.keys.ClearFlt):
			m.filter = ""
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.Detail):
			if len(m.filtered) > 0 {
				m.detailSkill = m.selectedSkill()
				m.phase = browsePhaseDetail
				m.ready = false
				m.ensureDetailViewport()
			}
			return m, nil

		case key.Matches(msg, m.keys.Show):
			if len(m.filtered) > 0 {
				m.result = BrowseResult{
					Action: BrowseActionShow,
					Skill:  m.selectedSkill(),
				}
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m BrowseModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureDetailViewport()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.phase = browsePhaseList
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// applyFilter narrows the list to skills matching the filter on name,
// invocation keywords, or description.
func (m *BrowseModel) applyFilter() {
	if m.filter == "" {
		m.filtered = m.skills
	} else {
		var filtered []model.Skill
		lowerFilter := strings.ToLower(m.filter)
		for _, s := range m.skills {
			if strings.Contains(strings.ToLower(s.Name), lowerFilter) ||
				strings.Contains(strings.ToLower(s.DisplayKeywords()), lowerFilter) ||
				strings.Contains(strings.ToLower(s.Description), lowerFilter) {
				filtered = append(filtered, s)
			}
		}
		m.filtered = filtered
	}
	m.table.SetRows(m.skillsToRows(m.filtered))
}

func (m BrowseModel) selectedSkill() model.Skill {
	cursor := m.table.Cursor()
	if cursor >= 0 && cursor < len(m.filtered) {
		return m.filtered[cursor]
	}
	return model.Skill{}
}

// View implements tea.Model.
func (m BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	if m.phase == browsePhaseDetail {
		return m.viewDetail()
	}

	var b strings.Builder

	b.WriteString(browseStyles.Title.Render("Skilldex Skills"))
	b.WriteString("\n\n")

	if m.filter != "" || m.filtering {
		filterStr := browseStyles.Filter.Render("Filter: ")
		filterVal := browseStyles.FilterInput.Render(m.filter)
		if m.filtering {
			filterVal += "█"
		}
		b.WriteString(filterStr + filterVal + "\n\n")
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")

	status := fmt.Sprintf("%d skill(s)", len(m.filtered))
	if m.filter != "" {
		status = fmt.Sprintf("%d of %d skill(s) (filtered)", len(m.filtered), len(m.skills))
	}
	b.WriteString(browseStyles.Status.Render(status))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.renderFullHelp())
	} else {
		b.WriteString(m.renderShortHelp())
	}

	return b.String()
}

func (m BrowseModel) viewDetail() string {
	m.ensureDetailViewport()
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(browseStyles.Title.Render(fmt.Sprintf("Skill: %s", m.detailSkill.Name)))
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	scrollPercent := int(m.viewport.ScrollPercent() * 100)
	status := fmt.Sprintf("Scroll: %d%% • Press b or Esc to go back", scrollPercent)
	b.WriteString(browseStyles.Status.Render(status))
	b.WriteString("\n")

	keys := []string{
		"↑/↓ scroll",
		"b back",
		"q quit",
	}
	b.WriteString(browseStyles.Help.Render(strings.Join(keys, " • ")))

	return b.String()
}

func (m *BrowseModel) ensureDetailViewport() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	headerHeight := 4
	footerHeight := 4
	viewportHeight := max(m.height-headerHeight-footerHeight, 5)

	if !m.ready {
		m.viewport = viewport.New(m.width-2, viewportHeight)
		m.viewport.SetContent(m.buildDetailContent(m.viewport.Width))
		m.ready = true
		return
	}

	m.viewport.Width = m.width - 2
	m.viewport.Height = viewportHeight
	m.viewport.SetContent(m.buildDetailContent(m.viewport.Width))
}

func (m BrowseModel) buildDetailContent(width int) string {
	skill := m.detailSkill
	if skill.Name == "" {
		return "No skill selected."
	}

	var b strings.Builder
	indent := "  "

	b.WriteString(browseStyles.DetailTitle.Render("Skill"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%sName: %s\n", indent, skill.Name))
	b.WriteString(fmt.Sprintf("%sKeywords: %s\n", indent, skill.DisplayKeywords()))
	if skill.Path != "" {
		b.WriteString(fmt.Sprintf("%sPath: %s\n", indent, skill.Path))
	}
	if companions := skill.Companions(); len(companions) > 0 {
		b.WriteString(fmt.Sprintf("%sCompanions: %s\n", indent, strings.Join(companions, ", ")))
	}

	b.WriteString("\n")
	b.WriteString(browseStyles.DetailTitle.Render("Description"))
	b.WriteString("\n")

	description := strings.TrimSpace(skill.Description)
	if description == "" {
		description = "No description available."
	}
	b.WriteString(wrapText(description, max(width, 10)))
	b.WriteString("\n")

	if strings.TrimSpace(skill.Content) != "" {
		b.WriteString("\n")
		b.WriteString(browseStyles.DetailTitle.Render("Content"))
		b.WriteString("\n")
		b.WriteString(skill.Content)
		b.WriteString("\n")
	}

	return b.String()
}

func (m BrowseModel) renderShortHelp() string {
	keys := []string{
		"↑/↓ navigate",
		"enter details",
		"o show",
		"/ filter",
		"? help",
		"q quit",
	}
	return browseStyles.Help.Render(strings.Join(keys, " • "))
}

func (m BrowseModel) renderFullHelp() string {
	help := `Navigation:
  ↑/k      Move up
  ↓/j      Move down

Actions:
  Enter/v  View details
  o        Show skill after exit

Filter:
  /        Start filtering (by name, keywords, or description)
  Esc      Clear filter
  Enter    Finish filtering

General:
  ?        Toggle full help
  q        Quit`
	return browseStyles.Help.Render(help)
}

// Result returns the result of the user interaction.
func (m BrowseModel) Result() BrowseResult {
	return m.result
}

// RunBrowse runs the interactive skill browser and returns the result.
func RunBrowse(skills []model.Skill) (BrowseResult, error) {
	if len(skills) == 0 {
		return BrowseResult{}, nil
	}

	browseModel := NewBrowseModel(skills)
	finalModel, err := tea.NewProgram(browseModel, tea.WithAltScreen()).Run()
	if err != nil {
		return BrowseResult{}, err
	}

	if m, ok := finalModel.(BrowseModel); ok {
		return m.Result(), nil
	}

	return BrowseResult{}, nil
}
