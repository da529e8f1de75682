package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/miku/cordex/aggregate"
	"github.com/miku/cordex/config"
	"github.com/miku/cordex/pipeline"
	"github.com/miku/cordex/render"
	"github.com/miku/cordex/table"
)

const allSources = "All"

const (
	minTopN = 5
	maxTopN = 30
)

type tableLoadedMsg *table.Table

type statusMsg string

// errorMsg takes over the whole view, so only table loading produces it;
// export failures report through the status line and keep the table up.
type errorMsg error

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// App is the viewer model: one loaded table plus filter state, everything
// else is derived on each filter change.
type App struct {
	path   string
	outdir string
	cfg    *config.Config
	loader *pipeline.Loader

	data     *table.Table
	filtered *table.Table

	minYear, maxYear int
	yearLo, yearHi   int
	sources          []string
	sourceIdx        int
	topN             int
	titleQuery       textinput.Model

	records btable.Model

	loading bool
	status  string
	err     error

	width, height int
}

// NewApp builds the initial model; the table is loaded in Init.
func NewApp(path, outdir string, cfg *config.Config) App {
	ti := textinput.New()
	ti.Placeholder = "title contains ..."
	ti.CharLimit = 80
	ti.Width = 30

	records := btable.New(
		btable.WithColumns(recordColumns(80)),
		btable.WithHeight(10),
		btable.WithFocused(true),
	)

	return App{
		path:       path,
		outdir:     outdir,
		cfg:        cfg,
		loader:     pipeline.NewLoader(),
		topN:       10,
		titleQuery: ti,
		records:    records,
		loading:    true,
	}
}

func recordColumns(width int) []btable.Column {
	title := width - 60
	if title < 20 {
		title = 20
	}
	return []btable.Column{
		{Title: "Title", Width: title},
		{Title: "Authors", Width: 20},
		{Title: "Journal", Width: 16},
		{Title: "Year", Width: 4},
		{Title: "Abs words", Width: 9},
	}
}

func (m App) Init() tea.Cmd {
	return m.loadTable()
}

func (m App) loadTable() tea.Cmd {
	return func() tea.Msg {
		t, err := m.loader.Load(m.path)
		if err != nil {
			return errorMsg(err)
		}
		return tableLoadedMsg(t)
	}
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tableLoadedMsg:
		m.data = (*table.Table)(msg)
		m.loading = false
		m.err = nil
		m.initFilters()
		m.applyFilters()
		return m, nil
	case statusMsg:
		m.status = string(msg)
		return m, nil
	case errorMsg:
		m.err = error(msg)
		m.loading = false
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.records.SetColumns(recordColumns(msg.Width - 4))
		if h := msg.Height - 18; h > 3 {
			m.records.SetHeight(h)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.titleQuery.Focused() {
		switch msg.String() {
		case "enter", "esc":
			m.titleQuery.Blur()
			m.applyFilters()
			return m, nil
		default:
			var cmd tea.Cmd
			m.titleQuery, cmd = m.titleQuery.Update(msg)
			return m, cmd
		}
	}
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.titleQuery.Focus()
		return m, textinput.Blink
	case "[":
		if m.yearLo > m.minYear {
			m.yearLo--
			m.applyFilters()
		}
	case "]":
		if m.yearLo < m.yearHi {
			m.yearLo++
			m.applyFilters()
		}
	case "{":
		if m.yearHi > m.yearLo {
			m.yearHi--
			m.applyFilters()
		}
	case "}":
		if m.yearHi < m.maxYear {
			m.yearHi++
			m.applyFilters()
		}
	case "s":
		if len(m.sources) > 0 {
			m.sourceIdx = (m.sourceIdx + 1) % len(m.sources)
			m.applyFilters()
		}
	case "S":
		if len(m.sources) > 0 {
			m.sourceIdx = (m.sourceIdx - 1 + len(m.sources)) % len(m.sources)
			m.applyFilters()
		}
	case "+":
		if m.topN < maxTopN {
			m.topN++
		}
	case "-":
		if m.topN > minTopN {
			m.topN--
		}
	case "r":
		m.loading = true
		return m, m.loadTable()
	case "w":
		return m, m.exportWordCloud()
	case "e":
		return m, m.exportCSV()
	default:
		var cmd tea.Cmd
		m.records, cmd = m.records.Update(msg)
		return m, cmd
	}
	return m, nil
}

// initFilters derives filter bounds from the loaded table.
func (m *App) initFilters() {
	years := make([]int, 0)
	for _, v := range m.data.Values("year") {
		if y, err := strconv.Atoi(v); err == nil {
			years = append(years, y)
		}
	}
	if len(years) == 0 {
		// keep the UI usable on year-less data
		m.minYear, m.maxYear = 2018, 2023
	} else {
		sort.Ints(years)
		m.minYear, m.maxYear = years[0], years[len(years)-1]
	}
	m.yearLo, m.yearHi = m.minYear, m.maxYear

	distinct := make(map[string]bool)
	for _, v := range m.data.Values("source_x") {
		v = strings.TrimSpace(v)
		if v == "" {
			v = aggregate.Unknown
		}
		distinct[v] = true
	}
	m.sources = []string{allSources}
	names := make([]string, 0, len(distinct))
	for name := range distinct {
		names = append(names, name)
	}
	sort.Strings(names)
	m.sources = append(m.sources, names...)
	m.sourceIdx = 0
}

// applyFilters recomputes the filtered table and the record rows.
func (m *App) applyFilters() {
	yearIdx := m.data.Index("year")
	sourceIdx := m.data.Index("source_x")
	titleIdx := m.data.Index("title")
	query := strings.ToLower(strings.TrimSpace(m.titleQuery.Value()))
	source := m.sources[m.sourceIdx]

	m.filtered = m.data.Filter(func(row []string) bool {
		if yearIdx != -1 && row[yearIdx] != "" {
			y, err := strconv.Atoi(row[yearIdx])
			if err == nil && (y < m.yearLo || y > m.yearHi) {
				return false
			}
		}
		if source != allSources && sourceIdx != -1 {
			v := strings.TrimSpace(row[sourceIdx])
			if v == "" {
				v = aggregate.Unknown
			}
			if v != source {
				return false
			}
		}
		if query != "" && titleIdx != -1 {
			if !strings.Contains(strings.ToLower(row[titleIdx]), query) {
				return false
			}
		}
		return true
	})

	rows := make([]btable.Row, 0, m.filtered.Len())
	authorsIdx := m.filtered.Index("authors")
	journalIdx := m.filtered.Index("journal")
	wcIdx := m.filtered.Index("abstract_word_count")
	for _, row := range m.filtered.Rows {
		rows = append(rows, btable.Row{
			cell(row, titleIdx), cell(row, authorsIdx), cell(row, journalIdx),
			cell(row, yearIdx), cell(row, wcIdx),
		})
	}
	m.records.SetRows(rows)
	m.records.GotoTop()
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func (m App) exportCSV() tea.Cmd {
	filtered := m.filtered
	outdir := m.outdir
	return func() tea.Msg {
		if filtered == nil {
			return statusMsg("nothing to export")
		}
		if err := os.MkdirAll(outdir, 0755); err != nil {
			return statusMsg(fmt.Sprintf("export failed: %v", err))
		}
		path := filepath.Join(outdir, "filtered_metadata.csv")
		if err := filtered.WriteFile(path); err != nil {
			return statusMsg(fmt.Sprintf("export failed: %v", err))
		}
		return statusMsg(fmt.Sprintf("exported %d rows to %s", filtered.Len(), path))
	}
}

func (m App) exportWordCloud() tea.Cmd {
	filtered := m.filtered
	cfg := m.cfg
	outdir := m.outdir
	return func() tea.Msg {
		if filtered == nil || filtered.Len() == 0 {
			return statusMsg("no titles available for a word cloud")
		}
		if err := os.MkdirAll(outdir, 0755); err != nil {
			return statusMsg(fmt.Sprintf("word cloud skipped: %v", err))
		}
		stopwords := aggregate.NewStopwordSet(cfg.StopwordList(aggregate.DefaultStopwordList)...)
		words := aggregate.TitleWords(filtered, stopwords, cfg.TopWords)
		path := filepath.Join(outdir, "wordcloud_titles.png")
		err := render.WordCloud(words, cfg.WordCloud.FontFile, path, cfg.WordCloud.Width, cfg.WordCloud.Height)
		if err != nil {
			return statusMsg(fmt.Sprintf("word cloud skipped: %v", err))
		}
		return statusMsg("saved " + path)
	}
}

func (m App) View() string {
	if m.loading {
		return "\n  loading " + m.path + " ...\n"
	}
	if m.err != nil {
		return fmt.Sprintf("\n  error: %v\n\n  press q to quit\n", m.err)
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("cordex metadata explorer"))
	b.WriteString("\n")
	b.WriteString(m.filterLine())
	b.WriteString("\n\n")

	chartWidth := m.width - 4
	if chartWidth < 40 {
		chartWidth = 40
	}
	byYear := aggregate.ByYear(m.filtered)
	b.WriteString(labelStyle.Render("Publications by year"))
	b.WriteString("\n")
	if len(byYear) > 0 {
		b.WriteString(textBarChart(byYear, chartWidth, 6))
	} else {
		b.WriteString("  no year data available\n")
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Top %d journals", m.topN)))
	b.WriteString("\n")
	journals := aggregate.TopValues(m.filtered, "journal", m.topN)
	if len(journals) > 0 {
		b.WriteString(textBarChart(journals, chartWidth, m.topN))
	} else {
		b.WriteString("  no journal column available\n")
	}
	b.WriteString("\n")
	b.WriteString(m.records.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(activeStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("[/] min year  {/} max year  s source  / title filter  +/- top n  w word cloud  e export csv  q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m App) filterLine() string {
	source := allSources
	if len(m.sources) > 0 {
		source = m.sources[m.sourceIdx]
	}
	query := m.titleQuery.Value()
	parts := []string{
		fmt.Sprintf("years %d-%d", m.yearLo, m.yearHi),
		"source: " + source,
	}
	if m.titleQuery.Focused() {
		parts = append(parts, "title: "+m.titleQuery.View())
	} else if query != "" {
		parts = append(parts, "title: "+query)
	}
	parts = append(parts, fmt.Sprintf("showing %d of %d papers", m.filtered.Len(), m.data.Len()))
	return labelStyle.Render(strings.Join(parts, "  |  "))
}
