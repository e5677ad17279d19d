package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/arete-cli/arete/internal/core"
	"github.com/arete-cli/arete/pkg/models"
)

// Dashboard panel indices.
const (
	panelCoverage = iota
	panelMemory
	panelGaps
	panelCount
)

type dashboardModel struct {
	activePanel int
	width       int
	height      int

	// Data.
	freshness []models.FileFreshness
	covered   []models.Primitive
	missing   []models.Primitive
	memory    []models.MemoryResult
	gaps      []models.ContextGap
	usage     *usageSnapshot

	// State.
	loading bool
	err     error
}

type usageSnapshot struct {
	briefings int
	contexts  int
	searches  int
}

// dataLoadedMsg carries loaded data back to the model.
type dataLoadedMsg struct {
	freshness []models.FileFreshness
	covered   []models.Primitive
	missing   []models.Primitive
	memory    []models.MemoryResult
	gaps      []models.ContextGap
	usage     *usageSnapshot
	err       error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	coveredStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	missingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	staleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel() dashboardModel {
	return dashboardModel{
		activePanel: panelCoverage,
		loading:     true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return loadDashboardData
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, loadDashboardData
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.freshness = msg.freshness
		m.covered = msg.covered
		m.missing = msg.missing
		m.memory = msg.memory
		m.gaps = msg.gaps
		m.usage = msg.usage
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" Areté Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading workspace...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	coveragePanel := m.renderCoveragePanel()
	memoryPanel := m.renderMemoryPanel()
	gapsPanel := m.renderGapsPanel()

	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		colWidth := availableWidth / 3
		coveragePanel = m.applyPanelStyle(panelCoverage, coveragePanel, colWidth-4)
		memoryPanel = m.applyPanelStyle(panelMemory, memoryPanel, colWidth-4)
		gapsPanel = m.applyPanelStyle(panelGaps, gapsPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, coveragePanel, memoryPanel, gapsPanel)
	} else {
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		coveragePanel = m.applyPanelStyle(panelCoverage, coveragePanel, panelWidth)
		memoryPanel = m.applyPanelStyle(panelMemory, memoryPanel, panelWidth)
		gapsPanel = m.applyPanelStyle(panelGaps, gapsPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, coveragePanel, memoryPanel, gapsPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderCoveragePanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Primitive Coverage"))
	b.WriteString("\n")

	for _, p := range models.AllPrimitives {
		if containsPrimitive(m.covered, p) {
			b.WriteString(coveredStyle.Render(fmt.Sprintf("  %-10s covered", p)))
		} else {
			b.WriteString(missingStyle.Render(fmt.Sprintf("  %-10s missing", p)))
		}
		b.WriteString("\n")
	}

	stale, placeholders := 0, 0
	for _, f := range m.freshness {
		if f.Stale {
			stale++
		}
		if f.Placeholder {
			placeholders++
		}
	}
	b.WriteString(fmt.Sprintf("\n  %d context files", len(m.freshness)))
	if stale > 0 {
		b.WriteString(staleStyle.Render(fmt.Sprintf(", %d stale", stale)))
	}
	if placeholders > 0 {
		b.WriteString(placeholderStyle.Render(fmt.Sprintf(", %d placeholder", placeholders)))
	}

	if m.usage != nil {
		b.WriteString(fmt.Sprintf("\n\n  7d: %d briefs, %d bundles, %d searches",
			m.usage.briefings, m.usage.contexts, m.usage.searches))
	}

	return b.String()
}

func (m dashboardModel) renderMemoryPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Recent Memory"))
	b.WriteString("\n")

	if len(m.memory) == 0 {
		b.WriteString("  No recent memory entries.")
		return b.String()
	}

	for i, r := range m.memory {
		if i >= 8 {
			break
		}
		line := r.Content
		if idx := strings.IndexByte(line, '\n'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimPrefix(line, "### ")
		if len(line) > 60 {
			line = line[:60]
		}
		b.WriteString(fmt.Sprintf("  [%s] %s\n", r.Type, line))
	}

	return b.String()
}

func (m dashboardModel) renderGapsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Gaps"))
	b.WriteString("\n")

	if len(m.gaps) == 0 {
		b.WriteString(coveredStyle.Render("  No context gaps."))
		return b.String()
	}

	for _, g := range m.gaps {
		b.WriteString(missingStyle.Render(fmt.Sprintf("  [%s]", g.Primitive)))
		b.WriteString(fmt.Sprintf(" %s\n", g.Suggestion))
	}

	b.WriteString(fmt.Sprintf("\n  Total: %d gap(s)", len(m.gaps)))

	return b.String()
}

func containsPrimitive(list []models.Primitive, p models.Primitive) bool {
	for _, item := range list {
		if item == p {
			return true
		}
	}
	return false
}

func loadDashboardData() tea.Msg {
	result := dataLoadedMsg{}

	if Inventory != nil {
		inv, err := Inventory.Inventory()
		if err != nil {
			result.err = fmt.Errorf("scanning workspace: %w", err)
			return result
		}
		result.freshness = inv.Freshness
		result.covered = inv.Covered
		result.missing = inv.Missing
	}

	// A coverage probe against the full primitive set yields the gap list.
	if Assembler != nil {
		bundle, err := Assembler.Assemble(context.Background(), "workspace health", core.AssembleOptions{})
		if err == nil {
			result.gaps = bundle.Gaps
		}
	}

	if Memory != nil {
		if mem, err := Memory.Search("decision learning insight", core.MemorySearchOptions{Limit: 8}); err == nil {
			result.memory = mem.Results
		}
	}

	if MetricsCalc != nil {
		since := time.Now().UTC().AddDate(0, 0, -7)
		if metrics, err := MetricsCalc.Calculate(since); err == nil {
			result.usage = &usageSnapshot{
				briefings: metrics.BriefingsAssembled,
				contexts:  metrics.ContextsAssembled,
				searches:  metrics.MemorySearches,
			}
		}
	}

	return result
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard for workspace health",
	Long: `Launch an interactive terminal dashboard showing primitive coverage,
recent memory entries, and context gaps.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Inventory == nil {
			return fmt.Errorf("engine not initialized")
		}
		p := tea.NewProgram(newDashboardModel(), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
