package picker

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tidysweep/internal/clipboard"
	"tidysweep/internal/config"
	"tidysweep/internal/scanner"
	"tidysweep/internal/types"
)

// Pane identifies which pane currently owns keyboard focus.
type Pane int

const (
	PaneCategories Pane = iota
	PaneFiles
)

// Model drives the whole interactive session: scan, pick, clean, report.
type Model struct {
	cfg     *config.Config
	scanner *scanner.Scanner
	cleanFn CleanFunc
	copier  clipboard.Copier

	state    string // "scanning", "picking", "cleaning", "report"
	spinner  spinner.Model
	progress progress.Model

	results   []*types.ScanResult
	resultMap map[string]*types.ScanResult
	totalSize int64

	pane     Pane
	catCaret int

	ui        *UIStateStore
	selection *Selection
	rowCache  map[string][]DisplayRow

	statusMsg string
	statusSeq int

	confirmed bool
	report    types.Report
	err       error

	width  int
	height int

	scanChan      chan types.ScanProgressMsg
	cleanChan     chan types.CleanProgressMsg
	scanningPaths []string
	scanFound     int
	scanSize      int64
	cleanDone     int
	cleanTotal    int
	cleanCurrent  string
}

// CleanFunc executes the confirmed selection and reports what was freed.
// Injected so tests can run the picker without deleting anything.
type CleanFunc func(results []*types.ScanResult, req CleanRequest) types.Report

// CleanRequest is the picker's output: the confirmed categories and,
// for categories supporting per-file selection, the exact paths picked.
type CleanRequest struct {
	Categories []string
	Files      map[string][]string
	AllFiles   bool
	DryRun     bool
	Progress   chan<- types.CleanProgressMsg
}

// New builds a session model that starts in the scanning state.
func New(cfg *config.Config, sc *scanner.Scanner, clean CleanFunc) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &Model{
		cfg:       cfg,
		scanner:   sc,
		cleanFn:   clean,
		copier:    clipboard.System{},
		state:     "scanning",
		spinner:   s,
		progress:  progress.New(progress.WithDefaultGradient()),
		resultMap: make(map[string]*types.ScanResult),
		ui:        NewUIStateStore(),
		selection: NewSelection(),
		rowCache:  make(map[string][]DisplayRow),
		scanChan:  make(chan types.ScanProgressMsg, 100),
		width:     80,
		height:    24,
	}
}

// SetCopier swaps the clipboard implementation, used by tests.
func (m *Model) SetCopier(c clipboard.Copier) { m.copier = c }

// SetResults seeds scan results directly and jumps to the picking
// state, bypassing the scanners.
func (m *Model) SetResults(results []*types.ScanResult) {
	m.results = results
	m.resultMap = make(map[string]*types.ScanResult, len(results))
	m.totalSize = 0
	for _, r := range results {
		m.resultMap[r.Category.ID] = r
		m.totalSize += r.TotalSize
	}
	m.rowCache = make(map[string][]DisplayRow)
	m.state = "picking"
}

func (m *Model) Init() tea.Cmd {
	if m.state != "scanning" {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.startScan(), m.listenScan())
}

// Confirmed reports whether the session ended with enter rather than a
// cancel; Report is only meaningful when it did.
func (m *Model) Confirmed() bool { return m.confirmed }

func (m *Model) Report() types.Report { return m.report }

func (m *Model) Selection() *Selection { return m.selection }

func (m *Model) Err() error { return m.err }

// Request snapshots the current selection in the cleaner's input shape.
func (m *Model) Request() CleanRequest {
	req := CleanRequest{
		Categories: m.selection.SelectedCategories(),
		Files:      make(map[string][]string),
		AllFiles:   m.cfg.AllFiles,
		DryRun:     m.cfg.DryRun,
	}
	for _, id := range req.Categories {
		if r, ok := m.resultMap[id]; ok && m.supportsFiles(r.Category) {
			req.Files[id] = m.selection.FilesFor(id)
		}
	}
	return req
}

func (m *Model) supportsFiles(cat types.Category) bool {
	return cat.SupportsFiles || m.cfg.AllFiles
}

// rows returns the category's display rows, memoized until the
// category's expand limits change.
func (m *Model) rows(catID string) []DisplayRow {
	if rs, ok := m.rowCache[catID]; ok {
		return rs
	}
	r, ok := m.resultMap[catID]
	if !ok {
		return nil
	}
	st := m.ui.Get(catID)
	rs := BuildRows(r.Items, st.DirLimits, m.cfg.UI.DefaultDirLimit, m.cfg.UI.AbsolutePaths, m.cfg.UI.PathBudget)
	m.rowCache[catID] = rs
	return rs
}

func (m *Model) invalidateRows(catID string) {
	delete(m.rowCache, catID)
}

func (m *Model) currentResult() *types.ScanResult {
	if m.catCaret < 0 || m.catCaret >= len(m.results) {
		return nil
	}
	return m.results[m.catCaret]
}

func (m *Model) allPaths(catID string) []string {
	r, ok := m.resultMap[catID]
	if !ok {
		return nil
	}
	paths := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		paths = append(paths, item.Path)
	}
	return paths
}

func (m *Model) dirPaths(catID, dir string) []string {
	r, ok := m.resultMap[catID]
	if !ok {
		return nil
	}
	var paths []string
	for _, item := range r.Items {
		if parentDir(item.Path) == dir {
			paths = append(paths, item.Path)
		}
	}
	return paths
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case types.ScanProgressMsg:
		m.scanningPaths = append(m.scanningPaths, msg.Path)
		if len(m.scanningPaths) > 8 {
			m.scanningPaths = m.scanningPaths[len(m.scanningPaths)-8:]
		}
		m.scanFound += msg.Found
		m.scanSize += msg.Size
		return m, m.listenScan()

	case types.ScanCompleteMsg:
		m.SetResults(msg.Results)
		return m, nil

	case types.CleanProgressMsg:
		m.cleanDone = msg.Completed
		m.cleanTotal = msg.Total
		m.cleanCurrent = msg.Current
		return m, m.listenClean()

	case types.CleanCompleteMsg:
		m.report = msg.Report
		m.state = "report"
		return m, nil

	case statusExpireMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
		}
		return m, nil

	case types.ErrMsg:
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case "picking":
		if m.pane == PaneFiles {
			return m, m.handleFileKey(msg)
		}
		return m, m.handleCategoryKey(msg)
	case "report":
		return m, tea.Quit
	case "scanning", "cleaning":
		// No interaction while work is in flight.
	}
	return m, nil
}
