package picker

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tidysweep/internal/log"
	"tidysweep/internal/types"
)

const statusTimeout = 3 * time.Second

type statusExpireMsg struct{ seq int }

func parentDir(path string) string {
	return filepath.Dir(path)
}

// setStatus replaces the transient status line and schedules its
// expiry. A newer status invalidates any timer still pending.
func (m *Model) setStatus(s string) tea.Cmd {
	m.statusMsg = s
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusExpireMsg{seq: seq}
	})
}

// handleCategoryKey interprets a keypress while the category pane has
// focus.
func (m *Model) handleCategoryKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.catCaret > 0 {
			m.catCaret--
		}

	case "down", "j":
		if m.catCaret < len(m.results)-1 {
			m.catCaret++
		}

	case " ":
		r := m.currentResult()
		if r == nil {
			return nil
		}
		id := r.Category.ID
		if m.selection.CategorySelected(id) {
			m.selection.DeselectCategory(id)
			if m.supportsFiles(r.Category) {
				m.ui.SetVisible(id, false)
			}
		} else {
			m.selectWholeCategory(r)
		}

	case "a":
		if len(m.results) > 0 && m.allCategoriesSelected() {
			m.selection.Reset()
			m.ui.Reset()
			m.rowCache = make(map[string][]DisplayRow)
			return nil
		}
		for _, r := range m.results {
			m.selectWholeCategory(r)
		}

	case "i":
		for _, r := range m.results {
			id := r.Category.ID
			if m.selection.CategorySelected(id) {
				m.selection.DeselectCategory(id)
				if m.supportsFiles(r.Category) {
					m.ui.SetVisible(id, false)
				}
			} else {
				m.selectWholeCategory(r)
			}
		}

	case "right", "l":
		r := m.currentResult()
		if r == nil || !m.supportsFiles(r.Category) {
			return nil
		}
		rows := m.rows(r.Category.ID)
		if len(rows) == 0 {
			return nil
		}
		id := r.Category.ID
		m.ui.Activate(id)
		caret := clampCaret(rows, m.ui.Get(id).FileCaret)
		m.ui.SetFileCaret(id, caret)
		m.pane = PaneFiles

	case "enter":
		return m.confirm()

	case "q", "esc":
		return tea.Quit
	}
	return nil
}

// handleFileKey interprets a keypress while the file pane has focus.
func (m *Model) handleFileKey(msg tea.KeyMsg) tea.Cmd {
	id, ok := m.ui.ActiveID()
	if !ok {
		m.pane = PaneCategories
		return nil
	}
	if _, ok := m.resultMap[id]; !ok {
		m.pane = PaneCategories
		return nil
	}
	rows := m.rows(id)
	caret := m.ui.Get(id).FileCaret

	switch msg.String() {
	case "up", "k":
		if next := prevSelectable(rows, caret-1); next >= 0 {
			m.ui.SetFileCaret(id, next)
		}

	case "down", "j":
		if next := nextSelectable(rows, caret+1); next >= 0 {
			m.ui.SetFileCaret(id, next)
		}

	case " ":
		if caret >= 0 && caret < len(rows) && rows[caret].Selectable() {
			m.selection.ToggleFile(id, rows[caret].Item.Path)
		}

	case "a":
		paths := m.allPaths(id)
		if m.selection.AllSelected(id, paths) {
			m.selection.ClearFiles(id)
		} else {
			m.selection.SetAllFiles(id, paths)
		}

	case "i":
		m.selection.InvertFiles(id, m.allPaths(id))

	case "d":
		if caret >= 0 && caret < len(rows) && rows[caret].Selectable() {
			m.selection.ToggleDirFiles(id, m.dirPaths(id, rows[caret].Dir))
		}

	case "m":
		if caret >= 0 && caret < len(rows) {
			m.expandDir(id, rows[caret].Dir)
		}

	case "h":
		if caret >= 0 && caret < len(rows) {
			m.collapseDir(id, rows[caret].Dir)
		}

	case "right", "l":
		if caret >= 0 && caret < len(rows) && rows[caret].Kind == RowExpandHint {
			m.expandDir(id, rows[caret].Dir)
		}

	case "left", "backspace", "esc":
		m.ui.Deactivate()
		m.pane = PaneCategories

	case "c":
		if caret < 0 || caret >= len(rows) {
			return nil
		}
		dir := rows[caret].Dir
		if err := m.copier.Copy(dir); err != nil {
			log.Warnf("clipboard copy failed: %v", err)
			return m.setStatus(fmt.Sprintf("copy failed: %v", err))
		}
		return m.setStatus(fmt.Sprintf("copied %s", dir))

	case "enter":
		return m.confirm()
	}
	return nil
}

// selectWholeCategory applies the category-pane select rule: the
// category joins the selection and, when it supports per-file picking,
// all of its items come along and its file view opens.
func (m *Model) selectWholeCategory(r *types.ScanResult) {
	id := r.Category.ID
	if m.supportsFiles(r.Category) {
		m.selection.SelectCategory(id, m.allPaths(id))
		m.ui.SetVisible(id, true)
	} else {
		m.selection.SelectCategory(id, nil)
	}
}

func (m *Model) allCategoriesSelected() bool {
	for _, r := range m.results {
		if !m.selection.CategorySelected(r.Category.ID) {
			return false
		}
	}
	return true
}

// expandDir raises the directory's visibility limit by the configured
// step above its current effective value.
func (m *Model) expandDir(catID, dir string) {
	st := m.ui.Get(catID)
	limits := make(map[string]int, len(st.DirLimits)+1)
	for k, v := range st.DirLimits {
		limits[k] = v
	}
	limits[dir] = m.ui.DirLimit(catID, dir, m.cfg.UI.DefaultDirLimit) + m.cfg.UI.DirLimitStep
	m.ui.SetDirLimits(catID, limits)
	m.invalidateRows(catID)
	m.reclampCaret(catID)
}

// collapseDir resets the directory back to the default limit.
func (m *Model) collapseDir(catID, dir string) {
	st := m.ui.Get(catID)
	if _, ok := st.DirLimits[dir]; !ok {
		return
	}
	limits := make(map[string]int, len(st.DirLimits))
	for k, v := range st.DirLimits {
		if k != dir {
			limits[k] = v
		}
	}
	m.ui.SetDirLimits(catID, limits)
	m.invalidateRows(catID)
	m.reclampCaret(catID)
}

// reclampCaret re-derives the caret to the nearest selectable row after
// the row set changed, covering collapses that hide the caret row.
func (m *Model) reclampCaret(catID string) {
	rows := m.rows(catID)
	m.ui.SetFileCaret(catID, clampCaret(rows, m.ui.Get(catID).FileCaret))
}

func (m *Model) confirm() tea.Cmd {
	if m.selection.CategoryCount() == 0 {
		return m.setStatus("nothing selected")
	}
	m.confirmed = true
	if m.cleanFn == nil {
		return tea.Quit
	}
	m.state = "cleaning"
	m.cleanChan = make(chan types.CleanProgressMsg, 100)
	return tea.Batch(m.spinner.Tick, m.startClean(), m.listenClean())
}

// clampCaret returns the nearest selectable row index to caret,
// preferring rows at or after it. Falls back to 0 when the sequence
// has no selectable rows at all.
func clampCaret(rows []DisplayRow, caret int) int {
	if len(rows) == 0 {
		return 0
	}
	if caret < 0 {
		caret = 0
	}
	if caret >= len(rows) {
		caret = len(rows) - 1
	}
	if rows[caret].Selectable() {
		return caret
	}
	if next := nextSelectable(rows, caret); next >= 0 {
		return next
	}
	if prev := prevSelectable(rows, caret); prev >= 0 {
		return prev
	}
	return 0
}

// nextSelectable finds the first selectable row at or after from, or -1.
func nextSelectable(rows []DisplayRow, from int) int {
	for i := from; i < len(rows); i++ {
		if i >= 0 && rows[i].Selectable() {
			return i
		}
	}
	return -1
}

// prevSelectable finds the last selectable row at or before from, or -1.
func prevSelectable(rows []DisplayRow, from int) int {
	if from >= len(rows) {
		from = len(rows) - 1
	}
	for i := from; i >= 0; i-- {
		if rows[i].Selectable() {
			return i
		}
	}
	return -1
}
