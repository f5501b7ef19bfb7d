package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tidysweep/internal/types"
	"tidysweep/internal/utils"
)

func (m *Model) View() string {
	var s strings.Builder

	header := titleStyle.Render("🧹 tidysweep")
	s.WriteString("\n")
	s.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, header))
	s.WriteString("\n\n")

	var content string
	switch m.state {
	case "scanning":
		content = m.renderScanning()
	case "picking":
		content = m.renderPicker()
	case "cleaning":
		content = m.renderCleaning()
	case "report":
		content = m.renderReport()
	}
	s.WriteString(lipgloss.NewStyle().Padding(0, 2).Render(content))

	if m.err != nil {
		s.WriteString("\n\n")
		s.WriteString(lipgloss.NewStyle().Padding(0, 2).Render(
			errorStyle.Render(fmt.Sprintf("Error: %v", m.err))))
	}

	s.WriteString("\n")
	return s.String()
}

func (m *Model) renderScanning() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Scanning..."))
	s.WriteString("\n\n")
	if m.scanFound > 0 {
		s.WriteString("  " + successStyle.Render(fmt.Sprintf("found %d items | %s",
			m.scanFound, utils.FormatSize(m.scanSize))))
		s.WriteString("\n\n")
	}
	s.WriteString("  " + m.spinner.View() + " looking for cleanable files")
	s.WriteString("\n\n")
	for _, path := range m.scanningPaths {
		s.WriteString("   " + dimStyle.Render(TruncateDirPath(path, 70)) + "\n")
	}
	return s.String()
}

// pickerLine pairs a rendered line with whether the caret sits on it,
// so the window can recenter around the focused row.
type pickerLine struct {
	text  string
	caret bool
}

func (m *Model) renderPicker() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Select what to clean"))
	s.WriteString("  " + dimStyle.Render(fmt.Sprintf("(%s scanned)", utils.FormatSize(m.totalSize))))
	s.WriteString("\n\n")

	lines := m.pickerLines()
	caretLine := 0
	for i, l := range lines {
		if l.caret {
			caretLine = i
			break
		}
	}

	height := m.height - 10
	if height < 5 {
		height = 5
	}
	start, end := VisibleWindow(caretLine, len(lines), height)
	if start > 0 {
		s.WriteString("  " + dimStyle.Render("↑ more") + "\n")
	}
	for _, l := range lines[start:end] {
		s.WriteString(l.text + "\n")
	}
	if end < len(lines) {
		s.WriteString("  " + dimStyle.Render("↓ more") + "\n")
	}

	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m *Model) pickerLines() []pickerLine {
	var lines []pickerLine
	activeID, hasActive := m.ui.ActiveID()

	for i, r := range m.results {
		caretHere := m.pane == PaneCategories && m.catCaret == i
		lines = append(lines, pickerLine{text: m.categoryLine(r, caretHere), caret: caretHere})

		if !m.ui.Get(r.Category.ID).Visible || !m.supportsFiles(r.Category) {
			continue
		}
		fileCaret := m.ui.Get(r.Category.ID).FileCaret
		focused := m.pane == PaneFiles && hasActive && activeID == r.Category.ID
		for j, row := range m.rows(r.Category.ID) {
			rowCaret := focused && fileCaret == j
			lines = append(lines, pickerLine{text: m.fileLine(r.Category.ID, row, rowCaret), caret: rowCaret})
		}
	}
	return lines
}

func (m *Model) categoryLine(r *types.ScanResult, caret bool) string {
	id := r.Category.ID

	box := "[ ]"
	if m.selection.CategorySelected(id) {
		box = "[x]"
		if m.supportsFiles(r.Category) &&
			m.selection.SelectedFileCount(id) < len(r.Items) {
			box = "[~]"
		}
	}

	badge := safetyStyles[string(r.Category.Safety)].Render(string(r.Category.Safety))
	line := fmt.Sprintf("%s %-28s %-8s %4d  %10s",
		box,
		TruncateFileName(r.Category.Name, 28),
		badge,
		len(r.Items),
		utils.FormatSize(r.TotalSize),
	)

	prefix := "  "
	if caret {
		prefix = "▸ "
		return "  " + prefix + caretStyle.Render(line)
	}
	return "  " + prefix + line
}

func (m *Model) fileLine(catID string, row DisplayRow, caret bool) string {
	var line string
	switch row.Kind {
	case RowDirHeader:
		line = dimStyle.Render(fmt.Sprintf("%s (%d)", row.Label, row.MemberCount))
	case RowExpandHint:
		line = dimStyle.Render(fmt.Sprintf("… %d more (m to expand)", row.HiddenCount))
	case RowFile:
		box := "[ ]"
		if m.selection.FileSelected(catID, row.Item.Path) {
			box = "[x]"
		}
		line = fmt.Sprintf("%s %-*s %10s",
			box,
			m.cfg.UI.NameBudget,
			TruncateFileName(row.Item.Name, m.cfg.UI.NameBudget),
			utils.FormatSize(row.Item.Size),
		)
	}

	prefix := "  "
	if caret {
		prefix = "▸ "
		return "      " + prefix + caretStyle.Render(line)
	}
	return "      " + prefix + line
}

func (m *Model) renderFooter() string {
	var s strings.Builder

	if count := m.selection.CategoryCount(); count > 0 {
		s.WriteString("  " + successStyle.Render(fmt.Sprintf("%d categories selected, %s to free",
			count, utils.FormatSize(m.selectedSize()))))
		s.WriteString("\n")
	}
	if m.statusMsg != "" {
		s.WriteString("  " + warningStyle.Render(m.statusMsg))
		s.WriteString("\n")
	}

	var help string
	if m.pane == PaneFiles {
		help = "↑/↓ move • space toggle • a all • i invert • d dir • m expand • h collapse • c copy path • ←/esc back • enter clean"
	} else {
		help = "↑/↓ move • space toggle • a all • i invert • → files • enter clean • q quit"
	}
	s.WriteString(dimStyle.Render("  " + help))
	return s.String()
}

// selectedSize sums what the current selection would free.
func (m *Model) selectedSize() int64 {
	var total int64
	for _, r := range m.results {
		id := r.Category.ID
		if !m.selection.CategorySelected(id) {
			continue
		}
		if m.supportsFiles(r.Category) {
			for _, item := range r.Items {
				if m.selection.FileSelected(id, item.Path) {
					total += item.Size
				}
			}
		} else {
			total += r.TotalSize
		}
	}
	return total
}

func (m *Model) renderCleaning() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Cleaning..."))
	s.WriteString("\n\n")
	s.WriteString("  " + m.spinner.View() + " removing selected items")
	if m.cleanCurrent != "" {
		s.WriteString("\n   " + dimStyle.Render(TruncateDirPath(m.cleanCurrent, 70)))
	}
	s.WriteString("\n\n")
	if m.cleanTotal > 0 {
		s.WriteString(m.progress.ViewAs(float64(m.cleanDone) / float64(m.cleanTotal)))
	}
	return s.String()
}

func (m *Model) renderReport() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Done"))
	s.WriteString("\n\n")
	for _, res := range m.report.Results {
		line := fmt.Sprintf("  %-28s %4d items  %10s",
			res.Category.Name, res.CleanedItems, utils.FormatSize(res.FreedSpace))
		if len(res.Errors) > 0 {
			line += "  " + errorStyle.Render(fmt.Sprintf("(%d failed)", len(res.Errors)))
		}
		s.WriteString(line + "\n")
	}
	s.WriteString("\n")
	s.WriteString("  " + successStyle.Render(fmt.Sprintf("freed %s", utils.FormatSize(m.report.FreedSpace))))
	s.WriteString("\n\n")
	s.WriteString(dimStyle.Render("  press any key to exit"))
	return s.String()
}
