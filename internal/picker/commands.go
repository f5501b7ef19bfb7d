package picker

import (
	tea "github.com/charmbracelet/bubbletea"

	"tidysweep/internal/log"
	"tidysweep/internal/types"
)

func (m *Model) startScan() tea.Cmd {
	sc := m.scanner
	ch := m.scanChan
	return func() tea.Msg {
		results := sc.ScanAll(ch)
		var total int64
		for _, r := range results {
			total += r.TotalSize
		}
		log.Infof("scan finished: %d categories, %d bytes", len(results), total)
		return types.ScanCompleteMsg{Results: results, TotalSize: total}
	}
}

func (m *Model) listenScan() tea.Cmd {
	ch := m.scanChan
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) startClean() tea.Cmd {
	req := m.Request()
	req.Progress = m.cleanChan
	results := m.results
	cleanFn := m.cleanFn
	ch := m.cleanChan
	return func() tea.Msg {
		report := cleanFn(results, req)
		close(ch)
		log.Infof("clean finished: freed %d bytes, %d items", report.FreedSpace, report.CleanedItems)
		return types.CleanCompleteMsg{Report: report}
	}
}

func (m *Model) listenClean() tea.Cmd {
	ch := m.cleanChan
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
