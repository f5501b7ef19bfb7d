package cleaner

import (
	"fmt"
	"os"
	"time"

	"tidysweep/internal/log"
	"tidysweep/internal/picker"
	"tidysweep/internal/types"
)

// Clean removes what the picker confirmed. Categories supporting
// per-file selection clean exactly the picked paths; all-or-nothing
// categories clean every scanned item. A single failure never aborts
// the run; it is recorded per category instead.
func Clean(results []*types.ScanResult, req picker.CleanRequest) types.Report {
	start := time.Now()

	byID := make(map[string]*types.ScanResult, len(results))
	for _, r := range results {
		byID[r.Category.ID] = r
	}

	var report types.Report
	total := 0
	for _, id := range req.Categories {
		if r, ok := byID[id]; ok {
			total += len(targets(r, req))
		}
	}

	done := 0
	for _, id := range req.Categories {
		r, ok := byID[id]
		if !ok {
			continue
		}
		res := types.CleanResult{Category: r.Category}
		for _, item := range targets(r, req) {
			done++
			if req.Progress != nil {
				select {
				case req.Progress <- types.CleanProgressMsg{Completed: done, Total: total, Current: item.Path}:
				default:
				}
			}
			if req.DryRun {
				res.CleanedItems++
				res.FreedSpace += item.Size
				continue
			}
			if err := os.RemoveAll(item.Path); err != nil {
				log.Warnf("remove %s: %v", item.Path, err)
				res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", item.Path, err))
				report.FailedItems++
				continue
			}
			res.CleanedItems++
			res.FreedSpace += item.Size
		}
		report.Results = append(report.Results, res)
		report.CleanedItems += res.CleanedItems
		report.FreedSpace += res.FreedSpace
	}

	report.Duration = time.Since(start)
	return report
}

// targets resolves which of the category's items the request covers.
func targets(r *types.ScanResult, req picker.CleanRequest) []types.CleanableItem {
	supportsFiles := r.Category.SupportsFiles || req.AllFiles
	if !supportsFiles {
		return r.Items
	}
	picked := make(map[string]bool)
	for _, p := range req.Files[r.Category.ID] {
		picked[p] = true
	}
	var items []types.CleanableItem
	for _, item := range r.Items {
		if picked[item.Path] {
			items = append(items, item)
		}
	}
	return items
}
