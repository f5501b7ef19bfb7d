package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"tidysweep/internal/config"
	"tidysweep/internal/log"
	"tidysweep/internal/types"
	"tidysweep/internal/utils"
)

// Scanner discovers cleanable items for each configured category.
type Scanner struct {
	home       string
	cfg        *config.Config
	categories []types.Category
}

func New(cfg *config.Config, categories []types.Category) *Scanner {
	home, _ := os.UserHomeDir()
	return &Scanner{home: home, cfg: cfg, categories: categories}
}

// ScanAll runs every category scan concurrently and returns the
// non-empty results ordered by total size, largest first. Progress
// updates stream over the channel, which is closed when done.
func (s *Scanner) ScanAll(progress chan<- types.ScanProgressMsg) []*types.ScanResult {
	var (
		mu      sync.Mutex
		results []*types.ScanResult
		wg      sync.WaitGroup
	)

	for _, cat := range s.categories {
		wg.Add(1)
		go func(cat types.Category) {
			defer wg.Done()
			result := s.ScanCategory(cat, progress)
			if len(result.Items) == 0 {
				return
			}
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(cat)
	}
	wg.Wait()

	if progress != nil {
		close(progress)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalSize > results[j].TotalSize
	})
	return results
}

// ScanCategory discovers items for a single category from its
// configured paths and name patterns.
func (s *Scanner) ScanCategory(cat types.Category, progress chan<- types.ScanProgressMsg) *types.ScanResult {
	result := types.NewScanResult(cat)

	roots := cat.Paths
	if len(roots) == 0 {
		roots = s.cfg.Scan.Roots
	}

	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		if len(cat.Patterns) > 0 {
			s.scanPatterns(cat, root, result, progress)
		} else {
			s.scanEntries(cat, root, result, progress)
		}
	}

	log.Debugf("scanned %s: %d items, %d bytes", cat.ID, len(result.Items), result.TotalSize)
	return result
}

// scanEntries lists the direct children of root as cleanable items.
func (s *Scanner) scanEntries(cat types.Category, root string, result *types.ScanResult, progress chan<- types.ScanProgressMsg) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return
	}
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}

		size := info.Size()
		if entry.IsDir() {
			size, _ = utils.DirSize(path)
		}
		item := types.CleanableItem{
			Path:       path,
			Name:       entry.Name(),
			Size:       size,
			IsDir:      entry.IsDir(),
			ModifiedAt: info.ModTime(),
		}
		if !s.keep(cat, item) {
			continue
		}
		s.add(result, item, progress)
	}
}

// scanPatterns walks root looking for entries whose base name matches
// one of the category's patterns, without descending into matches.
func (s *Scanner) scanPatterns(cat types.Category, root string, result *types.ScanResult, progress chan<- types.ScanProgressMsg) {
	maxDepth := s.cfg.Scan.MaxDepth
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && utils.ShouldSkipDir(path+string(filepath.Separator)) {
			return filepath.SkipDir
		}
		if maxDepth > 0 && depth(root, path) > maxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !matchesAny(cat.Patterns, d.Name()) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		size := info.Size()
		if d.IsDir() {
			size, _ = utils.DirSize(path)
		}
		item := types.CleanableItem{
			Path:       path,
			Name:       d.Name(),
			Size:       size,
			IsDir:      d.IsDir(),
			ModifiedAt: info.ModTime(),
		}
		if s.keep(cat, item) {
			s.add(result, item, progress)
		}
		if d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	})
}

// keep applies the category's age and size filters.
func (s *Scanner) keep(cat types.Category, item types.CleanableItem) bool {
	if item.Size <= 0 {
		return false
	}
	if cat.MinSize > 0 && item.Size < cat.MinSize {
		return false
	}
	if cat.MaxAgeDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -cat.MaxAgeDays)
		if item.ModifiedAt.After(cutoff) {
			return false
		}
	}
	return true
}

func (s *Scanner) add(result *types.ScanResult, item types.CleanableItem, progress chan<- types.ScanProgressMsg) {
	result.Items = append(result.Items, item)
	result.TotalSize += item.Size
	if progress != nil {
		select {
		case progress <- types.ScanProgressMsg{
			Category: result.Category.ID,
			Path:     item.Path,
			Found:    1,
			Size:     item.Size,
		}:
		default:
		}
	}
}

func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
