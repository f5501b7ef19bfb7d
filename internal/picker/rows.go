package picker

import (
	"os"
	"path/filepath"
	"sort"

	"tidysweep/internal/types"
)

// RowKind discriminates the three line types in the file pane.
type RowKind int

const (
	RowDirHeader RowKind = iota
	RowFile
	RowExpandHint
)

// DisplayRow is one rendered line in a category's file view.
// Only RowFile rows are selectable.
type DisplayRow struct {
	Kind        RowKind
	Dir         string
	Item        *types.CleanableItem
	MemberCount int
	HiddenCount int
	Label       string
}

func (r DisplayRow) Selectable() bool { return r.Kind == RowFile }

type dirGroup struct {
	dir   string
	items []types.CleanableItem
}

// largest assumes items are already sorted by size descending.
func (g dirGroup) largest() int64 {
	if len(g.items) == 0 {
		return 0
	}
	return g.items[0].Size
}

// BuildRows groups a category's items by parent directory and flattens
// them into display rows. Directories are ordered by their largest
// member's size, members by size; each directory shows at most its
// limit (per-directory override or defaultLimit) before an expand-hint
// row summarizing the hidden remainder.
func BuildRows(items []types.CleanableItem, limits map[string]int, defaultLimit int, absolutePaths bool, pathBudget int) []DisplayRow {
	if len(items) == 0 {
		return nil
	}

	byDir := make(map[string]*dirGroup)
	var order []*dirGroup
	for _, item := range items {
		dir := filepath.Dir(item.Path)
		g, ok := byDir[dir]
		if !ok {
			g = &dirGroup{dir: dir}
			byDir[dir] = g
			order = append(order, g)
		}
		g.items = append(g.items, item)
	}

	for _, g := range order {
		members := g.items
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Size > members[j].Size
		})
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].largest() > order[j].largest()
	})

	home, _ := os.UserHomeDir()

	var rows []DisplayRow
	for _, g := range order {
		rows = append(rows, DisplayRow{
			Kind:        RowDirHeader,
			Dir:         g.dir,
			MemberCount: len(g.items),
			Label:       displayDirPath(g.dir, home, absolutePaths, pathBudget),
		})

		limit := defaultLimit
		if l, ok := limits[g.dir]; ok {
			limit = l
		}
		shown := len(g.items)
		if limit < shown {
			shown = limit
		}
		for i := 0; i < shown; i++ {
			item := &g.items[i]
			rows = append(rows, DisplayRow{
				Kind:  RowFile,
				Dir:   g.dir,
				Item:  item,
				Label: item.Name,
			})
		}
		if hidden := len(g.items) - shown; hidden > 0 {
			rows = append(rows, DisplayRow{
				Kind:        RowExpandHint,
				Dir:         g.dir,
				HiddenCount: hidden,
			})
		}
	}
	return rows
}

func displayDirPath(dir, home string, absolute bool, budget int) string {
	if absolute {
		return dir
	}
	if home != "" {
		if dir == home {
			dir = "~"
		} else if rel, err := filepath.Rel(home, dir); err == nil && !filepath.IsAbs(rel) && rel != ".." && !isParentRel(rel) {
			dir = "~" + string(filepath.Separator) + rel
		}
	}
	return TruncateDirPath(dir, budget)
}

func isParentRel(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
