package picker

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidysweep/internal/config"
	"tidysweep/internal/types"
)

// Test fixtures

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func testModel(results ...*types.ScanResult) *Model {
	m := New(config.Default(), nil, nil)
	m.SetResults(results)
	return m
}

func trashResult() *types.ScanResult {
	return &types.ScanResult{
		Category: types.Category{ID: "trash", Name: "Trash", Safety: types.SafetySafe},
		Items: []types.CleanableItem{
			{Path: "/home/user/.Trash/one", Name: "one", Size: 100},
		},
		TotalSize: 100,
	}
}

func largeFilesResult(n int) *types.ScanResult {
	r := &types.ScanResult{
		Category: types.Category{ID: "large-files", Name: "Large Files", Safety: types.SafetyRisky, SupportsFiles: true},
	}
	for i := 0; i < n; i++ {
		item := types.CleanableItem{
			Path: fmt.Sprintf("/data/big/file%02d", i),
			Name: fmt.Sprintf("file%02d", i),
			Size: int64(1000 - i),
		}
		r.Items = append(r.Items, item)
		r.TotalSize += item.Size
	}
	return r
}

func twoDirResult() *types.ScanResult {
	items := []types.CleanableItem{
		{Path: "/data/dir1/a", Name: "a", Size: 40},
		{Path: "/data/dir1/b", Name: "b", Size: 30},
		{Path: "/data/dir2/c", Name: "c", Size: 20},
		{Path: "/data/dir2/d", Name: "d", Size: 10},
	}
	r := &types.ScanResult{
		Category: types.Category{ID: "large-files", Name: "Large Files", Safety: types.SafetyRisky, SupportsFiles: true},
		Items:    items,
	}
	for _, it := range items {
		r.TotalSize += it.Size
	}
	return r
}

type fakeCopier struct {
	copied []string
	err    error
}

func (f *fakeCopier) Copy(text string) error {
	if f.err != nil {
		return f.err
	}
	f.copied = append(f.copied, text)
	return nil
}

// Category pane

func TestCategoryCaret_Bounds(t *testing.T) {
	m := testModel(trashResult(), largeFilesResult(3))

	m.handleCategoryKey(keyUp)
	assert.Equal(t, 0, m.catCaret, "caret must not go above the first category")

	m.handleCategoryKey(keyDown)
	assert.Equal(t, 1, m.catCaret)

	m.handleCategoryKey(keyDown)
	assert.Equal(t, 1, m.catCaret, "caret must not pass the last category")
}

func TestToggleWholeCategory_NoFileSupport(t *testing.T) {
	m := testModel(trashResult())

	m.handleCategoryKey(keySpace)

	assert.True(t, m.selection.CategorySelected("trash"))
	assert.Nil(t, m.selection.FilesFor("trash"), "all-or-nothing categories carry no file set")

	req := m.Request()
	assert.Equal(t, []string{"trash"}, req.Categories)
	_, hasEntry := req.Files["trash"]
	assert.False(t, hasEntry)
}

func TestToggleCategory_FileSupportSelectsAllItems(t *testing.T) {
	m := testModel(largeFilesResult(20))

	m.handleCategoryKey(keySpace)

	assert.True(t, m.selection.CategorySelected("large-files"))
	assert.Equal(t, 20, m.selection.SelectedFileCount("large-files"))
	assert.True(t, m.ui.Get("large-files").Visible)
}

func TestToggleCategory_DeselectClearsFilesAndHides(t *testing.T) {
	m := testModel(largeFilesResult(20))
	m.handleCategoryKey(keySpace)

	m.handleCategoryKey(keySpace)

	assert.False(t, m.selection.CategorySelected("large-files"))
	assert.Equal(t, 0, m.selection.SelectedFileCount("large-files"))
	assert.False(t, m.ui.Get("large-files").Visible)
}

func TestSelectAllCategories(t *testing.T) {
	m := testModel(trashResult(), largeFilesResult(20))

	m.handleCategoryKey(key('a'))

	assert.True(t, m.selection.CategorySelected("trash"))
	assert.True(t, m.selection.CategorySelected("large-files"))
	assert.Equal(t, 20, m.selection.SelectedFileCount("large-files"))
}

func TestSelectAllTwice_FullReset(t *testing.T) {
	m := testModel(trashResult(), largeFilesResult(20))

	m.handleCategoryKey(key('a'))
	m.handleCategoryKey(key('a'))

	assert.Equal(t, 0, m.selection.CategoryCount())
	assert.Equal(t, 0, m.selection.SelectedFileCount("large-files"))
	assert.False(t, m.ui.Get("large-files").Visible, "second select-all resets UI state too")
}

func TestInvertCategories(t *testing.T) {
	m := testModel(trashResult(), largeFilesResult(5))
	m.handleCategoryKey(keySpace) // select trash (caret 0)

	m.handleCategoryKey(key('i'))

	assert.False(t, m.selection.CategorySelected("trash"))
	assert.True(t, m.selection.CategorySelected("large-files"))
	assert.Equal(t, 5, m.selection.SelectedFileCount("large-files"))
	assert.True(t, m.ui.Get("large-files").Visible)
}

func TestEnterFilePane_RequiresFileSupport(t *testing.T) {
	m := testModel(trashResult())

	m.handleCategoryKey(keyRight)

	assert.Equal(t, PaneCategories, m.pane)
}

func TestEnterFilePane_LandsOnFirstSelectableRow(t *testing.T) {
	m := testModel(twoDirResult())

	m.handleCategoryKey(keyRight)

	assert.Equal(t, PaneFiles, m.pane)
	id, ok := m.ui.ActiveID()
	require.True(t, ok)
	assert.Equal(t, "large-files", id)
	assert.Equal(t, 1, m.ui.Get(id).FileCaret, "row 0 is a directory header")
}

// File pane

func enterFiles(t *testing.T, m *Model) string {
	t.Helper()
	m.handleCategoryKey(keyRight)
	require.Equal(t, PaneFiles, m.pane)
	id, ok := m.ui.ActiveID()
	require.True(t, ok)
	return id
}

func TestFileCaret_SkipsNonSelectableRows(t *testing.T) {
	m := testModel(twoDirResult())
	id := enterFiles(t, m)

	m.handleFileKey(keyDown)
	assert.Equal(t, 2, m.ui.Get(id).FileCaret)

	m.handleFileKey(keyDown)
	assert.Equal(t, 4, m.ui.Get(id).FileCaret, "the second directory header is skipped")

	m.handleFileKey(keyDown)
	assert.Equal(t, 5, m.ui.Get(id).FileCaret)

	m.handleFileKey(keyDown)
	assert.Equal(t, 5, m.ui.Get(id).FileCaret, "no wraparound at the bottom")

	for i := 0; i < 4; i++ {
		m.handleFileKey(keyUp)
	}
	assert.Equal(t, 1, m.ui.Get(id).FileCaret, "no wraparound at the top")
}

func TestToggleSingleFile_AutoAddsAndRemovesCategory(t *testing.T) {
	m := testModel(twoDirResult())
	id := enterFiles(t, m)

	m.handleFileKey(keySpace)
	assert.True(t, m.selection.FileSelected(id, "/data/dir1/a"))
	assert.True(t, m.selection.CategorySelected(id), "first file selects the category")

	m.handleFileKey(keySpace)
	assert.False(t, m.selection.FileSelected(id, "/data/dir1/a"))
	assert.False(t, m.selection.CategorySelected(id), "last file removed deselects the category")
}

func TestSelectAllFiles_CoversHiddenRows(t *testing.T) {
	m := testModel(largeFilesResult(20))
	id := enterFiles(t, m)

	m.handleFileKey(key('a'))

	assert.Equal(t, 20, m.selection.SelectedFileCount(id),
		"select-all covers items beyond the pagination limit")
	assert.True(t, m.selection.CategorySelected(id))
}

func TestSelectAllFiles_RoundTrip(t *testing.T) {
	m := testModel(largeFilesResult(20))
	id := enterFiles(t, m)

	m.handleFileKey(key('a'))
	m.handleFileKey(key('a'))

	assert.Equal(t, 0, m.selection.SelectedFileCount(id))
	assert.False(t, m.selection.CategorySelected(id))
}

func TestInvertFilesInCategory(t *testing.T) {
	m := testModel(twoDirResult())
	id := enterFiles(t, m)
	m.handleFileKey(keySpace) // select dir1/a

	m.handleFileKey(key('i'))

	assert.False(t, m.selection.FileSelected(id, "/data/dir1/a"))
	assert.True(t, m.selection.FileSelected(id, "/data/dir1/b"))
	assert.True(t, m.selection.FileSelected(id, "/data/dir2/c"))
	assert.True(t, m.selection.FileSelected(id, "/data/dir2/d"))
}

func TestToggleDirectory_SelectsOnlyThatDir(t *testing.T) {
	m := testModel(twoDirResult())
	id := enterFiles(t, m)

	m.handleFileKey(key('d'))

	assert.True(t, m.selection.FileSelected(id, "/data/dir1/a"))
	assert.True(t, m.selection.FileSelected(id, "/data/dir1/b"))
	assert.False(t, m.selection.FileSelected(id, "/data/dir2/c"))
	assert.False(t, m.selection.FileSelected(id, "/data/dir2/d"))
	assert.Equal(t, 0, m.selection.CategoryCount(),
		"directory toggle never changes category membership")
}

func TestToggleDirectory_DeselectKeepsCategory(t *testing.T) {
	m := testModel(twoDirResult())
	id := enterFiles(t, m)
	m.handleFileKey(key('a')) // select everything, category joins

	m.handleFileKey(key('d')) // caret in dir1: deselect its two files
	m.handleFileKey(keyDown)
	m.handleFileKey(keyDown) // caret now in dir2
	m.handleFileKey(key('d'))

	assert.Equal(t, 0, m.selection.SelectedFileCount(id))
	assert.True(t, m.selection.CategorySelected(id),
		"emptying the file set via directory toggles must not drop the category")
}

func TestExpandDirectory(t *testing.T) {
	m := testModel(largeFilesResult(8))
	id := enterFiles(t, m)
	require.Len(t, m.rows(id), 7, "header + 5 files + hint")

	m.handleFileKey(key('m'))

	assert.Len(t, m.rows(id), 9, "limit raised to 15 shows all 8 files")
	assert.Equal(t, 15, m.ui.Get(id).DirLimits["/data/big"])
}

func TestCollapseDirectory_ResetsLimitAndReclampsCaret(t *testing.T) {
	m := testModel(largeFilesResult(8))
	id := enterFiles(t, m)
	m.handleFileKey(key('m'))
	for i := 0; i < 10; i++ {
		m.handleFileKey(keyDown)
	}
	require.Equal(t, 8, m.ui.Get(id).FileCaret, "caret on the last of 8 files")

	m.handleFileKey(key('h'))

	rows := m.rows(id)
	assert.Len(t, rows, 7)
	caret := m.ui.Get(id).FileCaret
	assert.True(t, rows[caret].Selectable(), "caret re-derived to a visible selectable row")
	assert.Equal(t, 5, caret)
}

func TestRightOnExpandHint_Expands(t *testing.T) {
	m := testModel(largeFilesResult(8))
	id := enterFiles(t, m)
	m.ui.SetFileCaret(id, 6) // the expand-hint row

	m.handleFileKey(keyRight)

	assert.Len(t, m.rows(id), 9)
}

func TestLeavingFilePane_RestoresStateOnReturn(t *testing.T) {
	m := testModel(largeFilesResult(8), twoDirResult2())
	id := enterFiles(t, m)
	m.handleFileKey(keyDown)
	m.handleFileKey(keyDown)
	m.handleFileKey(key('m'))
	caret := m.ui.Get(id).FileCaret
	limits := m.ui.Get(id).DirLimits

	m.handleFileKey(keyLeft)
	assert.Equal(t, PaneCategories, m.pane)
	_, active := m.ui.ActiveID()
	assert.False(t, active)

	// Visit the other category's file view.
	m.handleCategoryKey(keyDown)
	other := enterFiles(t, m)
	assert.NotEqual(t, id, other)
	m.handleFileKey(keyLeft)

	// Return to the first one: caret and limits are exactly as left.
	m.handleCategoryKey(keyUp)
	again := enterFiles(t, m)
	assert.Equal(t, id, again)
	assert.Equal(t, caret, m.ui.Get(id).FileCaret)
	assert.Equal(t, limits, m.ui.Get(id).DirLimits)
}

// Clipboard and status line

func TestCopyPath_SetsStatusAndCopiesDir(t *testing.T) {
	m := testModel(twoDirResult())
	fake := &fakeCopier{}
	m.SetCopier(fake)
	enterFiles(t, m)

	cmd := m.handleFileKey(key('c'))

	require.NotNil(t, cmd)
	assert.Equal(t, []string{"/data/dir1"}, fake.copied)
	assert.Contains(t, m.statusMsg, "copied")
}

func TestCopyPath_FailureOnlySetsStatus(t *testing.T) {
	m := testModel(twoDirResult())
	m.SetCopier(&fakeCopier{err: errors.New("no clipboard")})
	id := enterFiles(t, m)

	m.handleFileKey(key('c'))

	assert.Contains(t, m.statusMsg, "copy failed")
	assert.Equal(t, 0, m.selection.SelectedFileCount(id), "copy never mutates selection")
}

func TestStatusExpiry_StaleTimerIgnored(t *testing.T) {
	m := testModel(twoDirResult())
	m.SetCopier(&fakeCopier{})
	enterFiles(t, m)

	m.handleFileKey(key('c'))
	first := m.statusSeq
	m.handleFileKey(key('c'))

	m.Update(statusExpireMsg{seq: first})
	assert.NotEmpty(t, m.statusMsg, "a replaced status must not be cleared by the stale timer")

	m.Update(statusExpireMsg{seq: m.statusSeq})
	assert.Empty(t, m.statusMsg)
}

// Confirm / cancel

func TestConfirm_NothingSelected(t *testing.T) {
	m := testModel(twoDirResult())

	m.handleCategoryKey(keyEnter)

	assert.False(t, m.Confirmed())
	assert.Equal(t, "picking", m.state)
	assert.Contains(t, m.statusMsg, "nothing selected")
}

func TestConfirm_ReturnsSelectionVerbatim(t *testing.T) {
	m := testModel(trashResult(), twoDirResult())
	m.handleCategoryKey(keySpace) // trash
	m.handleCategoryKey(keyDown)
	id := enterFiles(t, m)
	m.handleFileKey(keySpace) // dir1/a

	cmd := m.handleFileKey(keyEnter)

	require.NotNil(t, cmd)
	assert.True(t, m.Confirmed())
	req := m.Request()
	assert.Equal(t, []string{id, "trash"}, req.Categories)
	assert.Equal(t, []string{"/data/dir1/a"}, req.Files[id])
	_, hasTrash := req.Files["trash"]
	assert.False(t, hasTrash)
}

func TestCancel_NotConfirmed(t *testing.T) {
	m := testModel(twoDirResult())
	m.handleCategoryKey(keySpace)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	assert.NotNil(t, cmd)
	assert.False(t, m.Confirmed())
}

// twoDirResult2 is a second file-selection category so pane-switching
// tests have somewhere else to go.
func twoDirResult2() *types.ScanResult {
	items := []types.CleanableItem{
		{Path: "/var/cache/app/x", Name: "x", Size: 5},
		{Path: "/var/cache/app/y", Name: "y", Size: 4},
	}
	return &types.ScanResult{
		Category:  types.Category{ID: "user-caches", Name: "User Caches", Safety: types.SafetySafe, SupportsFiles: true},
		Items:     items,
		TotalSize: 9,
	}
}

func TestAllFilesFlag_ForcesFileSelection(t *testing.T) {
	cfg := config.Default()
	cfg.AllFiles = true
	m := New(cfg, nil, nil)
	m.SetResults([]*types.ScanResult{trashResult()})

	m.handleCategoryKey(keySpace)

	assert.Equal(t, 1, m.selection.SelectedFileCount("trash"),
		"all-files mode gives even trash a per-file selection")

	m.handleCategoryKey(keyRight)
	assert.Equal(t, PaneFiles, m.pane)
}
