package picker

import "sort"

// Selection couples the set of selected categories with the per-category
// selected file paths. All mutation goes through this type so the
// coupling rules stay in one place:
//
//   - a non-empty file set implies the category is selected
//   - an emptied file set removes the category
//   - deselecting a category clears its file set
//   - directory-scoped toggles never change category membership
type Selection struct {
	categories map[string]bool
	files      map[string]map[string]bool
}

func NewSelection() *Selection {
	return &Selection{
		categories: make(map[string]bool),
		files:      make(map[string]map[string]bool),
	}
}

func (s *Selection) CategorySelected(catID string) bool {
	return s.categories[catID]
}

func (s *Selection) FileSelected(catID, path string) bool {
	return s.files[catID][path]
}

func (s *Selection) SelectedFileCount(catID string) int {
	return len(s.files[catID])
}

func (s *Selection) CategoryCount() int {
	return len(s.categories)
}

// SelectedCategories returns the selected category ids, sorted.
func (s *Selection) SelectedCategories() []string {
	ids := make([]string, 0, len(s.categories))
	for id := range s.categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FilesFor returns the selected paths for a category, sorted.
func (s *Selection) FilesFor(catID string) []string {
	set := s.files[catID]
	if len(set) == 0 {
		return nil
	}
	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// AllSelected reports whether every one of the given paths is selected.
func (s *Selection) AllSelected(catID string, paths []string) bool {
	set := s.files[catID]
	if len(set) < len(paths) {
		return false
	}
	for _, p := range paths {
		if !set[p] {
			return false
		}
	}
	return true
}

// SelectCategory marks the category selected. For categories that
// support per-file selection the caller passes all current item paths,
// which become selected wholesale.
func (s *Selection) SelectCategory(catID string, allPaths []string) {
	s.categories[catID] = true
	if allPaths != nil {
		set := make(map[string]bool, len(allPaths))
		for _, p := range allPaths {
			set[p] = true
		}
		s.files[catID] = set
	}
}

// DeselectCategory removes the category and clears its file set,
// whatever it contained.
func (s *Selection) DeselectCategory(catID string) {
	delete(s.categories, catID)
	delete(s.files, catID)
}

// ToggleFile flips one path and re-syncs category membership.
func (s *Selection) ToggleFile(catID, path string) {
	set := s.files[catID]
	if set == nil {
		set = make(map[string]bool)
		s.files[catID] = set
	}
	if set[path] {
		delete(set, path)
	} else {
		set[path] = true
	}
	s.syncCategory(catID)
}

// SetAllFiles selects every given path.
func (s *Selection) SetAllFiles(catID string, paths []string) {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	s.files[catID] = set
	s.syncCategory(catID)
}

// ClearFiles empties the category's file set.
func (s *Selection) ClearFiles(catID string) {
	delete(s.files, catID)
	s.syncCategory(catID)
}

// InvertFiles flips membership of every given path.
func (s *Selection) InvertFiles(catID string, paths []string) {
	set := s.files[catID]
	if set == nil {
		set = make(map[string]bool)
		s.files[catID] = set
	}
	for _, p := range paths {
		if set[p] {
			delete(set, p)
		} else {
			set[p] = true
		}
	}
	s.syncCategory(catID)
}

// ToggleDirFiles selects all given paths, or deselects them all when
// every one is already selected. Category membership is deliberately
// left alone even when this empties or fully populates the file set.
func (s *Selection) ToggleDirFiles(catID string, paths []string) {
	if len(paths) == 0 {
		return
	}
	set := s.files[catID]
	if s.AllSelected(catID, paths) {
		for _, p := range paths {
			delete(set, p)
		}
		if len(set) == 0 {
			delete(s.files, catID)
		}
		return
	}
	if set == nil {
		set = make(map[string]bool, len(paths))
		s.files[catID] = set
	}
	for _, p := range paths {
		set[p] = true
	}
}

// Reset drops every selection.
func (s *Selection) Reset() {
	s.categories = make(map[string]bool)
	s.files = make(map[string]map[string]bool)
}

func (s *Selection) syncCategory(catID string) {
	if len(s.files[catID]) > 0 {
		s.categories[catID] = true
		return
	}
	delete(s.files, catID)
	delete(s.categories, catID)
}
