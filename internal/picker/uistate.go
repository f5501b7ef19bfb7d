package picker

// CategoryUIState holds per-category navigation state so leaving and
// re-entering a category's file view restores where the user left off.
type CategoryUIState struct {
	Visible   bool
	Active    bool
	FileCaret int
	DirLimits map[string]int
}

// UIStateStore keeps CategoryUIState records by category id, created
// lazily on first interaction. At most one category is active at once.
type UIStateStore struct {
	states map[string]*CategoryUIState
}

func NewUIStateStore() *UIStateStore {
	return &UIStateStore{states: make(map[string]*CategoryUIState)}
}

// Get returns a copy of the category's state, or the zero default when
// none has been recorded yet.
func (s *UIStateStore) Get(catID string) CategoryUIState {
	if st, ok := s.states[catID]; ok {
		return *st
	}
	return CategoryUIState{}
}

func (s *UIStateStore) ensure(catID string) *CategoryUIState {
	st, ok := s.states[catID]
	if !ok {
		st = &CategoryUIState{}
		s.states[catID] = st
	}
	return st
}

func (s *UIStateStore) SetVisible(catID string, visible bool) {
	s.ensure(catID).Visible = visible
}

func (s *UIStateStore) SetFileCaret(catID string, caret int) {
	s.ensure(catID).FileCaret = caret
}

// SetDirLimits replaces the category's expand limits wholesale. Callers
// wanting to add one limit copy the previous map first.
func (s *UIStateStore) SetDirLimits(catID string, limits map[string]int) {
	s.ensure(catID).DirLimits = limits
}

// DirLimit returns the directory's effective limit, falling back to
// def when no override is recorded.
func (s *UIStateStore) DirLimit(catID, dir string, def int) int {
	if st, ok := s.states[catID]; ok {
		if l, ok := st.DirLimits[dir]; ok {
			return l
		}
	}
	return def
}

// Activate gives the category file-pane focus, clearing the active flag
// everywhere else and forcing the target visible.
func (s *UIStateStore) Activate(catID string) {
	for _, st := range s.states {
		st.Active = false
	}
	st := s.ensure(catID)
	st.Active = true
	st.Visible = true
}

// Deactivate clears focus entirely; no category stays active.
func (s *UIStateStore) Deactivate() {
	for _, st := range s.states {
		st.Active = false
	}
}

// ActiveID returns the currently focused category, if any.
func (s *UIStateStore) ActiveID() (string, bool) {
	for id, st := range s.states {
		if st.Active {
			return id, true
		}
	}
	return "", false
}

// Reset discards all recorded state.
func (s *UIStateStore) Reset() {
	s.states = make(map[string]*CategoryUIState)
}
