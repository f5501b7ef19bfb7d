package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUIStateStore_DefaultState(t *testing.T) {
	s := NewUIStateStore()

	st := s.Get("cat1")

	assert.False(t, st.Visible)
	assert.False(t, st.Active)
	assert.Equal(t, 0, st.FileCaret)
	assert.Empty(t, st.DirLimits)
}

func TestUIStateStore_UpdatesMerge(t *testing.T) {
	s := NewUIStateStore()

	s.SetVisible("cat1", true)
	s.SetFileCaret("cat1", 7)

	st := s.Get("cat1")
	assert.True(t, st.Visible)
	assert.Equal(t, 7, st.FileCaret)
}

func TestUIStateStore_DirLimitsReplacedWholesale(t *testing.T) {
	s := NewUIStateStore()
	s.SetDirLimits("cat1", map[string]int{"/a": 15, "/b": 25})

	s.SetDirLimits("cat1", map[string]int{"/a": 15})

	st := s.Get("cat1")
	assert.Equal(t, map[string]int{"/a": 15}, st.DirLimits, "limits are replaced, not merged")
}

func TestUIStateStore_DirLimitFallback(t *testing.T) {
	s := NewUIStateStore()
	s.SetDirLimits("cat1", map[string]int{"/a": 15})

	assert.Equal(t, 15, s.DirLimit("cat1", "/a", 5))
	assert.Equal(t, 5, s.DirLimit("cat1", "/b", 5))
	assert.Equal(t, 5, s.DirLimit("unknown", "/a", 5))
}

func TestUIStateStore_ActivateIsExclusive(t *testing.T) {
	s := NewUIStateStore()
	s.Activate("cat1")

	s.Activate("cat2")

	assert.False(t, s.Get("cat1").Active)
	assert.True(t, s.Get("cat2").Active)

	id, ok := s.ActiveID()
	assert.True(t, ok)
	assert.Equal(t, "cat2", id)
}

func TestUIStateStore_ActivateForcesVisible(t *testing.T) {
	s := NewUIStateStore()

	s.Activate("cat1")

	assert.True(t, s.Get("cat1").Visible)
}

func TestUIStateStore_Deactivate(t *testing.T) {
	s := NewUIStateStore()
	s.Activate("cat1")

	s.Deactivate()

	_, ok := s.ActiveID()
	assert.False(t, ok)
	assert.True(t, s.Get("cat1").Visible, "deactivating keeps the file view open")
}

func TestUIStateStore_CaretSurvivesDeactivate(t *testing.T) {
	s := NewUIStateStore()
	s.Activate("cat1")
	s.SetFileCaret("cat1", 4)

	s.Deactivate()
	s.Activate("cat2")

	assert.Equal(t, 4, s.Get("cat1").FileCaret)
}

func TestUIStateStore_Reset(t *testing.T) {
	s := NewUIStateStore()
	s.Activate("cat1")
	s.SetDirLimits("cat1", map[string]int{"/a": 15})

	s.Reset()

	st := s.Get("cat1")
	assert.False(t, st.Active)
	assert.Empty(t, st.DirLimits)
}
