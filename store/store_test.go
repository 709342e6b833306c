package store

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "results"))
	require.NoError(t, err)
	return s
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNew_EmptyDir_Error(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestStore_NewID_Format(t *testing.T) {
	s := newTestStore(t)
	s.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }

	id := s.NewID(KindSimulation)
	assert.Regexp(t, regexp.MustCompile(`^simulation_20260304_050607_[0-9a-f]{8}$`), id)
	assert.NotEqual(t, id, s.NewID(KindSimulation), "IDs within the same second must differ")
}

func TestStore_SaveThenLoad(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Save(KindSimulation, sample{Name: "clinic", Value: 0.83})
	require.NoError(t, err)

	var got sample
	require.NoError(t, s.Load(id, &got))
	assert.Equal(t, sample{Name: "clinic", Value: 0.83}, got)

	raw, err := s.Raw(id)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"name\": \"clinic\"", "stored JSON is indented")
}

func TestStore_Save_InvalidKind(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Save("../escape", sample{})
	assert.Error(t, err)
}

func TestStore_Load_Missing_NotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.Load("simulation_20260101_000000_deadbeef", &sample{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Load_PathTraversal_Rejected(t *testing.T) {
	s := newTestStore(t)
	for _, id := range []string{"../secret", "a/b", "", "x.json"} {
		_, err := s.Raw(id)
		assert.ErrorIs(t, err, ErrInvalidID, "id %q", id)
	}
}

func TestStore_List_NewestFirstWithKinds(t *testing.T) {
	s := newTestStore(t)
	older, err := s.Save(KindSimulation, sample{Name: "old"})
	require.NoError(t, err)
	newer, err := s.Save(KindSweep, sample{Name: "new"})
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(s.path(older), past, past))
	// ignored entries
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), "sub.json"), 0o755))

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, newer, entries[0].ID)
	assert.Equal(t, KindSweep, entries[0].Kind)
	assert.Equal(t, newer+".json", entries[0].Name)
	assert.Positive(t, entries[0].Size)

	assert.Equal(t, older, entries[1].ID)
	assert.Equal(t, KindSimulation, entries[1].Kind)
}

func TestStore_List_Empty(t *testing.T) {
	s := newTestStore(t)
	entries, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
