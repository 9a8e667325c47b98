package store

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/maintenance-agent/internal/models"
	"github.com/example/maintenance-agent/internal/persist"
)

func newEmpty(t *testing.T) (*Store, *persist.MemStore) {
	t.Helper()
	kv := persist.NewMemStore()
	require.NoError(t, kv.Set(persist.KeyTasks, []byte("[]")))
	return Load(kv), kv
}

func TestLoadDefaultsWhenEmpty(t *testing.T) {
	s := Load(persist.NewMemStore())
	require.Equal(t, DefaultTasks(), s.List(nil))
}

func TestLoadDefaultsWhenCorrupt(t *testing.T) {
	kv := persist.NewMemStore()
	require.NoError(t, kv.Set(persist.KeyTasks, []byte("{not json")))
	s := Load(kv)
	require.Equal(t, DefaultTasks(), s.List(nil))
}

func TestAddInsertsAtFront(t *testing.T) {
	s, _ := newEmpty(t)
	require.NoError(t, s.Add(1, "fix sink", ""))
	require.NoError(t, s.Add(2, "paint wall", "Jane"))

	list := s.List(nil)
	require.Len(t, list, 2)
	require.Equal(t, 2, list[0].ID)
	require.Equal(t, 1, list[1].ID)
	require.Equal(t, models.StatusPending, list[0].Status)
	require.Equal(t, "Unassigned", list[1].AssignedTo)
	require.Equal(t, "Jane", list[0].AssignedTo)
	require.NotEmpty(t, list[0].Date)
}

func TestAddDuplicateIDFailsWithoutMutation(t *testing.T) {
	s, _ := newEmpty(t)
	require.NoError(t, s.Add(5, "leaking faucet", ""))
	before := s.List(nil)

	err := s.Add(5, "another", "Bob")
	require.ErrorIs(t, err, ErrDuplicateID)
	require.Equal(t, before, s.List(nil))
}

func TestUpdatePartial(t *testing.T) {
	s, _ := newEmpty(t)
	require.NoError(t, s.Add(7, "replace filter", "John"))

	st := models.StatusInProgress
	require.NoError(t, s.Update(7, &st, nil))
	got, ok := s.Get(7)
	require.True(t, ok)
	require.Equal(t, models.StatusInProgress, got.Status)
	require.Equal(t, "John", got.AssignedTo)

	who := "Jane"
	require.NoError(t, s.Update(7, nil, &who))
	got, _ = s.Get(7)
	require.Equal(t, models.StatusInProgress, got.Status)
	require.Equal(t, "Jane", got.AssignedTo)
}

func TestUpdateNoFieldsFails(t *testing.T) {
	s, _ := newEmpty(t)
	require.NoError(t, s.Add(7, "replace filter", "John"))
	before, _ := s.Get(7)

	require.ErrorIs(t, s.Update(7, nil, nil), ErrNoUpdates)
	after, _ := s.Get(7)
	require.Equal(t, before, after)
}

func TestUpdateMissingID(t *testing.T) {
	s, _ := newEmpty(t)
	st := models.StatusCompleted
	require.ErrorIs(t, s.Update(999, &st, nil), ErrNotFound)
}

func TestDelete(t *testing.T) {
	s, _ := newEmpty(t)
	require.NoError(t, s.Add(1, "a", ""))
	require.NoError(t, s.Add(2, "b", ""))

	require.NoError(t, s.Delete(1))
	_, ok := s.Get(1)
	require.False(t, ok)
	require.Equal(t, 1, s.Len())

	require.ErrorIs(t, s.Delete(1), ErrNotFound)
}

func TestListFilterAndIdempotence(t *testing.T) {
	s, _ := newEmpty(t)
	require.NoError(t, s.Add(1, "a", ""))
	require.NoError(t, s.Add(2, "b", ""))
	st := models.StatusCompleted
	require.NoError(t, s.Update(2, &st, nil))

	completed := s.List(&st)
	require.Len(t, completed, 1)
	require.Equal(t, 2, completed[0].ID)

	first := s.List(nil)
	second := s.List(nil)
	require.Equal(t, first, second)
}

func TestPersistenceRoundTrip(t *testing.T) {
	s, kv := newEmpty(t)
	require.NoError(t, s.Add(1, "a", ""))
	require.NoError(t, s.Add(2, "b", "Jane"))

	data, ok, err := kv.Get(persist.KeyTasks)
	require.NoError(t, err)
	require.True(t, ok)
	var saved []models.Task
	require.NoError(t, json.Unmarshal(data, &saved))
	require.Equal(t, s.List(nil), saved)

	reloaded := Load(kv)
	require.Equal(t, s.List(nil), reloaded.List(nil))
}

func TestPersistFailureDoesNotBlockMutation(t *testing.T) {
	s, kv := newEmpty(t)
	kv.FailSet = errDisk
	require.NoError(t, s.Add(1, "a", ""))
	require.Equal(t, 1, s.Len())
}

func TestOnChangeFires(t *testing.T) {
	s, _ := newEmpty(t)
	var seen [][]models.Task
	s.OnChange(func(snap []models.Task) { seen = append(seen, snap) })

	require.NoError(t, s.Add(1, "a", ""))
	require.NoError(t, s.Delete(1))
	require.Len(t, seen, 2)
	require.Len(t, seen[0], 1)
	require.Len(t, seen[1], 0)
}

var errDisk = errors.New("disk full")
