package persist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := s.Get(KeyTasks)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(KeyTasks, []byte(`[{"id":1}]`)))
	data, ok, err := s.Get(KeyTasks)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":1}]`, string(data))

	require.NoError(t, s.Set(KeyTasks, []byte(`[]`)))
	data, _, _ = s.Get(KeyTasks)
	require.Equal(t, `[]`, string(data))
}

func TestFileStoreKeysAreIsolated(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set(KeyTasks, []byte("tasks")))
	require.NoError(t, s.Set(KeyTranscript, []byte("turns")))

	data, ok, err := s.Get(KeyTranscript)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "turns", string(data))
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("../escape", []byte("x")))
	data, ok, err := s.Get("../escape")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "x", string(data))
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	_, ok, err := s.Get("k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set("k", []byte("v")))
	data, ok, _ := s.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", string(data))
}
