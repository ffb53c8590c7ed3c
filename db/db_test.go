package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/leasebook/models"
	"github.com/harperreed/leasebook/store"
)

func TestOpenDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='app_state'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected app_state table, got %d", count)
	}

	var mode string
	err = db.QueryRow("PRAGMA journal_mode").Scan(&mode)
	if err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("Expected WAL mode, got %s", mode)
	}
}

func TestOpenDatabaseInvalidPath(t *testing.T) {
	_, err := OpenDatabase("/invalid/nonexistent/path/that/cannot/be/created/test.db")
	if err == nil {
		t.Errorf("Expected error for invalid path, but OpenDatabase succeeded")
	}
}

func TestOpenDatabaseTwice(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenDatabase(dbPath)
	require.NoError(t, err)
	db.Close()

	db, err = OpenDatabase(dbPath)
	require.NoError(t, err)
	db.Close()
}

func TestStateStoreKV(t *testing.T) {
	s, err := OpenStateStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get([]byte("missing"))
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Set([]byte("k"), []byte("one")))
	require.NoError(t, s.Set([]byte("k"), []byte("two")))

	val, err := s.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(val))

	ts, err := s.UpdatedAt([]byte("k"))
	require.NoError(t, err)
	assert.False(t, ts.IsZero())

	require.NoError(t, s.Delete([]byte("k")))
	_, err = s.Get([]byte("k"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStateStoreGatewayPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := OpenStateStore(path)
	require.NoError(t, err)
	state := models.DefaultState()
	state.Units = state.Units[1:]
	require.NoError(t, store.NewGateway(s, nil).Save(state))
	require.NoError(t, s.Close())

	s, err = OpenStateStore(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, state, store.NewGateway(s, nil).Load())
}

func TestStateStoreLastSaved(t *testing.T) {
	s, err := OpenStateStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer s.Close()

	g := store.NewGateway(s, nil)
	_, ok := g.LastSaved()
	assert.False(t, ok)

	before := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, g.Save(models.EmptyState()))
	ts, ok := g.LastSaved()
	require.True(t, ok)
	assert.True(t, ts.After(before))
}
