// ABOUTME: Tests for the persistence gateway and session
// ABOUTME: Covers round-trips, seed fallback and rollback on write failure
package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/harperreed/leasebook/models"
)

func newTestKV(t *testing.T) *BadgerKV {
	t.Helper()
	kv, err := OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

type failingKV struct {
	*BadgerKV
	failSet bool
	failGet bool
}

func (f *failingKV) Set(key, value []byte) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.BadgerKV.Set(key, value)
}

func (f *failingKV) Get(key []byte) ([]byte, error) {
	if f.failGet {
		return nil, errors.New("io error")
	}
	return f.BadgerKV.Get(key)
}

func TestLoadWithoutDocumentReturnsSeed(t *testing.T) {
	g := NewGateway(newTestKV(t), nil)
	assert.Equal(t, models.DefaultState(), g.Load())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := NewGateway(newTestKV(t), nil)

	state := models.DefaultState()
	state.Units[1].Status = models.StatusVacant
	state.AuditLogs = append(state.AuditLogs, models.AuditLog{ID: "l3", Activity: "x", Status: models.AuditWarning})

	require.NoError(t, g.Save(state))
	assert.Equal(t, state, g.Load())
}

func TestSaveLoadEmptyState(t *testing.T) {
	g := NewGateway(newTestKV(t), nil)

	require.NoError(t, g.Save(models.EmptyState()))
	loaded := g.Load()
	assert.Equal(t, models.EmptyState(), loaded)
	assert.NotNil(t, loaded.Units)
}

func TestLoadCorruptDocumentFallsBackAndLogs(t *testing.T) {
	kv := newTestKV(t)
	require.NoError(t, kv.Set([]byte(StateKey), []byte(`{"units": [`)))

	core, logs := observer.New(zap.ErrorLevel)
	g := NewGateway(kv, zap.New(core))

	assert.Equal(t, models.DefaultState(), g.Load())
	assert.Equal(t, 1, logs.FilterMessage("failed to parse stored portfolio, using seed data").Len())

	backup, err := g.Backup()
	require.NoError(t, err)
	assert.Equal(t, `{"units": [`, string(backup))
}

func TestLoadUnknownEnumFallsBack(t *testing.T) {
	kv := newTestKV(t)
	doc := `{"units":[{"id":"u1","category":"Cinema","status":"Vacant"}],"assets":[],"auditLogs":[]}`
	require.NoError(t, kv.Set([]byte(StateKey), []byte(doc)))

	g := NewGateway(kv, nil)
	assert.Equal(t, models.DefaultState(), g.Load())

	// The next save replaces the document but the unreadable one survives.
	require.NoError(t, g.Save(models.DefaultState()))
	backup, err := g.Backup()
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(backup))
}

func TestDiscardBackup(t *testing.T) {
	kv := newTestKV(t)
	g := NewGateway(kv, nil)
	require.NoError(t, g.DiscardBackup())

	require.NoError(t, kv.Set([]byte(StateKey), []byte("not json")))
	g.Load()
	require.NoError(t, g.DiscardBackup())

	_, err := g.Backup()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadWithoutDocumentKeepsNoBackup(t *testing.T) {
	g := NewGateway(newTestKV(t), nil)
	g.Load()
	_, err := g.Backup()
	assert.ErrorIs(t, err, ErrNotFound)
}

type stampedKV struct {
	*BadgerKV
	at time.Time
}

func (s *stampedKV) UpdatedAt(key []byte) (time.Time, error) {
	if _, err := s.Get(key); err != nil {
		return time.Time{}, err
	}
	return s.at, nil
}

func TestLastSaved(t *testing.T) {
	_, ok := NewGateway(newTestKV(t), nil).LastSaved()
	assert.False(t, ok, "badger keeps no write times")

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	g := NewGateway(&stampedKV{BadgerKV: newTestKV(t), at: at}, nil)
	_, ok = g.LastSaved()
	assert.False(t, ok, "nothing stored yet")

	require.NoError(t, g.Save(models.EmptyState()))
	ts, ok := g.LastSaved()
	require.True(t, ok)
	assert.Equal(t, at, ts)
}

func TestLoadLegacyDocument(t *testing.T) {
	kv := newTestKV(t)
	doc := `{"units":[],"assets":[{"id":"9","name":"Nine"}],"auditLogs":[]}`
	require.NoError(t, kv.Set([]byte(StateKey), []byte(doc)))

	state := NewGateway(kv, nil).Load()
	assert.Equal(t, 0, state.Version)
	require.Len(t, state.Assets, 1)
	assert.Equal(t, "Nine", state.Assets[0].Name)
}

func TestLoadReadErrorFallsBack(t *testing.T) {
	kv := &failingKV{BadgerKV: newTestKV(t), failGet: true}
	g := NewGateway(kv, nil)
	assert.Equal(t, models.DefaultState(), g.Load())
}

func TestSaveReturnsWriteError(t *testing.T) {
	kv := &failingKV{BadgerKV: newTestKV(t), failSet: true}
	g := NewGateway(kv, nil)

	err := g.Save(models.DefaultState())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestSessionUpdatePersists(t *testing.T) {
	kv := newTestKV(t)
	g := NewGateway(kv, nil)
	s := Open(g)

	err := s.Update(func(st *models.AppState) error {
		st.Units = st.Units[:1]
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, s.Snapshot().Units, 1)
	assert.Len(t, g.Load().Units, 1)
}

func TestSessionRollsBackOnWriteFailure(t *testing.T) {
	kv := &failingKV{BadgerKV: newTestKV(t)}
	g := NewGateway(kv, nil)
	s := Open(g)

	kv.failSet = true
	err := s.Update(func(st *models.AppState) error {
		*st = models.EmptyState()
		return nil
	})
	require.Error(t, err)
	assert.Len(t, s.Snapshot().Units, 2)
}

func TestSessionRollsBackOnMutationError(t *testing.T) {
	s := Open(NewGateway(newTestKV(t), nil))

	boom := errors.New("boom")
	err := s.Update(func(st *models.AppState) error {
		st.Units = nil
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, s.Snapshot().Units, 2)
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := Open(NewGateway(newTestKV(t), nil))

	snap := s.Snapshot()
	snap.Units[0].TradingName = "changed"

	assert.Equal(t, "Revolver", s.Snapshot().Units[0].TradingName)
}

func TestBadgerDelete(t *testing.T) {
	kv := newTestKV(t)
	require.NoError(t, kv.Set([]byte("a"), []byte("1")))

	require.NoError(t, kv.Delete([]byte("a")))
	_, err := kv.Get([]byte("a"))
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Delete([]byte("missing")))
}

func TestBadgerKeysAndReset(t *testing.T) {
	kv := newTestKV(t)
	require.NoError(t, kv.Set([]byte("a"), []byte("1")))
	require.NoError(t, kv.Set([]byte("b"), []byte("2")))

	keys, err := kv.Keys()
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	require.NoError(t, kv.Reset())
	keys, err = kv.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}
