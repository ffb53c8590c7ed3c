package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/leasebook/export"
	"github.com/harperreed/leasebook/extract"
	"github.com/harperreed/leasebook/importer"
	"github.com/harperreed/leasebook/models"
	"github.com/harperreed/leasebook/store"
)

func TestImportSimulatedRecordsAudit(t *testing.T) {
	a, g := NewTestApp(t)

	entry, err := a.Import(context.Background(), "lease.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)

	assert.Equal(t, "lease.pdf processed", entry.Activity)
	assert.Equal(t, models.AuditSuccess, entry.Status)
	require.NotNil(t, entry.Count)
	assert.Equal(t, 0, *entry.Count)
	assert.Equal(t, "30/01/2026 09:04:30 AM", entry.Timestamp)

	state := a.State()
	require.Len(t, state.AuditLogs, 3)
	assert.Equal(t, entry.ID, state.AuditLogs[0].ID)
	assert.Len(t, state.Units, 2)

	assert.Equal(t, state, g.Load())
}

func TestImportSpreadsheetAddsUnits(t *testing.T) {
	a, g := NewTestApp(t)
	a.Importer = importer.Spreadsheet{}

	var buf bytes.Buffer
	require.NoError(t, export.WriteWorkbook(&buf, models.DefaultState().Units))

	entry, err := a.Import(context.Background(), "copy.xlsx", &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, *entry.Count)

	state := g.Load()
	assert.Len(t, state.Units, 4)
	assert.Len(t, state.Assets, 2)
}

func TestImportErrorLeavesStateAlone(t *testing.T) {
	a, _ := NewTestApp(t)
	a.Importer = importer.Spreadsheet{}
	before := a.State()

	_, err := a.Import(context.Background(), "notes.txt", strings.NewReader("hi"))
	assert.ErrorIs(t, err, importer.ErrUnsupported)
	assert.Equal(t, before, a.State())
}

func TestWipeNeedsConfirmation(t *testing.T) {
	a, g := NewTestApp(t)

	assert.ErrorIs(t, a.Wipe(false), ErrNotConfirmed)
	assert.Len(t, a.State().Units, 2)

	require.NoError(t, a.Wipe(true))
	state := g.Load()
	assert.Empty(t, state.Units)
	assert.Empty(t, state.Assets)
	assert.Empty(t, state.AuditLogs)
}

func TestWipeDiscardsUnreadableBackup(t *testing.T) {
	kv, err := store.OpenBadgerInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	require.NoError(t, kv.Set([]byte(store.StateKey), []byte(`{"units":`)))

	g := store.NewGateway(kv, nil)
	a := New(store.Open(g), nil)
	a.Gateway = g
	_, err = g.Backup()
	require.NoError(t, err)

	require.NoError(t, a.Wipe(true))
	_, err = g.Backup()
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLastSavedWithoutStamps(t *testing.T) {
	a, _ := NewTestApp(t)
	_, ok := a.LastSaved()
	assert.False(t, ok)

	a.Gateway = nil
	_, ok = a.LastSaved()
	assert.False(t, ok)
}

func TestExportTo(t *testing.T) {
	a, _ := NewTestApp(t)
	dir := t.TempDir()

	path, err := a.ExportTo(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Omniyat_Portfolio_2026-01-30.xlsx"), path)

	var buf bytes.Buffer
	name, err := a.WriteExport(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Omniyat_Portfolio_2026-01-30.xlsx", name)
	assert.NotZero(t, buf.Len())
}

func TestUnitLookup(t *testing.T) {
	a, _ := NewTestApp(t)

	u, err := a.Unit("u2")
	require.NoError(t, err)
	assert.Equal(t, "Maine", u.TradingName)

	_, err = a.Unit("missing")
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

type failingExtractor struct{}

func (failingExtractor) Extract(context.Context, string) (*extract.Extraction, error) {
	return nil, errors.New("quota exceeded")
}

func TestExtract(t *testing.T) {
	a, _ := NewTestApp(t)

	e, err := a.Extract(context.Background(), "text")
	require.NoError(t, err)
	assert.Nil(t, e)

	a.Extractor = failingExtractor{}
	_, err = a.Extract(context.Background(), "text")
	assert.ErrorContains(t, err, "quota exceeded")
}
