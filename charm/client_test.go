// ABOUTME: Tests for the charm-backed portfolio store
// ABOUTME: Exercises the KV contract and gateway round-trips through the test client

package charm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/leasebook/models"
	"github.com/harperreed/leasebook/store"
)

func TestClientMissingKeyIsNotFound(t *testing.T) {
	c := NewTestClient(t)

	_, err := c.Get([]byte("nope"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestClientGatewayRoundTrip(t *testing.T) {
	c := NewTestClient(t)
	g := store.NewGateway(c, nil)

	assert.Equal(t, models.DefaultState(), g.Load())

	state := models.EmptyState()
	state.Assets = append(state.Assets, models.Asset{ID: "7", Name: "Seven"})
	require.NoError(t, g.Save(state))
	assert.Equal(t, state, g.Load())

	keys, err := c.Keys()
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestClientResetClearsPortfolio(t *testing.T) {
	c := NewTestClient(t)
	g := store.NewGateway(c, nil)
	require.NoError(t, g.Save(models.EmptyState()))

	require.NoError(t, c.Reset())
	assert.Equal(t, models.DefaultState(), g.Load())
}

func TestTestClientNeverSyncs(t *testing.T) {
	c := NewTestClient(t)
	assert.NoError(t, c.Sync())
	assert.True(t, c.IsConnected())
	assert.False(t, c.Config().AutoSync)
}

func TestLoadConfigDefaultsAndSave(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultCharmHost, cfg.Host)
	assert.True(t, cfg.AutoSync)

	require.NoError(t, cfg.SetAutoSync(false))

	reloaded, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.False(t, reloaded.AutoSync)
}

func TestLoadConfigBrokenFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{not json"), 0600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultCharmHost, cfg.Host)
}
