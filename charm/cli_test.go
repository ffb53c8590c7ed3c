package charm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncStatusCommand(t *testing.T) {
	c := NewTestClient(t)
	require.NoError(t, c.Set([]byte("k"), []byte("v")))

	var out bytes.Buffer
	require.NoError(t, SyncStatusCommand(c, &out, nil))

	assert.Contains(t, out.String(), "Server:    localhost")
	assert.Contains(t, out.String(), "Keys:      1")
}

func TestSetAutoSyncCommand(t *testing.T) {
	c := NewTestClient(t)

	var out bytes.Buffer
	require.NoError(t, SetAutoSyncCommand(c, &out, []string{"--enable"}))
	assert.True(t, c.Config().AutoSync)
	assert.Contains(t, out.String(), "enabled")

	out.Reset()
	require.NoError(t, SetAutoSyncCommand(c, &out, nil))
	assert.Contains(t, out.String(), "Usage")
}

func TestSyncNowCommand(t *testing.T) {
	c := NewTestClient(t)

	var out bytes.Buffer
	require.NoError(t, SyncNowCommand(c, &out, []string{"--verbose"}))
	assert.Contains(t, out.String(), "✓ Synced")
}

func TestSyncWipeCommand(t *testing.T) {
	c := NewTestClient(t)
	require.NoError(t, c.Set([]byte("k"), []byte("v")))

	var out bytes.Buffer
	require.NoError(t, SyncWipeCommand(c, &out, nil))
	assert.Contains(t, out.String(), "leasebook sync wipe --confirm")
	keys, err := c.Keys()
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	out.Reset()
	require.NoError(t, SyncWipeCommand(c, &out, []string{"--confirm"}))
	assert.Contains(t, out.String(), "✓ All local data wiped")
	keys, err = c.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}
