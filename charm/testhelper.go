// ABOUTME: Test utilities for creating isolated charm clients
// ABOUTME: Backs the client with an in-memory BadgerDB so tests never reach a server

package charm

import (
	"sync"
	"testing"

	"github.com/harperreed/leasebook/store"
)

// testClient stands in for charm/kv. The mutex mirrors the real client's
// locking so parallel tests see the same semantics.
type testClient struct {
	kv     *store.BadgerKV
	config *Config
	mu     sync.RWMutex
}

func (c *testClient) Get(key []byte) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kv.Get(key)
}

func (c *testClient) Set(key, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Set(key, value)
}

func (c *testClient) Delete(key []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Delete(key)
}

func (c *testClient) Keys() ([][]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.kv.Keys()
}

func (c *testClient) Config() *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *testClient) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// NewTestClient returns a charm client backed by in-memory badger with
// auto-sync disabled. The store is closed when the test finishes.
func NewTestClient(t *testing.T) *Client {
	t.Helper()

	kv, err := store.OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}
	t.Cleanup(func() {
		if err := kv.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	cfg := &Config{Host: "localhost", AutoSync: false, dir: t.TempDir()}
	tc := &testClient{kv: kv, config: cfg}

	return &Client{
		config:     cfg,
		testClient: tc,
	}
}
