// ABOUTME: Test helpers for packages that drive the App
// ABOUTME: Builds an App over in-memory badger with a fixed clock
package app

import (
	"testing"
	"time"

	"github.com/harperreed/leasebook/store"
)

// TestNow is the clock used by NewTestApp.
var TestNow = time.Date(2026, 1, 30, 9, 4, 30, 0, time.UTC)

// NewTestApp returns an App seeded with the default portfolio, backed by an
// in-memory store, plus the gateway so tests can reload what was saved.
func NewTestApp(t *testing.T) (*App, *store.Gateway) {
	t.Helper()

	kv, err := store.OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	g := store.NewGateway(kv, nil)
	a := New(store.Open(g), nil)
	a.Gateway = g
	a.Now = func() time.Time { return TestNow }
	a.Recorder.Now = a.Now
	return a, g
}
