// ABOUTME: Persistence gateway storing the whole AppState as one JSON document
// ABOUTME: Load falls back to the seed portfolio; Save overwrites the single key
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/harperreed/leasebook/models"
)

// StateKey is the single slot the document lives under.
const StateKey = "omniyat_app_state"

// BackupKey holds the last stored document that could not be decoded, so
// falling back to the seed never loses it.
const BackupKey = StateKey + ".unreadable"

// ErrNotFound is returned by KV implementations for a missing key.
var ErrNotFound = errors.New("key not found")

// KV is the byte-level store behind the gateway.
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
}

// Stamped is implemented by backends that record when a key was written.
type Stamped interface {
	UpdatedAt(key []byte) (time.Time, error)
}

// Gateway reads and writes the AppState document.
type Gateway struct {
	kv     KV
	logger *zap.Logger
}

func NewGateway(kv KV, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{kv: kv, logger: logger}
}

// Load returns the stored state, or the seed portfolio when nothing is
// stored or the document cannot be read. It never fails.
func (g *Gateway) Load() models.AppState {
	data, err := g.kv.Get([]byte(StateKey))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			g.logger.Info("no stored portfolio, using seed data")
		} else {
			g.logger.Error("failed to read stored portfolio, using seed data", zap.Error(err))
		}
		return models.DefaultState()
	}
	if len(data) == 0 {
		g.logger.Info("stored portfolio is empty, using seed data")
		return models.DefaultState()
	}

	state, err := Decode(data)
	if err != nil {
		g.logger.Error("failed to parse stored portfolio, using seed data", zap.Error(err))
		g.backup(data)
		return models.DefaultState()
	}
	if state.Version > models.CurrentVersion {
		g.logger.Warn("stored portfolio has a newer version",
			zap.Int("version", state.Version),
			zap.Int("supported", models.CurrentVersion))
	}
	return state
}

// Save serializes the state and overwrites the stored document.
func (g *Gateway) Save(state models.AppState) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	if err := g.kv.Set([]byte(StateKey), data); err != nil {
		return fmt.Errorf("failed to write portfolio: %w", err)
	}
	g.logger.Debug("portfolio saved",
		zap.Int("units", len(state.Units)),
		zap.Int("audit_logs", len(state.AuditLogs)),
		zap.Int("bytes", len(data)))
	return nil
}

func (g *Gateway) backup(data []byte) {
	if err := g.kv.Set([]byte(BackupKey), data); err != nil {
		g.logger.Error("failed to back up unreadable portfolio", zap.Error(err))
		return
	}
	g.logger.Warn("unreadable portfolio kept", zap.String("key", BackupKey), zap.Int("bytes", len(data)))
}

// Backup returns the document saved by a failed Load, if any.
func (g *Gateway) Backup() ([]byte, error) {
	return g.kv.Get([]byte(BackupKey))
}

// DiscardBackup removes the unreadable document kept by Load.
func (g *Gateway) DiscardBackup() error {
	if err := g.kv.Delete([]byte(BackupKey)); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to discard portfolio backup: %w", err)
	}
	return nil
}

// LastSaved reports when the document was last written. The second result
// is false when the backend keeps no write times or nothing is stored.
func (g *Gateway) LastSaved() (time.Time, bool) {
	stamped, ok := g.kv.(Stamped)
	if !ok {
		return time.Time{}, false
	}
	ts, err := stamped.UpdatedAt([]byte(StateKey))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			g.logger.Warn("failed to read save time", zap.Error(err))
		}
		return time.Time{}, false
	}
	return ts, true
}

// Encode marshals a state into the persisted document form.
func Encode(state models.AppState) ([]byte, error) {
	state.Normalize()
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode portfolio: %w", err)
	}
	return data, nil
}

// Decode parses a persisted document, accepting the unversioned legacy shape.
func Decode(data []byte) (models.AppState, error) {
	var state models.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.AppState{}, fmt.Errorf("failed to decode portfolio: %w", err)
	}
	state.Normalize()
	return state, nil
}
