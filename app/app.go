// ABOUTME: User actions over the portfolio shared by every interface
// ABOUTME: Import, export, wipe and extract each go through the session and audit recorder
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/harperreed/leasebook/audit"
	"github.com/harperreed/leasebook/export"
	"github.com/harperreed/leasebook/extract"
	"github.com/harperreed/leasebook/importer"
	"github.com/harperreed/leasebook/models"
	"github.com/harperreed/leasebook/store"
)

// ErrNotConfirmed is returned when a destructive action lacks confirmation.
var ErrNotConfirmed = errors.New("confirmation required")

// ErrUnitNotFound is returned when a unit id does not exist.
var ErrUnitNotFound = errors.New("unit not found")

type App struct {
	Session   *store.Session
	Gateway   *store.Gateway
	Recorder  *audit.Recorder
	Importer  importer.Importer
	Extractor extract.Extractor
	Logger    *zap.Logger
	Now       func() time.Time
}

// New wires an App with simulated import, no extraction and the default
// audit cap. Callers replace fields as configured.
func New(session *store.Session, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		Session:   session,
		Recorder:  audit.NewRecorder(audit.DefaultCap),
		Importer:  importer.Simulated{},
		Extractor: extract.None{},
		Logger:    logger,
		Now:       time.Now,
	}
}

func (a *App) State() models.AppState {
	return a.Session.Snapshot()
}

// Unit returns a copy of the unit with id.
func (a *App) Unit(id string) (models.Unit, error) {
	state := a.Session.Snapshot()
	u := state.FindUnit(id)
	if u == nil {
		return models.Unit{}, fmt.Errorf("%w: %s", ErrUnitNotFound, id)
	}
	return *u, nil
}

// Import runs the configured importer on r, then applies the result and
// records one audit entry in a single session update.
func (a *App) Import(ctx context.Context, name string, r io.Reader) (models.AuditLog, error) {
	res, err := a.Importer.Import(ctx, name, r)
	if err != nil {
		a.Logger.Warn("import failed", zap.String("file", name), zap.Error(err))
		return models.AuditLog{}, fmt.Errorf("failed to import %s: %w", name, err)
	}

	var entry models.AuditLog
	err = a.Session.Update(func(s *models.AppState) error {
		importer.Apply(s, res)
		entry = a.Recorder.Record(s, res.Activity, res.Status, models.IntPtr(res.Count))
		return nil
	})
	if err != nil {
		a.Logger.Error("failed to save import", zap.String("file", name), zap.Error(err))
		return models.AuditLog{}, err
	}

	a.Logger.Info("file imported",
		zap.String("file", name),
		zap.Int("units", res.Count),
		zap.Int("skipped", len(res.Skipped)),
		zap.String("status", string(res.Status)))
	return entry, nil
}

// ExportTo writes the current units as a workbook into dir.
func (a *App) ExportTo(dir string) (string, error) {
	path, err := export.ToFile(dir, a.Session.Snapshot().Units, a.Now())
	if err != nil {
		return "", err
	}
	a.Logger.Info("portfolio exported", zap.String("path", path))
	return path, nil
}

// WriteExport streams the workbook and returns its download name.
func (a *App) WriteExport(w io.Writer) (string, error) {
	if err := export.WriteWorkbook(w, a.Session.Snapshot().Units); err != nil {
		return "", err
	}
	return export.FileName(a.Now()), nil
}

// Wipe replaces the portfolio with an empty one. No audit entry is kept.
func (a *App) Wipe(confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	if err := a.Session.Replace(models.EmptyState()); err != nil {
		a.Logger.Error("failed to wipe portfolio", zap.Error(err))
		return err
	}
	if a.Gateway != nil {
		if err := a.Gateway.DiscardBackup(); err != nil {
			a.Logger.Warn("failed to discard portfolio backup", zap.Error(err))
		}
	}
	a.Logger.Warn("portfolio wiped")
	return nil
}

// LastSaved reports when the portfolio was last written. It is false
// without a Gateway or when the backend records no write times.
func (a *App) LastSaved() (time.Time, bool) {
	if a.Gateway == nil {
		return time.Time{}, false
	}
	return a.Gateway.LastSaved()
}

// Extract asks the extractor for lease terms. A nil extraction means the
// text could not be read.
func (a *App) Extract(ctx context.Context, text string) (*extract.Extraction, error) {
	e, err := a.Extractor.Extract(ctx, text)
	if err != nil {
		a.Logger.Warn("extraction failed", zap.Error(err))
		return nil, fmt.Errorf("failed to extract lease terms: %w", err)
	}
	return e, nil
}
