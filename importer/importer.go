// ABOUTME: Import capability for lease data files
// ABOUTME: Simulated variant records receipt only; spreadsheet variant reads exported workbooks
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/harperreed/leasebook/models"
)

const (
	ModeSimulated   = "simulated"
	ModeSpreadsheet = "spreadsheet"
)

// ErrUnsupported is returned for files a variant cannot read.
var ErrUnsupported = errors.New("unsupported file type")

// Result describes what an import produced and how it should be audited.
type Result struct {
	Units    []models.Unit
	Activity string
	Status   models.AuditStatus
	Count    int
	Skipped  []string
}

// Importer turns a received file into units.
type Importer interface {
	Import(ctx context.Context, name string, r io.Reader) (Result, error)
}

// New returns the importer for the given mode.
func New(mode string) (Importer, error) {
	switch strings.ToLower(mode) {
	case "", ModeSimulated:
		return Simulated{}, nil
	case ModeSpreadsheet:
		return Spreadsheet{}, nil
	}
	return nil, fmt.Errorf("unknown import mode %q", mode)
}

// Simulated acknowledges the file without reading it.
type Simulated struct{}

func (Simulated) Import(_ context.Context, name string, _ io.Reader) (Result, error) {
	return Result{
		Activity: processedActivity(name),
		Status:   models.AuditSuccess,
		Count:    0,
	}, nil
}

func processedActivity(name string) string {
	return name + " processed"
}

// Apply adds the imported units to state. Units referencing an asset name
// that does not exist yet get a new asset. Unit ids are assigned when empty.
func Apply(state *models.AppState, res Result) {
	for _, u := range res.Units {
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		if u.AssetName != "" {
			asset := state.FindAssetByName(u.AssetName)
			if asset == nil {
				state.Assets = append(state.Assets, models.Asset{ID: uuid.NewString(), Name: u.AssetName})
				asset = &state.Assets[len(state.Assets)-1]
			}
			u.AssetID = asset.ID
		}
		if u.RentSchedule == nil {
			u.RentSchedule = []models.RentScheduleItem{}
		}
		if u.Documents == nil {
			u.Documents = []models.DocumentEntry{}
		}
		state.Units = append(state.Units, u)
	}
}
