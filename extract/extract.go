// ABOUTME: Lease term extraction from free text
// ABOUTME: Defines the partial unit shape returned by extractors and the disabled variant
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/harperreed/leasebook/models"
)

// Areas is the partial area breakdown an extractor may return.
type Areas struct {
	Indoor    float64 `json:"indoor,omitempty"`
	Terrace   float64 `json:"terrace,omitempty"`
	Mezzanine float64 `json:"mezzanine,omitempty"`
	Outdoor   float64 `json:"outdoor,omitempty"`
	Total     float64 `json:"total,omitempty"`
}

// Terms is the partial commercial terms an extractor may return.
type Terms struct {
	RCD              string  `json:"rcd,omitempty"`
	RED              string  `json:"red,omitempty"`
	CommencementDate string  `json:"commencementDate,omitempty"`
	TermDuration     string  `json:"termDuration,omitempty"`
	SecurityDeposit  float64 `json:"securityDeposit,omitempty"`
}

// Extraction is whatever could be read out of a lease document. Every
// field is optional.
type Extraction struct {
	AssetName       string `json:"assetName,omitempty"`
	UnitNumber      string `json:"unitNumber,omitempty"`
	TradingName     string `json:"tradingName,omitempty"`
	Category        string `json:"category,omitempty"`
	PermittedUse    string `json:"permittedUse,omitempty"`
	TenantName      string `json:"tenantName,omitempty"`
	Areas           *Areas `json:"areas,omitempty"`
	CommercialTerms *Terms `json:"commercialTerms,omitempty"`
}

// Extractor reads lease terms from document text. A nil Extraction with a
// nil error means the text could not be parsed.
type Extractor interface {
	Extract(ctx context.Context, text string) (*Extraction, error)
}

// None is the disabled extractor.
type None struct{}

func (None) Extract(context.Context, string) (*Extraction, error) {
	return nil, nil
}

// ToUnit maps the extraction onto a unit skeleton. Unknown categories
// become Other; a named tenant marks the unit occupied.
func (e *Extraction) ToUnit() models.Unit {
	u := models.Unit{
		AssetName:     e.AssetName,
		UnitNumber:    e.UnitNumber,
		TradingName:   e.TradingName,
		PermittedUse:  e.PermittedUse,
		CurrentTenant: e.TenantName,
		Category:      models.CategoryOther,
		Status:        models.StatusVacant,
		RentSchedule:  []models.RentScheduleItem{},
		Documents:     []models.DocumentEntry{},
	}
	if c, err := models.ParseCategory(e.Category); err == nil {
		u.Category = c
	}
	if e.TenantName != "" {
		u.Status = models.StatusOccupied
	}
	if a := e.Areas; a != nil {
		u.Areas = models.AreaBreakdown{
			Indoor:    a.Indoor,
			Terrace:   a.Terrace,
			Mezzanine: a.Mezzanine,
			Outdoor:   a.Outdoor,
			Total:     a.Total,
		}
		if u.Areas.Total == 0 {
			u.Areas.Total = u.Areas.Sum()
		}
	}
	if t := e.CommercialTerms; t != nil {
		u.CommercialTerms = models.CommercialTerms{
			RCD:              t.RCD,
			RED:              t.RED,
			CommencementDate: t.CommencementDate,
			TermDuration:     t.TermDuration,
			SecurityDeposit:  t.SecurityDeposit,
		}
	}
	return u
}

// Parse decodes a model response. Markdown code fences are tolerated.
func Parse(text string) (*Extraction, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	if text == "" {
		text = "{}"
	}
	var e Extraction
	if err := json.Unmarshal([]byte(text), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

const (
	ModeNone   = "none"
	ModeGemini = "gemini"
)

// New returns the extractor for mode. Gemini without credentials is an error.
func New(ctx context.Context, mode string, cfg GeminiConfig, logger *zap.Logger) (Extractor, error) {
	switch strings.ToLower(mode) {
	case "", ModeNone:
		return None{}, nil
	case ModeGemini:
		g, err := NewGemini(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	return nil, fmt.Errorf("unknown extractor %q", mode)
}
