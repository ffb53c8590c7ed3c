// ABOUTME: Tests for portfolio data models
// ABOUTME: Validates enum decoding, seed data shape and deep copies
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStateShape(t *testing.T) {
	s := DefaultState()

	require.Len(t, s.Assets, 2)
	require.Len(t, s.Units, 2)
	require.Len(t, s.AuditLogs, 2)

	revolver := s.FindUnit("u1")
	require.NotNil(t, revolver)
	assert.Equal(t, "Revolver", revolver.TradingName)
	assert.Equal(t, CategoryFB, revolver.Category)
	assert.Len(t, revolver.RentSchedule, 2)
	assert.Len(t, revolver.Documents, 2)
	assert.True(t, revolver.Areas.Consistent())

	maine := s.FindUnit("u2")
	require.NotNil(t, maine)
	assert.Empty(t, maine.RentSchedule)
	assert.Equal(t, "Hotel Opening", maine.CommercialTerms.RED)
}

func TestDefaultStateIsFreshCopy(t *testing.T) {
	a := DefaultState()
	a.Units[0].TradingName = "changed"

	b := DefaultState()
	assert.Equal(t, "Revolver", b.Units[0].TradingName)
}

func TestCategoryDecodingRejectsUnknown(t *testing.T) {
	var c Category
	require.NoError(t, json.Unmarshal([]byte(`"F&B"`), &c))
	assert.Equal(t, CategoryFB, c)

	err := json.Unmarshal([]byte(`"Cinema"`), &c)
	assert.Error(t, err)
}

func TestUnitStatusDecoding(t *testing.T) {
	var s UnitStatus
	require.NoError(t, json.Unmarshal([]byte(`"Under Offer"`), &s))
	assert.Equal(t, StatusUnderOffer, s)

	assert.Error(t, json.Unmarshal([]byte(`"Closed"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`42`), &s))
}

func TestAuditCountOptional(t *testing.T) {
	data, err := json.Marshal(AuditLog{ID: "x", Activity: "a", Status: AuditSuccess})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "count")

	data, err = json.Marshal(AuditLog{ID: "x", Activity: "a", Status: AuditSuccess, Count: IntPtr(0)})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"count":0`)
}

func TestCloneIsDeep(t *testing.T) {
	s := DefaultState()
	c := s.Clone()

	c.Units[0].RentSchedule[0].BaseRent = 1
	c.Units[0].Documents[0].Type = "changed"
	*c.AuditLogs[0].Count = 99
	c.Assets[0].Name = "changed"

	assert.Equal(t, 1200000.0, s.Units[0].RentSchedule[0].BaseRent)
	assert.Equal(t, "Lease Agreement", s.Units[0].Documents[0].Type)
	assert.Equal(t, 18, *s.AuditLogs[0].Count)
	assert.Equal(t, "Opus", s.Assets[0].Name)
}

func TestLegacyDocumentDecodes(t *testing.T) {
	legacy := `{"units":[{"id":"u9","assetId":"1","assetName":"Opus","unitNumber":"9","tradingName":"Nine",
		"category":"Retail","areas":{"indoor":10,"total":10},"status":"Vacant"}],"assets":[],"auditLogs":[]}`

	var s AppState
	require.NoError(t, json.Unmarshal([]byte(legacy), &s))
	s.Normalize()

	assert.Equal(t, 0, s.Version)
	require.Len(t, s.Units, 1)
	assert.Equal(t, StatusVacant, s.Units[0].Status)
	assert.NotNil(t, s.Units[0].RentSchedule)
	assert.Equal(t, 0.0, s.Units[0].Areas.Terrace)
}

func TestAreaConsistency(t *testing.T) {
	a := AreaBreakdown{Indoor: 100, Terrace: 20, Total: 130}
	assert.Equal(t, 120.0, a.Sum())
	assert.False(t, a.Consistent())
}
