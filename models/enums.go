// ABOUTME: Closed string variants used across the portfolio model
// ABOUTME: Category, UnitStatus, DocumentStatus and AuditStatus with strict JSON decoding
package models

import (
	"encoding/json"
	"fmt"
)

type Category string

const (
	CategoryRetail Category = "Retail"
	CategoryFB     Category = "F&B"
	CategoryOther  Category = "Other"
)

// Categories returns every category in dashboard order.
func Categories() []Category {
	return []Category{CategoryFB, CategoryRetail, CategoryOther}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryRetail, CategoryFB, CategoryOther:
		return true
	}
	return false
}

func (c *Category) UnmarshalJSON(data []byte) error {
	return decodeVariant(data, "category", func(s string) bool {
		*c = Category(s)
		return c.Valid()
	})
}

type UnitStatus string

const (
	StatusOccupied   UnitStatus = "Occupied"
	StatusVacant     UnitStatus = "Vacant"
	StatusUnderOffer UnitStatus = "Under Offer"
)

func UnitStatuses() []UnitStatus {
	return []UnitStatus{StatusOccupied, StatusVacant, StatusUnderOffer}
}

func (s UnitStatus) Valid() bool {
	switch s {
	case StatusOccupied, StatusVacant, StatusUnderOffer:
		return true
	}
	return false
}

func (s *UnitStatus) UnmarshalJSON(data []byte) error {
	return decodeVariant(data, "unit status", func(v string) bool {
		*s = UnitStatus(v)
		return s.Valid()
	})
}

type DocumentStatus string

const (
	DocumentActive  DocumentStatus = "Active"
	DocumentExpired DocumentStatus = "Expired"
	DocumentPending DocumentStatus = "Pending"
)

func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentActive, DocumentExpired, DocumentPending:
		return true
	}
	return false
}

func (s *DocumentStatus) UnmarshalJSON(data []byte) error {
	return decodeVariant(data, "document status", func(v string) bool {
		*s = DocumentStatus(v)
		return s.Valid()
	})
}

type AuditStatus string

const (
	AuditSuccess AuditStatus = "Success"
	AuditFlagged AuditStatus = "Flagged"
	AuditWarning AuditStatus = "Warning"
)

func (s AuditStatus) Valid() bool {
	switch s {
	case AuditSuccess, AuditFlagged, AuditWarning:
		return true
	}
	return false
}

func (s *AuditStatus) UnmarshalJSON(data []byte) error {
	return decodeVariant(data, "audit status", func(v string) bool {
		*s = AuditStatus(v)
		return s.Valid()
	})
}

// ParseCategory accepts the exact display value.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// ParseUnitStatus accepts the exact display value.
func ParseUnitStatus(s string) (UnitStatus, error) {
	st := UnitStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown unit status %q", s)
	}
	return st, nil
}

func decodeVariant(data []byte, kind string, set func(string) bool) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	if !set(s) {
		return fmt.Errorf("unknown %s %q", kind, s)
	}
	return nil
}
