// ABOUTME: Dashboard statistics assembled from the portfolio state
// ABOUTME: Includes best-effort lease expiry detection from display dates
package portfolio

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harperreed/leasebook/models"
)

// ExpiryWindow is the look-ahead used by the dashboard expiry KPI.
const ExpiryWindow = 180 * 24 * time.Hour

// RecentLogLimit caps the audit entries shown on the dashboard.
const RecentLogLimit = 5

var redLayouts = []string{
	"02 Jan 2006",
	"2 Jan 2006",
	"2006-01-02",
	"02/01/2006",
}

type DashboardStats struct {
	TotalAssets     int               `json:"totalAssets"`
	TotalUnits      int               `json:"totalUnits"`
	TotalGFA        float64           `json:"totalGfa"`
	Expiring        int               `json:"expiring180"`
	VacantUnits     int               `json:"vacantUnits"`
	Distribution    []CategoryShare   `json:"distribution"`
	DepositsHeld    decimal.Decimal   `json:"depositsHeld"`
	RecentActivity  []models.AuditLog `json:"recentActivity"`
	InconsistentGFA []string          `json:"inconsistentGfa,omitempty"`
}

// Dashboard computes every KPI shown on the dashboard view.
func Dashboard(state models.AppState, now time.Time) DashboardStats {
	units := state.Units

	recent := state.AuditLogs
	if len(recent) > RecentLogLimit {
		recent = recent[:RecentLogLimit]
	}

	var inconsistent []string
	for _, u := range units {
		if !u.Areas.Consistent() {
			inconsistent = append(inconsistent, u.ID)
		}
	}

	return DashboardStats{
		TotalAssets:     TotalAssets(units),
		TotalUnits:      len(units),
		TotalGFA:        TotalGFA(units),
		Expiring:        len(ExpiringWithin(units, now, ExpiryWindow)),
		VacantUnits:     VacantCount(units),
		Distribution:    CategoryDistribution(units),
		DepositsHeld:    TotalSecurityDeposits(units),
		RecentActivity:  append([]models.AuditLog{}, recent...),
		InconsistentGFA: inconsistent,
	}
}

// ParseLeaseDate tries the date layouts seen in lease documents. Values
// such as "Hotel Opening" are not dates and report false.
func ParseLeaseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range redLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ExpiringWithin returns units whose RED falls in [now, now+window].
func ExpiringWithin(units []models.Unit, now time.Time, window time.Duration) []models.Unit {
	start := truncateDay(now)
	end := start.Add(window)

	var out []models.Unit
	for _, u := range units {
		red, ok := ParseLeaseDate(u.CommercialTerms.RED)
		if !ok {
			continue
		}
		if !red.Before(start) && !red.After(end) {
			out = append(out, u)
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
