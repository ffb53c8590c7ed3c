// ABOUTME: Pure aggregation functions over the unit collection
// ABOUTME: Computes dashboard KPIs, category shares and list filters
package portfolio

import (
	"math"
	"strings"

	"github.com/harperreed/leasebook/models"
)

// AllAssets is the asset filter sentinel that disables asset filtering.
const AllAssets = "All Assets"

type CategoryShare struct {
	Category   models.Category `json:"category"`
	Count      int             `json:"count"`
	Percentage int             `json:"percentage"`
}

// TotalAssets counts distinct asset ids, using the asset name for units
// that carry no id.
func TotalAssets(units []models.Unit) int {
	seen := make(map[string]struct{})
	for _, u := range units {
		key := u.AssetID
		if key == "" {
			key = "name:" + u.AssetName
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}

// TotalGFA sums the stored total area of every unit.
func TotalGFA(units []models.Unit) float64 {
	total := 0.0
	for _, u := range units {
		total += u.Areas.Total
	}
	return total
}

func VacantCount(units []models.Unit) int {
	n := 0
	for _, u := range units {
		if u.Status == models.StatusVacant {
			n++
		}
	}
	return n
}

// CategoryDistribution returns F&B, Retail and Other shares in that order.
// An empty collection divides by one so every share reads 0%.
func CategoryDistribution(units []models.Unit) []CategoryShare {
	counts := make(map[models.Category]int)
	for _, u := range units {
		counts[u.Category]++
	}

	denom := len(units)
	if denom == 0 {
		denom = 1
	}

	shares := make([]CategoryShare, 0, 3)
	for _, c := range models.Categories() {
		shares = append(shares, CategoryShare{
			Category:   c,
			Count:      counts[c],
			Percentage: int(math.Round(float64(counts[c]) / float64(denom) * 100)),
		})
	}
	return shares
}

// FilterUnits keeps units whose trading name, unit number or tenant contains
// the query (case-insensitive) and whose asset matches the filter.
func FilterUnits(units []models.Unit, query, assetFilter string) []models.Unit {
	q := strings.ToLower(query)
	out := make([]models.Unit, 0, len(units))
	for _, u := range units {
		if !matchesQuery(u, q) {
			continue
		}
		if assetFilter != "" && assetFilter != AllAssets && u.AssetName != assetFilter {
			continue
		}
		out = append(out, u)
	}
	return out
}

func matchesQuery(u models.Unit, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.TradingName), q) ||
		strings.Contains(strings.ToLower(u.UnitNumber), q) ||
		strings.Contains(strings.ToLower(u.CurrentTenant), q)
}

// AssetNames lists distinct asset names in first-seen order.
func AssetNames(units []models.Unit) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, u := range units {
		if _, ok := seen[u.AssetName]; ok {
			continue
		}
		seen[u.AssetName] = struct{}{}
		names = append(names, u.AssetName)
	}
	return names
}

// Filter memoizes FilterUnits on the last (units, query, filter) triple.
// The zero value is ready to use. Not safe for concurrent use.
type Filter struct {
	units  []models.Unit
	query  string
	asset  string
	result []models.Unit
	valid  bool
}

func (f *Filter) Apply(units []models.Unit, query, assetFilter string) []models.Unit {
	if f.valid && sameSlice(f.units, units) && f.query == query && f.asset == assetFilter {
		return f.result
	}
	f.units = units
	f.query = query
	f.asset = assetFilter
	f.result = FilterUnits(units, query, assetFilter)
	f.valid = true
	return f.result
}

// sameSlice compares slice identity, not contents. States are replaced
// wholesale on every mutation, so identity is enough to detect change.
func sameSlice(a, b []models.Unit) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
