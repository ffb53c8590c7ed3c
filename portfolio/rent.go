// ABOUTME: Currency sums for rent schedules and deposits
// ABOUTME: Uses decimal arithmetic so totals match the stored figures exactly
package portfolio

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/harperreed/leasebook/models"
)

// AnnualRent returns the base rent for the given schedule year, or zero
// when the unit has no entry for it.
func AnnualRent(u models.Unit, year int) decimal.Decimal {
	for _, item := range u.RentSchedule {
		if item.Year == year {
			return decimal.NewFromFloat(item.BaseRent)
		}
	}
	return decimal.Zero
}

// ScheduleTotal sums base rent across the whole schedule.
func ScheduleTotal(u models.Unit) decimal.Decimal {
	total := decimal.Zero
	for _, item := range u.RentSchedule {
		total = total.Add(decimal.NewFromFloat(item.BaseRent))
	}
	return total
}

// TotalSecurityDeposits sums the absolute security deposit of every unit.
func TotalSecurityDeposits(units []models.Unit) decimal.Decimal {
	total := decimal.Zero
	for _, u := range units {
		total = total.Add(decimal.NewFromFloat(u.CommercialTerms.SecurityDeposit))
	}
	return total
}

// RentPerSqft divides the year's base rent by the unit's stored total area.
// Units with no area report zero.
func RentPerSqft(u models.Unit, year int) decimal.Decimal {
	if u.Areas.Total <= 0 {
		return decimal.Zero
	}
	return AnnualRent(u, year).Div(decimal.NewFromFloat(u.Areas.Total)).Round(2)
}

// FormatMoney renders an amount with thousands separators and two decimals.
// Rounding stays in decimal; humanize only groups the whole part.
func FormatMoney(d decimal.Decimal) string {
	abs := d.Abs().Round(2)
	fixed := abs.StringFixed(2)
	out := humanize.Comma(abs.IntPart()) + fixed[len(fixed)-3:]
	if d.Round(2).IsNegative() {
		out = "-" + out
	}
	return out
}
