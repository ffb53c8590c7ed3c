// ABOUTME: Built-in seed portfolio used when no stored document exists
// ABOUTME: Two assets, two fully detailed units and two audit entries
package models

// DefaultState returns a fresh copy of the seed portfolio. Callers may
// mutate the result freely.
func DefaultState() AppState {
	return AppState{
		Version: CurrentVersion,
		Assets: []Asset{
			{ID: "1", Name: "Opus"},
			{ID: "2", Name: "One by Omniyat"},
		},
		Units: []Unit{
			{
				ID:          "u1",
				AssetID:     "1",
				AssetName:   "Opus",
				UnitNumber:  "1B + 20",
				TradingName: "Revolver",
				Category:    CategoryFB,
				Areas: AreaBreakdown{
					Indoor: 10185,
					Total:  10185,
				},
				PermittedUse:      "Licensed Wood-fire restaurant",
				Status:            StatusOccupied,
				CurrentTenant:     "Gunpowder Restaurant LLC",
				Landlord:          "OPUS HM Limited & Andrei Kobzar",
				CarParkAllocation: 3,
				Comments:          "2 months Base Rent waived (August & September 2025). Relief reflected via adjusted Q3 2025 cheque.",
				CommercialTerms: CommercialTerms{
					RCD:                    "26 Feb 2025",
					RED:                    "25 Feb 2031",
					CommencementDate:       "15 Mar 2024",
					TermDuration:           "5 years",
					FitoutPeriod:           "11 Months",
					RentFreePeriod:         "7 months",
					SecurityDeposit:        283201,
					SecurityDepositPercent: 0.1,
				},
				RentSchedule: []RentScheduleItem{
					{ID: "rs1", Year: 1, StartDate: "2025-02-26", EndDate: "2026-02-25", BaseRent: 1200000, SqftRate: 117.82, TORPercentage: 10},
					{ID: "rs2", Year: 2, StartDate: "2026-02-26", EndDate: "2027-02-25", BaseRent: 1300000, SqftRate: 127.64, TORPercentage: 10},
				},
				Documents: []DocumentEntry{
					{ID: "d1", UnitID: "u1", Type: "Lease Agreement", Date: "21 Mar 2024", Status: DocumentActive, Landlord: "OPUS HM Limited", Tenant: "Gunpowder Restaurant LLC"},
					{ID: "d2", UnitID: "u1", Type: "Third Amendment", Date: "08 Oct 2025", Status: DocumentActive, Landlord: "OPUS HM Limited", Tenant: "Gunpowder Restaurant LLC"},
				},
			},
			{
				ID:          "u2",
				AssetID:     "1",
				AssetName:   "Opus",
				UnitNumber:  "1A",
				TradingName: "Maine",
				Category:    CategoryFB,
				Areas: AreaBreakdown{
					Indoor: 4725,
					Total:  4725,
				},
				PermittedUse:      "Restaurant & Bar",
				Status:            StatusOccupied,
				CurrentTenant:     "Water Grill Facilities Management",
				Landlord:          "Opus HM Limited",
				CarParkAllocation: 2,
				CommercialTerms: CommercialTerms{
					RCD:                    "Hotel Opening",
					RED:                    "Hotel Opening",
					CommencementDate:       "01 Jan 2023",
					TermDuration:           "3 years",
					FitoutPeriod:           "6 Months",
					RentFreePeriod:         "3 months",
					SecurityDeposit:        150000,
					FitoutDeposit:          50000,
					SecurityDepositPercent: 0.08,
					FitoutDepositPercent:   0.02,
				},
				RentSchedule: []RentScheduleItem{},
				Documents:    []DocumentEntry{},
			},
		},
		AuditLogs: []AuditLog{
			{ID: "l1", Timestamp: "30/01/2026 09:04:30 AM", Activity: "69 records processed", Status: AuditFlagged, Count: IntPtr(18)},
			{ID: "l2", Timestamp: "30/01/2026 09:04:29 AM", Activity: "69 records processed", Status: AuditFlagged, Count: IntPtr(18)},
		},
	}
}
