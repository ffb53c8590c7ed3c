// ABOUTME: Data models for the retail lease portfolio
// ABOUTME: Defines Unit, Asset, AuditLog and the persisted AppState document
package models

// CurrentVersion is written by every save. Documents without a version
// field are the legacy v0 shape and are read unchanged.
const CurrentVersion = 1

type Asset struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AreaBreakdown holds unit areas in square feet. Total is stored as given
// and never recomputed from the parts.
type AreaBreakdown struct {
	Indoor    float64 `json:"indoor"`
	Terrace   float64 `json:"terrace"`
	Mezzanine float64 `json:"mezzanine"`
	Outdoor   float64 `json:"outdoor"`
	Other     float64 `json:"other"`
	Total     float64 `json:"total"`
}

// Sum adds the five component areas.
func (a AreaBreakdown) Sum() float64 {
	return a.Indoor + a.Terrace + a.Mezzanine + a.Outdoor + a.Other
}

// Consistent reports whether the stored total matches the component sum.
// It is only used to flag suspicious data in views.
func (a AreaBreakdown) Consistent() bool {
	diff := a.Total - a.Sum()
	return diff < 0.005 && diff > -0.005
}

type RentScheduleItem struct {
	ID            string  `json:"id"`
	Year          int     `json:"year"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	BaseRent      float64 `json:"baseRent"`
	SqftRate      float64 `json:"sqftRate"`
	TORPercentage float64 `json:"torPercentage"`
}

// CommercialTerms keeps lease dates as display strings; nothing parses them
// except the best-effort expiry check in the portfolio package.
type CommercialTerms struct {
	RCD                    string  `json:"rcd"`
	RED                    string  `json:"red"`
	CommencementDate       string  `json:"commencementDate"`
	TermDuration           string  `json:"termDuration"`
	FitoutPeriod           string  `json:"fitoutPeriod"`
	RentFreePeriod         string  `json:"rentFreePeriod"`
	SecurityDeposit        float64 `json:"securityDeposit"`
	FitoutDeposit          float64 `json:"fitoutDeposit"`
	SecurityDepositPercent float64 `json:"securityDepositPercent"`
	FitoutDepositPercent   float64 `json:"fitoutDepositPercent"`
}

type DocumentEntry struct {
	ID       string         `json:"id"`
	UnitID   string         `json:"unitId"`
	Type     string         `json:"type"`
	Date     string         `json:"date"`
	Landlord string         `json:"landlord"`
	Tenant   string         `json:"tenant"`
	Status   DocumentStatus `json:"status"`
	FileName string         `json:"fileName,omitempty"`
	FileData string         `json:"fileData,omitempty"` // base64
}

type Unit struct {
	ID                string             `json:"id"`
	AssetID           string             `json:"assetId"`
	AssetName         string             `json:"assetName"`
	UnitNumber        string             `json:"unitNumber"`
	TradingName       string             `json:"tradingName"`
	Category          Category           `json:"category"`
	Areas             AreaBreakdown      `json:"areas"`
	PermittedUse      string             `json:"permittedUse"`
	Status            UnitStatus         `json:"status"`
	CurrentTenant     string             `json:"currentTenant"`
	Landlord          string             `json:"landlord"`
	CarParkAllocation int                `json:"carParkAllocation"`
	Comments          string             `json:"comments"`
	CommercialTerms   CommercialTerms    `json:"commercialTerms"`
	RentSchedule      []RentScheduleItem `json:"rentSchedule"`
	Documents         []DocumentEntry    `json:"documents"`
}

type AuditLog struct {
	ID        string      `json:"id"`
	Timestamp string      `json:"timestamp"`
	Activity  string      `json:"activity"`
	Status    AuditStatus `json:"status"`
	Count     *int        `json:"count,omitempty"`
}

// AppState is the single persisted document.
type AppState struct {
	Version   int        `json:"version,omitempty"`
	Units     []Unit     `json:"units"`
	Assets    []Asset    `json:"assets"`
	AuditLogs []AuditLog `json:"auditLogs"`
}

// EmptyState returns a state with no records. Slices are non-nil so the
// document serializes as empty arrays rather than null.
func EmptyState() AppState {
	return AppState{
		Version:   CurrentVersion,
		Units:     []Unit{},
		Assets:    []Asset{},
		AuditLogs: []AuditLog{},
	}
}

// Normalize replaces nil slices with empty ones so a state decoded from a
// sparse document compares equal to the one that was saved.
func (s *AppState) Normalize() {
	if s.Units == nil {
		s.Units = []Unit{}
	}
	if s.Assets == nil {
		s.Assets = []Asset{}
	}
	if s.AuditLogs == nil {
		s.AuditLogs = []AuditLog{}
	}
	for i := range s.Units {
		if s.Units[i].RentSchedule == nil {
			s.Units[i].RentSchedule = []RentScheduleItem{}
		}
		if s.Units[i].Documents == nil {
			s.Units[i].Documents = []DocumentEntry{}
		}
	}
}

// Clone returns a deep copy of the state.
func (s AppState) Clone() AppState {
	out := AppState{
		Version:   s.Version,
		Units:     make([]Unit, len(s.Units)),
		Assets:    append([]Asset{}, s.Assets...),
		AuditLogs: make([]AuditLog, len(s.AuditLogs)),
	}
	for i, u := range s.Units {
		u.RentSchedule = append([]RentScheduleItem{}, u.RentSchedule...)
		u.Documents = append([]DocumentEntry{}, u.Documents...)
		out.Units[i] = u
	}
	for i, l := range s.AuditLogs {
		if l.Count != nil {
			c := *l.Count
			l.Count = &c
		}
		out.AuditLogs[i] = l
	}
	return out
}

// FindUnit returns the unit with the given id, or nil.
func (s *AppState) FindUnit(id string) *Unit {
	for i := range s.Units {
		if s.Units[i].ID == id {
			return &s.Units[i]
		}
	}
	return nil
}

// FindAssetByName does a case-sensitive lookup, matching how units carry
// the denormalized asset name.
func (s *AppState) FindAssetByName(name string) *Asset {
	for i := range s.Assets {
		if s.Assets[i].Name == name {
			return &s.Assets[i]
		}
	}
	return nil
}

// IntPtr is a small helper for optional counts.
func IntPtr(v int) *int {
	return &v
}
