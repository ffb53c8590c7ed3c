// ABOUTME: Web UI server with embedded templates
// ABOUTME: Provides a read-only portfolio dashboard, unit pages and the xlsx download
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/goccy/go-graphviz"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/harperreed/leasebook/app"
	"github.com/harperreed/leasebook/models"
	"github.com/harperreed/leasebook/portfolio"
	"github.com/harperreed/leasebook/viz"
)

//go:embed templates/*
var templatesFS embed.FS

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Tabs of the unit page, in display order.
var unitTabs = []struct {
	Key   string
	Title string
}{
	{"overview", "Overview"},
	{"timeline", "Timeline"},
	{"terms", "Lease Terms"},
	{"rent", "Rent Schedule"},
}

type Server struct {
	app       *app.App
	templates *template.Template
	logger    *zap.Logger
}

func NewServer(a *app.App, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	funcMap := template.FuncMap{
		"area": viz.FormatArea,
		"money": func(v float64) string {
			return portfolio.FormatMoney(decimal.NewFromFloat(v))
		},
		"deposit": viz.DepositPercent,
		"percent": func(v float64) string {
			return fmt.Sprintf("%g%%", v)
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{app: a, templates: tmpl, logger: logger}, nil
}

// Handler returns the routes without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /units", s.handleUnits)
	mux.HandleFunc("GET /units/{id}", s.handleUnit)
	mux.HandleFunc("GET /export", s.handleExport)
	mux.HandleFunc("GET /graph.svg", s.handleGraph)
	mux.HandleFunc("GET /api/state", s.handleState)
	return mux
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("starting web server", zap.String("url", "http://localhost"+addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data any) {
	// Render into a buffer so a template error can still produce a 500.
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("template error", zap.String("template", name), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats := portfolio.Dashboard(s.app.State(), s.app.Now())

	data := map[string]any{
		"Title":           "Dashboard",
		"ContentTemplate": "dashboard-content",
		"Stats":           stats,
		"Deposits":        portfolio.FormatMoney(stats.DepositsHeld),
	}
	s.renderTemplate(w, "layout.html", data)
}

type unitRow struct {
	ID          string
	AssetName   string
	UnitNumber  string
	TradingName string
	Category    models.Category
	Area        float64
	Tenant      string
	Status      models.UnitStatus
	RED         string
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	asset := r.URL.Query().Get("asset")
	if asset == "" {
		asset = portfolio.AllAssets
	}

	state := s.app.State()
	units := portfolio.FilterUnits(state.Units, query, asset)

	rows := make([]unitRow, 0, len(units))
	for _, u := range units {
		rows = append(rows, unitRow{
			ID:          u.ID,
			AssetName:   u.AssetName,
			UnitNumber:  u.UnitNumber,
			TradingName: u.TradingName,
			Category:    u.Category,
			Area:        u.Areas.Total,
			Tenant:      u.CurrentTenant,
			Status:      u.Status,
			RED:         u.CommercialTerms.RED,
		})
	}

	data := map[string]any{
		"Title":           "Units",
		"ContentTemplate": "units-content",
		"Query":           query,
		"Asset":           asset,
		"Assets":          append([]string{portfolio.AllAssets}, portfolio.AssetNames(state.Units)...),
		"Units":           rows,
		"Total":           len(state.Units),
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleUnit(w http.ResponseWriter, r *http.Request) {
	u, err := s.app.Unit(r.PathValue("id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	tab := r.URL.Query().Get("tab")
	valid := false
	for _, t := range unitTabs {
		if t.Key == tab {
			valid = true
		}
	}
	if !valid {
		tab = unitTabs[0].Key
	}

	data := map[string]any{
		"Title":           u.TradingName,
		"ContentTemplate": "unit-content",
		"Unit":            u,
		"Tab":             tab,
		"Tabs":            unitTabs,
		"ScheduleTotal":   portfolio.FormatMoney(portfolio.ScheduleTotal(u)),
		"AreaWarning":     !u.Areas.Consistent(),
		"AreaSum":         u.Areas.Sum(),
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	name, err := s.app.WriteExport(&buf)
	if err != nil {
		s.logger.Error("export failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	svg, err := viz.PortfolioGraph(r.Context(), s.app.State(), graphviz.SVG)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.app.State()); err != nil {
		s.logger.Error("failed to encode state", zap.Error(err))
	}
}
