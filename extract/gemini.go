// ABOUTME: Gemini-backed lease term extractor
// ABOUTME: Calls the generative language API with an API key or OAuth token
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	generativelanguage "google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-3-flash-preview"

const prompt = `Extract retail lease terms from the following text extracted from a PDF.
Focus on finding: Asset Name, Unit Number, Trading Name, Category (Retail or F&B), Area details (Indoor, Terrace, Mezzanine, etc.), Permitted Use, Tenant Name, Dates (Commencement, RCD, RED), Term Duration, and Deposits.
Respond with a single JSON object using the keys assetName, unitNumber, tradingName, category, permittedUse, tenantName, areas {indoor, terrace, mezzanine, outdoor, total} and commercialTerms {rcd, red, commencementDate, termDuration, securityDeposit}.

TEXT:
`

// responseSchema holds the model to the Extraction shape.
var responseSchema = &generativelanguage.Schema{
	Type: "OBJECT",
	Properties: map[string]generativelanguage.Schema{
		"assetName":    {Type: "STRING"},
		"unitNumber":   {Type: "STRING"},
		"tradingName":  {Type: "STRING"},
		"category":     {Type: "STRING", Description: `Must be "Retail" or "F&B"`},
		"permittedUse": {Type: "STRING"},
		"tenantName":   {Type: "STRING"},
		"areas": {
			Type: "OBJECT",
			Properties: map[string]generativelanguage.Schema{
				"indoor":    {Type: "NUMBER"},
				"terrace":   {Type: "NUMBER"},
				"mezzanine": {Type: "NUMBER"},
				"outdoor":   {Type: "NUMBER"},
				"total":     {Type: "NUMBER"},
			},
		},
		"commercialTerms": {
			Type: "OBJECT",
			Properties: map[string]generativelanguage.Schema{
				"rcd":              {Type: "STRING"},
				"red":              {Type: "STRING"},
				"commencementDate": {Type: "STRING"},
				"termDuration":     {Type: "STRING"},
				"securityDeposit":  {Type: "NUMBER"},
			},
		},
	},
}

// ErrNoCredentials is returned when neither an API key nor a token is set.
var ErrNoCredentials = errors.New("gemini extractor needs an API key or OAuth token")

type GeminiConfig struct {
	APIKey     string
	OAuthToken string

	// TokenSource is used when neither APIKey nor OAuthToken is set,
	// typically a refreshing source built from a saved login.
	TokenSource oauth2.TokenSource

	Model string
	// Endpoint overrides the API base URL.
	Endpoint string
}

// Gemini asks a hosted model to extract lease terms. Calls are not retried.
type Gemini struct {
	svc    *generativelanguage.Service
	model  string
	logger *zap.Logger
}

func NewGemini(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*Gemini, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var opts []option.ClientOption
	switch {
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	case cfg.OAuthToken != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.OAuthToken})
		opts = append(opts, option.WithHTTPClient(oauth2.NewClient(ctx, ts)))
	case cfg.TokenSource != nil:
		opts = append(opts, option.WithHTTPClient(oauth2.NewClient(ctx, cfg.TokenSource)))
	default:
		return nil, ErrNoCredentials
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := generativelanguage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create generative language client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	if !strings.HasPrefix(model, "models/") {
		model = "models/" + model
	}

	return &Gemini{svc: svc, model: model, logger: logger}, nil
}

func (g *Gemini) Extract(ctx context.Context, text string) (*Extraction, error) {
	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{{
			Role:  "user",
			Parts: []*generativelanguage.Part{{Text: prompt + text}},
		}},
		GenerationConfig: &generativelanguage.GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}

	resp, err := g.svc.Models.GenerateContent(g.model, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", g.model, err)
	}

	out := responseText(resp)
	e, err := Parse(out)
	if err != nil {
		g.logger.Warn("failed to parse extraction response",
			zap.String("model", g.model),
			zap.Int("length", len(out)),
			zap.Error(err))
		return nil, nil
	}
	return e, nil
}

func responseText(resp *generativelanguage.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}
