package ports

import (
	"context"

	"govista/domain/chart"
	"govista/domain/dataset"
)

// SuggestionRequest carries a sampled dataset and options to a
// suggestion backend. Rows are already reduced by the caller; the
// backend never sees the full dataset.
type SuggestionRequest struct {
	Headers        []string                `json:"headers"`
	SampleRows     []dataset.Row           `json:"sample_rows"`
	Profile        *dataset.DatasetProfile `json:"profile,omitempty"`
	MaxSuggestions int                     `json:"max_suggestions"`
}

// SuggestionResult is what a backend returns: chart suggestions plus
// optional narrative insight text (markdown).
type SuggestionResult struct {
	Suggestions []chart.Suggestion `json:"suggestions"`
	Insights    string             `json:"insights,omitempty"`

	// Origin records which backend produced the result ("ai" or
	// "heuristic"); the Suggestion shape itself is identical either way.
	Origin string `json:"origin"`
}

// Suggester produces chart suggestions for a sampled dataset. The
// LLM-backed implementation is opaque and best-effort; the heuristic
// implementation is the deterministic fallback used when the LLM is
// unavailable.
type Suggester interface {
	SuggestCharts(ctx context.Context, req SuggestionRequest) (*SuggestionResult, error)
}

// LLMClient is the low-level chat interface to a hosted model
type LLMClient interface {
	ChatCompletion(ctx context.Context, prompt string, systemMessage string) (string, error)
}
