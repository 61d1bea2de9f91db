package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"govista/domain/chart"
	"govista/internal/config"
	"govista/ports"
)

const suggesterSystem = "You are a business-intelligence assistant. " +
	"Given a sampled tabular dataset, you propose chart configurations and " +
	"short narrative insights. Respond with valid JSON only."

// suggestionPayload is the best-effort JSON shape expected back from
// the model. Extra fields are ignored; missing ones produce an empty
// result rather than an error.
type suggestionPayload struct {
	Suggestions []chart.Suggestion `json:"suggestions"`
	Insights    string             `json:"insights"`
}

// NewSuggestionClient builds the structured client typed for the
// suggestion payload; the payload type itself stays package-private.
func NewSuggestionClient(cfg *config.AIConfig) *StructuredClient[suggestionPayload] {
	return NewStructuredClient[suggestionPayload](cfg)
}

// AISuggester implements ports.Suggester against the hosted model.
// The model's reasoning is opaque; this adapter only shapes the
// request, parses the response, and discards suggestions referencing
// fields the dataset does not have.
type AISuggester struct {
	client *StructuredClient[suggestionPayload]
}

// NewAISuggester creates an AI-backed suggester
func NewAISuggester(client *StructuredClient[suggestionPayload]) *AISuggester {
	return &AISuggester{client: client}
}

// SuggestCharts sends a sampled dataset to the model and returns its
// suggestions in the shared Suggestion shape.
func (s *AISuggester) SuggestCharts(ctx context.Context, req ports.SuggestionRequest) (*ports.SuggestionResult, error) {
	prompt, err := buildSuggestionPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build suggestion prompt: %w", err)
	}

	payload, err := s.client.GetJSONResponse(ctx, prompt, suggesterSystem)
	if err != nil {
		return nil, err
	}

	valid := filterSuggestions(payload.Suggestions, req.Headers, req.MaxSuggestions)
	log.Printf("[AISuggester] Model returned %d suggestions, %d kept", len(payload.Suggestions), len(valid))

	return &ports.SuggestionResult{
		Suggestions: valid,
		Insights:    payload.Insights,
		Origin:      "ai",
	}, nil
}

// buildSuggestionPrompt renders the sampled dataset and its profile
// into the model prompt.
func buildSuggestionPrompt(req ports.SuggestionRequest) (string, error) {
	sample, err := json.Marshal(req.SampleRows)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Analyze this dataset sample and suggest up to ")
	fmt.Fprintf(&b, "%d chart configurations.\n\n", req.MaxSuggestions)
	fmt.Fprintf(&b, "Columns: %s\n", strings.Join(req.Headers, ", "))

	if req.Profile != nil {
		b.WriteString("Column types:\n")
		for _, h := range req.Profile.Headers {
			col := req.Profile.Columns[h]
			fmt.Fprintf(&b, "- %s: %s (unique=%d", h, col.Type, col.UniqueCount)
			if col.IsIdentifier {
				b.WriteString(", identifier")
			}
			b.WriteString(")\n")
		}
	}

	fmt.Fprintf(&b, "\nSample rows (JSON):\n%s\n\n", sample)
	b.WriteString(`Respond with a JSON object of this exact shape:
{
  "suggestions": [
    {
      "chartType": "bar|line|area|pie|scatter",
      "config": {"xAxis": "...", "yAxis": "...", "groupBy": "...", "title": "..."},
      "description": "why this chart is useful"
    }
  ],
  "insights": "2-3 sentences of markdown describing notable trends"
}
Only reference columns that exist in the dataset.`)

	return b.String(), nil
}

// filterSuggestions drops suggestions with unknown chart kinds or
// axis fields the dataset does not contain.
func filterSuggestions(in []chart.Suggestion, headers []string, max int) []chart.Suggestion {
	known := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		known[h] = struct{}{}
	}

	var out []chart.Suggestion
	for _, sug := range in {
		if max > 0 && len(out) >= max {
			break
		}
		if !sug.ChartType.Valid() {
			continue
		}
		if _, ok := known[sug.Config.XAxis]; !ok {
			continue
		}
		if _, ok := known[sug.Config.YAxis]; !ok {
			continue
		}
		if sug.Config.Title == "" {
			sug.Config.Title = sug.ChartType.Title()
		}
		out = append(out, sug)
	}
	return out
}
