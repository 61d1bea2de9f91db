package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"govista/domain/chart"
	"govista/domain/dataset"
	"govista/internal/config"
	"govista/ports"
)

func TestCleanJSONContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain object", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
		{"prefix chatter", "Here is the JSON you asked for:\n{\"a\": 1}", `{"a": 1}`},
		{"prefix chatter array", "Sure thing:\n[1, 2]", `[1, 2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONContent(tt.content); got != tt.want {
				t.Errorf("cleanJSONContent(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestFilterSuggestions(t *testing.T) {
	headers := []string{"date", "region", "sales"}
	in := []chart.Suggestion{
		{ChartType: chart.KindLine, Config: chart.SuggestionConfig{XAxis: "date", YAxis: "sales"}},
		{ChartType: chart.Kind("donut"), Config: chart.SuggestionConfig{XAxis: "date", YAxis: "sales"}},
		{ChartType: chart.KindBar, Config: chart.SuggestionConfig{XAxis: "hallucinated", YAxis: "sales"}},
		{ChartType: chart.KindBar, Config: chart.SuggestionConfig{XAxis: "region", YAxis: "imaginary"}},
		{ChartType: chart.KindPie, Config: chart.SuggestionConfig{XAxis: "region", YAxis: "sales", Title: "Sales share"}},
	}

	out := filterSuggestions(in, headers, 10)

	if len(out) != 2 {
		t.Fatalf("got %d suggestions, want 2 (unknown kinds and fields dropped)", len(out))
	}
	if out[0].ChartType != chart.KindLine || out[1].ChartType != chart.KindPie {
		t.Errorf("kept kinds = %s, %s", out[0].ChartType, out[1].ChartType)
	}
	// Missing titles get the kind's display title
	if out[0].Config.Title != chart.KindLine.Title() {
		t.Errorf("default title = %q, want %q", out[0].Config.Title, chart.KindLine.Title())
	}
	if out[1].Config.Title != "Sales share" {
		t.Errorf("explicit title overwritten: %q", out[1].Config.Title)
	}
}

func TestFilterSuggestionsCap(t *testing.T) {
	headers := []string{"a", "b"}
	in := make([]chart.Suggestion, 5)
	for i := range in {
		in[i] = chart.Suggestion{ChartType: chart.KindBar, Config: chart.SuggestionConfig{XAxis: "a", YAxis: "b"}}
	}

	if out := filterSuggestions(in, headers, 3); len(out) != 3 {
		t.Errorf("got %d suggestions, want capped at 3", len(out))
	}
	if out := filterSuggestions(in, headers, 0); len(out) != 5 {
		t.Errorf("max=0 must mean uncapped, got %d", len(out))
	}
}

func TestBuildSuggestionPrompt(t *testing.T) {
	req := ports.SuggestionRequest{
		Headers:    []string{"date", "sales"},
		SampleRows: []dataset.Row{{"date": "2024-01-01", "sales": 100.0}},
		Profile: &dataset.DatasetProfile{
			Headers: []string{"date", "sales"},
			Columns: map[string]dataset.ColumnProfile{
				"date":  {Name: "date", Type: dataset.TypeDate, UniqueCount: 1},
				"sales": {Name: "sales", Type: dataset.TypeNumeric, UniqueCount: 1},
			},
		},
		MaxSuggestions: 3,
	}

	prompt, err := buildSuggestionPrompt(req)
	if err != nil {
		t.Fatalf("buildSuggestionPrompt failed: %v", err)
	}
	for _, want := range []string{"date, sales", "2024-01-01", "numeric", "chartType", "insights"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSuggestChartsRoundTrip(t *testing.T) {
	payload := suggestionPayload{
		Suggestions: []chart.Suggestion{
			{
				ChartType:   chart.KindBar,
				Config:      chart.SuggestionConfig{XAxis: "region", YAxis: "sales", Title: "Sales by region"},
				Description: "Compares revenue across regions.",
			},
			{
				ChartType: chart.KindLine,
				Config:    chart.SuggestionConfig{XAxis: "not_a_column", YAxis: "sales"},
			},
		},
		Insights: "**Sales** are trending up.",
	}
	content, _ := json.Marshal(payload)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var body struct {
			ResponseFormat ResponseFormat `json:"response_format"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.ResponseFormat.Type != "json_object" {
			t.Errorf("response_format = %q, want json_object", body.ResponseFormat.Type)
		}

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": "```json\n" + string(content) + "\n```"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	cfg := &config.AIConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gpt-4o-mini",
		Timeout: 5 * time.Second,
	}
	s := NewAISuggester(NewSuggestionClient(cfg))

	res, err := s.SuggestCharts(context.Background(), ports.SuggestionRequest{
		Headers:        []string{"region", "sales"},
		MaxSuggestions: 5,
	})
	if err != nil {
		t.Fatalf("SuggestCharts failed: %v", err)
	}
	if res.Origin != "ai" {
		t.Errorf("Origin = %q, want ai", res.Origin)
	}
	if len(res.Suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1 (hallucinated column dropped)", len(res.Suggestions))
	}
	if res.Suggestions[0].Config.Title != "Sales by region" {
		t.Errorf("title = %q", res.Suggestions[0].Config.Title)
	}
	if res.Insights != "**Sales** are trending up." {
		t.Errorf("insights = %q", res.Insights)
	}
}

func TestSuggestChartsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cfg := &config.AIConfig{APIKey: "k", BaseURL: srv.URL, Model: "gpt-4o-mini", Timeout: 5 * time.Second}
	s := NewAISuggester(NewSuggestionClient(cfg))

	if _, err := s.SuggestCharts(context.Background(), ports.SuggestionRequest{Headers: []string{"a"}}); err == nil {
		t.Fatal("expected an error on non-200 response")
	}
}
