// Package heuristic is the deterministic suggestion fallback used
// when the LLM collaborator is unavailable. It produces the same
// Suggestion shape as the AI path so consumers cannot tell them
// apart structurally.
package heuristic

import (
	"context"
	"fmt"
	"log"

	"govista/domain/chart"
	"govista/internal/charts"
	"govista/ports"
)

// Suggester derives chart suggestions from the classified candidate
// pools using fixed rules. Synthetic demo fields are never suggested;
// every suggestion references real columns only.
type Suggester struct{}

// NewSuggester creates the heuristic fallback suggester
func NewSuggester() *Suggester {
	return &Suggester{}
}

// SuggestCharts builds rule-based suggestions from the request's
// dataset profile. It never fails: with no usable fields it simply
// returns an empty suggestion list.
func (s *Suggester) SuggestCharts(ctx context.Context, req ports.SuggestionRequest) (*ports.SuggestionResult, error) {
	result := &ports.SuggestionResult{Origin: "heuristic"}
	if req.Profile == nil {
		return result, nil
	}

	pools := charts.BuildPools(req.Profile)
	max := req.MaxSuggestions
	if max <= 0 {
		max = 3
	}

	add := func(sug chart.Suggestion) {
		if len(result.Suggestions) < max {
			result.Suggestions = append(result.Suggestions, sug)
		}
	}

	// Time series first: a date axis with a numeric measure is the
	// strongest signal in tabular business data
	if len(pools.Date) > 0 && len(pools.Numeric) > 0 {
		sug := chart.Suggestion{
			ChartType: chart.KindLine,
			Config: chart.SuggestionConfig{
				XAxis: pools.Date[0],
				YAxis: pools.Numeric[0],
				Title: fmt.Sprintf("%s over %s", pools.Numeric[0], pools.Date[0]),
			},
			Description: fmt.Sprintf("Shows how %s changes over %s.", pools.Numeric[0], pools.Date[0]),
		}
		if g := groupByCandidate(pools, sug.Config.XAxis); g != "" {
			sug.Config.GroupBy = g
			sug.Description += fmt.Sprintf(" Split by %s to compare segments.", g)
		}
		add(sug)
	}

	// Categorical comparison
	if len(pools.GoodCategory) > 0 && len(pools.Numeric) > 0 {
		cat := pools.GoodCategory[0]
		add(chart.Suggestion{
			ChartType: chart.KindBar,
			Config: chart.SuggestionConfig{
				XAxis: cat,
				YAxis: pools.Numeric[0],
				Title: fmt.Sprintf("%s by %s", pools.Numeric[0], cat),
			},
			Description: fmt.Sprintf("Compares %s across %s groups.", pools.Numeric[0], cat),
		})

		// Share-of-total view for legible category counts
		if req.Profile.Columns[cat].UniqueCount <= 8 {
			add(chart.Suggestion{
				ChartType: chart.KindPie,
				Config: chart.SuggestionConfig{
					XAxis: cat,
					YAxis: pools.Numeric[0],
					Title: fmt.Sprintf("%s share by %s", pools.Numeric[0], cat),
				},
				Description: fmt.Sprintf("Shows each %s group's share of total %s.", cat, pools.Numeric[0]),
			})
		}
	}

	// Relationship between the two strongest numeric signals
	if len(pools.Numeric) >= 2 {
		sug := chart.Suggestion{
			ChartType: chart.KindScatter,
			Config: chart.SuggestionConfig{
				XAxis: pools.Numeric[0],
				YAxis: pools.Numeric[1],
				Title: fmt.Sprintf("%s vs %s", pools.Numeric[0], pools.Numeric[1]),
			},
			Description: fmt.Sprintf("Explores the relationship between %s and %s.", pools.Numeric[0], pools.Numeric[1]),
		}
		if len(pools.GoodCategory) > 0 {
			sug.Config.GroupBy = pools.GoodCategory[0]
		}
		add(sug)
	}

	log.Printf("[HeuristicSuggester] Produced %d suggestions", len(result.Suggestions))
	return result, nil
}

// groupByCandidate picks a good categorical field distinct from the
// chosen x axis
func groupByCandidate(pools charts.CandidatePools, xField string) string {
	for _, g := range pools.GoodCategory {
		if g != xField {
			return g
		}
	}
	return ""
}
