package app

import (
	"context"

	"govista/domain/chart"
	"govista/domain/core"
	"govista/domain/dataset"
	"govista/internal"
	"govista/internal/cache"
	"govista/internal/charts"
	"govista/internal/config"
	"govista/internal/fields"
	"govista/ports"
)

// AnalysisService orchestrates the analysis pipeline: ingest ->
// profile -> select chart fields -> reduce rows for rendering ->
// suggestions (AI with heuristic fallback). Datasets are held in the
// bounded TTL cache that wraps ingestion.
type AnalysisService struct {
	profiler *fields.Profiler
	selector *charts.Selector
	reducer  *charts.Reducer
	store    *cache.Cache

	ai       ports.Suggester // nil when the AI collaborator is not configured
	fallback ports.Suggester

	data config.DataConfig
}

// NewAnalysisService wires the pipeline. ai may be nil; fallback must
// not be.
func NewAnalysisService(store *cache.Cache, rng ports.RNG, ai, fallback ports.Suggester, data config.DataConfig) *AnalysisService {
	return &AnalysisService{
		profiler: fields.NewProfiler(),
		selector: charts.NewSelector(rng),
		reducer:  charts.NewReducer(rng),
		store:    store,
		ai:       ai,
		fallback: fallback,
		data:     data,
	}
}

// RegisterDataset stores an ingested dataset and returns its ID
func (s *AnalysisService) RegisterDataset(ds *dataset.Dataset) core.DatasetID {
	s.store.Set(ds.ID.String(), ds)
	return ds.ID
}

// Dataset retrieves a previously registered dataset
func (s *AnalysisService) Dataset(id string) (*dataset.Dataset, error) {
	v, ok := s.store.Get(id)
	if !ok {
		return nil, core.NewNotFoundError("dataset", id)
	}
	ds, ok := v.(*dataset.Dataset)
	if !ok {
		return nil, core.NewNotFoundError("dataset", id)
	}
	return ds, nil
}

// Profile classifies and scores every column of a dataset
func (s *AnalysisService) Profile(ds *dataset.Dataset) *dataset.DatasetProfile {
	return s.profiler.BuildProfile(ds)
}

// ProfileWithCorrelations additionally computes pairwise Pearson
// correlations between numeric columns
func (s *AnalysisService) ProfileWithCorrelations(ds *dataset.Dataset) *dataset.DatasetProfile {
	p := fields.NewProfiler()
	p.Correlations = true
	return p.BuildProfile(ds)
}

// ChartResult is a ready-to-render chart: resolved configuration plus
// the reduced row set.
type ChartResult struct {
	Config chart.Config  `json:"config"`
	Rows   []dataset.Row `json:"rows"`
}

// BuildChart resolves fields for a chart kind and reduces the rows
// for rendering. Overrides win field by field. The source dataset is
// never mutated; synthesis happens on a working copy.
func (s *AnalysisService) BuildChart(ds *dataset.Dataset, kind chart.Kind, ov chart.Overrides) ChartResult {
	profile := s.profiler.BuildProfile(ds)
	cfg, working := s.selector.SelectFields(ds, profile, kind, ov)

	rows := s.reducer.Reduce(working.Rows, charts.ReduceOptions{
		MaxRows:  s.data.MaxRenderRows,
		Strategy: charts.SampleEvenly,
	})
	rows = s.reducer.ReduceForRender(rows, cfg)

	return ChartResult{Config: cfg, Rows: rows}
}

// Reduce exposes plain row reduction for the preview endpoint
func (s *AnalysisService) Reduce(rows []dataset.Row, opts charts.ReduceOptions) []dataset.Row {
	return s.reducer.Reduce(rows, opts)
}

// Suggest asks the AI collaborator for chart suggestions over a
// sampled dataset, falling back to the deterministic heuristic
// generator when the AI is unconfigured or fails. Both paths return
// the identical Suggestion shape.
func (s *AnalysisService) Suggest(ctx context.Context, ds *dataset.Dataset, max int) *ports.SuggestionResult {
	profile := s.profiler.BuildProfile(ds)

	sample := s.reducer.Reduce(ds.Rows, charts.ReduceOptions{
		MaxRows:  s.data.MaxSampleRows,
		Strategy: charts.SampleEvenly,
	})

	req := ports.SuggestionRequest{
		Headers:        ds.Headers,
		SampleRows:     sample,
		Profile:        profile,
		MaxSuggestions: max,
	}

	if s.ai != nil {
		result, err := s.ai.SuggestCharts(ctx, req)
		if err == nil && result != nil {
			return result
		}
		internal.DefaultLogger.Warn("[AnalysisService] AI suggestions unavailable, using heuristic fallback: %v", err)
	}

	result, err := s.fallback.SuggestCharts(ctx, req)
	if err != nil || result == nil {
		// The heuristic path cannot fail, but keep the contract total
		return &ports.SuggestionResult{Origin: "heuristic"}
	}
	return result
}
