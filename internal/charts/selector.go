package charts

import (
	"fmt"
	"log"
	"math"
	"sort"

	"govista/domain/chart"
	"govista/domain/dataset"
	"govista/ports"
)

// CandidatePools holds the axis candidates for one dataset, computed
// once per analysis and shared across chart kinds.
type CandidatePools struct {
	// Numeric fields sorted by score descending (best first)
	Numeric []string
	// Date fields in header order
	Date []string
	// Categorical fields in header order
	Category []string
	// Categorical fields with a unique-value count in [2,15], the
	// band considered legible for grouping and legends
	GoodCategory []string
}

// goodCategoryMin/Max bound the legible cardinality band
const (
	goodCategoryMin = 2
	goodCategoryMax = 15
)

// BuildPools derives the candidate pools from a dataset profile.
// Identifier-like columns never enter any pool.
func BuildPools(profile *dataset.DatasetProfile) CandidatePools {
	pools := CandidatePools{}

	for _, header := range profile.Headers {
		col := profile.Columns[header]
		if col.IsIdentifier {
			continue
		}

		switch col.Type {
		case dataset.TypeNumeric:
			if col.HasNonZero {
				pools.Numeric = append(pools.Numeric, header)
			}
		case dataset.TypeDate:
			pools.Date = append(pools.Date, header)
		default:
			pools.Category = append(pools.Category, header)
			if col.UniqueCount >= goodCategoryMin && col.UniqueCount <= goodCategoryMax {
				pools.GoodCategory = append(pools.GoodCategory, header)
			}
		}
	}

	// Best-scored first; stable so equal scores keep header order
	sort.SliceStable(pools.Numeric, func(i, j int) bool {
		return profile.Columns[pools.Numeric[i]].Score > profile.Columns[pools.Numeric[j]].Score
	})

	return pools
}

// Selector picks axis and group-by fields per chart kind. Explicit
// overrides always win field by field; only unspecified fields are
// auto-selected. When no numeric field qualifies for a required axis
// the selector synthesizes a demo column on a working copy of the
// dataset - the original is never touched - and marks the resulting
// config Synthetic so renderers can label it.
type Selector struct {
	rng ports.RNG
}

// NewSelector creates a selector with the given random source, used
// only for scatter-axis synthesis.
func NewSelector(rng ports.RNG) *Selector {
	if rng == nil {
		rng = ports.NewSeededRNG(1)
	}
	return &Selector{rng: rng}
}

// SelectFields resolves a full chart configuration. The returned
// dataset is the working copy to hand to the renderer: identical to
// the input unless a demo field was synthesized.
func (s *Selector) SelectFields(ds *dataset.Dataset, profile *dataset.DatasetProfile, kind chart.Kind, ov chart.Overrides) (chart.Config, *dataset.Dataset) {
	pools := BuildPools(profile)
	working := ds

	cfg := chart.Config{
		Kind:    kind,
		Title:   ov.Title,
		Margins: chart.DefaultMargins(),
	}
	if cfg.Title == "" {
		cfg.Title = kind.Title()
	}

	switch kind {
	case chart.KindPie:
		working = s.selectPie(&cfg, working, pools, ov)
	case chart.KindScatter:
		working = s.selectScatter(&cfg, working, pools, ov)
	default: // bar, line, area
		working = s.selectCartesian(&cfg, working, pools, ov)
	}

	if cfg.Synthetic {
		log.Printf("[Selector] No usable numeric field for %s chart; synthesized %q", kind, cfg.YField())
	}
	return cfg, working
}

// selectCartesian handles bar, line and area charts
func (s *Selector) selectCartesian(cfg *chart.Config, ds *dataset.Dataset, pools CandidatePools, ov chart.Overrides) *dataset.Dataset {
	// X axis: date, then good categorical, then any categorical,
	// then the first header as last resort
	cfg.XField = ov.XField
	if cfg.XField == "" {
		switch {
		case len(pools.Date) > 0:
			cfg.XField = pools.Date[0]
		case len(pools.GoodCategory) > 0:
			cfg.XField = pools.GoodCategory[0]
		case len(pools.Category) > 0:
			cfg.XField = pools.Category[0]
		case len(ds.Headers) > 0:
			cfg.XField = ds.Headers[0]
		}
	}

	working := ds
	if len(ov.YFields) > 0 {
		cfg.YFields = append([]string(nil), ov.YFields...)
	} else if len(pools.Numeric) > 0 {
		cfg.YFields = []string{pools.Numeric[0]}
	} else {
		working = s.synthesize(ds, cfg.Kind, demoFieldName(cfg.Kind))
		cfg.YFields = []string{demoFieldName(cfg.Kind)}
		cfg.Synthetic = true
	}

	cfg.GroupBy = ov.GroupBy
	if cfg.GroupBy == "" {
		for _, g := range pools.GoodCategory {
			if g != cfg.XField {
				cfg.GroupBy = g
				break
			}
		}
	}

	if cfg.XField == "" && len(working.Headers) > 0 {
		cfg.XField = working.Headers[0]
	}
	return working
}

// selectPie handles pie charts: x is the slice category, y the value
func (s *Selector) selectPie(cfg *chart.Config, ds *dataset.Dataset, pools CandidatePools, ov chart.Overrides) *dataset.Dataset {
	cfg.XField = ov.XField
	if cfg.XField == "" {
		switch {
		case len(pools.GoodCategory) > 0:
			cfg.XField = pools.GoodCategory[0]
		case len(pools.Category) > 0:
			cfg.XField = pools.Category[0]
		case len(ds.Headers) > 0:
			cfg.XField = ds.Headers[0]
		}
	}

	working := ds
	if len(ov.YFields) > 0 {
		cfg.YFields = append([]string(nil), ov.YFields...)
	} else if len(pools.Numeric) > 0 {
		cfg.YFields = []string{pools.Numeric[0]}
	} else {
		working = s.synthesize(ds, cfg.Kind, demoFieldName(cfg.Kind))
		cfg.YFields = []string{demoFieldName(cfg.Kind)}
		cfg.Synthetic = true
	}

	if cfg.XField == "" && len(working.Headers) > 0 {
		cfg.XField = working.Headers[0]
	}
	return working
}

// selectScatter handles scatter plots, which need two numeric axes
func (s *Selector) selectScatter(cfg *chart.Config, ds *dataset.Dataset, pools CandidatePools, ov chart.Overrides) *dataset.Dataset {
	working := ds
	numeric := pools.Numeric

	// Synthesize until two numeric axes exist
	for len(numeric) < 2 {
		name := demoFieldName(cfg.Kind)
		if containsString(numeric, name) {
			name = name + "_2"
		}
		working = s.synthesize(working, cfg.Kind, name)
		numeric = append(numeric, name)
		cfg.Synthetic = true
	}

	cfg.XField = ov.XField
	if cfg.XField == "" {
		cfg.XField = numeric[0]
	}
	if len(ov.YFields) > 0 {
		cfg.YFields = append([]string(nil), ov.YFields...)
	} else {
		y := numeric[1]
		if y == cfg.XField {
			y = numeric[0]
		}
		cfg.YFields = []string{y}
	}

	cfg.GroupBy = ov.GroupBy
	if cfg.GroupBy == "" && len(pools.GoodCategory) > 0 {
		cfg.GroupBy = pools.GoodCategory[0]
	}
	return working
}

// demoFieldName names the synthesized last-resort column per kind
func demoFieldName(kind chart.Kind) string {
	return fmt.Sprintf("demo_%s_value", kind)
}

// synthesize derives a demo column from the existing row order on a
// clone of the dataset. The shape is deterministic per chart kind so
// the placeholder stays visually meaningful: a sine wave for
// bar/line/area, repeating buckets for pie, pseudo-random points for
// scatter.
func (s *Selector) synthesize(ds *dataset.Dataset, kind chart.Kind, name string) *dataset.Dataset {
	working := ds.Clone()
	working.Headers = append(working.Headers, name)

	for i, row := range working.Rows {
		var v float64
		switch kind {
		case chart.KindPie:
			v = 10 + float64(i%5)*20
		case chart.KindScatter:
			v = s.rng.Float64() * 100
		default:
			v = math.Sin(float64(i)*0.3)*50 + 50
		}
		row[name] = v
	}
	return working
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
