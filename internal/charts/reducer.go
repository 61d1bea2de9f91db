package charts

import (
	"fmt"
	"regexp"
	"sort"

	"govista/domain/chart"
	"govista/domain/dataset"
	"govista/ports"
)

// SamplingStrategy selects which rows survive a reduction
type SamplingStrategy string

const (
	SampleFirst  SamplingStrategy = "first"
	SampleLast   SamplingStrategy = "last"
	SampleRandom SamplingStrategy = "random"
	// SampleEvenly is the default: deterministic index striding best
	// preserves ordering-related structure such as a time axis.
	SampleEvenly SamplingStrategy = "evenly"
)

// ReduceOptions controls down-sampling and field projection
type ReduceOptions struct {
	MaxRows  int              `json:"max_rows"`
	Strategy SamplingStrategy `json:"sampling_strategy"`
	// Fields, when non-empty, projects each row to the listed keys.
	// Keys absent from a given row are omitted, not nulled.
	Fields []string `json:"fields,omitempty"`
}

// Reducer down-samples and aggregates datasets too large or too
// high-cardinality for direct plotting.
type Reducer struct {
	rng ports.RNG
}

// NewReducer creates a reducer with the given random source, used
// only by the random sampling strategy.
func NewReducer(rng ports.RNG) *Reducer {
	if rng == nil {
		rng = ports.NewSeededRNG(1)
	}
	return &Reducer{rng: rng}
}

// Reduce returns at most MaxRows rows per the sampling strategy,
// then applies field projection. MaxRows <= 0 yields an empty result.
// Input rows are never mutated; projection builds new row maps.
func (r *Reducer) Reduce(rows []dataset.Row, opts ReduceOptions) []dataset.Row {
	if opts.MaxRows <= 0 {
		return []dataset.Row{}
	}

	sampled := rows
	if len(rows) > opts.MaxRows {
		switch opts.Strategy {
		case SampleFirst:
			sampled = rows[:opts.MaxRows]
		case SampleLast:
			sampled = rows[len(rows)-opts.MaxRows:]
		case SampleRandom:
			sampled = r.sampleRandom(rows, opts.MaxRows)
		default:
			sampled = sampleEvenly(rows, opts.MaxRows)
		}
	}

	return project(sampled, opts.Fields)
}

// sampleRandom draws maxRows rows without replacement: each draw
// removes the element from the candidate pool, so no duplicates
// appear even for degenerate inputs.
func (r *Reducer) sampleRandom(rows []dataset.Row, maxRows int) []dataset.Row {
	pool := make([]dataset.Row, len(rows))
	copy(pool, rows)

	out := make([]dataset.Row, 0, maxRows)
	for len(out) < maxRows && len(pool) > 0 {
		i := r.rng.Intn(len(pool))
		out = append(out, pool[i])
		pool = append(pool[:i], pool[i+1:]...)
	}
	return out
}

// sampleEvenly strides the index space: row floor(i*len/max) for each
// i in [0,max), skipping indices that exceed bounds.
func sampleEvenly(rows []dataset.Row, maxRows int) []dataset.Row {
	out := make([]dataset.Row, 0, maxRows)
	for i := 0; i < maxRows; i++ {
		idx := i * len(rows) / maxRows
		if idx >= len(rows) {
			continue
		}
		out = append(out, rows[idx])
	}
	return out
}

// project keeps only the listed keys per row, preserving original
// value types. Unknown field names are skipped per-row, not errors.
func project(rows []dataset.Row, fields []string) []dataset.Row {
	if len(fields) == 0 {
		return rows
	}
	out := make([]dataset.Row, len(rows))
	for i, row := range rows {
		slim := make(dataset.Row, len(fields))
		for _, f := range fields {
			if v, ok := row[f]; ok {
				slim[f] = v
			}
		}
		out[i] = slim
	}
	return out
}

// Render-time reduction: identifier bucketing and pie slice capping.

// idShapePattern matches identifier-shaped x values like "C1001"
var idShapePattern = regexp.MustCompile(`(?i)^[A-Z]([0-9]+)$`)

// maxDirectCategories is the unique-value count above which an
// identifier-shaped x axis gets bucketed instead of plotted directly
const maxDirectCategories = 10

// maxPieSlices caps rendered pie slices; anything past the top
// maxPieSlices-1 collapses into a single "Other" slice
const maxPieSlices = 8

// ReduceForRender applies the per-render reduction pipeline for a
// chart config: identifier bucketing for bar/line/area/pie, then the
// pie slice cap strictly after bucketing. Scatter rows pass through.
func (r *Reducer) ReduceForRender(rows []dataset.Row, cfg chart.Config) []dataset.Row {
	if cfg.Kind == chart.KindScatter {
		return rows
	}

	out := r.BucketRows(rows, cfg)
	if cfg.Kind == chart.KindPie {
		out = CapPieSlices(out, cfg.XField, cfg.YField())
	}
	return out
}

// BucketRows collapses near-unique identifier x values into coarse
// groups keyed by the first digit of the embedded number. Y values
// are averaged for bar/line/area and summed for pie. Rows are
// returned untouched when the x axis is not identifier-shaped or its
// cardinality is already plottable.
func (r *Reducer) BucketRows(rows []dataset.Row, cfg chart.Config) []dataset.Row {
	xField := cfg.XField
	yField := cfg.YField()
	if xField == "" || yField == "" {
		return rows
	}

	unique := make(map[string]struct{})
	for _, row := range rows {
		v, ok := row[xField]
		if !ok || dataset.IsMissing(v) {
			continue
		}
		s, isStr := v.(string)
		if !isStr || !idShapePattern.MatchString(s) {
			return rows
		}
		unique[s] = struct{}{}
	}
	if len(unique) <= maxDirectCategories {
		return rows
	}

	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[string]*bucket)
	for _, row := range rows {
		s, _ := row[xField].(string)
		m := idShapePattern.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		digit := string(m[1][0])
		y, ok := dataset.TryParseNumber(row[yField])
		if !ok {
			continue
		}
		b := buckets[digit]
		if b == nil {
			b = &bucket{}
			buckets[digit] = b
		}
		b.sum += y
		b.count++
	}

	digits := make([]string, 0, len(buckets))
	for d := range buckets {
		digits = append(digits, d)
	}
	sort.Strings(digits)

	out := make([]dataset.Row, 0, len(digits))
	for _, d := range digits {
		b := buckets[d]
		value := b.sum
		if cfg.Kind != chart.KindPie && b.count > 0 {
			value = b.sum / float64(b.count)
		}
		out = append(out, dataset.Row{
			xField: fmt.Sprintf("Group %s", d),
			yField: value,
		})
	}
	return out
}

// CapPieSlices keeps the 7 largest slices and collapses the rest
// into a single "Other" slice whose value is their sum, so the total
// of all slice values is conserved.
func CapPieSlices(rows []dataset.Row, xField, yField string) []dataset.Row {
	if len(rows) <= maxPieSlices {
		return rows
	}

	sorted := make([]dataset.Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, _ := dataset.TryParseNumber(sorted[i][yField])
		b, _ := dataset.TryParseNumber(sorted[j][yField])
		return a > b
	})

	kept := sorted[:maxPieSlices-1]
	other := 0.0
	for _, row := range sorted[maxPieSlices-1:] {
		if v, ok := dataset.TryParseNumber(row[yField]); ok {
			other += v
		}
	}

	out := make([]dataset.Row, 0, maxPieSlices)
	out = append(out, kept...)
	out = append(out, dataset.Row{xField: "Other", yField: other})
	return out
}
