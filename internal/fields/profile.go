package fields

import (
	"log"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"govista/domain/dataset"
	"govista/internal"
)

// Profiler derives a DatasetProfile from a normalized dataset. The
// profile is ephemeral and recomputed per analysis; the dataset is
// never mutated.
type Profiler struct {
	classifier *Classifier

	// Correlations toggles pairwise Pearson correlation between
	// numeric columns, used by the dashboard's profile view.
	Correlations bool
}

// NewProfiler creates a profiler with a default classifier
func NewProfiler() *Profiler {
	return &Profiler{classifier: NewClassifier()}
}

// BuildProfile classifies and scores every column of the dataset.
// Empty datasets yield a profile with categorical defaults, never an
// error.
func (p *Profiler) BuildProfile(ds *dataset.Dataset) *dataset.DatasetProfile {
	profile := &dataset.DatasetProfile{
		Headers:  append([]string(nil), ds.Headers...),
		Columns:  make(map[string]dataset.ColumnProfile, len(ds.Headers)),
		RowCount: len(ds.Rows),
	}

	for _, header := range ds.Headers {
		values := ds.Column(header)
		col := p.profileColumn(header, values, len(ds.Rows))
		profile.Columns[header] = col
		internal.DefaultLogger.Debug("[Profiler] %s: type=%s unique=%d score=%.2f identifier=%v",
			header, col.Type, col.UniqueCount, col.Score, col.IsIdentifier)
	}

	if p.Correlations {
		profile.Correlations = p.correlations(ds, profile)
	}

	log.Printf("[Profiler] Profiled dataset %q: %d columns, %d rows", ds.Name, len(ds.Headers), len(ds.Rows))
	return profile
}

func (p *Profiler) profileColumn(header string, values []interface{}, rowCount int) dataset.ColumnProfile {
	col := dataset.ColumnProfile{
		Name:         header,
		Type:         p.classifier.Classify(header, values),
		IsIdentifier: p.classifier.LooksLikeIdentifier(header, values),
	}

	unique := make(map[string]struct{}, len(values))
	present := 0
	for _, v := range values {
		if dataset.IsMissing(v) {
			continue
		}
		present++
		unique[dataset.ValueKey(v)] = struct{}{}
	}
	col.UniqueCount = len(unique)
	col.MissingCount = rowCount - present

	nums := NumericValues(values)
	col.NumericCount = len(nums)
	col.HasNonZero = HasNonZeroValues(values)
	col.Score = Score(values)

	if len(nums) > 0 {
		// montanaflynn errors only on empty input, guarded above
		col.Min, _ = stats.Min(nums)
		col.Max, _ = stats.Max(nums)
		col.Mean, _ = stats.Mean(nums)
	}

	return col
}

// correlations computes pairwise Pearson correlation over numeric,
// non-identifier columns. Pairs are aligned row-by-row; rows where
// either cell fails to parse are dropped from that pair.
func (p *Profiler) correlations(ds *dataset.Dataset, profile *dataset.DatasetProfile) map[string]float64 {
	var numericHeaders []string
	for _, h := range profile.Headers {
		col := profile.Columns[h]
		if col.Type == dataset.TypeNumeric && !col.IsIdentifier {
			numericHeaders = append(numericHeaders, h)
		}
	}
	if len(numericHeaders) < 2 {
		return nil
	}

	out := make(map[string]float64)
	for i := 0; i < len(numericHeaders); i++ {
		for j := i + 1; j < len(numericHeaders); j++ {
			a, b := numericHeaders[i], numericHeaders[j]
			xs, ys := alignedPair(ds, a, b)
			if len(xs) < 2 {
				continue
			}
			out[a+"|"+b] = stat.Correlation(xs, ys, nil)
		}
	}
	return out
}

func alignedPair(ds *dataset.Dataset, a, b string) ([]float64, []float64) {
	var xs, ys []float64
	for _, row := range ds.Rows {
		x, okX := dataset.TryParseNumber(row[a])
		y, okY := dataset.TryParseNumber(row[b])
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return xs, ys
}
