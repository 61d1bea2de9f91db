package fields

import (
	"math"

	"github.com/montanaflynn/stats"

	"govista/domain/dataset"
)

// nonZeroEpsilon is the magnitude below which a numeric value is
// treated as zero for candidacy purposes.
const nonZeroEpsilon = 0.001

// NumericValues extracts the parsed-numeric subset of a column.
// String values are parsed, non-numeric values silently discarded.
func NumericValues(values []interface{}) []float64 {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := dataset.TryParseNumber(v); ok {
			nums = append(nums, f)
		}
	}
	return nums
}

// Score ranks a numeric column's visualization suitability relative
// to other numeric columns. Columns with many repeated or constant
// values make poor chart axes; higher variance and uniqueness
// indicate a richer signal.
//
// Score = population variance of the numeric subset
//       x (uniqueCount / numericCount) x 100.
// An empty numeric subset scores 0.
func Score(values []interface{}) float64 {
	nums := NumericValues(values)
	if len(nums) == 0 {
		return 0
	}

	variance, err := stats.PopulationVariance(nums)
	if err != nil {
		return 0
	}

	unique := make(map[float64]struct{}, len(nums))
	for _, n := range nums {
		unique[n] = struct{}{}
	}
	uniquenessRatio := float64(len(unique)) / float64(len(nums))

	return variance * uniquenessRatio * 100
}

// HasNonZeroValues reports whether at least one numeric value in the
// column has magnitude above the epsilon. All-zero columns are
// excluded from axis candidacy entirely, independent of score.
func HasNonZeroValues(values []interface{}) bool {
	for _, v := range values {
		if f, ok := dataset.TryParseNumber(v); ok && math.Abs(f) > nonZeroEpsilon {
			return true
		}
	}
	return false
}
