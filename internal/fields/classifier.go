package fields

import (
	"regexp"
	"strings"

	"govista/domain/dataset"
)

// Column classification assigns each column a semantic type
// (numeric, date, categorical) plus an orthogonal identifier flag.
// Identifier detection runs first: an id-like column is excluded from
// the numeric/date candidate pools downstream even when its values
// are also numeric- or date-shaped.

var (
	idHeaderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)id$`),
		regexp.MustCompile(`(?i)^id`),
		regexp.MustCompile(`(?i)_id$`),
		regexp.MustCompile(`(?i)^customer`),
		regexp.MustCompile(`(?i)^user`),
	}

	// One letter followed by digits, e.g. "C1001"
	idValuePattern = regexp.MustCompile(`^[A-Za-z][0-9]+$`)
)

// Classifier infers column types from sampled values
type Classifier struct {
	// SampleSize caps how many values are inspected per column.
	// 0 means inspect all values.
	SampleSize int
}

// NewClassifier creates a classifier with the default sample size
func NewClassifier() *Classifier {
	return &Classifier{SampleSize: 100}
}

// Classify assigns a semantic type to a column. Precedence: numeric
// when more than half of non-null values parse fully to a finite
// number, date when more than half of string values lead with
// YYYY-MM-DD, categorical otherwise. Empty columns classify as
// categorical by convention.
func (c *Classifier) Classify(header string, values []interface{}) dataset.FieldType {
	sample := c.sample(values)
	if len(sample) == 0 {
		return dataset.TypeCategorical
	}

	if c.isNumericColumn(sample) {
		return dataset.TypeNumeric
	}
	if c.isDateColumn(sample) {
		return dataset.TypeDate
	}
	return dataset.TypeCategorical
}

// LooksLikeIdentifier reports whether a column is id-like: its header
// matches an id naming pattern, or more than half of its sampled
// string values have the shape letter+digits.
func (c *Classifier) LooksLikeIdentifier(header string, values []interface{}) bool {
	name := strings.TrimSpace(header)
	for _, p := range idHeaderPatterns {
		if p.MatchString(name) {
			return true
		}
	}

	sample := c.sample(values)
	total := 0
	matched := 0
	for _, v := range sample {
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		total++
		if idValuePattern.MatchString(strings.TrimSpace(s)) {
			matched++
		}
	}
	return total > 0 && matched*2 > total
}

// isNumericColumn reports whether more than half of non-null values
// parse fully to a finite number. Partial parses ("5px") do not count.
func (c *Classifier) isNumericColumn(sample []interface{}) bool {
	total := 0
	numeric := 0
	for _, v := range sample {
		if dataset.IsMissing(v) {
			continue
		}
		total++
		if _, ok := dataset.TryParseNumber(v); ok {
			numeric++
		}
	}
	return total > 0 && numeric*2 > total
}

// isDateColumn reports whether more than half of string values lead
// with a YYYY-MM-DD pattern.
func (c *Classifier) isDateColumn(sample []interface{}) bool {
	total := 0
	dates := 0
	for _, v := range sample {
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		total++
		if dataset.LooksLikeDate(s) {
			dates++
		}
	}
	return total > 0 && dates*2 > total
}

func (c *Classifier) sample(values []interface{}) []interface{} {
	if c.SampleSize <= 0 || len(values) <= c.SampleSize {
		return values
	}
	return values[:c.SampleSize]
}
