package dataset

// FieldType is the inferred semantic type of a column
type FieldType string

const (
	TypeNumeric     FieldType = "numeric"
	TypeDate        FieldType = "date"
	TypeCategorical FieldType = "categorical"
)

// ColumnProfile holds the derived, per-analysis view of one column.
// Profiles are ephemeral - recomputed per analysis, never persisted
// with the dataset.
type ColumnProfile struct {
	Name         string    `json:"name"`
	Type         FieldType `json:"type"`
	UniqueCount  int       `json:"unique_count"`
	NumericCount int       `json:"numeric_count"`
	MissingCount int       `json:"missing_count"`
	HasNonZero   bool      `json:"has_non_zero"`
	IsIdentifier bool      `json:"is_identifier"`
	Score        float64   `json:"score"`

	// Numeric stats, meaningful only when NumericCount > 0
	Min  float64 `json:"min,omitempty"`
	Max  float64 `json:"max,omitempty"`
	Mean float64 `json:"mean,omitempty"`
}

// DatasetProfile is the classified view of a whole dataset, keyed by
// header and preserving header order.
type DatasetProfile struct {
	Headers  []string                 `json:"headers"`
	Columns  map[string]ColumnProfile `json:"columns"`
	RowCount int                      `json:"row_count"`

	// Pairwise Pearson correlations between numeric columns, keyed
	// "a|b" in header order. Populated only when requested.
	Correlations map[string]float64 `json:"correlations,omitempty"`
}

// Profile returns the column profile for a header, with a zero-value
// categorical default for unknown headers.
func (p *DatasetProfile) Profile(header string) ColumnProfile {
	if c, ok := p.Columns[header]; ok {
		return c
	}
	return ColumnProfile{Name: header, Type: TypeCategorical}
}
