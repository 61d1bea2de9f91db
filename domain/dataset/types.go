package dataset

import (
	"govista/domain/core"
)

// DatasetStatus represents the processing state of a dataset
type DatasetStatus string

const (
	StatusProcessing DatasetStatus = "processing"
	StatusReady      DatasetStatus = "ready"
	StatusFailed     DatasetStatus = "failed"
)

// Row maps a header name to a loosely-typed scalar value
// (float64, string, bool or nil). A missing key means the cell is
// absent, not present-with-null.
type Row map[string]interface{}

// Dataset is a normalized rectangular dataset: ordered headers plus
// rows keyed by header. Every row's key set is a subset of Headers.
// Downstream stages never mutate a Dataset in place; they derive new
// structures (or work on a Clone).
type Dataset struct {
	ID      core.DatasetID `json:"id"`
	Name    string         `json:"name"`
	Source  string         `json:"source"` // "upload", "excel", "api", "demo"
	Headers []string       `json:"headers"`
	Rows    []Row          `json:"rows"`

	Status       DatasetStatus `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`

	CreatedAt core.Timestamp `json:"created_at"`
	UpdatedAt core.Timestamp `json:"updated_at"`
}

// New creates a dataset with default values
func New(name string, headers []string, rows []Row) *Dataset {
	return &Dataset{
		ID:        core.DatasetID(core.NewID()),
		Name:      name,
		Source:    "upload",
		Headers:   headers,
		Rows:      rows,
		Status:    StatusReady,
		CreatedAt: core.Now(),
		UpdatedAt: core.Now(),
	}
}

// IsReady returns true if the dataset is ready for use
func (d *Dataset) IsReady() bool {
	return d.Status == StatusReady
}

// IsEmpty returns true when the dataset has no rows
func (d *Dataset) IsEmpty() bool {
	return len(d.Rows) == 0
}

// Column collects the raw values of a single column in row order.
// Absent cells are skipped rather than emitted as nil.
func (d *Dataset) Column(header string) []interface{} {
	values := make([]interface{}, 0, len(d.Rows))
	for _, row := range d.Rows {
		if v, ok := row[header]; ok {
			values = append(values, v)
		}
	}
	return values
}

// Clone returns a deep-enough copy for working mutations (synthetic
// field injection). Scalar cell values are copied by assignment.
func (d *Dataset) Clone() *Dataset {
	headers := make([]string, len(d.Headers))
	copy(headers, d.Headers)

	rows := make([]Row, len(d.Rows))
	for i, row := range d.Rows {
		dup := make(Row, len(row))
		for k, v := range row {
			dup[k] = v
		}
		rows[i] = dup
	}

	out := *d
	out.Headers = headers
	out.Rows = rows
	return &out
}
