package chart

import "strings"

// Kind identifies a chart type supported by the dashboard
type Kind string

const (
	KindBar     Kind = "bar"
	KindLine    Kind = "line"
	KindArea    Kind = "area"
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// Kinds lists every supported chart kind in display order
func Kinds() []Kind {
	return []Kind{KindBar, KindLine, KindArea, KindPie, KindScatter}
}

// Valid reports whether k names a supported chart kind
func (k Kind) Valid() bool {
	switch k {
	case KindBar, KindLine, KindArea, KindPie, KindScatter:
		return true
	}
	return false
}

// Title returns the default chart title, "<Kind> Chart" with the kind
// capitalized.
func (k Kind) Title() string {
	s := string(k)
	if s == "" {
		return "Chart"
	}
	return strings.ToUpper(s[:1]) + s[1:] + " Chart"
}

// Config is the immutable chart configuration produced by field
// selection. "Overriding" a field constructs a new value via With;
// configs are never mutated after creation.
type Config struct {
	Kind        Kind     `json:"chart_kind"`
	XField      string   `json:"x_field"`
	YFields     []string `json:"y_fields"`
	GroupBy     string   `json:"group_by,omitempty"`
	Title       string   `json:"title"`
	ColorScheme string   `json:"color_scheme,omitempty"`
	Margins     Margins  `json:"margins"`

	// Synthetic marks a config whose y-axis was fabricated because no
	// real field qualified. Renderers must label such charts.
	Synthetic bool `json:"synthetic,omitempty"`
}

// Margins are the chart's rendering margins in pixels
type Margins struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// DefaultMargins returns the dashboard's standard chart margins
func DefaultMargins() Margins {
	return Margins{Top: 20, Right: 30, Bottom: 40, Left: 50}
}

// YField returns the primary y-axis field, or "" when none is set
func (c Config) YField() string {
	if len(c.YFields) == 0 {
		return ""
	}
	return c.YFields[0]
}

// Overrides carries explicit user- or AI-supplied field choices.
// Set fields always win over auto-selection, field by field.
type Overrides struct {
	XField  string   `json:"x_field,omitempty"`
	YFields []string `json:"y_fields,omitempty"`
	GroupBy string   `json:"group_by,omitempty"`
	Title   string   `json:"title,omitempty"`
}

// Suggestion is a proposed chart, structurally identical whether it
// came from the AI collaborator or the heuristic fallback so that
// consumers are indifferent to provenance.
type Suggestion struct {
	ChartType   Kind             `json:"chartType"`
	Config      SuggestionConfig `json:"config"`
	Description string           `json:"description"`
}

// SuggestionConfig mirrors the axis fields of a chart config in the
// wire shape shared with the AI collaborator.
type SuggestionConfig struct {
	XAxis   string `json:"xAxis"`
	YAxis   string `json:"yAxis"`
	GroupBy string `json:"groupBy,omitempty"`
	Title   string `json:"title"`
}
