package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"govista/domain/dataset"
)

// SalesGeneratorConfig configures the demo sales data generator
type SalesGeneratorConfig struct {
	RowCount  int       `json:"row_count"`
	Regions   []string  `json:"regions"`
	Products  []string  `json:"products"`
	StartDate time.Time `json:"start_date"`
	Seed      int64     `json:"seed"`
}

// DefaultSalesConfig returns sensible defaults for demo data
func DefaultSalesConfig() SalesGeneratorConfig {
	return SalesGeneratorConfig{
		RowCount:  90,
		Regions:   []string{"North", "South", "East", "West"},
		Products:  []string{"Widget", "Gadget", "Gizmo"},
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Seed:      42,
	}
}

// SalesDataGenerator generates a deterministic retail sales dataset
// used by tests and the demo endpoint. Column mix is deliberate: a
// date column, two categorical columns, two numeric measures and an
// identifier column, so every classifier path gets exercised.
type SalesDataGenerator struct {
	config SalesGeneratorConfig
	rng    *rand.Rand
}

// NewSalesDataGenerator creates a generator from config
func NewSalesDataGenerator(config SalesGeneratorConfig) *SalesDataGenerator {
	return &SalesDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate builds the demo dataset
func (g *SalesDataGenerator) Generate() *dataset.Dataset {
	headers := []string{"date", "region", "product", "sales", "units", "customer_id"}

	rows := make([]dataset.Row, 0, g.config.RowCount)
	for i := 0; i < g.config.RowCount; i++ {
		day := g.config.StartDate.AddDate(0, 0, i/3)
		region := g.config.Regions[i%len(g.config.Regions)]
		product := g.config.Products[i%len(g.config.Products)]

		// Seasonal wave plus noise keeps variance realistic
		base := 200 + math.Sin(float64(i)*0.2)*80
		sales := math.Round((base+g.rng.Float64()*40)*100) / 100
		units := float64(5 + g.rng.Intn(20))

		rows = append(rows, dataset.Row{
			"date":        day.Format("2006-01-02"),
			"region":      region,
			"product":     product,
			"sales":       sales,
			"units":       units,
			"customer_id": fmt.Sprintf("C%d", 1000+i),
		})
	}

	ds := dataset.New("demo_sales", headers, rows)
	ds.Source = "demo"
	return ds
}
