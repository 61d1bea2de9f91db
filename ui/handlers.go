package ui

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"govista/domain/chart"
	"govista/internal/charts"
	"govista/internal/errors"
	"govista/internal/testkit"
)

// handleUpload ingests an uploaded CSV/XLSX file into a normalized
// dataset and registers it in the cache.
func (s *Server) handleUpload() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not open upload"})
			return
		}
		defer file.Close()

		ds, err := s.reader.Read(file, fileHeader.Filename)
		if err != nil {
			log.Printf("[API] Upload failed for %s: %v", fileHeader.Filename, err)
			status := http.StatusUnprocessableEntity
			if errors.GetCode(err) == errors.CodeInvalidInput {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		s.service.RegisterDataset(ds)
		c.JSON(http.StatusCreated, gin.H{
			"id":      ds.ID,
			"name":    ds.Name,
			"headers": ds.Headers,
			"rows":    len(ds.Rows),
		})
	}
}

// fetchRequest names a remote JSON source to ingest
type fetchRequest struct {
	Name string   `json:"name" binding:"required"`
	URLs []string `json:"urls" binding:"required,min=1"`
}

// handleFetch ingests rows from one or more remote JSON endpoints
func (s *Server) handleFetch() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req fetchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ds, err := s.fetcher.Fetch(c.Request.Context(), req.Name, req.URLs)
		if err != nil {
			log.Printf("[API] Remote fetch failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		s.service.RegisterDataset(ds)
		c.JSON(http.StatusCreated, gin.H{
			"id":      ds.ID,
			"name":    ds.Name,
			"headers": ds.Headers,
			"rows":    len(ds.Rows),
		})
	}
}

// handleGetDataset returns the stored dataset
func (s *Server) handleGetDataset() gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, err := s.service.Dataset(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
			return
		}
		c.JSON(http.StatusOK, ds)
	}
}

// handleProfile returns the classified column profile
func (s *Server) handleProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, err := s.service.Dataset(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
			return
		}

		if c.Query("correlations") == "true" {
			c.JSON(http.StatusOK, s.service.ProfileWithCorrelations(ds))
			return
		}
		c.JSON(http.StatusOK, s.service.Profile(ds))
	}
}

// chartRequest selects a chart kind with optional field overrides
type chartRequest struct {
	ChartKind string          `json:"chart_kind" binding:"required"`
	Overrides chart.Overrides `json:"overrides"`
}

// handleBuildChart resolves chart fields and reduces rows for
// rendering. Charts built on a synthesized demo field come back with
// config.synthetic=true so the frontend can label them.
func (s *Server) handleBuildChart() gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, err := s.service.Dataset(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
			return
		}

		var req chartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		kind := chart.Kind(req.ChartKind)
		if !kind.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown chart kind: " + req.ChartKind})
			return
		}

		c.JSON(http.StatusOK, s.service.BuildChart(ds, kind, req.Overrides))
	}
}

// reduceRequest mirrors charts.ReduceOptions on the wire
type reduceRequest struct {
	MaxRows  int      `json:"max_rows"`
	Strategy string   `json:"sampling_strategy"`
	Fields   []string `json:"fields"`
}

// handleReduce runs a standalone reduction preview
func (s *Server) handleReduce() gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, err := s.service.Dataset(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
			return
		}

		var req reduceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rows := s.service.Reduce(ds.Rows, charts.ReduceOptions{
			MaxRows:  req.MaxRows,
			Strategy: charts.SamplingStrategy(req.Strategy),
			Fields:   req.Fields,
		})
		c.JSON(http.StatusOK, gin.H{"rows": rows, "count": len(rows)})
	}
}

// handleSuggestions returns AI (or fallback heuristic) chart
// suggestions plus rendered insight HTML.
func (s *Server) handleSuggestions() gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, err := s.service.Dataset(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
			return
		}

		max, err := strconv.Atoi(c.DefaultQuery("max", "3"))
		if err != nil || max < 1 || max > 10 {
			max = 3
		}

		result := s.service.Suggest(c.Request.Context(), ds, max)
		c.JSON(http.StatusOK, gin.H{
			"suggestions":   result.Suggestions,
			"insights":      result.Insights,
			"insights_html": RenderInsightsHTML(result.Insights),
			"origin":        result.Origin,
		})
	}
}

// handleDemo registers the deterministic demo dataset
func (s *Server) handleDemo() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := testkit.DefaultSalesConfig()
		cfg.Seed = s.demoSeed
		ds := testkit.NewSalesDataGenerator(cfg).Generate()

		s.service.RegisterDataset(ds)
		c.JSON(http.StatusCreated, gin.H{
			"id":      ds.ID,
			"name":    ds.Name,
			"headers": ds.Headers,
			"rows":    len(ds.Rows),
		})
	}
}
