package ui

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"govista/adapters/ingest"
	"govista/app"
	"govista/internal/config"
)

// Server is the dashboard HTTP surface: dataset ingestion, profiles,
// chart building, reduction previews and suggestions.
type Server struct {
	router   *gin.Engine
	service  *app.AnalysisService
	reader   *ingest.FileReader
	fetcher  *ingest.APIFetcher
	demoSeed int64
}

// NewServer creates the dashboard server
func NewServer(cfg *config.Config, service *app.AnalysisService) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:   gin.Default(),
		service:  service,
		reader:   ingest.NewFileReader(),
		fetcher:  ingest.NewAPIFetcher(),
		demoSeed: cfg.Data.Seed,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/datasets", s.handleUpload())
		api.POST("/datasets/fetch", s.handleFetch())
		api.GET("/datasets/:id", s.handleGetDataset())
		api.GET("/datasets/:id/profile", s.handleProfile())
		api.POST("/datasets/:id/charts", s.handleBuildChart())
		api.POST("/datasets/:id/reduce", s.handleReduce())
		api.GET("/datasets/:id/suggestions", s.handleSuggestions())
		api.POST("/demo", s.handleDemo())
	}
}

// Router exposes the underlying handler for serving and tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the server on the configured port
func (s *Server) Run(port string) error {
	addr := fmt.Sprintf(":%s", port)
	log.Printf("[Server] Dashboard listening on %s", addr)
	return s.router.Run(addr)
}
