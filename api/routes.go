package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"pdf_assembler/pdf"
)

// Server carries what the handlers share across requests
type Server struct {
	config   *Config
	provider pdf.Provider
	log      logrus.FieldLogger
	jobs     *semaphore.Weighted
}

// NewServer wires a Server from its configuration
func NewServer(config *Config, provider pdf.Provider, log logrus.FieldLogger) *Server {
	return &Server{
		config:   config,
		provider: provider,
		log:      log,
		jobs:     semaphore.NewWeighted(config.MaxConcurrentJobs),
	}
}

func SetupRoutes(r *gin.Engine, srv *Server) {
	apiGroup := r.Group("/api/pdf")
	{
		apiGroup.POST("/inspect", func(c *gin.Context) { HandleInspect(c, srv) })
		apiGroup.POST("/validate", func(c *gin.Context) { HandleValidate(c, srv) })
		apiGroup.POST("/merge", func(c *gin.Context) { HandleMerge(c, srv) })
		apiGroup.POST("/split", func(c *gin.Context) { HandleSplit(c, srv) })
	}
}
