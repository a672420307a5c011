package server

import (
	"html/template"

	"github.com/MoosaTae/license-plate-ocr/internal/config"
	"github.com/MoosaTae/license-plate-ocr/internal/logger"
	"github.com/MoosaTae/license-plate-ocr/internal/ocr"
	"github.com/MoosaTae/license-plate-ocr/internal/plate"
	"github.com/gin-gonic/gin"
)

// Server wires the OCR selector, the reference data, and the validation
// policy behind the HTTP layer. All shared state is read-mostly; the only
// mutation path is Registry.Add, which synchronizes internally.
type Server struct {
	cfg       *config.Config
	registry  *plate.Registry
	provinces *plate.ProvinceList
	selector  *ocr.Selector
	policy    plate.Policy
}

// New builds a server. When the registry loaded non-empty the
// registry-matching policy is used; otherwise validation falls back to the
// province heuristics.
func New(cfg *config.Config, registry *plate.Registry, provinces *plate.ProvinceList, engine ocr.Engine) *Server {
	s := &Server{
		cfg:       cfg,
		registry:  registry,
		provinces: provinces,
		selector:  ocr.NewSelector(engine, cfg.OCR),
	}

	if registry.Len() > 0 {
		logger.Infof("Using registry validation policy (%d records)", registry.Len())
		s.policy = &plate.RegistryPolicy{
			Registry:            registry,
			ConfidenceThreshold: cfg.Validation.ConfidenceThreshold,
			FuzzyThreshold:      cfg.Validation.FuzzyThreshold,
		}
	} else {
		logger.Infof("Registry is empty, using province heuristic policy (%d provinces)", provinces.Len())
		s.policy = &plate.HeuristicPolicy{
			Provinces:           provinces,
			ConfidenceThreshold: cfg.Validation.ConfidenceThreshold,
			FuzzyThreshold:      cfg.Validation.FuzzyThreshold,
		}
	}

	return s
}

// Policy returns the validation policy in use
func (s *Server) Policy() plate.Policy {
	return s.policy
}

// Router builds the gin router with the page and API routes
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(template.New("index").Parse(pageHTML)))

	r.GET("/", s.handleIndex)
	r.POST("/", s.handleAnalyze)

	api := r.Group("/api/v1")
	{
		api.POST("/validate", s.handleValidate)
		api.GET("/plates", s.handleSearchPlates)
		api.POST("/plates", s.handleAddPlate)
		api.GET("/statistics", s.handleStatistics)
	}

	return r
}
