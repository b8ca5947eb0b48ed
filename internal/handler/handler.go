package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/service"
)

// Register mounts all public routes on the given engine.
// Accepts service layer dependencies for API endpoints.
func Register(r *gin.Engine, repo Pinger, matchSvc service.MatchService, scoringSvc service.ScoringService, hub Subscriber) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIV1Prefix) // Versioning added via single source of truth
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewMatchHandler(matchSvc).Register(api)
		NewScoringHandler(scoringSvc).Register(api)
		NewInterruptionHandler(scoringSvc).Register(api)
		NewDLSHandler(scoringSvc).Register(api)
		if hub != nil {
			NewWSHandler(matchSvc, hub).Register(api)
		}
	}
}
