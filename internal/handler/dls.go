package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/service"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/pkg/response"
)

// DLSHandler serves the rain-rule read models: the revised target for the
// chase and the live par score.
type DLSHandler struct {
	svc service.ScoringService
}

func NewDLSHandler(svc service.ScoringService) *DLSHandler { return &DLSHandler{svc: svc} }

func (h *DLSHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/matches/:match_id/dls")
	{
		g.GET("/target", h.target)
		g.GET("/par", h.par)
	}
}

func (h *DLSHandler) target(c *gin.Context) {
	id, ok := matchID(c)
	if !ok {
		return
	}
	breakdown, err := h.svc.ComputeRevisedTarget(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, breakdown)
}

func (h *DLSHandler) par(c *gin.Context) {
	id, ok := matchID(c)
	if !ok {
		return
	}
	breakdown, err := h.svc.ComputeParNow(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, breakdown)
}
