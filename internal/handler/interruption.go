package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/service"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/pkg/response"
)

// InterruptionHandler covers stoppages and the overs reductions they force.
type InterruptionHandler struct {
	svc service.ScoringService
}

func NewInterruptionHandler(svc service.ScoringService) *InterruptionHandler {
	return &InterruptionHandler{svc: svc}
}

func (h *InterruptionHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/matches/:match_id")
	{
		g.POST("/interruptions", h.start)
		g.POST("/interruptions/stop", h.stop)
		g.POST("/overs-limit", h.reduce)
	}
}

type interruptionRequest struct {
	Kind string `json:"kind"`
	Note string `json:"note"`
}

func (h *InterruptionHandler) start(c *gin.Context) {
	id, ok := matchID(c)
	if !ok {
		return
	}
	var req interruptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	snap, err := h.svc.StartInterruption(c.Request.Context(), id, model.InterruptionKind(req.Kind), req.Note)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, snap)
}

func (h *InterruptionHandler) stop(c *gin.Context) {
	id, ok := matchID(c)
	if !ok {
		return
	}
	var req interruptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	snap, err := h.svc.StopInterruption(c.Request.Context(), id, model.InterruptionKind(req.Kind))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, snap)
}

type reduceOversRequest struct {
	NewLimit int    `json:"new_limit"`
	Note     string `json:"note"`
}

func (h *InterruptionHandler) reduce(c *gin.Context) {
	id, ok := matchID(c)
	if !ok {
		return
	}
	var req reduceOversRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	snap, err := h.svc.ReduceOversLimit(c.Request.Context(), id, req.NewLimit, req.Note)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, snap)
}
