package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/engine"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/service"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/pkg/response"
)

// ScoringHandler exposes the ball-by-ball command endpoints. Every route is
// nested under a match id; the service serializes commands per match.
type ScoringHandler struct {
	svc service.ScoringService
}

func NewScoringHandler(svc service.ScoringService) *ScoringHandler { return &ScoringHandler{svc: svc} }

func (h *ScoringHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/matches/:match_id")
	{
		g.POST("/innings", h.startInnings)
		g.POST("/deliveries", h.applyDelivery)
		g.POST("/batters", h.newBatter)
		g.POST("/overs", h.newOver)
		g.POST("/abandon", h.abandon)
		g.PUT("/result", h.overrideResult)
	}
}

type startInningsRequest struct {
	StrikerID    int64 `json:"striker_id"`
	NonStrikerID int64 `json:"non_striker_id"`
	BowlerID     int64 `json:"bowler_id"`
}

func (h *ScoringHandler) startInnings(c *gin.Context) {
	id, ok := matchID(c)
	if !ok {
		return
	}
	var req startInningsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	snap, err := h.svc.StartInnings(c.Request.Context(), id, engine.StartInningsInput{
		StrikerID:    req.StrikerID,
		NonStrikerID: req.NonStrikerID,
		BowlerID:     req.BowlerID,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, snap)
}

type deliveryRequest struct {
	StrikerID    int64  `json:"striker_id"`
	NonStrikerID int64  `json:"non_striker_id"`
	BowlerID     int64  `json:"bowler_id"`
	RunsOffBat   int    `json:"runs_off_bat"`
	Extra        string `json:"extra"`
	ExtraRuns    int    `json:"extra_runs"`
	Wicket       bool   `json:"wicket"`
	Dismissal    string `json:"dismissal"`
	DismissedID  int64  `json:"dismissed_id"`
	FielderID    int64  `json:"fielder_id"`
}

func (h *ScoringHandler) applyDelivery(c *gin.Context) {
	id, ok := matchID(c)
	if !ok {
		return
	}
	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	if req.Extra == "" {
		// A plain delivery omits the field entirely.
		req.Extra = string(model.ExtraNone)
	}
	snap, err := h.svc.ApplyDelivery(c.Request.Context(), id, engine.DeliveryCommand{
		StrikerID:    req.StrikerID,
		NonStrikerID: req.NonStrikerID,
		BowlerID:     req.BowlerID,
		RunsOffBat:   req.RunsOffBat,
		Extra:        model.ExtraKind(req.Extra),
		ExtraRuns:    req.ExtraRuns,
		Wicket:       req.Wicket,
		Dismissal:    model.DismissalKind(req.Dismissal),
		DismissedID:  req.DismissedID,
		FielderID:    req.FielderID,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, snap)
}

type newBatterRequest struct {
	BatterID int64 `json:"batter_id"`
}

func (h *ScoringHandler) newBatter(c *gin.Context) {
	id, ok := matchID(c)
	if !ok {
		return
	}
	var req newBatterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	snap, err := h.svc.RegisterNewBatter(c.Request.Context(), id, req.BatterID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, snap)
}

type newOverRequest struct {
	BowlerID int64 `json:"bowler_id"`
}

func (h *ScoringHandler) newOver(c *gin.Context) {
	id, ok := matchID(c)
	if !ok {
		return
	}
	var req newOverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	snap, err := h.svc.RegisterNewOver(c.Request.Context(), id, req.BowlerID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, snap)
}

type abandonRequest struct {
	Note string `json:"note"`
}

func (h *ScoringHandler) abandon(c *gin.Context) {
	id, ok := matchID(c)
	if !ok {
		return
	}
	var req abandonRequest
	// The body is optional; an empty note is fine.
	_ = c.ShouldBindJSON(&req)
	snap, err := h.svc.AbandonMatch(c.Request.Context(), id, req.Note)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, snap)
}

type overrideResultRequest struct {
	Winner     string `json:"winner"`
	Method     string `json:"method"`
	Margin     int    `json:"margin"`
	MarginUnit string `json:"margin_unit"`
	Summary    string `json:"summary"`
}

func (h *ScoringHandler) overrideResult(c *gin.Context) {
	id, ok := matchID(c)
	if !ok {
		return
	}
	var req overrideResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	snap, err := h.svc.OverrideResult(c.Request.Context(), id, model.MatchResult{
		Winner:      req.Winner,
		Method:      model.ResultMethod(req.Method),
		Margin:      req.Margin,
		MarginUnit:  model.MarginUnit(req.MarginUnit),
		Summary:     req.Summary,
		CompletedAt: time.Time{},
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, snap)
}
