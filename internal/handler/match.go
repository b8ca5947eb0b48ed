package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/repository"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/service"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/pkg/response"
)

type MatchHandler struct {
	svc service.MatchService
}

func NewMatchHandler(svc service.MatchService) *MatchHandler { return &MatchHandler{svc: svc} }

func (h *MatchHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/matches")
	{
		g.POST("", h.create)
		// Use a stable wildcard name (match_id) so nested routes (deliveries, dls, ws) can reuse it without Gin conflicts.
		g.GET("/:match_id", h.getByID)
		g.GET("/:match_id/snapshot", h.snapshot)
		g.GET("", h.list)
	}
}

type rosterPlayer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type rosterTeam struct {
	Name    string         `json:"name"`
	Players []rosterPlayer `json:"players"`
}

type createMatchRequest struct {
	Format          string     `json:"format"`
	OversLimit      int        `json:"overs_limit"`
	DaysLimit       int        `json:"days_limit"`
	OversPerDay     int        `json:"overs_per_day"`
	RainRuleEnabled bool       `json:"rain_rule_enabled"`
	TossWinner      string     `json:"toss_winner"`
	TossDecision    string     `json:"toss_decision"`
	TeamA           rosterTeam `json:"team_a"`
	TeamB           rosterTeam `json:"team_b"`
}

func (r rosterTeam) toModel() model.Team {
	t := model.Team{Name: r.Name, Players: make([]model.Player, 0, len(r.Players))}
	for _, p := range r.Players {
		t.Players = append(t.Players, model.Player{ID: p.ID, Name: p.Name})
	}
	return t
}

func (h *MatchHandler) create(c *gin.Context) {
	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput) // не расшифровываем внутренние детали парсинга
		return
	}
	match, err := h.svc.CreateMatch(c.Request.Context(), service.CreateMatchInput{
		Format:          model.MatchFormat(req.Format),
		OversLimit:      req.OversLimit,
		DaysLimit:       req.DaysLimit,
		OversPerDay:     req.OversPerDay,
		RainRuleEnabled: req.RainRuleEnabled,
		TossWinner:      req.TossWinner,
		TossDecision:    model.TossDecision(req.TossDecision),
		TeamA:           req.TeamA.toModel(),
		TeamB:           req.TeamB.toModel(),
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, match)
}

func (h *MatchHandler) getByID(c *gin.Context) {
	id, ok := matchID(c)
	if !ok {
		return
	}
	match, err := h.svc.GetMatch(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, match)
}

func (h *MatchHandler) snapshot(c *gin.Context) {
	id, ok := matchID(c)
	if !ok {
		return
	}
	snap, err := h.svc.GetSnapshot(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, snap)
}

func (h *MatchHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	page := repository.Page{Limit: limit, Offset: offset}
	res, err := h.svc.ListMatches(c.Request.Context(), page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

// matchID parses the :match_id path segment shared by every nested route.
// On failure it writes the 400 itself so callers can simply return.
func matchID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("match_id"), 10, 64)
	if err != nil || id <= 0 {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "match_id", Message: "must be a valid integer > 0"}}))
		return 0, false
	}
	return id, true
}
