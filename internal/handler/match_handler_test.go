package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/repository"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/service"
)

func TestCreateMatch_Handler(t *testing.T) {
	matches := &stubMatchService{}
	matches.create.result = model.Match{ID: 7, Status: model.StatusScheduled}
	r := newRouter(matches, &stubScoringService{})

	body := map[string]any{
		"format":            "limited_overs",
		"overs_limit":       20,
		"rain_rule_enabled": true,
		"toss_winner":       "Harbour View",
		"toss_decision":     "bat",
		"team_a": map[string]any{
			"name":    "Harbour View",
			"players": []map[string]any{{"id": 1, "name": "A"}, {"id": 2, "name": "B"}},
		},
		"team_b": map[string]any{
			"name":    "Spanish Town",
			"players": []map[string]any{{"id": 21, "name": "C"}, {"id": 22, "name": "D"}},
		},
	}
	w := doJSON(t, r, http.MethodPost, "/api/v1/matches", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", w.Code, w.Body.String())
	}

	got := matches.create.got
	if got.Format != model.FormatLimitedOvers || got.OversLimit != 20 || !got.RainRuleEnabled {
		t.Fatalf("input not mapped: %+v", got)
	}
	if got.TossDecision != model.DecisionBat || got.TossWinner != "Harbour View" {
		t.Fatalf("toss not mapped: %+v", got)
	}
	if len(got.TeamA.Players) != 2 || got.TeamA.Players[1].ID != 2 {
		t.Fatalf("roster not mapped: %+v", got.TeamA)
	}

	var created model.Match
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created match: %v", err)
	}
	if created.ID != 7 {
		t.Fatalf("created id = %d, want 7", created.ID)
	}
}

func TestCreateMatch_HandlerErrors(t *testing.T) {
	t.Run("malformed body", func(t *testing.T) {
		r := newRouter(&stubMatchService{}, &stubScoringService{})
		w := postRaw(t, r, "/api/v1/matches")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		if payload := decodeError(t, w); payload.Error != "invalid_input" {
			t.Fatalf("error = %q", payload.Error)
		}
	})

	t.Run("service validation bubbles field errors", func(t *testing.T) {
		matches := &stubMatchService{}
		matches.create.err = service.NewInvalidInputError([]service.FieldError{
			{Field: "overs_limit", Message: "must be between 1 and 50"},
		})
		r := newRouter(matches, &stubScoringService{})

		w := doJSON(t, r, http.MethodPost, "/api/v1/matches", map[string]any{"format": "limited_overs"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		payload := decodeError(t, w)
		if len(payload.FieldErrors) != 1 || payload.FieldErrors[0].Field != "overs_limit" {
			t.Fatalf("field errors = %+v", payload.FieldErrors)
		}
	})
}

func TestGetMatch_Handler(t *testing.T) {
	matches := &stubMatchService{}
	matches.get.result = model.Match{ID: 5, Status: model.StatusLive}
	r := newRouter(matches, &stubScoringService{})

	w := doJSON(t, r, http.MethodGet, "/api/v1/matches/5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if matches.get.gotID != 5 {
		t.Fatalf("id = %d, want 5", matches.get.gotID)
	}

	t.Run("not found", func(t *testing.T) {
		matches := &stubMatchService{}
		matches.get.err = repository.ErrNotFound
		r := newRouter(matches, &stubScoringService{})
		w := doJSON(t, r, http.MethodGet, "/api/v1/matches/404", nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
		if payload := decodeError(t, w); payload.Error != "not_found" {
			t.Fatalf("error = %q", payload.Error)
		}
	})

	t.Run("garbage id", func(t *testing.T) {
		r := newRouter(&stubMatchService{}, &stubScoringService{})
		w := doJSON(t, r, http.MethodGet, "/api/v1/matches/abc", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		payload := decodeError(t, w)
		if len(payload.FieldErrors) != 1 || payload.FieldErrors[0].Field != "match_id" {
			t.Fatalf("field errors = %+v", payload.FieldErrors)
		}
	})

	t.Run("zero id", func(t *testing.T) {
		r := newRouter(&stubMatchService{}, &stubScoringService{})
		w := doJSON(t, r, http.MethodGet, "/api/v1/matches/0", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestSnapshot_Handler(t *testing.T) {
	matches := &stubMatchService{}
	matches.snapshot.result.MatchID = 5
	matches.snapshot.result.TeamA = "Harbour View"
	r := newRouter(matches, &stubScoringService{})

	w := doJSON(t, r, http.MethodGet, "/api/v1/matches/5/snapshot", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var snap struct {
		MatchID int64  `json:"match_id"`
		TeamA   string `json:"team_a"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.MatchID != 5 || snap.TeamA != "Harbour View" {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestListMatches_Handler(t *testing.T) {
	matches := &stubMatchService{}
	matches.list.result = repository.PageResult[model.MatchSummary]{
		Items: []model.MatchSummary{{ID: 2}, {ID: 1}},
		Total: 2,
	}
	r := newRouter(matches, &stubScoringService{})

	w := doJSON(t, r, http.MethodGet, "/api/v1/matches?limit=2&offset=4", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := matches.list.gotPage; got.Limit != 2 || got.Offset != 4 {
		t.Fatalf("page = %+v", got)
	}
}
