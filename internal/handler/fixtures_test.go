package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/engine"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/handler"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/repository"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/service"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubMatchService struct {
	create struct {
		got    service.CreateMatchInput
		result model.Match
		err    error
	}
	get struct {
		gotID  int64
		result model.Match
		err    error
	}
	snapshot struct {
		gotID  int64
		result engine.Snapshot
		err    error
	}
	list struct {
		gotPage repository.Page
		result  repository.PageResult[model.MatchSummary]
		err     error
	}
}

func (s *stubMatchService) CreateMatch(_ context.Context, in service.CreateMatchInput) (model.Match, error) {
	s.create.got = in
	return s.create.result, s.create.err
}

func (s *stubMatchService) GetMatch(_ context.Context, id int64) (model.Match, error) {
	s.get.gotID = id
	return s.get.result, s.get.err
}

func (s *stubMatchService) GetSnapshot(_ context.Context, id int64) (engine.Snapshot, error) {
	s.snapshot.gotID = id
	return s.snapshot.result, s.snapshot.err
}

func (s *stubMatchService) ListMatches(_ context.Context, p repository.Page) (repository.PageResult[model.MatchSummary], error) {
	s.list.gotPage = p
	return s.list.result, s.list.err
}

// stubScoringService records the last command it saw and answers with a
// canned snapshot or error, whichever is set.
type stubScoringService struct {
	snap engine.Snapshot
	err  error

	target engine.TargetBreakdown
	par    engine.ParBreakdown

	gotMatchID  int64
	gotStart    engine.StartInningsInput
	gotDelivery engine.DeliveryCommand
	gotBatterID int64
	gotBowlerID int64
	gotKind     model.InterruptionKind
	gotNote     string
	gotLimit    int
	gotResult   model.MatchResult
}

func (s *stubScoringService) StartInnings(_ context.Context, id int64, in engine.StartInningsInput) (engine.Snapshot, error) {
	s.gotMatchID, s.gotStart = id, in
	return s.snap, s.err
}

func (s *stubScoringService) ApplyDelivery(_ context.Context, id int64, cmd engine.DeliveryCommand) (engine.Snapshot, error) {
	s.gotMatchID, s.gotDelivery = id, cmd
	return s.snap, s.err
}

func (s *stubScoringService) RegisterNewBatter(_ context.Context, id, batterID int64) (engine.Snapshot, error) {
	s.gotMatchID, s.gotBatterID = id, batterID
	return s.snap, s.err
}

func (s *stubScoringService) RegisterNewOver(_ context.Context, id, bowlerID int64) (engine.Snapshot, error) {
	s.gotMatchID, s.gotBowlerID = id, bowlerID
	return s.snap, s.err
}

func (s *stubScoringService) StartInterruption(_ context.Context, id int64, kind model.InterruptionKind, note string) (engine.Snapshot, error) {
	s.gotMatchID, s.gotKind, s.gotNote = id, kind, note
	return s.snap, s.err
}

func (s *stubScoringService) StopInterruption(_ context.Context, id int64, kind model.InterruptionKind) (engine.Snapshot, error) {
	s.gotMatchID, s.gotKind = id, kind
	return s.snap, s.err
}

func (s *stubScoringService) ReduceOversLimit(_ context.Context, id int64, newLimit int, note string) (engine.Snapshot, error) {
	s.gotMatchID, s.gotLimit, s.gotNote = id, newLimit, note
	return s.snap, s.err
}

func (s *stubScoringService) AbandonMatch(_ context.Context, id int64, note string) (engine.Snapshot, error) {
	s.gotMatchID, s.gotNote = id, note
	return s.snap, s.err
}

func (s *stubScoringService) OverrideResult(_ context.Context, id int64, res model.MatchResult) (engine.Snapshot, error) {
	s.gotMatchID, s.gotResult = id, res
	return s.snap, s.err
}

func (s *stubScoringService) ComputeRevisedTarget(_ context.Context, id int64) (engine.TargetBreakdown, error) {
	s.gotMatchID = id
	return s.target, s.err
}

func (s *stubScoringService) ComputeParNow(_ context.Context, id int64) (engine.ParBreakdown, error) {
	s.gotMatchID = id
	return s.par, s.err
}

var (
	_ service.MatchService   = (*stubMatchService)(nil)
	_ service.ScoringService = (*stubScoringService)(nil)
)

func newRouter(matchSvc service.MatchService, scoringSvc service.ScoringService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.Register(r, stubPinger{}, matchSvc, scoringSvc, nil)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) struct {
	Error       string               `json:"error"`
	Message     string               `json:"message"`
	FieldErrors []service.FieldError `json:"field_errors"`
} {
	t.Helper()
	var payload struct {
		Error       string               `json:"error"`
		Message     string               `json:"message"`
		FieldErrors []service.FieldError `json:"field_errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error payload: %v (%s)", err, w.Body.String())
	}
	return payload
}

const rawBody = `{"this is": not json`

func invalidJSON() *bytes.Buffer { return bytes.NewBufferString(rawBody) }

func postRaw(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, invalidJSON())
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
