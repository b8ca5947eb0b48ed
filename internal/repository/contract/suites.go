package contract

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/model"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/repository"
)

// Match contracts

type MatchFactory func(t *testing.T) (repository.MatchRepository, func())

type TxFactory func(t *testing.T) (tx repository.TxManager, matches repository.MatchRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

// fixtureMatch builds a small but complete aggregate: two rosters, a few
// deliveries including a wicket and extras, and both an open and a closed
// interruption. The logs must survive storage byte-for-byte, so the fixture
// deliberately exercises every optional field.
func fixtureMatch() model.Match {
	at := time.Date(2025, 6, 14, 14, 0, 0, 0, time.UTC)
	ended := at.Add(25 * time.Minute)
	return model.Match{
		Format:          model.FormatLimitedOvers,
		OversLimit:      20,
		RainRuleEnabled: true,
		TossWinner:      "Harbour View",
		TossDecision:    model.DecisionBat,
		TeamA: model.Team{Name: "Harbour View", Players: []model.Player{
			{ID: 1, Name: "Archer"}, {ID: 2, Name: "Blake"}, {ID: 3, Name: "Cole"},
		}},
		TeamB: model.Team{Name: "Spanish Town", Players: []model.Player{
			{ID: 11, Name: "Reid"}, {ID: 12, Name: "Senior"}, {ID: 13, Name: "Tulloch"},
		}},
		Status:         model.StatusLive,
		CurrentInnings: 1,
		StrikerID:      1,
		NonStrikerID:   2,
		BowlerID:       11,
		Deliveries: []model.Delivery{
			{Innings: 1, Over: 1, Ball: 1, StrikerID: 1, NonStrikerID: 2, BowlerID: 11, RunsOffBat: 4, Extra: model.ExtraNone, At: at},
			{Innings: 1, Over: 1, Ball: 2, StrikerID: 1, NonStrikerID: 2, BowlerID: 11, Extra: model.ExtraWide, ExtraRuns: 1, At: at.Add(time.Minute)},
			{Innings: 1, Over: 1, Ball: 2, StrikerID: 1, NonStrikerID: 2, BowlerID: 11, Extra: model.ExtraNone,
				Wicket: true, Dismissal: model.DismissalCaught, DismissedID: 1, FielderID: 12, At: at.Add(2 * time.Minute)},
		},
		Innings: []model.InningsCard{{
			Number: 1, BattingTeam: "Harbour View", BowlingTeam: "Spanish Town", OversLimitAtStart: 20,
		}},
		Interruptions: []model.Interruption{
			{ID: 1, Kind: model.InterruptionWeather, Innings: 1, StartedAt: at.Add(5 * time.Minute), EndedAt: &ended, Note: "passing shower"},
			{ID: 2, Kind: model.InterruptionLight, Innings: 1, StartedAt: at.Add(40 * time.Minute)},
		},
	}
}

func RunMatchRepositoryContract(t *testing.T, makeRepo MatchFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, fixtureMatch())
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if created.ID == 0 || created.Version != 1 {
			t.Fatalf("expected assigned id and version 1, got id=%d version=%d", created.ID, created.Version)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != created.ID || got.TeamA.Name != "Harbour View" || got.Status != model.StatusLive {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("logs_survive_round_trip", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seed := fixtureMatch()
		created, err := repo.Create(ctx, seed)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if !reflect.DeepEqual(got.Deliveries, seed.Deliveries) {
			t.Fatalf("delivery log did not round-trip:\nwant %+v\ngot  %+v", seed.Deliveries, got.Deliveries)
		}
		if !reflect.DeepEqual(got.Interruptions, seed.Interruptions) {
			t.Fatalf("interruption log did not round-trip:\nwant %+v\ngot  %+v", seed.Interruptions, got.Interruptions)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 999999)
		if err == nil || err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("update_bumps_version", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, fixtureMatch())
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		created.Innings[0].Runs = 9
		updated, err := repo.Update(ctx, created, created.Version)
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if updated.Version != created.Version+1 {
			t.Fatalf("expected version bump to %d, got %d", created.Version+1, updated.Version)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Innings[0].Runs != 9 || got.Version != updated.Version {
			t.Fatalf("updated aggregate not persisted: %+v", got)
		}
	})

	t.Run("update_stale_version_conflict", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, fixtureMatch())
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if _, err := repo.Update(ctx, created, created.Version); err != nil {
			t.Fatalf("first update failed: %v", err)
		}
		_, err = repo.Update(ctx, created, created.Version)
		if err == nil || err != repository.ErrConflict {
			t.Fatalf("expected ErrConflict on stale version, got %v", err)
		}
	})

	t.Run("update_missing_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		missing := fixtureMatch()
		missing.ID = 424242
		_, err := repo.Update(context.Background(), missing, 1)
		if err == nil || err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_pagination_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 7; i++ {
			if _, err := repo.Create(ctx, fixtureMatch()); err != nil {
				t.Fatalf("seed %d: %v", i, err)
			}
		}
		res, err := repo.List(ctx, repository.Page{Limit: 3, Offset: 0})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 7 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		res2, err := repo.List(ctx, repository.Page{Limit: 3, Offset: 6})
		if err != nil {
			t.Fatalf("list2: %v", err)
		}
		if len(res2.Items) != 1 || res2.Total != 7 {
			t.Fatalf("unexpected page2: len=%d total=%d", len(res2.Items), res2.Total)
		}
	})

	t.Run("exists", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, fixtureMatch())
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		ok, err := repo.Exists(ctx, created.ID)
		if err != nil || !ok {
			t.Fatalf("expected exists=true, got ok=%v err=%v", ok, err)
		}
		ok, err = repo.Exists(ctx, created.ID+1000)
		if err != nil || ok {
			t.Fatalf("expected exists=false, got ok=%v err=%v", ok, err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, matches, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := matches.Create(ctx, fixtureMatch())
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := matches.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, matches, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		errMarker := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := matches.Create(ctx, fixtureMatch())
			if err != nil {
				return err
			}
			createdID = out.ID
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := matches.GetByID(ctx, createdID); err == nil || err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
