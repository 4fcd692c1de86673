package services

import (
	"errors"
	"testing"

	"geminus.dev/internal/catalog"
	"geminus.dev/internal/models"
)

func newGameService(t *testing.T) (*GameService, *ZoneService) {
	t.Helper()
	c, err := catalog.Builtin()
	if err != nil {
		t.Fatalf("builtin catalog: %v", err)
	}
	zs := NewZoneService(c)
	return NewGameService(zs), zs
}

func TestNewGameStartsAtFirstTeleporter(t *testing.T) {
	gs, zs := newGameService(t)
	st := gs.NewGame("p1")
	if st.Player.ID != "p1" || st.Player.Level != 1 {
		t.Fatalf("player = %+v", st.Player)
	}
	spawn, _ := zs.Spawn(1)
	if st.Game.CurrentZoneID != 1 || st.Game.Position != spawn {
		t.Fatalf("game = %+v", st.Game)
	}
}

func TestTeleport(t *testing.T) {
	gs, zs := newGameService(t)
	st := gs.NewGame("p1")
	st.Player.Level = 40

	game, err := gs.Teleport(st.Player, st.Game, 20)
	if err != nil {
		t.Fatalf("teleport: %v", err)
	}
	spawn, _ := zs.Spawn(20)
	if game.CurrentZoneID != 20 || game.Position != spawn {
		t.Fatalf("game = %+v", game)
	}
	if len(game.VisitedZones) != 2 || game.VisitedZones[1] != 20 {
		t.Fatalf("visited = %v", game.VisitedZones)
	}
	if st.Game.CurrentZoneID != 1 {
		t.Fatal("teleport mutated its input")
	}
}

func TestTeleportRejections(t *testing.T) {
	gs, _ := newGameService(t)
	st := gs.NewGame("p1")

	if _, err := gs.Teleport(st.Player, st.Game, 30); !errors.Is(err, ErrLevelTooLow) {
		t.Fatalf("expected ErrLevelTooLow, got %v", err)
	}
	if _, err := gs.Teleport(st.Player, st.Game, 999); !errors.Is(err, catalog.ErrZoneNotFound) {
		t.Fatalf("expected ErrZoneNotFound, got %v", err)
	}
	if !IsRuleViolation(catalog.ErrZoneNotFound) || IsRuleViolation(errors.New("db down")) {
		t.Fatal("IsRuleViolation misclassifies errors")
	}
}

func TestTeleportNeedsTeleporterAtBothEnds(t *testing.T) {
	c, err := catalog.New([]models.Zone{
		{ID: 1, Name: "Gateless", LevelRequirement: 1, Radius: 3},
		{ID: 2, Name: "Gated", LevelRequirement: 1, Radius: 3, Buildings: []models.Building{{Kind: models.Teleporter}}},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	gs := NewGameService(NewZoneService(c))
	st := gs.NewGame("p")
	if _, err := gs.Teleport(st.Player, st.Game, 2); !errors.Is(err, ErrNoTeleporter) {
		t.Fatalf("expected ErrNoTeleporter, got %v", err)
	}
}

func TestMove(t *testing.T) {
	gs, _ := newGameService(t)
	st := gs.NewGame("p1")

	game, err := gs.Move(st.Game, 1, -1)
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	want := st.Game.Position.Add(models.HexCoord{Q: 1, R: -1})
	if game.Position != want {
		t.Fatalf("position = %v, want %v", game.Position, want)
	}

	if _, err := gs.Move(st.Game, 1, 1); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
	if _, err := gs.Move(st.Game, 0, 0); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove for zero step, got %v", err)
	}
}

func TestMoveStaysInsideZone(t *testing.T) {
	gs, zs := newGameService(t)
	zone, _ := zs.Get(1)
	game := models.GameState{CurrentZoneID: 1, Position: models.HexCoord{Q: zone.Radius, R: 0}}
	if _, err := gs.Move(game, 1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestSessionService(t *testing.T) {
	gs, _ := newGameService(t)
	ss := NewSessionService(gs)

	id, st := ss.Create()
	if id == "" || st.Player.ID != id {
		t.Fatalf("session id %q, player %+v", id, st.Player)
	}

	failed := errors.New("rejected")
	if _, err := ss.Update(id, func(s models.ServerState) (models.ServerState, error) {
		s.Player.Gold = 500
		return s, failed
	}); !errors.Is(err, failed) {
		t.Fatalf("expected update error, got %v", err)
	}
	got, _ := ss.Get(id)
	if got.Player.Gold != 0 {
		t.Fatal("failed update must not be stored")
	}

	if _, err := ss.Update(id, func(s models.ServerState) (models.ServerState, error) {
		s.Player.Gold = 500
		return s, nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = ss.Get(id)
	if got.Player.Gold != 500 {
		t.Fatalf("gold = %d", got.Player.Gold)
	}

	if _, err := ss.Get("missing"); !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession, got %v", err)
	}
}

func TestBuildingAt(t *testing.T) {
	_, zs := newGameService(t)
	spawn, _ := zs.Spawn(3)
	b := zs.BuildingAt(3, spawn)
	if b == nil || b.Kind != models.Teleporter {
		t.Fatalf("expected teleporter at spawn, got %+v", b)
	}
	if zs.BuildingAt(3, models.HexCoord{Q: 4, R: 1}) != nil {
		t.Fatal("expected no building off the layout")
	}
}
