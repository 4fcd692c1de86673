package generation

import (
	"errors"
	"reflect"
	"testing"

	"geminus.dev/internal/models"
)

func TestGenerateIsDeterministic(t *testing.T) {
	gen := NewRosterGenerator()
	first, err := gen.Generate(40, 72)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := gen.Generate(40, 72)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("rosters differ:\n%v\n%v", first, second)
	}
}

func TestGenerateRosterShape(t *testing.T) {
	gen := NewRosterGenerator()
	for zone := 1; zone <= 101; zone++ {
		level := zone*3 + 1
		roster, err := gen.Generate(zone, level)
		if err != nil {
			t.Fatalf("zone %d: %v", zone, err)
		}
		if len(roster) != models.RosterSize {
			t.Fatalf("zone %d: roster size %d", zone, len(roster))
		}

		names := make(map[string]bool)
		for i, m := range roster {
			if names[m.Name] {
				t.Fatalf("zone %d: duplicate name %q", zone, m.Name)
			}
			names[m.Name] = true

			wantTier := models.TierRegular
			if i == models.RosterSize-1 {
				wantTier = models.TierBoss
			}
			if m.Tier != wantTier {
				t.Fatalf("zone %d monster %d: tier %q, want %q", zone, i, m.Tier, wantTier)
			}
			if i > 0 && !m.Stats.AtLeast(roster[i-1].Stats) {
				t.Fatalf("zone %d monster %d: stats %v below %v", zone, i, m.Stats, roster[i-1].Stats)
			}
		}
		boss, last := roster[10].Stats, roster[9].Stats
		if !boss.Exceeds(last) {
			t.Fatalf("zone %d: boss %v does not exceed %v", zone, boss, last)
		}
	}
}

func TestStatsScaleWithLevel(t *testing.T) {
	gen := NewRosterGenerator()
	low, err := gen.Generate(30, 10)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	high, err := gen.Generate(30, 40)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := range low {
		if !high[i].Stats.Exceeds(low[i].Stats) {
			t.Fatalf("monster %d: level 40 stats %v not above level 10 stats %v", i, high[i].Stats, low[i].Stats)
		}
	}
}

func TestBossStatsUsesMultiplier(t *testing.T) {
	got := BossStats(models.Stats{HP: 101, Attack: 7, Defense: 4})
	want := models.Stats{HP: 253, Attack: 18, Defense: 10}
	if got != want {
		t.Fatalf("boss stats = %v, want %v", got, want)
	}
}

func TestGenerateReportsDuplicateNames(t *testing.T) {
	gen := &RosterGenerator{
		Prefixes:   []string{"Grim"},
		Creatures:  []string{"Rat", "Rat", "Rat", "Rat", "Rat", "Rat", "Rat", "Rat", "Rat", "Rat", "Rat"},
		BossTitles: []string{"Elder"},
	}
	_, err := gen.Generate(40, 5)

	var dup *DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateNameError, got %v", err)
	}
	if dup.Name != "Grim Rat" || dup.ZoneID != 40 {
		t.Fatalf("unexpected error detail: %+v", dup)
	}
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	gen := NewRosterGenerator()
	if _, err := gen.Generate(0, 5); err == nil {
		t.Fatal("expected error for zone 0")
	}
	if _, err := gen.Generate(3, 0); err == nil {
		t.Fatal("expected error for level 0")
	}
	small := &RosterGenerator{Creatures: []string{"Rat"}}
	if _, err := small.Generate(3, 3); err == nil {
		t.Fatal("expected error for short creature pool")
	}
}

func TestLayoutBuildingsCoversRequiredKinds(t *testing.T) {
	buildings := LayoutBuildings(7, "Mirefen", 6)
	if len(buildings) != len(models.RequiredBuildings) {
		t.Fatalf("got %d buildings", len(buildings))
	}
	seen := make(map[models.HexCoord]bool)
	for i, b := range buildings {
		if b.Kind != models.RequiredBuildings[i] {
			t.Fatalf("building %d kind = %q", i, b.Kind)
		}
		if seen[b.Position] {
			t.Fatalf("two buildings share %v", b.Position)
		}
		seen[b.Position] = true
		if b.Position.Distance(models.HexCoord{}) > 6 {
			t.Fatalf("building %q outside zone", b.Name)
		}
	}
	if buildings[4].Position != (models.HexCoord{}) {
		t.Fatalf("teleporter should be at the center, got %v", buildings[4].Position)
	}
	if buildings[4].Name != "Mirefen Waygate" {
		t.Fatalf("teleporter name = %q", buildings[4].Name)
	}
}
