package validation

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"geminus.dev/internal/catalog"
	"geminus.dev/internal/models"
)

type zoneList []models.Zone

func (z zoneList) Zones() []models.Zone { return z }

func builtinZones(t *testing.T) zoneList {
	t.Helper()
	c, err := catalog.Builtin()
	if err != nil {
		t.Fatalf("builtin catalog: %v", err)
	}
	return zoneList(c.Zones())
}

func TestValidateCompleteCatalog(t *testing.T) {
	c, err := catalog.Builtin()
	if err != nil {
		t.Fatalf("builtin catalog: %v", err)
	}
	if report := Validate(c); len(report) != 0 {
		var buf bytes.Buffer
		report.Write(&buf)
		t.Fatalf("expected empty report, got:\n%s", buf.String())
	}
}

func TestValidateReportsEachMissingKind(t *testing.T) {
	for _, kind := range models.RequiredBuildings {
		t.Run(string(kind), func(t *testing.T) {
			zones := builtinZones(t)
			z := &zones[41]
			z.Buildings = slices.DeleteFunc(z.Buildings, func(b models.Building) bool { return b.Kind == kind })

			report := Validate(zones)
			if got := report.Failing(); !slices.Equal(got, []int{z.ID}) {
				t.Fatalf("failing zones = %v, want [%d]", got, z.ID)
			}
			if missing := report[z.ID].MissingBuildings; !slices.Equal(missing, []models.BuildingKind{kind}) {
				t.Fatalf("missing = %v, want [%s]", missing, kind)
			}
		})
	}
}

func TestValidateDoesNotMutateSource(t *testing.T) {
	zones := builtinZones(t)
	zones[3].Monsters = zones[3].Monsters[:5]
	before := len(zones[3].Monsters)
	Validate(zones)
	if len(zones[3].Monsters) != before {
		t.Fatal("validate changed the roster")
	}
}

func TestCheckZoneRosterViolations(t *testing.T) {
	base := builtinZones(t)[60]

	tests := []struct {
		name   string
		mutate func(z *models.Zone)
		check  func(t *testing.T, zr ZoneReport)
	}{
		{
			name:   "short roster",
			mutate: func(z *models.Zone) { z.Monsters = z.Monsters[1:] },
			check: func(t *testing.T, zr ZoneReport) {
				if !zr.MonsterCountError {
					t.Fatal("expected monster count error")
				}
				if !zr.BossPresent {
					t.Fatal("boss is still last")
				}
			},
		},
		{
			name: "boss not last",
			mutate: func(z *models.Zone) {
				z.Monsters[9], z.Monsters[10] = z.Monsters[10], z.Monsters[9]
			},
			check: func(t *testing.T, zr ZoneReport) {
				if zr.BossPresent {
					t.Fatal("expected boss violation")
				}
				if zr.MonsterCountError {
					t.Fatal("count is still 11")
				}
			},
		},
		{
			name: "two bosses",
			mutate: func(z *models.Zone) {
				z.Monsters[3].Tier = models.TierBoss
			},
			check: func(t *testing.T, zr ZoneReport) {
				if zr.BossPresent {
					t.Fatal("expected boss violation")
				}
			},
		},
		{
			name: "weak boss",
			mutate: func(z *models.Zone) {
				z.Monsters[10].Stats = z.Monsters[9].Stats
			},
			check: func(t *testing.T, zr ZoneReport) {
				if !zr.StatOrderError {
					t.Fatal("expected stat order error")
				}
			},
		},
		{
			name: "duplicate name",
			mutate: func(z *models.Zone) {
				z.Monsters[4].Name = z.Monsters[2].Name
			},
			check: func(t *testing.T, zr ZoneReport) {
				if len(zr.DuplicateNames) != 1 {
					t.Fatalf("duplicates = %v", zr.DuplicateNames)
				}
			},
		},
		{
			name: "misspelled building",
			mutate: func(z *models.Zone) {
				z.Buildings[1].Kind = "Armoury"
			},
			check: func(t *testing.T, zr ZoneReport) {
				if !slices.Equal(zr.MissingBuildings, []models.BuildingKind{models.Armory}) {
					t.Fatalf("missing = %v", zr.MissingBuildings)
				}
				if len(zr.UnknownBuildings) != 1 || zr.UnknownBuildings[0].Suggestion != models.Armory {
					t.Fatalf("unknown = %+v", zr.UnknownBuildings)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := base
			z.Monsters = slices.Clone(base.Monsters)
			z.Buildings = slices.Clone(base.Buildings)
			tt.mutate(&z)
			zr := CheckZone(z)
			if zr.Complete() {
				t.Fatal("expected zone to be incomplete")
			}
			tt.check(t, zr)
		})
	}
}

func TestValidateFlagsSharedRosterAfterStarterTier(t *testing.T) {
	zones := builtinZones(t)
	zones[29].Monsters = slices.Clone(zones[30].Monsters)

	report := Validate(zones)
	for _, id := range []int{30, 31} {
		if !report[id].SharedRoster {
			t.Fatalf("zone %d should be flagged as sharing a roster", id)
		}
	}
	if _, ok := report[1]; ok {
		t.Fatal("starter zones may share a roster")
	}
}

func TestBuildingCounts(t *testing.T) {
	z := builtinZones(t)[0]
	z.Buildings = append(z.Buildings, models.Building{Kind: models.Sanctuary})
	counts := BuildingCounts(z)
	if counts[models.Sanctuary] != 2 || counts[models.Teleporter] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestReportWrite(t *testing.T) {
	zones := builtinZones(t)
	zones[50].Buildings = zones[50].Buildings[:3]

	var buf bytes.Buffer
	Validate(zones).Write(&buf)
	out := buf.String()
	if !strings.Contains(out, "Zone 51") || !strings.Contains(out, "missing buildings: AetheriumConduit, Teleporter") {
		t.Fatalf("unexpected report:\n%s", out)
	}
}
