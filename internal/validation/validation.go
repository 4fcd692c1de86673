package validation

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/zyedidia/generic/mapset"

	"geminus.dev/internal/catalog"
	"geminus.dev/internal/models"
)

// ZoneSource is anything that can list zone definitions
type ZoneSource interface {
	Zones() []models.Zone
}

// UnknownBuilding is a building whose kind is not one of the required kinds
type UnknownBuilding struct {
	Kind       models.BuildingKind `json:"kind"`
	Suggestion models.BuildingKind `json:"suggestion,omitempty"`
}

// ZoneReport lists the violations found in one zone
type ZoneReport struct {
	Name              string                `json:"name"`
	MissingBuildings  []models.BuildingKind `json:"missingBuildings"`
	UnknownBuildings  []UnknownBuilding     `json:"unknownBuildings,omitempty"`
	MonsterCountError bool                  `json:"monsterCountError"`
	BossPresent       bool                  `json:"bossPresent"`
	StatOrderError    bool                  `json:"statOrderError,omitempty"`
	DuplicateNames    []string              `json:"duplicateNames,omitempty"`
	SharedRoster      bool                  `json:"sharedRoster,omitempty"`
}

// Complete reports whether the zone has no violation
func (z ZoneReport) Complete() bool {
	return len(z.MissingBuildings) == 0 &&
		len(z.UnknownBuildings) == 0 &&
		!z.MonsterCountError &&
		z.BossPresent &&
		!z.StatOrderError &&
		len(z.DuplicateNames) == 0 &&
		!z.SharedRoster
}

// Report maps zone id to violations. Complete zones are absent.
type Report map[int]ZoneReport

// Failing returns the failing zone ids in ascending order
func (r Report) Failing() []int {
	ids := make([]int, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Validate checks every zone against the structural invariants. It only reads
// from src; failing zones are reported, never repaired.
func Validate(src ZoneSource) Report {
	zones := src.Zones()
	report := make(Report)

	rosterOwners := make(map[string][]int)
	for _, z := range zones {
		key := rosterKey(z.Monsters)
		rosterOwners[key] = append(rosterOwners[key], z.ID)
	}

	for _, z := range zones {
		zr := CheckZone(z)
		if z.ID > catalog.StarterZones && len(rosterOwners[rosterKey(z.Monsters)]) > 1 {
			zr.SharedRoster = true
		}
		if !zr.Complete() {
			report[z.ID] = zr
		}
	}
	return report
}

// CheckZone evaluates the invariants that only need the zone itself
func CheckZone(z models.Zone) ZoneReport {
	zr := ZoneReport{Name: z.Name, MissingBuildings: []models.BuildingKind{}}

	present := mapset.New[models.BuildingKind]()
	required := mapset.New[models.BuildingKind]()
	for _, kind := range models.RequiredBuildings {
		required.Put(kind)
	}
	for _, b := range z.Buildings {
		if !required.Has(b.Kind) {
			zr.UnknownBuildings = append(zr.UnknownBuildings, UnknownBuilding{
				Kind:       b.Kind,
				Suggestion: suggestKind(b.Kind),
			})
			continue
		}
		present.Put(b.Kind)
	}
	for _, kind := range models.RequiredBuildings {
		if !present.Has(kind) {
			zr.MissingBuildings = append(zr.MissingBuildings, kind)
		}
	}

	zr.MonsterCountError = len(z.Monsters) != models.RosterSize
	zr.BossPresent = bossLast(z.Monsters)
	zr.StatOrderError = !statsOrdered(z.Monsters)
	zr.DuplicateNames = duplicateNames(z.Monsters)
	return zr
}

// BuildingCounts recomputes how many buildings of each kind a zone holds
func BuildingCounts(z models.Zone) map[models.BuildingKind]int {
	counts := make(map[models.BuildingKind]int, len(models.RequiredBuildings))
	for _, kind := range models.RequiredBuildings {
		counts[kind] = 0
	}
	for _, b := range z.Buildings {
		counts[b.Kind]++
	}
	return counts
}

// exactly one boss, and it is the final entry
func bossLast(roster []models.Monster) bool {
	if len(roster) == 0 {
		return false
	}
	bosses := 0
	for _, m := range roster {
		if m.Tier == models.TierBoss {
			bosses++
		}
	}
	return bosses == 1 && roster[len(roster)-1].Tier == models.TierBoss
}

func statsOrdered(roster []models.Monster) bool {
	for i := 1; i < len(roster); i++ {
		prev, cur := roster[i-1], roster[i]
		if cur.Tier == models.TierBoss {
			if !cur.Stats.Exceeds(prev.Stats) {
				return false
			}
			continue
		}
		if !cur.Stats.AtLeast(prev.Stats) {
			return false
		}
	}
	return true
}

func duplicateNames(roster []models.Monster) []string {
	seen := mapset.New[string]()
	var dups []string
	for _, m := range roster {
		if seen.Has(m.Name) && !slices.Contains(dups, m.Name) {
			dups = append(dups, m.Name)
		}
		seen.Put(m.Name)
	}
	return dups
}

func rosterKey(roster []models.Monster) string {
	var sb strings.Builder
	for _, m := range roster {
		fmt.Fprintf(&sb, "%s|%d|%d|%d|%s;", m.Name, m.Stats.HP, m.Stats.Attack, m.Stats.Defense, m.Tier)
	}
	return sb.String()
}

// suggestKind returns the closest required kind to a misspelled one
func suggestKind(kind models.BuildingKind) models.BuildingKind {
	name := strings.ToLower(string(kind))
	best, bestDist := models.BuildingKind(""), -1
	for _, candidate := range models.RequiredBuildings {
		dist := levenshtein.ComputeDistance(name, strings.ToLower(string(candidate)))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	if bestDist > max(2, len(name)/3) {
		return ""
	}
	return best
}

// Write prints the violations of every failing zone
func (r Report) Write(w io.Writer) {
	for _, id := range r.Failing() {
		zr := r[id]
		fmt.Fprintf(w, "Zone %d (%s): INCOMPLETE\n", id, zr.Name)
		if len(zr.MissingBuildings) > 0 {
			fmt.Fprintf(w, "  missing buildings: %s\n", joinKinds(zr.MissingBuildings))
		}
		for _, u := range zr.UnknownBuildings {
			if u.Suggestion != "" {
				fmt.Fprintf(w, "  unknown building %q (did you mean %s?)\n", u.Kind, u.Suggestion)
			} else {
				fmt.Fprintf(w, "  unknown building %q\n", u.Kind)
			}
		}
		if zr.MonsterCountError {
			fmt.Fprintf(w, "  monster roster must have exactly %d entries\n", models.RosterSize)
		}
		if !zr.BossPresent {
			fmt.Fprintln(w, "  roster needs exactly one boss in the last slot")
		}
		if zr.StatOrderError {
			fmt.Fprintln(w, "  monster stats decrease along the roster or the boss does not exceed its predecessor")
		}
		if len(zr.DuplicateNames) > 0 {
			fmt.Fprintf(w, "  duplicate monster names: %s\n", strings.Join(zr.DuplicateNames, ", "))
		}
		if zr.SharedRoster {
			fmt.Fprintln(w, "  roster is shared with another zone")
		}
	}
}

func joinKinds(kinds []models.BuildingKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = string(k)
	}
	return strings.Join(parts, ", ")
}
