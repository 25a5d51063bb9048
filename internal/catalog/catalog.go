// Package catalog holds the compiled-in curricular content: drill definitions,
// Game-IQ modules, and the multi-day Arcs that bundle them. The tables are
// authoring-time constants validated once at package load; there is no runtime
// registration.
package catalog

import "fmt"

// ArcID is the stable key of a curricular arc.
type ArcID string

// DrillID is the stable key of a drill definition.
type DrillID string

// GameIQID is the stable key of a Game-IQ (tactical/decision) module.
type GameIQID string

// DrillIntensity classifies how physically demanding a drill is.
type DrillIntensity string

const (
	IntensityLow      DrillIntensity = "low"
	IntensityModerate DrillIntensity = "moderate"
	IntensityHigh     DrillIntensity = "high"
)

// Drill is a single physical drill definition in the library.
// High-intensity drills name a low-intensity variant so recovery-mode plans
// can substitute rather than drop content.
type Drill struct {
	ID                  DrillID
	Name                string
	Category            string
	Intensity           DrillIntensity
	BaseReps            int // 0 means duration-based, no rep target
	BaseDurationMinutes int
	LowVariantID        DrillID // required when Intensity == IntensityHigh
}

// GameIQModule is a tactical/decision-making content unit.
type GameIQModule struct {
	ID              GameIQID
	Title           string
	Topic           string
	DurationMinutes int
}

// Arc is a static, versioned curricular definition. Immutable catalog data,
// not per-child.
type Arc struct {
	ID                      ArcID
	Title                   string
	Subtitle                string
	Icon                    string
	RecommendedDurationDays int
	DrillIDs                []DrillID  // ordered; day-index selects from this list
	GameIQIDs               []GameIQID // ordered
	Description             string
	CompletionMessage       string
}

// ArcByID looks up an arc definition. The boolean is false for unknown ids.
func ArcByID(id ArcID) (Arc, bool) {
	arc, ok := arcsByID[id]
	return arc, ok
}

// DefaultArcOrder returns the arc ids in their authored order, used for
// next-arc suggestions after completion.
func DefaultArcOrder() []ArcID {
	out := make([]ArcID, len(arcOrder))
	copy(out, arcOrder)
	return out
}

// Arcs returns all arc definitions in default order.
func Arcs() []Arc {
	out := make([]Arc, 0, len(arcOrder))
	for _, id := range arcOrder {
		out = append(out, arcsByID[id])
	}
	return out
}

// DrillByID looks up a drill definition.
func DrillByID(id DrillID) (Drill, bool) {
	d, ok := drillsByID[id]
	return d, ok
}

// DrillsInCatalogOrder returns all drills ordered by id (lowest first).
// This ordering is the documented tie-break wherever the engine must pick
// one of several equally valid drills.
func DrillsInCatalogOrder() []Drill {
	out := make([]Drill, len(drillOrder))
	for i, id := range drillOrder {
		out[i] = drillsByID[id]
	}
	return out
}

// GameIQByID looks up a Game-IQ module definition.
func GameIQByID(id GameIQID) (GameIQModule, bool) {
	m, ok := gameIQByID[id]
	return m, ok
}

var (
	arcsByID   map[ArcID]Arc
	arcOrder   []ArcID
	drillsByID map[DrillID]Drill
	drillOrder []DrillID
	gameIQByID map[GameIQID]GameIQModule
)

func init() {
	drillsByID = make(map[DrillID]Drill, len(drills))
	for _, d := range drills {
		if _, dup := drillsByID[d.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate drill id %q", d.ID))
		}
		drillsByID[d.ID] = d
		drillOrder = append(drillOrder, d.ID)
	}

	gameIQByID = make(map[GameIQID]GameIQModule, len(gameIQModules))
	for _, m := range gameIQModules {
		if _, dup := gameIQByID[m.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate game-iq id %q", m.ID))
		}
		gameIQByID[m.ID] = m
	}

	arcsByID = make(map[ArcID]Arc, len(arcs))
	for _, a := range arcs {
		if _, dup := arcsByID[a.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate arc id %q", a.ID))
		}
		arcsByID[a.ID] = a
		arcOrder = append(arcOrder, a.ID)
	}

	if err := validate(); err != nil {
		panic(err)
	}
}

// validate enforces the authoring invariants: positive durations, non-empty
// content lists, all references resolving, and a low-intensity variant (of the
// same category) behind every high-intensity drill.
func validate() error {
	for _, d := range drillsByID {
		if d.Name == "" || d.Category == "" {
			return fmt.Errorf("catalog: drill %q missing name or category", d.ID)
		}
		if d.BaseReps <= 0 && d.BaseDurationMinutes <= 0 {
			return fmt.Errorf("catalog: drill %q has neither reps nor duration", d.ID)
		}
		if d.Intensity == IntensityHigh {
			variant, ok := drillsByID[d.LowVariantID]
			if !ok {
				return fmt.Errorf("catalog: drill %q low variant %q not found", d.ID, d.LowVariantID)
			}
			if variant.Intensity == IntensityHigh {
				return fmt.Errorf("catalog: drill %q low variant %q is itself high intensity", d.ID, d.LowVariantID)
			}
			if variant.Category != d.Category {
				return fmt.Errorf("catalog: drill %q low variant %q is a different category", d.ID, d.LowVariantID)
			}
		}
	}
	for _, a := range arcsByID {
		if a.RecommendedDurationDays <= 0 {
			return fmt.Errorf("catalog: arc %q has non-positive duration", a.ID)
		}
		if len(a.DrillIDs) == 0 || len(a.GameIQIDs) == 0 {
			return fmt.Errorf("catalog: arc %q has empty content lists", a.ID)
		}
		for _, id := range a.DrillIDs {
			if _, ok := drillsByID[id]; !ok {
				return fmt.Errorf("catalog: arc %q references unknown drill %q", a.ID, id)
			}
		}
		for _, id := range a.GameIQIDs {
			if _, ok := gameIQByID[id]; !ok {
				return fmt.Errorf("catalog: arc %q references unknown game-iq module %q", a.ID, id)
			}
		}
	}
	return nil
}
