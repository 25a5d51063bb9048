package engine

import (
	"fmt"
	"math"
	"time"

	"courtsense/training-app/internal/catalog"
	"courtsense/training-app/internal/domain"
)

// PlanItemKind tags the two item flavors in a daily plan.
type PlanItemKind string

const (
	ItemDrill  PlanItemKind = "drill"
	ItemGameIQ PlanItemKind = "game_iq"
)

// PlanItem is one entry in a daily plan, already adjusted for the day's mode.
type PlanItem struct {
	Kind                  PlanItemKind           `json:"kind"`
	RefID                 string                 `json:"refId"`
	Name                  string                 `json:"name"`
	Category              string                 `json:"category,omitempty"`
	Intensity             catalog.DrillIntensity `json:"intensity,omitempty"`
	TargetReps            int                    `json:"targetReps,omitempty"`
	TargetDurationMinutes int                    `json:"targetDurationMinutes"`
}

// DailyPlan is the ephemeral "what to do today" recommendation. Regenerated
// on demand; never a source of truth.
type DailyPlan struct {
	Mode                     domain.SessionMode     `json:"mode"`
	Explanation              string                 `json:"explanation"`
	Adjustments              domain.ModeAdjustments `json:"adjustments"`
	Items                    []PlanItem             `json:"items"`
	SuggestedDurationMinutes int                    `json:"suggestedDurationMinutes"`
	ArcID                    string                 `json:"arcId,omitempty"`
	ArcDayIndex              int                    `json:"arcDayIndex"` // meaningful only when arcId is set; day 0 must survive serialization
	ArcProgressPercent       int                    `json:"arcProgressPercent"`
	Streak                   int                    `json:"streak"`
	StreakNote               string                 `json:"streakNote,omitempty"`
}

// A streak this long earns a callout on the plan.
const streakNoteThreshold = 3

// How far back the variety rule looks, and how many repeats trigger it.
const (
	varietyWindowDays = 3
	varietyRepeatDays = 2
)

// PlanRequest carries everything the plan builder needs. The caller supplies
// consistent inputs; the builder never reaches for a store or a clock.
type PlanRequest struct {
	CheckIn        *domain.CheckIn
	Enrollment     *domain.ArcEnrollment // active enrollment, nil if none
	RecentSessions []domain.TrainingSession
	Settings       *domain.ChildSettings // parent controls, nil means unrestricted
	Streak         int
	Now            time.Time
}

// BuildTodayPlan composes the day's training plan from the latest check-in,
// the active arc's scheduled content, and recent history. Deterministic given
// identical inputs.
//
// Recovery and low-battery modes adapt the plan, they never empty it: arc
// content stays in, high-intensity drills swap to their low-intensity
// variants, and rep targets scale by the mode's multiplier. Recovery changes
// how a child trains, not whether.
func BuildTodayPlan(req PlanRequest) (DailyPlan, error) {
	if req.CheckIn == nil {
		return DailyPlan{}, ErrNoCheckIn
	}

	result, err := Classify(FromCheckIn(*req.CheckIn))
	if err != nil {
		return DailyPlan{}, err
	}

	// Parent controls only ever tighten the day, never loosen it.
	if req.Settings != nil {
		if !req.Settings.IntenseDrillsPermitted {
			result.Adjustments.IntenseDrillsAllowed = false
		}
		if req.Settings.MaxDailyMinutes > 0 &&
			result.Adjustments.SuggestedDurationMinutes > req.Settings.MaxDailyMinutes {
			result.Adjustments.SuggestedDurationMinutes = req.Settings.MaxDailyMinutes
		}
	}

	plan := DailyPlan{
		Mode:                     result.Mode,
		Explanation:              result.Explanation,
		Adjustments:              result.Adjustments,
		SuggestedDurationMinutes: result.Adjustments.SuggestedDurationMinutes,
		Streak:                   req.Streak,
	}
	if req.Streak >= streakNoteThreshold {
		plan.StreakNote = fmt.Sprintf("%d days in a row. Showing up is the real skill.", req.Streak)
	}

	var drillItems, iqItems []PlanItem

	if req.Enrollment != nil {
		arc, ok := catalog.ArcByID(catalog.ArcID(req.Enrollment.ArcID))
		if !ok {
			// Enrollments must always reference a cataloged arc.
			return DailyPlan{}, &InvariantViolationError{
				Msg: fmt.Sprintf("enrollment %s references unknown arc %q", req.Enrollment.ID.Hex(), req.Enrollment.ArcID),
			}
		}

		dayIdx := DayIndex(*req.Enrollment, req.Now)
		plan.ArcID = string(arc.ID)
		plan.ArcDayIndex = dayIdx
		plan.ArcProgressPercent = ProgressPercent(dayIdx, arc)

		// Content repeats by day-index modulo list length when an arc's list
		// is shorter than its duration; repeats are intentional.
		drillID := arc.DrillIDs[dayIdx%len(arc.DrillIDs)]
		drillID = applyVariety(drillID, arc, req.RecentSessions, req.Now)
		drillItems = append(drillItems, drillItem(drillID, result.Adjustments))

		iqID := arc.GameIQIDs[dayIdx%len(arc.GameIQIDs)]
		iqItems = append(iqItems, gameIQItem(iqID))
	} else {
		// No active arc: suggest one general drill, still honoring intensity
		// limits and the variety rule.
		if id, ok := generalDrillPick(result.Adjustments, req.RecentSessions, req.Now); ok {
			drillItems = append(drillItems, drillItem(id, result.Adjustments))
		}
		if result.Adjustments.IncludeDecisionWork {
			// First module in catalog order keeps the pick reproducible.
			iqItems = append(iqItems, gameIQItem(firstGameIQID()))
		}
	}

	if result.Adjustments.GameIQEmphasis {
		plan.Items = append(iqItems, drillItems...)
	} else {
		plan.Items = append(drillItems, iqItems...)
	}
	return plan, nil
}

// drillItem materializes a plan item for a drill, substituting the
// low-intensity variant when intense drills are disallowed and scaling the
// rep target by the mode's multiplier.
func drillItem(id catalog.DrillID, adj domain.ModeAdjustments) PlanItem {
	drill, _ := catalog.DrillByID(id)
	if drill.Intensity == catalog.IntensityHigh && !adj.IntenseDrillsAllowed {
		if variant, ok := catalog.DrillByID(drill.LowVariantID); ok {
			drill = variant
		}
	}
	reps := 0
	if drill.BaseReps > 0 {
		reps = int(math.Round(float64(drill.BaseReps) * adj.RepMultiplier))
		if reps < 1 {
			reps = 1
		}
	}
	return PlanItem{
		Kind:                  ItemDrill,
		RefID:                 string(drill.ID),
		Name:                  drill.Name,
		Category:              drill.Category,
		Intensity:             drill.Intensity,
		TargetReps:            reps,
		TargetDurationMinutes: drill.BaseDurationMinutes,
	}
}

func gameIQItem(id catalog.GameIQID) PlanItem {
	mod, _ := catalog.GameIQByID(id)
	return PlanItem{
		Kind:                  ItemGameIQ,
		RefID:                 string(mod.ID),
		Name:                  mod.Title,
		Category:              mod.Topic,
		TargetDurationMinutes: mod.DurationMinutes,
	}
}

// recentlyOverused reports whether a drill was logged on at least
// varietyRepeatDays distinct days within the last varietyWindowDays days.
func recentlyOverused(id catalog.DrillID, sessions []domain.TrainingSession, now time.Time) bool {
	days := make(map[time.Time]bool)
	for _, s := range sessions {
		if catalog.DrillID(s.DrillID) != id {
			continue
		}
		age := daysBetween(s.CreatedAt, now)
		if age < 0 || age >= varietyWindowDays {
			continue
		}
		days[startOfDay(s.CreatedAt)] = true
	}
	return len(days) >= varietyRepeatDays
}

// applyVariety prefers an alternate drill of the same category when the
// scheduled one has been logged on 2+ of the last 3 days. A soft tie-break:
// alternates are searched in the arc's list first, then the general catalog,
// lowest id first, and the scheduled drill stands if no alternate exists.
func applyVariety(scheduled catalog.DrillID, arc catalog.Arc, sessions []domain.TrainingSession, now time.Time) catalog.DrillID {
	if !recentlyOverused(scheduled, sessions, now) {
		return scheduled
	}
	drill, _ := catalog.DrillByID(scheduled)

	// Arc content first. Arc lists are short, so sort by id via the catalog
	// ordering rather than list position.
	var best catalog.DrillID
	for _, candidate := range catalog.DrillsInCatalogOrder() {
		if candidate.ID == scheduled || candidate.Category != drill.Category {
			continue
		}
		inArc := false
		for _, id := range arc.DrillIDs {
			if id == candidate.ID {
				inArc = true
				break
			}
		}
		if inArc {
			return candidate.ID
		}
		if best == "" {
			best = candidate.ID
		}
	}
	if best != "" {
		return best
	}
	return scheduled
}

// generalDrillPick chooses a drill for children with no active arc: the first
// catalog-order drill whose intensity is allowed and that the variety rule
// doesn't block. Falls back to the first allowed drill when everything recent
// repeats.
func generalDrillPick(adj domain.ModeAdjustments, sessions []domain.TrainingSession, now time.Time) (catalog.DrillID, bool) {
	var fallback catalog.DrillID
	for _, d := range catalog.DrillsInCatalogOrder() {
		if d.Intensity == catalog.IntensityHigh && !adj.IntenseDrillsAllowed {
			continue
		}
		if fallback == "" {
			fallback = d.ID
		}
		if recentlyOverused(d.ID, sessions, now) {
			continue
		}
		return d.ID, true
	}
	if fallback != "" {
		return fallback, true
	}
	return "", false
}

// firstGameIQID returns the lowest-id Game-IQ module, the deterministic pick
// when no arc schedules one.
func firstGameIQID() catalog.GameIQID {
	return catalog.IQHelpRotations
}
