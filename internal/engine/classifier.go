// Package engine is the pure rules core: session-mode classification, arc
// progression, daily plan composition, and streak statistics. Every function
// here is deterministic over its inputs; persistence and clocks are supplied
// by the caller, never fetched internally.
package engine

import (
	"math"

	"courtsense/training-app/internal/domain"
)

// CheckInData is the classifier's input, one day's self-report.
type CheckInData struct {
	Energy               int // 1-5
	Soreness             domain.Soreness
	Focus                int // 1-5
	Mood                 domain.Mood
	TimeAvailableMinutes int
	PainFlag             bool
}

// FromCheckIn extracts the classifier input from a stored check-in.
func FromCheckIn(c domain.CheckIn) CheckInData {
	return CheckInData{
		Energy:               c.Energy,
		Soreness:             c.Soreness,
		Focus:                c.Focus,
		Mood:                 c.Mood,
		TimeAvailableMinutes: c.TimeAvailableMinutes,
		PainFlag:             c.PainFlag,
	}
}

// Product-tuned scoring constants. The LIGHT->MEDIUM soreness jump is
// intentionally non-linear: moderate soreness matters more than mild.
// Preserve these exactly; they encode deliberate safety conservatism.
var moodScores = map[domain.Mood]float64{
	domain.MoodExcited:  5,
	domain.MoodFocused:  4,
	domain.MoodOkay:     3,
	domain.MoodTired:    2,
	domain.MoodStressed: 1,
}

var sorenessScores = map[domain.Soreness]float64{
	domain.SorenessNone:   5,
	domain.SorenessLight:  4,
	domain.SorenessMedium: 2,
	domain.SorenessHigh:   1,
}

const (
	shortSessionMinutes = 20  // below this, the composite score is capped
	shortSessionCap     = 3.5 // short sessions can never classify as peak
	peakThreshold       = 4.0
	normalThreshold     = 2.5
	peakRawGate         = 4 // peak also requires raw energy AND focus at this level

	recoveryRepMultiplier   = 0.5
	lowBatteryRepMultiplier = 0.7
	normalRepMultiplier     = 1.0
	peakRepMultiplier       = 1.2

	recoveryMaxMinutes   = 15
	lowBatteryMaxMinutes = 20
)

// Mode explanations are fixed per branch and must read as supportive,
// whatever the mode. No shaming language, ever.
const (
	explainPain = "Thanks for telling us about the pain. Today is a recovery day: gentle movement, smart mental work, and rest. Protecting your body is what the pros do."
	explainSore = "Your muscles are asking for an easier day, and that's completely okay. We'll keep things light and sharpen the mental side of your game."
	explainPeak = "You're feeling great today, so let's make it count: a full session with some tougher challenges mixed in."
	explainNorm = "Solid day ahead. A steady session at your usual pace keeps you building, brick by brick."
	explainLow  = "Lower-energy days still count. We'll go easier on your body and smarter with your mind, and you'll still get better today."
)

// Classify maps a daily check-in to a session mode with concrete training
// adjustments. Pure and total apart from input validation.
//
// The pain/high-soreness override is evaluated first and short-circuits all
// scoring: no input combination may escalate intensity when pain is flagged.
func Classify(in CheckInData) (domain.SessionModeResult, error) {
	if in.Energy < 1 || in.Energy > 5 {
		return domain.SessionModeResult{}, &InvalidInputError{Field: "energy", Reason: "must be between 1 and 5"}
	}
	if in.Focus < 1 || in.Focus > 5 {
		return domain.SessionModeResult{}, &InvalidInputError{Field: "focus", Reason: "must be between 1 and 5"}
	}
	if in.TimeAvailableMinutes <= 0 {
		return domain.SessionModeResult{}, &InvalidInputError{Field: "timeAvailableMinutes", Reason: "must be positive"}
	}
	moodScore, ok := moodScores[in.Mood]
	if !ok {
		return domain.SessionModeResult{}, &InvalidInputError{Field: "mood", Reason: "is not a recognized value"}
	}
	sorenessScore, ok := sorenessScores[in.Soreness]
	if !ok {
		return domain.SessionModeResult{}, &InvalidInputError{Field: "soreness", Reason: "is not a recognized value"}
	}

	// Safety override: highest priority, no further scoring.
	if in.PainFlag || in.Soreness == domain.SorenessHigh {
		explanation := explainSore
		if in.PainFlag {
			explanation = explainPain
		}
		return domain.SessionModeResult{
			Mode:        domain.ModeRecovery,
			Explanation: explanation,
			Adjustments: domain.ModeAdjustments{
				RepMultiplier:            recoveryRepMultiplier,
				IncludeDecisionWork:      true,
				GameIQEmphasis:           true,
				IntenseDrillsAllowed:     false,
				SuggestedDurationMinutes: minInt(in.TimeAvailableMinutes, recoveryMaxMinutes),
			},
		}, nil
	}

	composite := (float64(in.Energy) + float64(in.Focus) + moodScore + sorenessScore) / 4

	adjusted := composite
	if in.TimeAvailableMinutes < shortSessionMinutes {
		adjusted = math.Min(adjusted, shortSessionCap)
	}

	switch {
	case adjusted >= peakThreshold && in.Energy >= peakRawGate && in.Focus >= peakRawGate:
		return domain.SessionModeResult{
			Mode:        domain.ModePeak,
			Explanation: explainPeak,
			Adjustments: domain.ModeAdjustments{
				RepMultiplier:            peakRepMultiplier,
				IncludeDecisionWork:      true,
				GameIQEmphasis:           false,
				IntenseDrillsAllowed:     true,
				SuggestedDurationMinutes: in.TimeAvailableMinutes,
			},
		}, nil
	case adjusted >= normalThreshold:
		return domain.SessionModeResult{
			Mode:        domain.ModeNormal,
			Explanation: explainNorm,
			Adjustments: domain.ModeAdjustments{
				RepMultiplier:            normalRepMultiplier,
				IncludeDecisionWork:      false,
				GameIQEmphasis:           false,
				IntenseDrillsAllowed:     true,
				SuggestedDurationMinutes: in.TimeAvailableMinutes,
			},
		}, nil
	default:
		return domain.SessionModeResult{
			Mode:        domain.ModeLowBattery,
			Explanation: explainLow,
			Adjustments: domain.ModeAdjustments{
				RepMultiplier:            lowBatteryRepMultiplier,
				IncludeDecisionWork:      true,
				GameIQEmphasis:           true,
				IntenseDrillsAllowed:     false,
				SuggestedDurationMinutes: minInt(in.TimeAvailableMinutes, lowBatteryMaxMinutes),
			},
		}, nil
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
