package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Soreness is a child's self-reported muscle soreness level.
type Soreness string

const (
	SorenessNone   Soreness = "none"
	SorenessLight  Soreness = "light"
	SorenessMedium Soreness = "medium"
	SorenessHigh   Soreness = "high"
)

// Mood is a child's self-reported emotional state at check-in time.
type Mood string

const (
	MoodExcited  Mood = "excited"
	MoodFocused  Mood = "focused"
	MoodOkay     Mood = "okay"
	MoodTired    Mood = "tired"
	MoodStressed Mood = "stressed"
)

// SessionMode is the adaptive intensity classification for a training day.
// Ordering (low to high): recovery < low_battery < normal < peak.
type SessionMode string

const (
	ModeRecovery   SessionMode = "recovery"
	ModeLowBattery SessionMode = "low_battery"
	ModeNormal     SessionMode = "normal"
	ModePeak       SessionMode = "peak"
)

// Rank returns the intensity ordering of a mode, recovery lowest.
func (m SessionMode) Rank() int {
	switch m {
	case ModeRecovery:
		return 0
	case ModeLowBattery:
		return 1
	case ModeNormal:
		return 2
	case ModePeak:
		return 3
	}
	return -1
}

// ModeAdjustments are the concrete training adjustments derived from a check-in.
type ModeAdjustments struct {
	RepMultiplier            float64 `bson:"repMultiplier" json:"repMultiplier"`
	IncludeDecisionWork      bool    `bson:"includeDecisionWork" json:"includeDecisionWork"`
	GameIQEmphasis           bool    `bson:"gameIqEmphasis" json:"gameIqEmphasis"`
	IntenseDrillsAllowed     bool    `bson:"intenseDrillsAllowed" json:"intenseDrillsAllowed"`
	SuggestedDurationMinutes int     `bson:"suggestedDurationMinutes" json:"suggestedDurationMinutes"`
}

// SessionModeResult is computed from a CheckIn at creation time and persisted
// alongside it for history. Never mutated; recomputed if the check-in changes.
type SessionModeResult struct {
	Mode        SessionMode     `bson:"mode" json:"mode"`
	Explanation string          `bson:"explanation" json:"explanation"`
	Adjustments ModeAdjustments `bson:"adjustments" json:"adjustments"`
}

// CheckIn is a child's self-report for one day. Immutable once created, except
// for the optional quality-rating amendment added after the day's session.
type CheckIn struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChildID              primitive.ObjectID `bson:"childId" json:"childId"`
	Energy               int                `bson:"energy" json:"energy"` // 1-5
	Soreness             Soreness           `bson:"soreness" json:"soreness"`
	Focus                int                `bson:"focus" json:"focus"` // 1-5
	Mood                 Mood               `bson:"mood" json:"mood"`
	TimeAvailableMinutes int                `bson:"timeAvailableMinutes" json:"timeAvailableMinutes"`
	PainFlag             bool               `bson:"painFlag" json:"painFlag"`
	ModeResult           SessionModeResult  `bson:"modeResult" json:"modeResult"`
	QualityRating        *int               `bson:"qualityRating,omitempty" json:"qualityRating,omitempty"` // 1-5, amended later
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
}
