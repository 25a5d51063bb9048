package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtsense/training-app/internal/domain"
)

var allSoreness = []domain.Soreness{domain.SorenessNone, domain.SorenessLight, domain.SorenessMedium, domain.SorenessHigh}
var allMoods = []domain.Mood{domain.MoodExcited, domain.MoodFocused, domain.MoodOkay, domain.MoodTired, domain.MoodStressed}

func TestClassifyScenarios(t *testing.T) {
	tests := []struct {
		name         string
		in           CheckInData
		wantMode     domain.SessionMode
		wantRepMult  float64
		wantDuration int
		wantIntense  bool
	}{
		{
			name:         "great day classifies as peak",
			in:           CheckInData{Energy: 5, Soreness: domain.SorenessNone, Focus: 5, Mood: domain.MoodExcited, TimeAvailableMinutes: 30},
			wantMode:     domain.ModePeak,
			wantRepMult:  1.2,
			wantDuration: 30,
			wantIntense:  true,
		},
		{
			name:         "average short day stays normal",
			in:           CheckInData{Energy: 3, Soreness: domain.SorenessNone, Focus: 3, Mood: domain.MoodOkay, TimeAvailableMinutes: 10},
			wantMode:     domain.ModeNormal,
			wantRepMult:  1.0,
			wantDuration: 10,
			wantIntense:  true,
		},
		{
			name:         "high soreness forces recovery despite high energy and focus",
			in:           CheckInData{Energy: 4, Soreness: domain.SorenessHigh, Focus: 4, Mood: domain.MoodFocused, TimeAvailableMinutes: 30},
			wantMode:     domain.ModeRecovery,
			wantRepMult:  0.5,
			wantDuration: 15,
			wantIntense:  false,
		},
		{
			name:         "pain flag forces recovery and caps duration at available time",
			in:           CheckInData{Energy: 5, Soreness: domain.SorenessNone, Focus: 5, Mood: domain.MoodExcited, TimeAvailableMinutes: 10, PainFlag: true},
			wantMode:     domain.ModeRecovery,
			wantRepMult:  0.5,
			wantDuration: 10,
			wantIntense:  false,
		},
		{
			name:         "tired and stressed goes low battery",
			in:           CheckInData{Energy: 1, Soreness: domain.SorenessMedium, Focus: 1, Mood: domain.MoodStressed, TimeAvailableMinutes: 30},
			wantMode:     domain.ModeLowBattery,
			wantRepMult:  0.7,
			wantDuration: 20,
			wantIntense:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, got.Mode)
			assert.InDelta(t, tt.wantRepMult, got.Adjustments.RepMultiplier, 0.001)
			assert.Equal(t, tt.wantDuration, got.Adjustments.SuggestedDurationMinutes)
			assert.Equal(t, tt.wantIntense, got.Adjustments.IntenseDrillsAllowed)
			assert.NotEmpty(t, got.Explanation)
		})
	}
}

func TestClassifyInvalidInput(t *testing.T) {
	valid := CheckInData{Energy: 3, Soreness: domain.SorenessNone, Focus: 3, Mood: domain.MoodOkay, TimeAvailableMinutes: 20}

	tests := []struct {
		name   string
		mutate func(*CheckInData)
	}{
		{"energy too low", func(c *CheckInData) { c.Energy = 0 }},
		{"energy too high", func(c *CheckInData) { c.Energy = 6 }},
		{"focus too low", func(c *CheckInData) { c.Focus = 0 }},
		{"focus too high", func(c *CheckInData) { c.Focus = 6 }},
		{"zero time", func(c *CheckInData) { c.TimeAvailableMinutes = 0 }},
		{"negative time", func(c *CheckInData) { c.TimeAvailableMinutes = -5 }},
		{"bogus mood", func(c *CheckInData) { c.Mood = "ecstatic" }},
		{"bogus soreness", func(c *CheckInData) { c.Soreness = "crippling" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := Classify(in)
			require.Error(t, err)
			assert.True(t, IsInvalidInput(err), "expected InvalidInputError, got %v", err)
		})
	}
}

// Safety invariant: pain or high soreness always wins, whatever else is true.
func TestClassifySafetyOverride(t *testing.T) {
	for energy := 1; energy <= 5; energy++ {
		for focus := 1; focus <= 5; focus++ {
			for _, mood := range allMoods {
				painIn := CheckInData{Energy: energy, Soreness: domain.SorenessNone, Focus: focus, Mood: mood, TimeAvailableMinutes: 30, PainFlag: true}
				got, err := Classify(painIn)
				require.NoError(t, err)
				assert.Equal(t, domain.ModeRecovery, got.Mode)
				assert.False(t, got.Adjustments.IntenseDrillsAllowed)

				soreIn := CheckInData{Energy: energy, Soreness: domain.SorenessHigh, Focus: focus, Mood: mood, TimeAvailableMinutes: 30}
				got, err = Classify(soreIn)
				require.NoError(t, err)
				assert.Equal(t, domain.ModeRecovery, got.Mode)
				assert.False(t, got.Adjustments.IntenseDrillsAllowed)
			}
		}
	}
}

// Time gate: sessions under 20 minutes can never classify as peak.
func TestClassifyShortSessionsNeverPeak(t *testing.T) {
	for energy := 1; energy <= 5; energy++ {
		for focus := 1; focus <= 5; focus++ {
			for _, soreness := range allSoreness {
				for _, mood := range allMoods {
					in := CheckInData{Energy: energy, Soreness: soreness, Focus: focus, Mood: mood, TimeAvailableMinutes: 15}
					got, err := Classify(in)
					require.NoError(t, err)
					assert.NotEqual(t, domain.ModePeak, got.Mode,
						"energy=%d focus=%d soreness=%s mood=%s", energy, focus, soreness, mood)
				}
			}
		}
	}
}

// Monotonicity: holding everything else fixed, more energy or focus never
// produces a lower-ranked mode (outside the safety override).
func TestClassifyMonotonicInEnergyAndFocus(t *testing.T) {
	for _, soreness := range []domain.Soreness{domain.SorenessNone, domain.SorenessLight, domain.SorenessMedium} {
		for _, mood := range allMoods {
			for _, minutes := range []int{10, 20, 30} {
				prevRank := -1
				for level := 1; level <= 5; level++ {
					in := CheckInData{Energy: level, Soreness: soreness, Focus: level, Mood: mood, TimeAvailableMinutes: minutes}
					got, err := Classify(in)
					require.NoError(t, err)
					rank := got.Mode.Rank()
					assert.GreaterOrEqual(t, rank, prevRank,
						"mode rank dropped at level=%d soreness=%s mood=%s minutes=%d", level, soreness, mood, minutes)
					prevRank = rank
				}
			}
		}
	}
}

// Every branch's explanation must read as supportive; the product bans shaming
// language outright.
func TestClassifyExplanationsStaySupportive(t *testing.T) {
	banned := []string{"lazy", "weak", "shame", "fail", "bad", "excuse", "pathetic", "quit"}

	inputs := []CheckInData{
		{Energy: 5, Soreness: domain.SorenessNone, Focus: 5, Mood: domain.MoodExcited, TimeAvailableMinutes: 30},
		{Energy: 3, Soreness: domain.SorenessNone, Focus: 3, Mood: domain.MoodOkay, TimeAvailableMinutes: 30},
		{Energy: 1, Soreness: domain.SorenessMedium, Focus: 1, Mood: domain.MoodStressed, TimeAvailableMinutes: 30},
		{Energy: 3, Soreness: domain.SorenessHigh, Focus: 3, Mood: domain.MoodOkay, TimeAvailableMinutes: 30},
		{Energy: 3, Soreness: domain.SorenessNone, Focus: 3, Mood: domain.MoodOkay, TimeAvailableMinutes: 30, PainFlag: true},
	}

	for _, in := range inputs {
		got, err := Classify(in)
		require.NoError(t, err)
		lower := strings.ToLower(got.Explanation)
		for _, word := range banned {
			assert.NotContains(t, lower, word, "mode %s explanation contains banned word", got.Mode)
		}
	}
}
