package catalog

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArcLookup(t *testing.T) {
	arc, ok := ArcByID(ArcFoundations)
	require.True(t, ok)
	assert.Equal(t, "Foundations", arc.Title)
	assert.Equal(t, 7, arc.RecommendedDurationDays)

	_, ok = ArcByID("not_an_arc")
	assert.False(t, ok)
}

func TestDefaultArcOrderMatchesAuthoredOrder(t *testing.T) {
	want := []ArcID{ArcFoundations, ArcBallControl, ArcFinishingSchool, ArcCourtVision, ArcLockdownDefense}
	assert.Equal(t, want, DefaultArcOrder())

	listed := Arcs()
	require.Len(t, listed, len(want))
	for i, arc := range listed {
		assert.Equal(t, want[i], arc.ID)
	}
}

func TestEveryArcIsWellFormed(t *testing.T) {
	for _, arc := range Arcs() {
		assert.Positive(t, arc.RecommendedDurationDays, "arc %s", arc.ID)
		assert.NotEmpty(t, arc.DrillIDs, "arc %s", arc.ID)
		assert.NotEmpty(t, arc.GameIQIDs, "arc %s", arc.ID)
		assert.NotEmpty(t, arc.CompletionMessage, "arc %s", arc.ID)
		for _, id := range arc.DrillIDs {
			_, ok := DrillByID(id)
			assert.True(t, ok, "arc %s drill %s", arc.ID, id)
		}
		for _, id := range arc.GameIQIDs {
			_, ok := GameIQByID(id)
			assert.True(t, ok, "arc %s game-iq %s", arc.ID, id)
		}
	}
}

// Every high-intensity drill needs a resolving low-intensity variant in the
// same category, or recovery-mode substitution would drop content.
func TestHighIntensityDrillsHaveLowVariants(t *testing.T) {
	for _, d := range DrillsInCatalogOrder() {
		if d.Intensity != IntensityHigh {
			continue
		}
		variant, ok := DrillByID(d.LowVariantID)
		require.True(t, ok, "drill %s", d.ID)
		assert.NotEqual(t, IntensityHigh, variant.Intensity, "drill %s variant %s", d.ID, variant.ID)
		assert.Equal(t, d.Category, variant.Category, "drill %s variant %s", d.ID, variant.ID)
	}
}

// Catalog order doubles as the deterministic tie-break, so it must equal
// ascending id order.
func TestDrillCatalogOrderIsIDOrder(t *testing.T) {
	drills := DrillsInCatalogOrder()
	ids := make([]string, len(drills))
	for i, d := range drills {
		ids[i] = string(d.ID)
	}
	assert.True(t, sort.StringsAreSorted(ids), "drill catalog order must be ascending id order, got %v", ids)
}
