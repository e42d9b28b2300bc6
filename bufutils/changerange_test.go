package bufutils_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/quiver/bufutils"
)

func TestChangeRangeStartsEmpty(t *testing.T) {
	tracker := bufutils.NewChangeRange(100)

	_, ok := tracker.Range()
	require.False(t, ok)
	require.Equal(t, 100, tracker.Size())
}

func TestChangeRangeBoundingUnion(t *testing.T) {
	tracker := bufutils.NewChangeRange(100)

	tracker.Update(40, 50)
	rng, ok := tracker.Range()
	require.True(t, ok)
	require.Equal(t, bufutils.Range{First: 40, End: 50}, rng)
	require.Equal(t, 10, rng.Count())

	// Disjoint writes coalesce into one conservative span.
	tracker.Update(10, 20)
	tracker.Update(70, 80)

	rng, ok = tracker.Range()
	require.True(t, ok)
	require.Equal(t, bufutils.Range{First: 10, End: 80}, rng)
}

func TestChangeRangeNestedUpdateDoesNotShrink(t *testing.T) {
	tracker := bufutils.NewChangeRange(100)

	tracker.Update(10, 90)
	tracker.Update(40, 50)

	rng, ok := tracker.Range()
	require.True(t, ok)
	require.Equal(t, bufutils.Range{First: 10, End: 90}, rng)
}

func TestChangeRangeUpdateAll(t *testing.T) {
	tracker := bufutils.NewChangeRange(25)

	tracker.Update(3, 5)
	tracker.UpdateAll()

	rng, ok := tracker.Range()
	require.True(t, ok)
	require.Equal(t, bufutils.Range{First: 0, End: 25}, rng)
}

func TestChangeRangeUpdateAllOnEmptyArray(t *testing.T) {
	tracker := bufutils.NewChangeRange(0)

	tracker.UpdateAll()

	_, ok := tracker.Range()
	require.False(t, ok)
}

func TestChangeRangeReset(t *testing.T) {
	tracker := bufutils.NewChangeRange(100)

	tracker.Update(5, 95)
	tracker.Reset()

	_, ok := tracker.Range()
	require.False(t, ok)

	// The tracker stays usable after a reset.
	tracker.Update(1, 2)
	rng, ok := tracker.Range()
	require.True(t, ok)
	require.Equal(t, bufutils.Range{First: 1, End: 2}, rng)
}

func TestChangeRangeResizeClampsEnd(t *testing.T) {
	tracker := bufutils.NewChangeRange(100)

	tracker.Update(10, 90)
	tracker.Resize(50)

	require.Equal(t, 50, tracker.Size())
	rng, ok := tracker.Range()
	require.True(t, ok)
	require.Equal(t, bufutils.Range{First: 10, End: 50}, rng)
}

func TestChangeRangeResizeBelowFirstClears(t *testing.T) {
	tracker := bufutils.NewChangeRange(100)

	tracker.Update(60, 90)
	tracker.Resize(50)

	_, ok := tracker.Range()
	require.False(t, ok)
}

func TestChangeRangeResizeGrowKeepsPending(t *testing.T) {
	tracker := bufutils.NewChangeRange(50)

	tracker.Update(10, 40)
	tracker.Resize(200)

	rng, ok := tracker.Range()
	require.True(t, ok)
	require.Equal(t, bufutils.Range{First: 10, End: 40}, rng)
	require.Equal(t, 200, tracker.Size())
}
