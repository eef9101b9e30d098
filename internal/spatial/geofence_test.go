package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func beijingFence(t *testing.T) *Geofence {
	t.Helper()
	fence, err := NewGeofence(39.5, 40.5, 115.5, 117.5)
	require.NoError(t, err)
	return fence
}

func TestGeofenceContains(t *testing.T) {
	fence := beijingFence(t)

	require.True(t, fence.Contains(39.9, 116.3))  // Central Beijing
	require.False(t, fence.Contains(31.2, 121.5)) // Shanghai
	require.False(t, fence.Contains(40.6, 116.3)) // Just north of the box
	require.False(t, fence.Contains(39.9, 117.6)) // Just east of the box
}

func TestGeofenceBoundaryInclusive(t *testing.T) {
	fence := beijingFence(t)

	// Points on the rectangle edge are inside.
	require.True(t, fence.Contains(39.5, 116.0))
	require.True(t, fence.Contains(40.5, 116.0))
	require.True(t, fence.Contains(39.9, 115.5))
	require.True(t, fence.Contains(39.9, 117.5))
	require.True(t, fence.Contains(39.5, 115.5)) // Corner
	require.True(t, fence.Contains(40.5, 117.5)) // Corner
}

func TestGeofenceInvalidBounds(t *testing.T) {
	_, err := NewGeofence(40.5, 39.5, 115.5, 117.5)
	require.Error(t, err)

	_, err = NewGeofence(39.5, 40.5, 117.5, 115.5)
	require.Error(t, err)

	_, err = NewGeofence(39.5, 95.0, 115.5, 117.5)
	require.Error(t, err)

	_, err = NewGeofence(math.NaN(), 40.5, 115.5, 117.5)
	require.Error(t, err)
}

func TestGeofenceBounds(t *testing.T) {
	fence := beijingFence(t)
	latMin, latMax, lonMin, lonMax := fence.Bounds()
	require.Equal(t, 39.5, latMin)
	require.Equal(t, 40.5, latMax)
	require.Equal(t, 115.5, lonMin)
	require.Equal(t, 117.5, lonMax)
}
