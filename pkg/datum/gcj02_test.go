package datum_test

import (
	"math"
	"sync"
	"testing"

	"lintang/gcjwgs/pkg/datum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pinTolerance = 1e-9

func TestGCJ02ToWGS84(t *testing.T) {
	t.Run("pinned outputs inside china", func(t *testing.T) {
		cases := []struct {
			name             string
			lat, lon         float64
			wantLat, wantLon float64
		}{
			{"beijing", 39.9042, 116.4074, 39.90279665683494, 116.40115774621196},
			{"shanghai", 31.2304, 121.4737, 31.23234226242273, 121.46917694072306},
			{"shenzhen", 22.5431, 114.0579, 22.545817185777537, 114.05278600143454},
			{"tiananmen", 39.908823, 116.39747, 39.90741950192679, 116.3912264175775},
		}
		for _, c := range cases {
			lat, lon := datum.GCJ02ToWGS84(c.lat, c.lon)
			assert.InDelta(t, c.wantLat, lat, pinTolerance, c.name)
			assert.InDelta(t, c.wantLon, lon, pinTolerance, c.name)
		}
	})

	t.Run("beijing correction is small", func(t *testing.T) {
		lat, lon := datum.GCJ02ToWGS84(39.9042, 116.4074)
		assert.Less(t, math.Abs(lat-39.9042), 0.01)
		assert.Less(t, math.Abs(lon-116.4074), 0.01)
		assert.NotEqual(t, 39.9042, lat)
		assert.NotEqual(t, 116.4074, lon)
	})

	t.Run("identity outside region gate", func(t *testing.T) {
		points := [][2]float64{
			{40.7128, -74.0060},  // new york
			{51.5074, -0.1278},   // london
			{-33.8688, 151.2093}, // sydney
			{35.6762, 139.6503},  // tokyo, east of the gate
			{30.0, 72.0039},
			{30.0, 137.8348},
			{0.8292, 100.0},
			{55.8272, 100.0},
			{-90, -180},
			{90, 180},
		}
		for _, p := range points {
			lat, lon := datum.GCJ02ToWGS84(p[0], p[1])
			assert.Equal(t, p[0], lat)
			assert.Equal(t, p[1], lon)
		}
	})

	t.Run("gate bounds are inclusive", func(t *testing.T) {
		lat, lon := datum.GCJ02ToWGS84(datum.MaxLat, datum.MaxLon)
		assert.InDelta(t, 55.82458188784071, lat, pinTolerance)
		assert.InDelta(t, 137.82567145024467, lon, pinTolerance)

		lat, lon = datum.GCJ02ToWGS84(datum.MinLat, datum.MinLon)
		assert.InDelta(t, 0.828037231988379, lat, pinTolerance)
		assert.InDelta(t, 72.00029089713745, lon, pinTolerance)
	})

	t.Run("deterministic", func(t *testing.T) {
		lat1, lon1 := datum.GCJ02ToWGS84(31.2304, 121.4737)
		lat2, lon2 := datum.GCJ02ToWGS84(31.2304, 121.4737)
		assert.Equal(t, math.Float64bits(lat1), math.Float64bits(lat2))
		assert.Equal(t, math.Float64bits(lon1), math.Float64bits(lon2))
	})

	t.Run("nan takes identity path", func(t *testing.T) {
		lat, lon := datum.GCJ02ToWGS84(math.NaN(), 116.0)
		assert.True(t, math.IsNaN(lat))
		assert.Equal(t, 116.0, lon)

		lat, lon = datum.GCJ02ToWGS84(39.9, math.NaN())
		assert.Equal(t, 39.9, lat)
		assert.True(t, math.IsNaN(lon))
	})

	t.Run("infinity takes identity path", func(t *testing.T) {
		lat, lon := datum.GCJ02ToWGS84(math.Inf(1), 116.0)
		assert.True(t, math.IsInf(lat, 1))
		assert.Equal(t, 116.0, lon)
	})

	t.Run("safe for concurrent use", func(t *testing.T) {
		wantLat, wantLon := datum.GCJ02ToWGS84(22.5431, 114.0579)
		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				lat, lon := datum.GCJ02ToWGS84(22.5431, 114.0579)
				assert.Equal(t, wantLat, lat)
				assert.Equal(t, wantLon, lon)
			}()
		}
		wg.Wait()
	})
}

func TestBoundaryContinuity(t *testing.T) {
	// largest correction seen on a 0.1 degree grid over the whole gate is ~0.0107 degrees.
	const maxCorrection = 0.011
	const eps = 1e-7

	edges := []struct {
		name            string
		inside, outside [2]float64
	}{
		{"north", [2]float64{datum.MaxLat, 100.0}, [2]float64{datum.MaxLat + eps, 100.0}},
		{"south", [2]float64{datum.MinLat, 100.0}, [2]float64{datum.MinLat - eps, 100.0}},
		{"west", [2]float64{30.0, datum.MinLon}, [2]float64{30.0, datum.MinLon - eps}},
		{"east", [2]float64{30.0, datum.MaxLon}, [2]float64{30.0, datum.MaxLon + eps}},
	}
	for _, e := range edges {
		t.Run(e.name, func(t *testing.T) {
			inLat, inLon := datum.GCJ02ToWGS84(e.inside[0], e.inside[1])
			outLat, outLon := datum.GCJ02ToWGS84(e.outside[0], e.outside[1])
			require.Equal(t, e.outside[0], outLat)
			require.Equal(t, e.outside[1], outLon)
			assert.Less(t, math.Abs(inLat-outLat), maxCorrection)
			assert.Less(t, math.Abs(inLon-outLon), maxCorrection)
		})
	}
}

func TestWGS84ToGCJ02(t *testing.T) {
	t.Run("pinned forward offset", func(t *testing.T) {
		lat, lon := datum.WGS84ToGCJ02(39.9042, 116.4074)
		assert.InDelta(t, 39.90560334316507, lat, pinTolerance)
		assert.InDelta(t, 116.41364225378803, lon, pinTolerance)
	})

	t.Run("round trip residual stays within a few meters", func(t *testing.T) {
		wgsLat, wgsLon := 39.9087, 116.3975
		gcjLat, gcjLon := datum.WGS84ToGCJ02(wgsLat, wgsLon)
		backLat, backLon := datum.GCJ02ToWGS84(gcjLat, gcjLon)

		// 1e-5 degrees is roughly one meter.
		assert.InDelta(t, wgsLat, backLat, 2e-6)
		assert.InDelta(t, wgsLon, backLon, 2e-6)
		assert.NotEqual(t, wgsLat, backLat)
	})

	t.Run("identity outside region gate", func(t *testing.T) {
		lat, lon := datum.WGS84ToGCJ02(48.8566, 2.3522)
		assert.Equal(t, 48.8566, lat)
		assert.Equal(t, 2.3522, lon)
	})
}

func TestConvertByRegion(t *testing.T) {
	t.Run("china region converts, case insensitive", func(t *testing.T) {
		wantLat, wantLon := datum.GCJ02ToWGS84(31.2304, 121.4737)
		for _, code := range []string{"CN", "cn", "Cn", " cN "} {
			lat, lon := datum.ConvertByRegion(31.2304, 121.4737, code)
			assert.Equal(t, wantLat, lat, code)
			assert.Equal(t, wantLon, lon, code)
		}
	})

	t.Run("other regions pass through", func(t *testing.T) {
		for _, code := range []string{"US", "", "HK", "TW", "CHN", "china"} {
			lat, lon := datum.ConvertByRegion(31.2304, 121.4737, code)
			assert.Equal(t, 31.2304, lat, code)
			assert.Equal(t, 121.4737, lon, code)
		}
	})
}

func TestInChina(t *testing.T) {
	assert.True(t, datum.InChina(39.9042, 116.4074))
	assert.True(t, datum.InChina(datum.MinLat, datum.MinLon))
	assert.True(t, datum.InChina(datum.MaxLat, datum.MaxLon))
	assert.False(t, datum.InChina(40.7128, -74.0060))
	assert.False(t, datum.InChina(math.NaN(), 116.0))
	assert.False(t, datum.InChina(39.9, math.NaN()))
}
