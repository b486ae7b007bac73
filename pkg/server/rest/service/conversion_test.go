package service_test

import (
	"context"
	"math"
	"testing"

	"lintang/gcjwgs/pkg/datastructure"
	"lintang/gcjwgs/pkg/datum"
	"lintang/gcjwgs/pkg/server"
	"lintang/gcjwgs/pkg/server/rest/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

func newService() *service.ConversionService {
	return service.NewConversionService("CN", 9, 4)
}

func TestConvert(t *testing.T) {
	ctx := context.Background()

	t.Run("china point is converted and serialised", func(t *testing.T) {
		res, err := newService().Convert(ctx, 39.9042, 116.4074, "cn")
		require.NoError(t, err)

		wantLat, wantLon := datum.GCJ02ToWGS84(39.9042, 116.4074)
		assert.True(t, res.Converted)
		assert.Equal(t, "cn", res.Region)
		assert.Equal(t, datastructure.NewCoordinate(39.9042, 116.4074), res.Input)
		assert.Equal(t, datastructure.NewCoordinate(wantLat, wantLon), res.Output)
		assert.Equal(t, res.Output.String(), res.Stored)
		assert.InDelta(t, 555, res.OffsetMeters, 5)
		assert.Len(t, res.H3Cell, 15)
	})

	t.Run("empty region uses default", func(t *testing.T) {
		res, err := newService().Convert(ctx, 39.9042, 116.4074, "")
		require.NoError(t, err)
		assert.True(t, res.Converted)
		assert.Equal(t, "CN", res.Region)

		res, err = service.NewConversionService("", 9, 1).Convert(ctx, 39.9042, 116.4074, "")
		require.NoError(t, err)
		assert.False(t, res.Converted)
		assert.Equal(t, "39.9042,116.4074", res.Stored)
	})

	t.Run("other region passes through", func(t *testing.T) {
		res, err := newService().Convert(ctx, 39.9042, 116.4074, "US")
		require.NoError(t, err)
		assert.False(t, res.Converted)
		assert.Equal(t, res.Input, res.Output)
		assert.InDelta(t, 0, res.OffsetMeters, 1e-9)
	})

	t.Run("outside the gate is not converted", func(t *testing.T) {
		res, err := newService().Convert(ctx, 40.7128, -74.0060, "CN")
		require.NoError(t, err)
		assert.False(t, res.Converted)
		assert.Equal(t, "40.7128,-74.006", res.Stored)
	})

	t.Run("non finite input is rejected", func(t *testing.T) {
		for _, p := range [][2]float64{{math.NaN(), 116}, {39.9, math.Inf(1)}} {
			_, err := newService().Convert(ctx, p[0], p[1], "CN")
			require.Error(t, err)
			assert.Equal(t, server.ErrBadParamInput, server.CodeOf(err))
			assert.EqualError(t, err, "lat and lon must be valid numbers")
		}
	})
}

func TestConvertBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps input order", func(t *testing.T) {
		coords := []datastructure.Coordinate{}
		for i := 0; i < 200; i++ {
			coords = append(coords, datastructure.NewCoordinate(20+float64(i)*0.1, 100+float64(i)*0.1))
		}
		coords = append(coords, datastructure.NewCoordinate(51.5074, -0.1278))

		res, err := newService().ConvertBatch(ctx, coords, "CN")
		require.NoError(t, err)
		require.Len(t, res, len(coords))
		for i, c := range coords {
			wantLat, wantLon := datum.GCJ02ToWGS84(c.Lat, c.Lon)
			assert.Equal(t, c, res[i].Input)
			assert.Equal(t, datastructure.NewCoordinate(wantLat, wantLon), res[i].Output)
		}
		assert.False(t, res[len(res)-1].Converted)
	})

	t.Run("empty batch", func(t *testing.T) {
		res, err := newService().ConvertBatch(ctx, nil, "CN")
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("non finite point fails whole batch", func(t *testing.T) {
		coords := []datastructure.Coordinate{
			datastructure.NewCoordinate(39.9, 116.4),
			datastructure.NewCoordinate(math.NaN(), 116.4),
		}
		_, err := newService().ConvertBatch(ctx, coords, "CN")
		require.Error(t, err)
		assert.Equal(t, server.ErrBadParamInput, server.CodeOf(err))
		assert.Contains(t, err.Error(), "coordinate 1")
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := newService().ConvertBatch(cctx, []datastructure.Coordinate{{Lat: 39.9, Lon: 116.4}}, "CN")
		require.Error(t, err)
		assert.Equal(t, server.ErrCanceled, server.CodeOf(err))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestConvertPolyline(t *testing.T) {
	ctx := context.Background()

	t.Run("points outside china are unchanged", func(t *testing.T) {
		in := "_p~iF~ps|U_ulLnnqC_mqNvxq`@"
		res, err := newService().ConvertPolyline(ctx, in, "CN")
		require.NoError(t, err)
		assert.Equal(t, in, res.Polyline)
		assert.Equal(t, 0, res.Converted)
		assert.Len(t, res.Coordinates, 3)
	})

	t.Run("china vertices are converted", func(t *testing.T) {
		in := string(polyline.EncodeCoords([][]float64{{39.9042, 116.4074}, {31.2304, 121.4737}}))
		decoded, _, err := polyline.DecodeCoords([]byte(in))
		require.NoError(t, err)

		res, err := newService().ConvertPolyline(ctx, in, "CN")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Converted)
		require.Len(t, res.Coordinates, 2)
		for i, c := range decoded {
			wantLat, wantLon := datum.GCJ02ToWGS84(c[0], c[1])
			assert.Equal(t, datastructure.NewCoordinate(wantLat, wantLon), res.Coordinates[i])
		}
		assert.NotEqual(t, in, res.Polyline)
	})

	t.Run("invalid polyline", func(t *testing.T) {
		_, err := newService().ConvertPolyline(ctx, "!!!", "CN")
		require.Error(t, err)
		assert.Equal(t, server.ErrBadParamInput, server.CodeOf(err))
	})
}

func TestNormalizeStored(t *testing.T) {
	ctx := context.Background()

	t.Run("parses then converts", func(t *testing.T) {
		res, err := newService().NormalizeStored(ctx, "39.9042,116.4074", "CN")
		require.NoError(t, err)
		assert.True(t, res.Converted)
		assert.InDelta(t, 39.90279665683494, res.Output.Lat, 1e-9)
	})

	t.Run("malformed stored value", func(t *testing.T) {
		_, err := newService().NormalizeStored(ctx, "39.9042, 116.4074", "CN")
		require.Error(t, err)
		assert.Equal(t, server.ErrBadParamInput, server.CodeOf(err))
		assert.ErrorIs(t, err, datastructure.ErrMalformedCoordinate)
	})
}
