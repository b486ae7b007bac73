package service

import (
	"context"

	"lintang/gcjwgs/pkg/concurrent"
	"lintang/gcjwgs/pkg/datastructure"
	"lintang/gcjwgs/pkg/datum"
	"lintang/gcjwgs/pkg/geo"
	"lintang/gcjwgs/pkg/server"
	"lintang/gcjwgs/pkg/util"

	"github.com/twpayne/go-polyline"
)

// Conversion is the result of normalising one coordinate to WGS-84.
type Conversion struct {
	Input        datastructure.Coordinate `json:"input"`
	Output       datastructure.Coordinate `json:"output"`
	Region       string                   `json:"region"`
	Converted    bool                     `json:"converted"`
	OffsetMeters float64                  `json:"offset_meters"` // rounded to millimeters
	H3Cell       string                   `json:"h3_cell"`
	Stored       string                   `json:"coordinate"`
}

type PolylineConversion struct {
	Polyline    string                     `json:"polyline"`
	Coordinates []datastructure.Coordinate `json:"coordinates"`
	Converted   int                        `json:"converted"`
}

type ConversionService struct {
	defaultRegion string
	h3Resolution  int
	workers       int
}

func NewConversionService(defaultRegion string, h3Resolution int, workers int) *ConversionService {
	if workers < 1 {
		workers = 1
	}
	return &ConversionService{defaultRegion: defaultRegion, h3Resolution: h3Resolution, workers: workers}
}

func (s *ConversionService) region(region string) string {
	if region == "" {
		return s.defaultRegion
	}
	return region
}

// Convert validates (lat, lon) and converts it from GCJ-02 when region designates China.
// An empty region falls back to the service default.
func (s *ConversionService) Convert(ctx context.Context, lat, lon float64, region string) (Conversion, error) {
	in := datastructure.NewCoordinate(lat, lon)
	if !in.IsFinite() {
		return Conversion{}, server.WrapErrorf(nil, server.ErrBadParamInput, "lat and lon must be valid numbers")
	}
	return s.convert(in, s.region(region)), nil
}

func (s *ConversionService) convert(in datastructure.Coordinate, region string) Conversion {
	lat, lon := datum.ConvertByRegion(in.Lat, in.Lon, region)
	out := datastructure.NewCoordinate(lat, lon)
	return Conversion{
		Input:        in,
		Output:       out,
		Region:       region,
		Converted:    datum.IsChinaRegion(region) && datum.InChina(in.Lat, in.Lon),
		OffsetMeters: util.RoundFloat(geo.OffsetMeters(in.Lat, in.Lon, out.Lat, out.Lon), 3),
		H3Cell:       geo.Cell(out.Lat, out.Lon, s.h3Resolution),
		Stored:       out.String(),
	}
}

type indexedConversion struct {
	idx int
	res Conversion
}

// ConvertBatch converts coords on the worker pool. Results keep the input order.
// Nothing is converted when any point is not finite.
func (s *ConversionService) ConvertBatch(ctx context.Context, coords []datastructure.Coordinate, region string) ([]Conversion, error) {
	for i, c := range coords {
		if !c.IsFinite() {
			return nil, server.WrapErrorf(nil, server.ErrBadParamInput, "coordinate %d: lat and lon must be valid numbers", i)
		}
	}
	region = s.region(region)

	workers := concurrent.NewWorkerPool[concurrent.ConvertJobItem, indexedConversion](s.workers, len(coords))
	for i, c := range coords {
		workers.AddJob(concurrent.ConvertJobItem{Idx: i, Lat: c.Lat, Lon: c.Lon, Region: region})
	}
	workers.Close()

	workers.Start(func(job concurrent.ConvertJobItem) indexedConversion {
		if ctx.Err() != nil {
			return indexedConversion{idx: -1}
		}
		return indexedConversion{idx: job.Idx, res: s.convert(datastructure.NewCoordinate(job.Lat, job.Lon), job.Region)}
	})
	workers.Wait()

	out := make([]Conversion, len(coords))
	for r := range workers.CollectResults() {
		if r.idx < 0 {
			continue
		}
		out[r.idx] = r.res
	}
	if err := ctx.Err(); err != nil {
		return nil, server.WrapErrorf(err, server.ErrCanceled, "batch conversion canceled: %v", err)
	}
	return out, nil
}

// ConvertPolyline decodes an encoded polyline ([lat, lon] pairs, precision 1e-5), converts
// every vertex and encodes the result again.
func (s *ConversionService) ConvertPolyline(ctx context.Context, encoded string, region string) (PolylineConversion, error) {
	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return PolylineConversion{}, server.WrapErrorf(err, server.ErrBadParamInput, "invalid polyline: %v", err)
	}
	if len(rest) != 0 {
		return PolylineConversion{}, server.WrapErrorf(nil, server.ErrBadParamInput, "invalid polyline: %d trailing bytes", len(rest))
	}
	region = s.region(region)

	res := PolylineConversion{Coordinates: make([]datastructure.Coordinate, 0, len(coords))}
	out := make([][]float64, 0, len(coords))
	for _, c := range coords {
		if err := ctx.Err(); err != nil {
			return PolylineConversion{}, server.WrapErrorf(err, server.ErrCanceled, "polyline conversion canceled: %v", err)
		}
		if datum.IsChinaRegion(region) && datum.InChina(c[0], c[1]) {
			res.Converted++
		}
		lat, lon := datum.ConvertByRegion(c[0], c[1], region)
		wgs := datastructure.NewCoordinate(lat, lon)
		res.Coordinates = append(res.Coordinates, wgs)
		out = append(out, wgs.LatLon())
	}
	res.Polyline = string(polyline.EncodeCoords(out))
	return res, nil
}

// ParseStored parses a coordinate in the "<lat>,<lon>" storage form.
func (s *ConversionService) ParseStored(stored string) (datastructure.Coordinate, error) {
	c, err := datastructure.ParseCoordinate(stored)
	if err != nil {
		return datastructure.Coordinate{}, server.WrapErrorf(err, server.ErrBadParamInput, "%v", err)
	}
	return c, nil
}

// NormalizeStored parses a stored "<lat>,<lon>" value and converts it like Convert.
func (s *ConversionService) NormalizeStored(ctx context.Context, stored string, region string) (Conversion, error) {
	c, err := s.ParseStored(stored)
	if err != nil {
		return Conversion{}, err
	}
	return s.Convert(ctx, c.Lat, c.Lon, region)
}
