// Package batch converts CSV files of GCJ-02 coordinates to WGS-84.
//
// Input rows are "lat,lon" or "lat,lon,country". A header row is skipped when its first
// field is not a number. Output rows are "lat,lon,wgs_lat,wgs_lon,converted,offset_m".
package batch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lintang/gcjwgs/pkg/datastructure"
	"lintang/gcjwgs/pkg/server"
	"lintang/gcjwgs/pkg/server/rest/service"

	"github.com/schollz/progressbar/v3"
)

var outputHeader = []string{"lat", "lon", "wgs_lat", "wgs_lon", "converted", "offset_m"}

type Converter interface {
	ConvertBatch(ctx context.Context, coords []datastructure.Coordinate, region string) ([]service.Conversion, error)
}

type Row struct {
	Line    int
	Coord   datastructure.Coordinate
	Country string
}

type Summary struct {
	Rows      int
	Converted int
}

// ReadRows parses every row of r. The first malformed row aborts with its line number.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows := []Row{}
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, server.WrapErrorf(err, server.ErrBadParamInput, "read csv: %v", err)
		}
		line, _ := cr.FieldPos(0)

		if first {
			first = false
			if _, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64); err != nil {
				continue
			}
		}

		row, err := parseRow(rec, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string, line int) (Row, error) {
	if len(rec) != 2 && len(rec) != 3 {
		return Row{}, server.WrapErrorf(nil, server.ErrBadParamInput, "line %d: want 2 or 3 fields, got %d", line, len(rec))
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
	if err != nil {
		return Row{}, server.WrapErrorf(err, server.ErrBadParamInput, "line %d: latitude %q is not a number", line, rec[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
	if err != nil {
		return Row{}, server.WrapErrorf(err, server.ErrBadParamInput, "line %d: longitude %q is not a number", line, rec[1])
	}
	row := Row{Line: line, Coord: datastructure.NewCoordinate(lat, lon)}
	if !row.Coord.IsFinite() {
		return Row{}, server.WrapErrorf(nil, server.ErrBadParamInput, "line %d: lat and lon must be valid numbers", line)
	}
	if len(rec) == 3 {
		row.Country = strings.TrimSpace(rec[2])
	}
	return row, nil
}

// Run converts every row of in and writes the results to out in input order. A row's own
// country wins over region. bar may be nil.
func Run(ctx context.Context, conv Converter, in io.Reader, out io.Writer, region string, bar *progressbar.ProgressBar) (Summary, error) {
	rows, err := ReadRows(in)
	if err != nil {
		return Summary{}, err
	}
	if bar != nil {
		bar.ChangeMax(len(rows))
	}

	// group by effective region so each group is one worker pool batch.
	groups := map[string][]int{}
	order := []string{}
	for i, row := range rows {
		rg := region
		if row.Country != "" {
			rg = row.Country
		}
		if _, ok := groups[rg]; !ok {
			order = append(order, rg)
		}
		groups[rg] = append(groups[rg], i)
	}

	results := make([]service.Conversion, len(rows))
	for _, rg := range order {
		idxs := groups[rg]
		coords := make([]datastructure.Coordinate, len(idxs))
		for j, i := range idxs {
			coords[j] = rows[i].Coord
		}
		res, err := conv.ConvertBatch(ctx, coords, rg)
		if err != nil {
			return Summary{}, err
		}
		for j, i := range idxs {
			results[i] = res[j]
		}
		if bar != nil {
			_ = bar.Add(len(idxs))
		}
	}

	sum := Summary{Rows: len(rows)}
	w := csv.NewWriter(out)
	if err := w.Write(outputHeader); err != nil {
		return Summary{}, fmt.Errorf("write csv: %w", err)
	}
	for _, res := range results {
		if res.Converted {
			sum.Converted++
		}
		rec := []string{
			formatFloat(res.Input.Lat), formatFloat(res.Input.Lon),
			formatFloat(res.Output.Lat), formatFloat(res.Output.Lon),
			strconv.FormatBool(res.Converted),
			strconv.FormatFloat(res.OffsetMeters, 'f', 3, 64),
		}
		if err := w.Write(rec); err != nil {
			return Summary{}, fmt.Errorf("write csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Summary{}, fmt.Errorf("write csv: %w", err)
	}
	return sum, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
