// Package ioformats implements the optional, non-core heightmap loaders and
// river writer named in spec.md §6. The corpus has no image or CSV
// library beyond the standard ones (see DESIGN.md), so this package is
// built directly on image/png and encoding/csv rather than a third-party
// dependency.
package ioformats

import (
	"encoding/csv"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"strconv"

	"terrahydro/internal/hydrology"
	"terrahydro/internal/mesh"
	"terrahydro/internal/tferrors"
)

// csvElevationDivisor matches spec.md §6's CSV heightmap convention: raw
// integer samples are divided by 2048 to land in a normalized elevation
// range.
const csvElevationDivisor = 2048.0

// LoadHeightmapPNG reads a grayscale PNG and returns a Mesh whose cells
// are the pixel luminance normalized to [0,1]. The image must be square;
// oobZ is the sentinel assigned to the returned mesh.
func LoadHeightmapPNG(r io.Reader, oobZ float64) (*mesh.Mesh, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, tferrors.Wrap(tferrors.KindIO, tferrors.ErrIOParse.Code, "decoding heightmap PNG", err)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w != h {
		return nil, tferrors.New(tferrors.KindIO, tferrors.ErrIOParse.Code, fmt.Sprintf("heightmap PNG must be square, got %dx%d", w, h))
	}
	if w < 1 {
		return nil, tferrors.New(tferrors.KindIO, tferrors.ErrIOParse.Code, "heightmap PNG has zero width")
	}

	m := mesh.New(w, oobZ)
	gray := image.NewGray(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gray.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float64(gray.GrayAt(x, y).Y) / 255.0
			m.SetZ(x, y, v)
		}
	}
	return m, nil
}

// LoadHeightmapCSV reads a square CSV grid of integer samples, dividing
// each by 2048 per spec.md §6. Row i of the file becomes row i of the
// mesh (the outer/x index); each row's fields become the y index.
func LoadHeightmapCSV(r io.Reader, oobZ float64) (*mesh.Mesh, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, tferrors.Wrap(tferrors.KindIO, tferrors.ErrIOParse.Code, "reading heightmap CSV", err)
	}
	w := len(rows)
	if w < 1 {
		return nil, tferrors.New(tferrors.KindIO, tferrors.ErrIOParse.Code, "heightmap CSV has no rows")
	}

	m := mesh.New(w, oobZ)
	for x, row := range rows {
		if len(row) != w {
			return nil, tferrors.New(tferrors.KindIO, tferrors.ErrIOParse.Code, fmt.Sprintf("heightmap CSV row %d has %d fields, want %d (must be square)", x, len(row), w))
		}
		for y, field := range row {
			n, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, tferrors.Wrap(tferrors.KindIO, tferrors.ErrIOParse.Code, fmt.Sprintf("parsing heightmap CSV cell (%d,%d)", x, y), err)
			}
			v := n / csvElevationDivisor
			if math.IsNaN(v) {
				return nil, tferrors.ErrNaNElevation
			}
			m.SetZ(x, y, v)
		}
	}
	return m, nil
}

// WriteRivers writes the river graph as CSV rows "x,y,nx,ny,flow", one
// per river segment, matching spec.md §6's river-list output contract.
func WriteRivers(w io.Writer, rivers []hydrology.River, fm *hydrology.FlowMap) error {
	cw := csv.NewWriter(w)
	for _, r := range rivers {
		flow := fm.Get(r.FromX, r.FromY)
		record := []string{
			strconv.Itoa(r.FromX),
			strconv.Itoa(r.FromY),
			strconv.Itoa(r.ToX),
			strconv.Itoa(r.ToY),
			strconv.FormatUint(flow, 10),
		}
		if err := cw.Write(record); err != nil {
			return tferrors.Wrap(tferrors.KindIO, "IO_WRITE", "writing river CSV row", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return tferrors.Wrap(tferrors.KindIO, "IO_WRITE", "flushing river CSV", err)
	}
	return nil
}

// WriteJunctions writes the junction list as CSV rows
// "x,y,width_in,width_out,r,g,b,a".
func WriteJunctions(w io.Writer, junctions []hydrology.Junction) error {
	cw := csv.NewWriter(w)
	for _, j := range junctions {
		record := []string{
			strconv.Itoa(j.X),
			strconv.Itoa(j.Y),
			strconv.FormatFloat(j.WidthIn, 'f', -1, 64),
			strconv.FormatFloat(j.WidthOut, 'f', -1, 64),
			strconv.FormatFloat(j.Colour.R, 'f', -1, 64),
			strconv.FormatFloat(j.Colour.G, 'f', -1, 64),
			strconv.FormatFloat(j.Colour.B, 'f', -1, 64),
			strconv.FormatFloat(j.Colour.A, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return tferrors.Wrap(tferrors.KindIO, "IO_WRITE", "writing junction CSV row", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return tferrors.Wrap(tferrors.KindIO, "IO_WRITE", "flushing junction CSV", err)
	}
	return nil
}
