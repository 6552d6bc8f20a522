package render

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"golang.org/x/sync/errgroup"
)

// Axis names the coordinate held fixed by a slice.
type Axis byte

const (
	AxisX Axis = 'x'
	AxisY Axis = 'y'
	AxisZ Axis = 'z'
)

func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "y", "z":
		return Axis(s[0]), nil
	}
	return 0, fmt.Errorf("unknown axis %q (want x, y or z)", s)
}

// point places grid coordinates u (across) and v (up) on the plane.
// Slicing x shows z across and y up; slicing y shows x and z; slicing z
// shows x and y.
func (a Axis) point(at, u, v float32) ms3.Vec {
	switch a {
	case AxisX:
		return ms3.Vec{X: at, Y: v, Z: u}
	case AxisY:
		return ms3.Vec{X: u, Y: at, Z: v}
	default:
		return ms3.Vec{X: u, Y: v, Z: at}
	}
}

// SliceSpec selects a square window [-Size, Size]² on the plane Axis = At,
// sampled at the center of each of Cols x Rows cells.
type SliceSpec struct {
	Axis Axis
	At   float32
	Size float32
	Cols int
	Rows int
}

// Grid holds sampled distances, row major with the top row first.
type Grid struct {
	Cols int
	Rows int
	Size float32
	D    []float32
}

func (g *Grid) At(col, row int) float32 {
	return g.D[row*g.Cols+col]
}

// Slice samples sdf over the plane. Rows are evaluated in parallel.
func Slice(ctx context.Context, sdf SDF, spec SliceSpec) (*Grid, error) {
	if spec.Cols <= 0 || spec.Rows <= 0 {
		return nil, fmt.Errorf("slice grid must be positive, got %dx%d", spec.Cols, spec.Rows)
	}
	if spec.Size <= 0 {
		return nil, fmt.Errorf("slice size must be positive, got %v", spec.Size)
	}
	if _, err := ParseAxis(string(spec.Axis)); err != nil {
		return nil, err
	}
	grid := &Grid{Cols: spec.Cols, Rows: spec.Rows, Size: spec.Size, D: make([]float32, spec.Cols*spec.Rows)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for r := range spec.Rows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v := spec.Size - 2*spec.Size*(float32(r)+0.5)/float32(spec.Rows)
			for c := range spec.Cols {
				u := -spec.Size + 2*spec.Size*(float32(c)+0.5)/float32(spec.Cols)
				d, err := sdf(spec.Axis.point(spec.At, u, v))
				if err != nil {
					return err
				}
				grid.D[r*spec.Cols+c] = d
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return grid, nil
}

// ASCII draws the grid: '#' inside, '*' within one cell of the surface,
// and alternating contour bands outside.
func (g *Grid) ASCII() string {
	cell := 2 * g.Size / float32(g.Cols)
	band := g.Size / 4
	var b strings.Builder
	for r := range g.Rows {
		for c := range g.Cols {
			d := g.At(c, r)
			switch {
			case math32.IsNaN(d):
				b.WriteByte('?')
			case math32.Abs(d) < cell:
				b.WriteByte('*')
			case d < 0:
				b.WriteByte('#')
			case int(d/band)%2 == 0:
				b.WriteByte('.')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
