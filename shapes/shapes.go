// Package shapes holds the float32 distance kernels shared by the script
// builtins and the renderer.
package shapes

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
)

func Length2(x, y float32) float32 {
	return ms2.Norm(ms2.Vec{X: x, Y: y})
}

func Length3(x, y, z float32) float32 {
	return ms3.Norm(ms3.Vec{X: x, Y: y, Z: z})
}

// Sphere is the distance from p to a sphere of radius r at the origin.
func Sphere(p ms3.Vec, r float32) float32 {
	return ms3.Norm(p) - r
}

// Box2 is the exact distance to an axis-aligned rectangle with the given
// half extents.
func Box2(p, half ms2.Vec) float32 {
	q := ms2.Sub(ms2.AbsElem(p), half)
	return ms2.Norm(ms2.MaxElem(q, ms2.Vec{})) + math32.Min(math32.Max(q.X, q.Y), 0)
}

// Box3 is the exact distance to an axis-aligned box with the given half
// extents.
func Box3(p, half ms3.Vec) float32 {
	q := ms3.Sub(ms3.AbsElem(p), half)
	return ms3.Norm(ms3.MaxElem(q, ms3.Vec{})) + math32.Min(math32.Max(q.X, math32.Max(q.Y, q.Z)), 0)
}

// Torus lies in the xz plane with ring radius major and tube radius minor.
func Torus(p ms3.Vec, major, minor float32) float32 {
	ring := Length2(p.X, p.Z) - major
	return Length2(ring, p.Y) - minor
}

// Corner is the rounded outside corner of the quadrant x<=0, y<=0.
func Corner(x, y float32) float32 {
	if x > 0 && y > 0 {
		return Length2(x, y)
	}
	return math32.Max(x, y)
}

// Union folds distances with min. It returns +Inf for no inputs.
func Union(ds ...float32) float32 {
	d := math32.Inf(1)
	for _, v := range ds {
		d = math32.Min(d, v)
	}
	return d
}

// Intersect folds distances with max. It returns -Inf for no inputs.
func Intersect(ds ...float32) float32 {
	d := math32.Inf(-1)
	for _, v := range ds {
		d = math32.Max(d, v)
	}
	return d
}
