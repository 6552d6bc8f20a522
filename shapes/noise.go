package shapes

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// Hash maps a point to a pseudo-random value in [0, 1). It is a pure
// function of p.
func Hash(p ms3.Vec) float32 {
	p = ms3.AddScalar(0.1, ms3.Scale(0.3183099, p))
	p = ms3.Scale(17, ms3.Vec{X: Fract(p.X), Y: Fract(p.Y), Z: Fract(p.Z)})
	return Fract(p.X * p.Y * p.Z * (p.X + p.Y + p.Z))
}

// Noise is trilinear value noise in [-1, 1] over the integer lattice.
func Noise(p ms3.Vec) float32 {
	i := ms3.Vec{X: math32.Floor(p.X), Y: math32.Floor(p.Y), Z: math32.Floor(p.Z)}
	f := ms3.Sub(p, i)
	f = ms3.Vec{X: fade(f.X), Y: fade(f.Y), Z: fade(f.Z)}

	corner := func(dx, dy, dz float32) float32 {
		return Hash(ms3.Add(i, ms3.Vec{X: dx, Y: dy, Z: dz}))
	}
	near := Mix(
		Mix(corner(0, 0, 0), corner(1, 0, 0), f.X),
		Mix(corner(0, 1, 0), corner(1, 1, 0), f.X),
		f.Y,
	)
	far := Mix(
		Mix(corner(0, 0, 1), corner(1, 0, 1), f.X),
		Mix(corner(0, 1, 1), corner(1, 1, 1), f.X),
		f.Y,
	)
	return Mix(near, far, f.Z)*2 - 1
}

func fade(t float32) float32 {
	return t * t * (3 - 2*t)
}

// ValueNoise sums octaves of Noise. The point is scaled, offset, and then
// doubled (by 2.03) per octave while the weight grows by 1/(2o). The range
// depends on the octave count. Fewer than one octave yields 0.
func ValueNoise(p ms3.Vec, scale, offset float32, octaves int) float32 {
	p = ms3.AddScalar(offset, ms3.Scale(scale, p))
	var weight, sum float32
	for o := 1; o <= octaves; o++ {
		weight += 1 / (2 * float32(o))
		p = ms3.Scale(2.03, p)
		sum += weight * Noise(p)
	}
	return sum
}
