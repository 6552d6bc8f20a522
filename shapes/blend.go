package shapes

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
)

// SmoothMin rounds the inside corner where two fields meet with radius r.
// Outside the radius it is plain min.
func SmoothMin(a, b, r float32) float32 {
	if a < r && b < r {
		return r - Length2(r-a, r-b)
	}
	return math32.Min(a, b)
}

// SmoothMax mirrors SmoothMin: -SmoothMin(-a, -b, r).
func SmoothMax(a, b, r float32) float32 {
	return -SmoothMin(-a, -b, r)
}

// RoundMin treats the last element as the radius and folds the rest with
// SmoothMin. With a single element it returns that element.
func RoundMin(xs ...float32) float32 {
	return roundFold(SmoothMin, xs)
}

// RoundMax is RoundMin with SmoothMax.
func RoundMax(xs ...float32) float32 {
	return roundFold(SmoothMax, xs)
}

func roundFold(blend func(a, b, r float32) float32, xs []float32) float32 {
	switch len(xs) {
	case 0:
		return math32.NaN()
	case 1:
		return xs[0]
	}
	r := xs[len(xs)-1]
	d := xs[0]
	for _, v := range xs[1 : len(xs)-1] {
		d = blend(d, v, r)
	}
	return d
}

func SmoothAbs(x, p float32) float32 {
	return math32.Sqrt(x*x + p)
}

// PolySmoothAbs is a cubic inside [-m, m] and passes x through unchanged
// outside it, keeping the sign.
func PolySmoothAbs(x, m float32) float32 {
	if math32.Abs(x) > m {
		return x
	}
	return (2 - x/m) * x * x / m
}

func SmoothClamp(x, p, lo, hi float32) float32 {
	return (SmoothAbs(x-lo, p) - SmoothAbs(x-hi, p) + lo + hi) / 2
}

// PolySmoothClamp combines two shifted PolySmoothAbs calls. Since those keep
// their sign outside [-m, m], x far below lo also settles at hi.
func PolySmoothClamp(x, m, lo, hi float32) float32 {
	return (PolySmoothAbs(x-lo, m) - PolySmoothAbs(x-hi, m) + lo + hi) / 2
}

// Clamp orders as max(min(x, hi), lo), so lo wins when the bounds cross.
func Clamp(x, lo, hi float32) float32 {
	if lo > hi {
		return lo
	}
	return ms1.Clamp(x, lo, hi)
}

func Mix(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

func Smoothstep(edge0, edge1, x float32) float32 {
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Mod is the floored modulo; the result has the sign of b.
func Mod(a, b float32) float32 {
	return math32.Mod(math32.Mod(a, b)+b, b)
}

// Fract is x - floor(x), always in [0, 1).
func Fract(x float32) float32 {
	return x - math32.Floor(x)
}

// Triangle is a period-4 triangle wave in [-1, 1].
func Triangle(x float32) float32 {
	return math32.Abs(x-math32.Floor(x/4)*4-2) - 1
}

// FakeSine is a cheap polynomial wave shaped like sin.
func FakeSine(x float32) float32 {
	return math32.Abs((x-math32.Floor(x)-0.5)*2)*x*(6-4*x) - 1
}
