package shapes

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
)

func closeTo(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

func TestPrimitives(t *testing.T) {
	tests := []struct {
		name string
		got  float32
		want float32
	}{
		{"sphere outside", Sphere(ms3.Vec{X: 3, Y: 4}, 1), 4},
		{"sphere inside", Sphere(ms3.Vec{}, 2), -2},
		{"box3 face", Box3(ms3.Vec{X: 3}, ms3.Vec{X: 1, Y: 1, Z: 1}), 2},
		{"box3 corner", Box3(ms3.Vec{X: 2, Y: 2, Z: 1}, ms3.Vec{X: 1, Y: 1, Z: 1}), math32.Sqrt(2)},
		{"box3 inside", Box3(ms3.Vec{}, ms3.Vec{X: 1, Y: 2, Z: 3}), -1},
		{"box2 edge", Box2(ms2.Vec{Y: 5}, ms2.Vec{X: 1, Y: 2}), 3},
		{"torus ring", Torus(ms3.Vec{X: 10}, 10, 3), -3},
		{"torus above", Torus(ms3.Vec{X: 10, Y: 5}, 10, 3), 2},
		{"torus axis", Torus(ms3.Vec{}, 4, 1), 3},
		{"corner outside", Corner(3, 4), 5},
		{"corner inside", Corner(-1, -3), -1},
		{"corner edge", Corner(-2, 1), 1},
	}
	for _, tt := range tests {
		if !closeTo(tt.got, tt.want) {
			t.Fatalf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestUnionIntersect(t *testing.T) {
	if got := Union(3, -1, 2); got != -1 {
		t.Fatalf("Union = %v", got)
	}
	if got := Intersect(3, -1, 2); got != 3 {
		t.Fatalf("Intersect = %v", got)
	}
	if !math32.IsInf(Union(), 1) {
		t.Fatalf("empty Union should be +Inf")
	}
	if !math32.IsInf(Intersect(), -1) {
		t.Fatalf("empty Intersect should be -Inf")
	}
}

func TestSmoothMinApproachesMin(t *testing.T) {
	for _, r := range []float32{1, .1, .01, .001} {
		got := SmoothMin(.5, .5, r)
		if math32.Abs(got-.5) > r {
			t.Fatalf("SmoothMin(.5, .5, %v) = %v", r, got)
		}
	}
	if got := SmoothMin(5, 7, 1); got != 5 {
		t.Fatalf("outside the radius SmoothMin is min, got %v", got)
	}
	if got := SmoothMin(0, 0, 1); !closeTo(got, 1-math32.Sqrt(2)) {
		t.Fatalf("SmoothMin(0, 0, 1) = %v", got)
	}
	if got, want := SmoothMax(1, 2, .5), -SmoothMin(-1, -2, .5); got != want {
		t.Fatalf("SmoothMax = %v, want %v", got, want)
	}
}

func TestRoundFold(t *testing.T) {
	if !math32.IsNaN(RoundMin()) {
		t.Fatalf("empty RoundMin should be NaN")
	}
	if got := RoundMin(4); got != 4 {
		t.Fatalf("single RoundMin = %v", got)
	}
	if got := RoundMin(5, 3, 7, 1); got != 3 {
		t.Fatalf("RoundMin far apart = %v", got)
	}
	if got := RoundMax(-5, -3, -7, 1); got != -3 {
		t.Fatalf("RoundMax far apart = %v", got)
	}
}

func TestSmoothAbsAndClamp(t *testing.T) {
	if got := PolySmoothAbs(-3, 1); got != -3 {
		t.Fatalf("PolySmoothAbs below -m keeps the sign, got %v", got)
	}
	if got := PolySmoothAbs(2, 1); got != 2 {
		t.Fatalf("PolySmoothAbs above m = %v", got)
	}
	if got := PolySmoothAbs(0, 1); got != 0 {
		t.Fatalf("PolySmoothAbs(0) = %v", got)
	}
	if got := SmoothAbs(3, 0); got != 3 {
		t.Fatalf("SmoothAbs with p=0 = %v", got)
	}
	if got := PolySmoothClamp(10, .5, -1, 1); !closeTo(got, 1) {
		t.Fatalf("PolySmoothClamp high = %v", got)
	}
	if got := PolySmoothClamp(-10, .5, -1, 1); !closeTo(got, 1) {
		t.Fatalf("PolySmoothClamp far below = %v", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		x, lo, hi, want float32
	}{
		{5, 0, 1, 1},
		{-5, 0, 1, 0},
		{.5, 0, 1, .5},
		{.5, 2, 1, 2},
	}
	for _, tt := range tests {
		if got := Clamp(tt.x, tt.lo, tt.hi); got != tt.want {
			t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", tt.x, tt.lo, tt.hi, got, tt.want)
		}
	}
	if got := Smoothstep(0, 1, 2); got != 1 {
		t.Fatalf("Smoothstep saturates, got %v", got)
	}
	if got := Mix(2, 4, .5); got != 3 {
		t.Fatalf("Mix = %v", got)
	}
}

func TestPeriodic(t *testing.T) {
	tests := []struct {
		name      string
		got, want float32
	}{
		{"mod positive", Mod(7, 3), 1},
		{"mod negative a", Mod(-1, 3), 2},
		{"mod negative b", Mod(1, -3), -2},
		{"fract", Fract(-0.25), .75},
		{"triangle 0", Triangle(0), 1},
		{"triangle 2", Triangle(2), -1},
		{"triangle period", Triangle(5), Triangle(1)},
	}
	for _, tt := range tests {
		if !closeTo(tt.got, tt.want) {
			t.Fatalf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestHashIsPureAndBounded(t *testing.T) {
	for i := range 200 {
		p := ms3.Vec{X: float32(i) * .37, Y: float32(i) * -1.3, Z: float32(i*i) * .01}
		h := Hash(p)
		if h < 0 || h >= 1 {
			t.Fatalf("Hash(%v) = %v out of [0, 1)", p, h)
		}
		if Hash(p) != h {
			t.Fatalf("Hash(%v) is not deterministic", p)
		}
		n := Noise(p)
		if n < -1 || n > 1 {
			t.Fatalf("Noise(%v) = %v out of [-1, 1]", p, n)
		}
	}
}

func TestValueNoise(t *testing.T) {
	p := ms3.Vec{X: 1.5, Y: -2, Z: 3.25}
	if got := ValueNoise(p, .1, 0, 0); got != 0 {
		t.Fatalf("zero octaves should give 0, got %v", got)
	}
	if ValueNoise(p, .4, 0, 2) != ValueNoise(p, .4, 0, 2) {
		t.Fatalf("ValueNoise is not deterministic")
	}
}
