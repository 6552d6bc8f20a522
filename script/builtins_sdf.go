package script

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"

	"github.com/mgomes/sdfscript/shapes"
)

// maxNoiseOctaves bounds the loop in ValueNoise; the contribution of higher
// octaves is below float32 resolution anyway.
const maxNoiseOctaves = 32

func registerShapeBuiltins(register registerFunc) {
	register(FuncUnion, atLeast(1), func(call callFrame) Value {
		return NewScalar(shapes.Union(call.args...))
	})
	register(FuncIntersect, atLeast(1), func(call callFrame) Value {
		return NewScalar(shapes.Intersect(call.args...))
	})
	register(FuncRoundMin, atLeast(2), func(call callFrame) Value {
		return NewScalar(shapes.RoundMin(call.args...))
	})
	register(FuncRoundMax, atLeast(2), func(call callFrame) Value {
		return NewScalar(shapes.RoundMax(call.args...))
	})

	register(FuncTorus, exactly(5), func(call callFrame) Value {
		a := call.args
		return NewScalar(shapes.Torus(ms3.Vec{X: a[0], Y: a[1], Z: a[2]}, a[3], a[4]))
	})
	register(FuncBox2, exactly(3, 4), builtinBox2)
	register(FuncBox3, exactly(4, 5, 6), builtinBox3)

	register(FuncValueNoise, exactly(4, 5, 6), builtinValueNoise)
	register(FuncHash, exactly(2, 3), func(call callFrame) Value {
		a := call.args
		p := ms3.Vec{X: a[0], Y: a[1]}
		if len(a) == 3 {
			p.Z = a[2]
		}
		return NewScalar(shapes.Hash(p))
	})

	register(FuncRot0, exactly(2), func(call callFrame) Value {
		return NewVec2(rotateTurns(call.args[0], call.args[1], call.a0))
	})
	register(FuncRot1, exactly(2), func(call callFrame) Value {
		return NewVec2(rotateTurns(call.args[0], call.args[1], call.a1))
	})
	register(FuncRot, exactly(4), func(call callFrame) Value {
		x, y, c, s := call.args[0], call.args[1], call.args[2], call.args[3]
		return NewVec2(ms2.Vec{X: c*x + s*y, Y: c*y - s*x})
	})
	register(FuncTriangle, exactly(1), scalar1(shapes.Triangle))
	register(FuncCorner, exactly(2), scalar2(shapes.Corner))
	register(FuncAddMul, exactly(4, 5, 6, 7), builtinAddMul)
	register(FuncFakeSine, exactly(1), scalar1(shapes.FakeSine))

	register(FuncSmoothAbs, exactly(2), scalar2(shapes.SmoothAbs))
	register(FuncPolySmoothAbs, exactly(2), scalar2(shapes.PolySmoothAbs))
	register(FuncSmoothClamp, exactly(4), func(call callFrame) Value {
		a := call.args
		return NewScalar(shapes.SmoothClamp(a[0], a[1], a[2], a[3]))
	})
	register(FuncPolySmoothClamp, exactly(4), func(call callFrame) Value {
		a := call.args
		return NewScalar(shapes.PolySmoothClamp(a[0], a[1], a[2], a[3]))
	})
}

// builtinBox2 takes x, y and one or two half extents.
func builtinBox2(call callFrame) Value {
	a := call.args
	half := ms2.Vec{X: a[2], Y: a[2]}
	if len(a) == 4 {
		half.Y = a[3]
	}
	return NewScalar(shapes.Box2(ms2.Vec{X: a[0], Y: a[1]}, half))
}

// builtinBox3 takes x, y, z and one to three half extents. Missing extents
// repeat the first.
func builtinBox3(call callFrame) Value {
	a := call.args
	half := ms3.Vec{X: a[3], Y: a[3], Z: a[3]}
	if len(a) >= 5 {
		half.Y = a[4]
	}
	if len(a) == 6 {
		half.Z = a[5]
	}
	return NewScalar(shapes.Box3(ms3.Vec{X: a[0], Y: a[1], Z: a[2]}, half))
}

// builtinValueNoise accepts (x, y, scale, offset), (x, y, z, scale, offset)
// or (x, y, z, scale, offset, octaves).
func builtinValueNoise(call callFrame) Value {
	a := call.args
	switch len(a) {
	case 4:
		return NewScalar(shapes.ValueNoise(ms3.Vec{X: a[0], Y: a[1]}, a[2], a[3], 1))
	case 5:
		return NewScalar(shapes.ValueNoise(ms3.Vec{X: a[0], Y: a[1], Z: a[2]}, a[3], a[4], 1))
	default:
		octaves := a[5]
		if math32.IsNaN(octaves) {
			octaves = 0
		}
		n := int(min(max(octaves, 0), maxNoiseOctaves))
		return NewScalar(shapes.ValueNoise(ms3.Vec{X: a[0], Y: a[1], Z: a[2]}, a[3], a[4], n))
	}
}

// rotateTurns rotates (x, y) counterclockwise by turns full revolutions.
func rotateTurns(x, y, turns float32) ms2.Vec {
	m := ms2.RotationMat2(turns * 2 * math32.Pi)
	return ms2.MulMatVec(m, ms2.Vec{X: x, Y: y})
}

// builtinAddMul offsets a 2D or 3D point by a direction, optionally scaled
// by a trailing factor.
func builtinAddMul(call callFrame) Value {
	a := call.args
	switch len(a) {
	case 4, 5:
		t := float32(1)
		if len(a) == 5 {
			t = a[4]
		}
		p := ms2.Vec{X: a[0], Y: a[1]}
		d := ms2.Vec{X: a[2], Y: a[3]}
		return NewVec2(ms2.Add(p, ms2.Scale(t, d)))
	default:
		t := float32(1)
		if len(a) == 7 {
			t = a[6]
		}
		p := ms3.Vec{X: a[0], Y: a[1], Z: a[2]}
		d := ms3.Vec{X: a[3], Y: a[4], Z: a[5]}
		return NewVec3(ms3.Add(p, ms3.Scale(t, d)))
	}
}
