package script

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"

	"github.com/mgomes/sdfscript/shapes"
)

func registerMathBuiltins(register registerFunc) {
	register(FuncSin, exactly(1), scalar1(math32.Sin))
	register(FuncCos, exactly(1), scalar1(math32.Cos))
	register(FuncTan, exactly(1), scalar1(math32.Tan))
	register(FuncAsin, exactly(1), scalar1(math32.Asin))
	register(FuncAcos, exactly(1), scalar1(math32.Acos))
	register(FuncAtan, exactly(1), scalar1(math32.Atan))
	register(FuncAtan2, exactly(2), scalar2(math32.Atan2))
	register(FuncSinh, exactly(1), scalar1(math32.Sinh))
	register(FuncCosh, exactly(1), scalar1(math32.Cosh))
	register(FuncTanh, exactly(1), scalar1(math32.Tanh))
	register(FuncAsinh, exactly(1), scalar1(math32.Asinh))
	register(FuncAcosh, exactly(1), scalar1(math32.Acosh))
	register(FuncAtanh, exactly(1), scalar1(math32.Atanh))

	register(FuncExp, exactly(1), scalar1(math32.Exp))
	register(FuncExp2, exactly(1), scalar1(math32.Exp2))
	register(FuncLog, exactly(1), scalar1(math32.Log))
	register(FuncLog2, exactly(1), scalar1(math32.Log2))
	register(FuncPow, exactly(2), scalar2(math32.Pow))
	register(FuncSqrt, exactly(1), scalar1(math32.Sqrt))

	register(FuncAbs, exactly(1), scalar1(math32.Abs))
	register(FuncSign, exactly(1), scalar1(signum))
	register(FuncFloor, exactly(1), scalar1(math32.Floor))
	register(FuncCeil, exactly(1), scalar1(math32.Ceil))
	register(FuncFract, exactly(1), scalar1(shapes.Fract))
	register(FuncTrunc, exactly(1), scalar1(math32.Trunc))
	register(FuncRound, exactly(1), scalar1(roundHalfAway))
	register(FuncMod, exactly(2), scalar2(shapes.Mod))

	register(FuncMin, exactly(2), scalar2(math32.Min))
	register(FuncMax, exactly(2), scalar2(math32.Max))
	register(FuncClamp, exactly(3), scalar3(shapes.Clamp))
	register(FuncMix, exactly(3), scalar3(shapes.Mix))
	register(FuncSmoothstep, exactly(3), scalar3(shapes.Smoothstep))

	register(FuncLength, exactly(2, 3), builtinLength)
	register(FuncDistance, exactly(4, 6), builtinDistance)
	register(FuncDot, exactly(4, 6), builtinDot)
	register(FuncCross, exactly(6), builtinCross)
	register(FuncNormalize, exactly(2, 3), builtinNormalize)
}

// signum is 1 for +0 and positive values, -1 for -0 and negative values.
func signum(x float32) float32 {
	if math32.IsNaN(x) {
		return x
	}
	if math32.Signbit(x) {
		return -1
	}
	return 1
}

func roundHalfAway(x float32) float32 {
	return float32(math.Round(float64(x)))
}

func vec2Args(args []float32) (ms2.Vec, ms2.Vec) {
	return ms2.Vec{X: args[0], Y: args[1]}, ms2.Vec{X: args[2], Y: args[3]}
}

func vec3Args(args []float32) (ms3.Vec, ms3.Vec) {
	return ms3.Vec{X: args[0], Y: args[1], Z: args[2]}, ms3.Vec{X: args[3], Y: args[4], Z: args[5]}
}

func builtinLength(call callFrame) Value {
	a := call.args
	if len(a) == 2 {
		return NewScalar(shapes.Length2(a[0], a[1]))
	}
	return NewScalar(shapes.Length3(a[0], a[1], a[2]))
}

func builtinDistance(call callFrame) Value {
	if len(call.args) == 4 {
		p, q := vec2Args(call.args)
		return NewScalar(ms2.Norm(ms2.Sub(p, q)))
	}
	p, q := vec3Args(call.args)
	return NewScalar(ms3.Norm(ms3.Sub(p, q)))
}

func builtinDot(call callFrame) Value {
	if len(call.args) == 4 {
		p, q := vec2Args(call.args)
		return NewScalar(ms2.Dot(p, q))
	}
	p, q := vec3Args(call.args)
	return NewScalar(ms3.Dot(p, q))
}

func builtinCross(call callFrame) Value {
	p, q := vec3Args(call.args)
	return NewVec3(ms3.Cross(p, q))
}

// builtinNormalize divides by the length without guarding zero, so the zero
// vector yields NaN components.
func builtinNormalize(call callFrame) Value {
	a := call.args
	if len(a) == 2 {
		v := ms2.Vec{X: a[0], Y: a[1]}
		return NewVec2(ms2.Scale(1/ms2.Norm(v), v))
	}
	v := ms3.Vec{X: a[0], Y: a[1], Z: a[2]}
	return NewVec3(ms3.Scale(1/ms3.Norm(v), v))
}
