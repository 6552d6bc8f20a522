package script

import (
	"fmt"
	"strconv"

	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
)

type ValueKind int

const (
	KindScalar ValueKind = iota
	KindBool
	KindVec2
	KindVec3
)

// Value is a scalar, a boolean, or a 2- or 3-component vector. Values are
// small and passed by copy.
type Value struct {
	kind ValueKind
	b    bool
	v    [3]float32
}

func NewScalar(f float32) Value { return Value{kind: KindScalar, v: [3]float32{f}} }
func NewBool(b bool) Value      { return Value{kind: KindBool, b: b} }
func NewVec2(v ms2.Vec) Value   { return Value{kind: KindVec2, v: [3]float32{v.X, v.Y}} }
func NewVec3(v ms3.Vec) Value   { return Value{kind: KindVec3, v: [3]float32{v.X, v.Y, v.Z}} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) Scalar() float32 {
	if v.kind == KindScalar {
		return v.v[0]
	}
	return 0
}

func (v Value) Bool() bool {
	return v.kind == KindBool && v.b
}

func (v Value) Vec2() ms2.Vec {
	if v.kind != KindVec2 {
		return ms2.Vec{}
	}
	return ms2.Vec{X: v.v[0], Y: v.v[1]}
}

func (v Value) Vec3() ms3.Vec {
	if v.kind != KindVec3 {
		return ms3.Vec{}
	}
	return ms3.Vec{X: v.v[0], Y: v.v[1], Z: v.v[2]}
}

// Components returns the vector elements, or nil for scalars and booleans.
func (v Value) Components() []float32 {
	switch v.kind {
	case KindVec2:
		return []float32{v.v[0], v.v[1]}
	case KindVec3:
		return []float32{v.v[0], v.v[1], v.v[2]}
	default:
		return nil
	}
}

// Equal compares two values of the same kind exactly.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	if v.kind == KindBool {
		return v.b == other.b
	}
	return v.v == other.v
}

func (k ValueKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindBool:
		return "bool"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return formatFloat(v.v[0])
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindVec2:
		return "[" + formatFloat(v.v[0]) + ", " + formatFloat(v.v[1]) + "]"
	case KindVec3:
		return "[" + formatFloat(v.v[0]) + ", " + formatFloat(v.v[1]) + ", " + formatFloat(v.v[2]) + "]"
	default:
		return v.kind.String()
	}
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
