package script

import "sort"

// FunctionName tags one of the builtin functions. The set is closed.
type FunctionName int

const (
	FuncInvalid FunctionName = iota

	FuncSin
	FuncCos
	FuncTan
	FuncAsin
	FuncAcos
	FuncAtan
	FuncAtan2
	FuncSinh
	FuncCosh
	FuncTanh
	FuncAsinh
	FuncAcosh
	FuncAtanh

	FuncExp
	FuncExp2
	FuncLog
	FuncLog2
	FuncPow
	FuncSqrt

	FuncAbs
	FuncSign
	FuncFloor
	FuncCeil
	FuncFract
	FuncTrunc
	FuncRound
	FuncMod

	FuncMin
	FuncMax
	FuncClamp
	FuncMix
	FuncSmoothstep

	FuncLength
	FuncDistance
	FuncDot
	FuncCross
	FuncNormalize

	FuncUnion
	FuncIntersect
	FuncRoundMin
	FuncRoundMax

	FuncTorus
	FuncBox2
	FuncBox3

	FuncValueNoise
	FuncHash

	FuncRot0
	FuncRot1
	FuncRot
	FuncTriangle
	FuncCorner
	FuncAddMul
	FuncFakeSine

	FuncSmoothAbs
	FuncPolySmoothAbs
	FuncSmoothClamp
	FuncPolySmoothClamp

	funcCount
)

type functionInfo struct {
	name      string
	host      string
	mnemonics []string
}

// The first mnemonic is the spelling the DSL printer emits.
var functionTable = [funcCount]functionInfo{
	FuncSin:   {"Sin", "sin", []string{"sin"}},
	FuncCos:   {"Cos", "cos", []string{"cos"}},
	FuncTan:   {"Tan", "tan", []string{"tan"}},
	FuncAsin:  {"Asin", "asin", []string{"asin"}},
	FuncAcos:  {"Acos", "acos", []string{"acos"}},
	FuncAtan:  {"Atan", "atan", []string{"atan"}},
	FuncAtan2: {"Atan2", "atan", []string{"atan2"}},
	FuncSinh:  {"Sinh", "sinh", []string{"sinh"}},
	FuncCosh:  {"Cosh", "cosh", []string{"cosh"}},
	FuncTanh:  {"Tanh", "tanh", []string{"tanh"}},
	FuncAsinh: {"Asinh", "asinh", []string{"asinh"}},
	FuncAcosh: {"Acosh", "acosh", []string{"acosh"}},
	FuncAtanh: {"Atanh", "atanh", []string{"atanh"}},

	FuncExp:  {"Exp", "exp", []string{"exp"}},
	FuncExp2: {"Exp2", "exp2", []string{"exp2"}},
	FuncLog:  {"Log", "ln", []string{"log"}},
	FuncLog2: {"Log2", "log2", []string{"log2"}},
	FuncPow:  {"Pow", "pow", []string{"pow"}},
	FuncSqrt: {"Sqrt", "sqrt", []string{"sqrt"}},

	FuncAbs:   {"Abs", "abs", []string{"B", "abs"}},
	FuncSign:  {"Sign", "signum", []string{"sign"}},
	FuncFloor: {"Floor", "floor", []string{"floor", "Z"}},
	FuncCeil:  {"Ceil", "ceiling", []string{"ceil"}},
	FuncFract: {"Fract", "fraction", []string{"fract", "FR"}},
	FuncTrunc: {"Trunc", "int_part", []string{"trunc"}},
	FuncRound: {"Round", "round", []string{"round"}},
	FuncMod:   {"Mod", "modulo", []string{"mod"}},

	FuncMin:        {"Min", "min", []string{"min"}},
	FuncMax:        {"Max", "max", []string{"max"}},
	FuncClamp:      {"Clamp", "clamp", []string{"cl"}},
	FuncMix:        {"Mix", "mix", []string{"mix"}},
	FuncSmoothstep: {"Smoothstep", "smoothstep", []string{"SM"}},

	FuncLength:    {"Length", "length", []string{"L"}},
	FuncDistance:  {"Distance", "distance", []string{"H"}},
	FuncDot:       {"Dot", "dot", []string{"D"}},
	FuncCross:     {"Cross", "cross", []string{"X"}},
	FuncNormalize: {"Normalize", "normalize", []string{"N"}},

	FuncUnion:     {"Union", "union", []string{"U"}},
	FuncIntersect: {"Intersect", "intersect", []string{"G"}},
	FuncRoundMin:  {"RoundMin", "round_min", []string{"rU", "rmin"}},
	FuncRoundMax:  {"RoundMax", "round_max", []string{"rG", "rmax"}},

	FuncTorus: {"Torus", "torus", []string{"don"}},
	FuncBox2:  {"Box2", "box2", []string{"bx2"}},
	FuncBox3:  {"Box3", "box3", []string{"bx3"}},

	FuncValueNoise: {"ValueNoise", "value_noise", []string{"nz"}},
	FuncHash:       {"Hash", "hash", []string{"ri"}},

	FuncRot0:     {"Rot0", "rot0", []string{"r0"}},
	FuncRot1:     {"Rot1", "rot1", []string{"r1"}},
	FuncRot:      {"Rot", "rot", []string{"rot"}},
	FuncTriangle: {"Triangle", "triangle", []string{"TR"}},
	FuncCorner:   {"Corner", "corner", []string{"k"}},
	FuncAddMul:   {"AddMul", "add_mul", []string{"A"}},
	FuncFakeSine: {"FakeSine", "fake_sine", []string{"g"}},

	FuncSmoothAbs:       {"SmoothAbs", "smooth_abs", []string{"sB", "sabs"}},
	FuncPolySmoothAbs:   {"PolySmoothAbs", "poly_smooth_abs", []string{"qB"}},
	FuncSmoothClamp:     {"SmoothClamp", "smooth_clamp", []string{"scl"}},
	FuncPolySmoothClamp: {"PolySmoothClamp", "poly_smooth_clamp", []string{"qcl"}},
}

var mnemonicIndex = buildMnemonicIndex()

func buildMnemonicIndex() map[string]FunctionName {
	index := make(map[string]FunctionName)
	for fn := FuncInvalid + 1; fn < funcCount; fn++ {
		for _, m := range functionTable[fn].mnemonics {
			if prev, dup := index[m]; dup {
				panic("script: mnemonic " + m + " bound to both " + prev.String() + " and " + fn.String())
			}
			index[m] = fn
		}
	}
	return index
}

// LookupFunction resolves an identifier against the mnemonic table.
func LookupFunction(ident string) (FunctionName, bool) {
	fn, ok := mnemonicIndex[ident]
	return fn, ok
}

// String returns the canonical name, e.g. "RoundMin".
func (f FunctionName) String() string {
	if !f.Valid() {
		return "Invalid"
	}
	return functionTable[f].name
}

// Valid reports whether f names a builtin.
func (f FunctionName) Valid() bool {
	return f > FuncInvalid && f < funcCount
}

// Mnemonic is the spelling used when printing DSL source.
func (f FunctionName) Mnemonic() string {
	if !f.Valid() {
		return ""
	}
	return functionTable[f].mnemonics[0]
}

// Mnemonics lists every spelling that lexes to f.
func (f FunctionName) Mnemonics() []string {
	if !f.Valid() {
		return nil
	}
	return append([]string(nil), functionTable[f].mnemonics...)
}

// HostName is the function name in generated host code.
func (f FunctionName) HostName() string {
	if !f.Valid() {
		return ""
	}
	return functionTable[f].host
}

// Functions returns every builtin tag in declaration order.
func Functions() []FunctionName {
	out := make([]FunctionName, 0, funcCount-1)
	for fn := FuncInvalid + 1; fn < funcCount; fn++ {
		out = append(out, fn)
	}
	return out
}

// MnemonicNames returns all recognised identifiers, sorted.
func MnemonicNames() []string {
	names := make([]string, 0, len(mnemonicIndex))
	for name := range mnemonicIndex {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
