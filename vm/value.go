package vm

import "fmt"

// Kind tags a Value with the runtime type category it carries. There is no
// verifier (§ Non-goals): the dispatcher trusts that bytecode pushes and
// pops operands of the kind each opcode expects, and treats a mismatch as
// a fatal engine error rather than a recoverable one.
type Kind uint8

const (
	KindBool Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindChar
	KindObjRef
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindByte:
		return "byte"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindChar:
		return "char"
	case KindObjRef:
		return "objref"
	default:
		return "unknown"
	}
}

// Value is the closed tagged union every evaluation-stack slot and local
// variable holds. A Value is a value type: copying it copies the operand,
// matching bytecode's load-by-value semantics for everything but ObjRef,
// whose payload is a heap id (0 is null).
type Value struct {
	kind Kind
	i64  int64
	f64  float64
	ref  uint64
}

// DefaultValue is Int(0): the zero used for int array elements and for a
// field whose descriptor is empty. Other fields and array elements start
// from their kind's own zero; local variables have no default at all.
var DefaultValue = VInt(0)

func VBool(b bool) Value {
	if b {
		return Value{kind: KindBool, i64: 1}
	}
	return Value{kind: KindBool, i64: 0}
}

func VByte(b int8) Value   { return Value{kind: KindByte, i64: int64(b)} }
func VShort(s int16) Value { return Value{kind: KindShort, i64: int64(s)} }
func VChar(c uint16) Value { return Value{kind: KindChar, i64: int64(c)} }
func VInt(i int32) Value   { return Value{kind: KindInt, i64: int64(i)} }
func VLong(l int64) Value  { return Value{kind: KindLong, i64: l} }
func VFloat(f float32) Value {
	return Value{kind: KindFloat, f64: float64(f)}
}
func VDouble(d float64) Value { return Value{kind: KindDouble, f64: d} }
func VRef(id uint64) Value    { return Value{kind: KindObjRef, ref: id} }
func VNull() Value            { return Value{kind: KindObjRef, ref: 0} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic(FatalErrorf("operand type mismatch: expected %s, got %s", k, v.kind))
	}
}

func (v Value) Bool() bool { v.mustBe(KindBool); return v.i64 != 0 }
func (v Value) Byte() int8 { v.mustBe(KindByte); return int8(v.i64) }
func (v Value) Short() int16 {
	v.mustBe(KindShort)
	return int16(v.i64)
}
func (v Value) Char() uint16 { v.mustBe(KindChar); return uint16(v.i64) }
func (v Value) Int() int32   { v.mustBe(KindInt); return int32(v.i64) }
func (v Value) Long() int64  { v.mustBe(KindLong); return v.i64 }
func (v Value) Float() float32 {
	v.mustBe(KindFloat)
	return float32(v.f64)
}
func (v Value) Double() float64 { v.mustBe(KindDouble); return v.f64 }
func (v Value) Ref() uint64     { v.mustBe(KindObjRef); return v.ref }
func (v Value) IsNull() bool    { return v.kind == KindObjRef && v.ref == 0 }

// Category reports how many local-variable/stack slots this value occupies:
// 2 for long and double, 1 for everything else.
func (v Value) Category() int {
	if v.kind == KindLong || v.kind == KindDouble {
		return 2
	}
	return 1
}

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%v", v.i64 != 0)
	case KindFloat:
		return fmt.Sprintf("%g", float32(v.f64))
	case KindDouble:
		return fmt.Sprintf("%g", v.f64)
	case KindObjRef:
		return fmt.Sprintf("ref#%d", v.ref)
	default:
		return fmt.Sprintf("%d", v.i64)
	}
}
