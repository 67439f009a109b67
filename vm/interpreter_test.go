package vm

import (
	"bytes"
	"math"
	"testing"
)

func mustRecoverFatal(t *testing.T, fn func()) *FatalError {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a FatalError panic, got none")
		}
		if _, ok := r.(*FatalError); !ok {
			t.Fatalf("expected *FatalError, got %T: %v", r, r)
		}
	}()
	fn()
	return nil
}

func TestEvalStackUnderflow(t *testing.T) {
	mustRecoverFatal(t, func() {
		s := NewEvalStack(4)
		s.Pop()
	})
}

func TestDup2DuplicatesBothCategory1Values(t *testing.T) {
	s := NewEvalStack(8)
	s.Push(VInt(10))
	s.Push(VInt(20))
	s.Dup2()
	// ..., 10, 20, 10, 20
	if got := s.Pop().Int(); got != 20 {
		t.Fatalf("top after dup2 = %d, want 20", got)
	}
	if got := s.Pop().Int(); got != 10 {
		t.Fatalf("second after dup2 = %d, want 10 (the source bug dropped this value)", got)
	}
	if got := s.Pop().Int(); got != 20 {
		t.Fatalf("original top = %d, want 20", got)
	}
	if got := s.Pop().Int(); got != 10 {
		t.Fatalf("original bottom = %d, want 10", got)
	}
}

func TestDup2OnCategory2DuplicatesSingleValue(t *testing.T) {
	s := NewEvalStack(8)
	s.Push(VLong(42))
	s.Dup2()
	if s.Size() != 2 {
		t.Fatalf("stack size after dup2 of a long = %d, want 2", s.Size())
	}
	if got := s.Pop().Long(); got != 42 {
		t.Fatalf("top = %d, want 42", got)
	}
	if got := s.Pop().Long(); got != 42 {
		t.Fatalf("bottom = %d, want 42", got)
	}
}

func TestIincAddsSignedOperandNotAlwaysOne(t *testing.T) {
	l := NewLocals(1)
	l.Set(0, VInt(10))
	f := &Frame{Locals: l, Stack: NewEvalStack(1), Method: &Method{Code: []byte{IINC, 0, 0xFB}}} // delta -5
	execMath(NewInterpreter(NewRepository(), NewHeap(), &bytes.Buffer{}), f, IINC)
	if got := l.Get(0).Int(); got != 5 {
		t.Fatalf("iinc by -5 on 10 = %d, want 5", got)
	}
}

func TestFloatComparisonNaNOrdering(t *testing.T) {
	nan := float32(math.NaN())
	cases := []struct {
		op   uint8
		a, b float32
		want int32
	}{
		{FCMPL, nan, 1, -1},
		{FCMPG, nan, 1, 1},
		{FCMPL, 1, nan, -1},
		{FCMPG, 1, nan, 1},
		{FCMPL, 2, 1, 1},
		{FCMPG, 1, 2, -1},
	}
	for _, c := range cases {
		f := &Frame{Stack: NewEvalStack(8)}
		f.Stack.Push(VFloat(c.a))
		f.Stack.Push(VFloat(c.b))
		execMath(NewInterpreter(NewRepository(), NewHeap(), &bytes.Buffer{}), f, c.op)
		if got := f.Stack.Pop().Int(); got != c.want {
			t.Errorf("op=%d a=%v b=%v got=%d want=%d", c.op, c.a, c.b, got, c.want)
		}
	}
}

func TestFloatToIntConversionSaturatesAndZeroesNaN(t *testing.T) {
	cases := []struct {
		in   float64
		want int32
	}{
		{math.NaN(), 0},
		{1e30, math.MaxInt32},
		{-1e30, math.MinInt32},
		{3.9, 3},
		{-3.9, -3},
	}
	for _, c := range cases {
		if got := truncToInt(c.in); got != c.want {
			t.Errorf("truncToInt(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestIntegerDivideByZeroThrowsArithmeticException(t *testing.T) {
	repo := NewRepository()
	Bootstrap(repo)
	heap := NewHeap()
	interp := NewInterpreter(repo, heap, &bytes.Buffer{})

	f := &Frame{Stack: NewEvalStack(8)}
	f.Stack.Push(VInt(1))
	f.Stack.Push(VInt(0))

	defer func() {
		r := recover()
		tv, ok := r.(thrownValue)
		if !ok {
			t.Fatalf("expected thrownValue panic, got %T: %v", r, r)
		}
		excClass := heap.DerefInstance(tv.v.Ref()).ClassName
		if excClass != "java/lang/ArithmeticException" {
			t.Fatalf("thrown class = %s, want java/lang/ArithmeticException", excClass)
		}
	}()
	execMath(interp, f, IDIV)
}

func TestAllocateInstanceProducesFreshIDs(t *testing.T) {
	repo := NewRepository()
	class := newClass()
	class.Name = "Thing"
	repo.AddKlass(class)
	heap := NewHeap()

	id1 := heap.AllocateInstance(repo, class)
	id2 := heap.AllocateInstance(repo, class)
	if id1 == id2 {
		t.Fatalf("AllocateInstance returned the same id twice: %d", id1)
	}
}

func TestAllocateInstanceZeroesFieldsByDescriptor(t *testing.T) {
	repo := NewRepository()
	class := newClass()
	class.Name = "Thing"
	class.addField(&Field{Name: "flag", Descriptor: "Z"})
	class.addField(&Field{Name: "ref", Descriptor: "Ljava/lang/Object;"})
	class.addField(&Field{Name: "count", Descriptor: "J"})
	repo.AddKlass(class)
	heap := NewHeap()

	id := heap.AllocateInstance(repo, class)
	obj := heap.DerefInstance(id)

	flagField, _ := class.findField("flag")
	if got := obj.Fields[flagField.Offset]; got.Bool() != false {
		t.Fatalf("boolean field default = %v, want false", got)
	}
	refField, _ := class.findField("ref")
	if got := obj.Fields[refField.Offset]; !got.IsNull() {
		t.Fatalf("reference field default = %v, want null (got Kind=%v instead of ObjRef)", got, got.kind)
	}
	countField, _ := class.findField("count")
	if got := obj.Fields[countField.Offset]; got.Long() != 0 {
		t.Fatalf("long field default = %v, want 0", got)
	}
}

func TestFieldOffsetsInheritSuperFieldsFirst(t *testing.T) {
	repo := NewRepository()

	base := newClass()
	base.Name = "Base"
	base.addField(&Field{Name: "x"})
	repo.AddKlass(base)

	derived := newClass()
	derived.Name = "Derived"
	derived.SuperName = "Base"
	derived.addField(&Field{Name: "y"})
	repo.AddKlass(derived)
	RelinkSupers(repo)

	repo.resolveLayout(derived)
	xField, _ := base.findField("x")
	yField, _ := derived.findField("y")
	if xField.Offset != 0 {
		t.Fatalf("inherited field x offset = %d, want 0", xField.Offset)
	}
	if yField.Offset != 1 {
		t.Fatalf("own field y offset = %d, want 1", yField.Offset)
	}
	if derived.InstanceSlots != 2 {
		t.Fatalf("InstanceSlots = %d, want 2", derived.InstanceSlots)
	}
}

// TestInvokeAddsTwoInts builds iconst_1, iconst_2, iadd, ireturn by hand
// and runs it through Invoke end to end, without needing a real
// classfile-compiled method body.
func TestInvokeAddsTwoInts(t *testing.T) {
	repo := NewRepository()
	Bootstrap(repo)
	heap := NewHeap()
	interp := NewInterpreter(repo, heap, &bytes.Buffer{})

	class := newClass()
	class.Name = "Adder"
	repo.AddKlass(class)

	method := &Method{
		Name:       "addOneTwo",
		Descriptor: "()I",
		MaxStack:   2,
		MaxLocals:  0,
		Code:       []byte{ICONST_1, ICONST_2, IADD, IRETURN},
	}
	class.addMethod(method)

	ret, hasRet := interp.Invoke(class, method, nil)
	if !hasRet {
		t.Fatalf("expected a return value")
	}
	if got := ret.Int(); got != 3 {
		t.Fatalf("addOneTwo() = %d, want 3", got)
	}
}

// TestInvokeBindsOneSlotPerArgumentRegardlessOfCategory pins this engine's
// one-slot-per-argument local variable table convention: a long parameter
// followed by an int parameter must leave the int at local slot 1, not 2.
func TestInvokeBindsOneSlotPerArgumentRegardlessOfCategory(t *testing.T) {
	repo := NewRepository()
	Bootstrap(repo)
	heap := NewHeap()
	interp := NewInterpreter(repo, heap, &bytes.Buffer{})

	class := newClass()
	class.Name = "Adder"
	repo.AddKlass(class)

	method := &Method{
		Name:       "longThenInt",
		Descriptor: "(JI)I",
		MaxStack:   1,
		MaxLocals:  2,
		Code:       []byte{ILOAD_1, IRETURN},
	}
	class.addMethod(method)

	ret, hasRet := interp.Invoke(class, method, []Value{VLong(100), VInt(7)})
	if !hasRet {
		t.Fatalf("expected a return value")
	}
	if got := ret.Int(); got != 7 {
		t.Fatalf("longThenInt(100, 7) read local 1 as %d, want 7 (the int argument)", got)
	}
}

func TestVirtualDispatchPicksMostDerivedOverride(t *testing.T) {
	repo := NewRepository()
	Bootstrap(repo)
	heap := NewHeap()
	interp := NewInterpreter(repo, heap, &bytes.Buffer{})

	base := newClass()
	base.Name = "Base"
	base.addMethod(&Method{Name: "value", Descriptor: "()I", MaxStack: 1, MaxLocals: 1, Code: []byte{ICONST_1, IRETURN}})
	repo.AddKlass(base)

	derived := newClass()
	derived.Name = "Derived"
	derived.SuperName = "Base"
	derived.addMethod(&Method{Name: "value", Descriptor: "()I", MaxStack: 1, MaxLocals: 1, Code: []byte{ICONST_2, IRETURN}})
	repo.AddKlass(derived)
	RelinkSupers(repo)

	id := heap.AllocateInstance(repo, derived)
	_, method, ok := repo.LookupMethodVirtual("Derived", "value", "()I")
	if !ok {
		t.Fatalf("virtual lookup failed")
	}
	ret, _ := interp.Invoke(derived, method, []Value{VRef(id)})
	if got := ret.Int(); got != 2 {
		t.Fatalf("virtual dispatch on Derived returned %d, want 2 (Derived's override)", got)
	}
}

func TestCheckedCastRejectsUnrelatedClass(t *testing.T) {
	repo := NewRepository()
	Bootstrap(repo)
	heap := NewHeap()
	interp := NewInterpreter(repo, heap, &bytes.Buffer{})

	a := newClass()
	a.Name = "A"
	repo.AddKlass(a)
	b := newClass()
	b.Name = "B"
	repo.AddKlass(b)
	RelinkSupers(repo)

	id := heap.AllocateInstance(repo, a)

	defer func() {
		r := recover()
		tv, ok := r.(thrownValue)
		if !ok {
			t.Fatalf("expected thrownValue, got %T: %v", r, r)
		}
		excClass := heap.DerefInstance(tv.v.Ref()).ClassName
		if excClass != "java/lang/ClassCastException" {
			t.Fatalf("thrown class = %s, want java/lang/ClassCastException", excClass)
		}
	}()

	// Exercises the same IsSubclassOf + ThrowIntrinsic path CHECKCAST
	// takes in execObject, without needing a constant-pool-backed Frame.
	actual := heap.DerefInstance(id).ClassName
	if !repo.IsSubclassOf(actual, "B") {
		interp.Throw(interp.ThrowIntrinsic("java/lang/ClassCastException"))
	}
}
