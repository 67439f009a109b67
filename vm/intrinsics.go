package vm

import (
	"fmt"
	"math"
	"time"
)

// Bootstrap installs the small hard-coded intrinsic table this engine
// offers in place of a real native-method bridge (Non-goal: no bridging
// beyond this table). Every method here is a NativeFunc rather than
// bytecode; Interpreter.Invoke dispatches to Native when a resolved
// Method carries one.
func Bootstrap(repo *Repository) {
	bootstrapString(repo)
	bootstrapPrintStream(repo)
	bootstrapSystem(repo)
	bootstrapMath(repo)
	bootstrapExceptions(repo)
}

// bootstrapString installs java/lang/String as an intrinsic class whose
// instances carry no declared fields: their text lives in
// Interpreter.Strings, keyed by heap id, because this engine has no UTF-16
// char-array modeling to back a real field layout for it.
func bootstrapString(repo *Repository) {
	c := intrinsicClass(repo, "java/lang/String", "")
	nativeMethod(c, "length", "()I", func(interp *Interpreter, args []Value) (Value, bool) {
		return VInt(int32(len([]rune(interp.Strings[args[0].Ref()])))), true
	})
	nativeMethod(c, "charAt", "(I)C", func(interp *Interpreter, args []Value) (Value, bool) {
		r := []rune(interp.Strings[args[0].Ref()])
		i := args[1].Int()
		if i < 0 || int(i) >= len(r) {
			interp.Throw(interp.ThrowIntrinsic("java/lang/ArrayIndexOutOfBoundsException"))
		}
		return VChar(uint16(r[i])), true
	})
	nativeMethod(c, "equals", "(Ljava/lang/Object;)Z", func(interp *Interpreter, args []Value) (Value, bool) {
		other := args[1]
		if other.IsNull() {
			return VBool(false), true
		}
		return VBool(interp.Strings[args[0].Ref()] == interp.Strings[other.Ref()]), true
	})
	nativeMethod(c, "hashCode", "()I", func(interp *Interpreter, args []Value) (Value, bool) {
		s := interp.Strings[args[0].Ref()]
		var h int32
		for _, r := range s {
			h = 31*h + int32(r)
		}
		return VInt(h), true
	})
}

// InternString allocates a java/lang/String instance and records its
// backing text, returning the ref. Used both by ldc's CONSTANT_String
// resolution and by anything materializing a String at runtime.
func (interp *Interpreter) InternString(s string) Value {
	class := interp.Repo.MustLookupKlass("java/lang/String")
	id := interp.Heap.AllocateInstance(interp.Repo, class)
	interp.Strings[id] = s
	return VRef(id)
}

func intrinsicClass(repo *Repository, name, super string) *Class {
	c := newClass()
	c.Name = name
	c.SuperName = super
	repo.AddKlass(c)
	return c
}

func nativeMethod(c *Class, name, desc string, fn NativeFunc) {
	c.addMethod(&Method{
		Name:        name,
		Descriptor:  desc,
		AccessFlags: AccStatic | AccNative,
		OwnerClass:  c.Name,
		Native:      fn,
	})
}

func bootstrapPrintStream(repo *Repository) {
	c := intrinsicClass(repo, "java/io/PrintStream", "")
	print := func(newline bool) NativeFunc {
		return func(interp *Interpreter, args []Value) (Value, bool) {
			var s string
			if len(args) > 1 {
				s = stringifyArg(interp, args[1])
			}
			if newline {
				fmt.Fprintln(interp.Stdout, s)
			} else {
				fmt.Fprint(interp.Stdout, s)
			}
			return Value{}, false
		}
	}
	for _, desc := range []string{"(I)V", "(J)V", "(Z)V", "(C)V", "(F)V", "(D)V", "(Ljava/lang/String;)V", "(Ljava/lang/Object;)V", "()V"} {
		nativeMethod(c, "println", desc, print(true))
		nativeMethod(c, "print", desc, print(false))
	}
}

func stringifyArg(interp *Interpreter, v Value) string {
	switch v.Kind() {
	case KindObjRef:
		if v.IsNull() {
			return "null"
		}
		if s, ok := interp.Strings[v.Ref()]; ok {
			return s
		}
		return fmt.Sprintf("ref#%d", v.Ref())
	default:
		return v.String()
	}
}

func bootstrapSystem(repo *Repository) {
	c := intrinsicClass(repo, "java/lang/System", "")
	nativeMethod(c, "currentTimeMillis", "()J", func(interp *Interpreter, args []Value) (Value, bool) {
		return VLong(time.Now().UnixMilli()), true
	})
	nativeMethod(c, "nanoTime", "()J", func(interp *Interpreter, args []Value) (Value, bool) {
		return VLong(time.Now().UnixNano()), true
	})
	nativeMethod(c, "arraycopy", "(Ljava/lang/Object;ILjava/lang/Object;II)V", func(interp *Interpreter, args []Value) (Value, bool) {
		src := interp.Heap.DerefArray(args[0].Ref())
		srcPos := args[1].Int()
		dst := interp.Heap.DerefArray(args[2].Ref())
		dstPos := args[3].Int()
		length := args[4].Int()
		copy(dst.Elements[dstPos:dstPos+length], src.Elements[srcPos:srcPos+length])
		return Value{}, false
	})
}

func bootstrapMath(repo *Repository) {
	c := intrinsicClass(repo, "java/lang/Math", "")
	nativeMethod(c, "abs", "(I)I", func(interp *Interpreter, args []Value) (Value, bool) {
		n := args[0].Int()
		if n < 0 {
			n = -n
		}
		return VInt(n), true
	})
	nativeMethod(c, "abs", "(J)J", func(interp *Interpreter, args []Value) (Value, bool) {
		n := args[0].Long()
		if n < 0 {
			n = -n
		}
		return VLong(n), true
	})
	nativeMethod(c, "max", "(II)I", func(interp *Interpreter, args []Value) (Value, bool) {
		a, b := args[0].Int(), args[1].Int()
		if a > b {
			return VInt(a), true
		}
		return VInt(b), true
	})
	nativeMethod(c, "min", "(II)I", func(interp *Interpreter, args []Value) (Value, bool) {
		a, b := args[0].Int(), args[1].Int()
		if a < b {
			return VInt(a), true
		}
		return VInt(b), true
	})
	nativeMethod(c, "max", "(JJ)J", func(interp *Interpreter, args []Value) (Value, bool) {
		a, b := args[0].Long(), args[1].Long()
		if a > b {
			return VLong(a), true
		}
		return VLong(b), true
	})
	nativeMethod(c, "min", "(JJ)J", func(interp *Interpreter, args []Value) (Value, bool) {
		a, b := args[0].Long(), args[1].Long()
		if a < b {
			return VLong(a), true
		}
		return VLong(b), true
	})
	nativeMethod(c, "sqrt", "(D)D", func(interp *Interpreter, args []Value) (Value, bool) {
		return VDouble(math.Sqrt(args[0].Double())), true
	})
}

// bootstrapExceptions installs the handful of runtime-exception classes
// the dispatcher itself throws (divide-by-zero, null deref, bad array
// index) so those conditions are catchable program exceptions instead of
// always being fatal (§ Error Handling: "promotes a would-be fatal error
// into a catchable exception when the intrinsic class is present").
func bootstrapExceptions(repo *Repository) {
	intrinsicClass(repo, "java/lang/Throwable", "")
	intrinsicClass(repo, "java/lang/Exception", "java/lang/Throwable")
	intrinsicClass(repo, "java/lang/RuntimeException", "java/lang/Exception")
	intrinsicClass(repo, "java/lang/ArithmeticException", "java/lang/RuntimeException")
	intrinsicClass(repo, "java/lang/NullPointerException", "java/lang/RuntimeException")
	intrinsicClass(repo, "java/lang/ArrayIndexOutOfBoundsException", "java/lang/RuntimeException")
	intrinsicClass(repo, "java/lang/ClassCastException", "java/lang/RuntimeException")
	RelinkSupers(repo)
}

// ThrowIntrinsic allocates an instance of className on interp's heap and
// returns its ref, for use by opcodes that raise a built-in exception
// instead of failing fatally outright.
func (interp *Interpreter) ThrowIntrinsic(className string) Value {
	class, ok := interp.Repo.LookupKlass(className)
	if !ok {
		panic(FatalErrorf("unmatched program exception: %s", className))
	}
	id := interp.Heap.AllocateInstance(interp.Repo, class)
	return VRef(id)
}
