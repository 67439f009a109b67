package vm

// execObject handles field access, object creation, athrow, and the
// reference-type checks (checkcast/instanceof). monitorenter/monitorexit
// are accepted as no-ops: this engine is single-threaded (Non-goal:
// threading) so monitor acquisition has no observable effect beyond the
// stack pop javac already expects.
func execObject(interp *Interpreter, f *Frame, op uint8) int {
	switch op {
	case GETSTATIC:
		class, field := resolveField(interp, f, f.u2(1))
		_ = class
		f.Stack.Push(field.StaticValue)
		return 3
	case PUTSTATIC:
		_, field := resolveField(interp, f, f.u2(1))
		field.StaticValue = f.Stack.Pop()
		return 3
	case GETFIELD:
		field := resolveInstanceField(interp, f, f.u2(1))
		ref := f.Stack.Pop()
		if ref.IsNull() {
			interp.Throw(interp.ThrowIntrinsic("java/lang/NullPointerException"))
		}
		obj := interp.Heap.DerefInstance(ref.Ref())
		f.Stack.Push(obj.Fields[field.Offset])
		return 3
	case PUTFIELD:
		field := resolveInstanceField(interp, f, f.u2(1))
		val := f.Stack.Pop()
		ref := f.Stack.Pop()
		if ref.IsNull() {
			interp.Throw(interp.ThrowIntrinsic("java/lang/NullPointerException"))
		}
		obj := interp.Heap.DerefInstance(ref.Ref())
		obj.Fields[field.Offset] = val
		return 3

	case NEW:
		className := f.Class.resolveClassRef(f.u2(1))
		class, ok := interp.Repo.LookupKlass(className)
		if !ok {
			interp.fatal(f, "new", "no such class: %s", className)
		}
		id := interp.Heap.AllocateInstance(interp.Repo, class)
		f.Stack.Push(VRef(id))
		return 3

	case CHECKCAST:
		className := f.Class.resolveClassRef(f.u2(1))
		ref := f.Stack.Peek()
		if !ref.IsNull() {
			actual := interp.Heap.DerefInstance(ref.Ref()).ClassName
			if !interp.Repo.IsSubclassOf(actual, className) {
				interp.Throw(interp.ThrowIntrinsic("java/lang/ClassCastException"))
			}
		}
		return 3

	case INSTANCEOF:
		className := f.Class.resolveClassRef(f.u2(1))
		ref := f.Stack.Pop()
		result := false
		if !ref.IsNull() {
			actual := interp.Heap.DerefInstance(ref.Ref()).ClassName
			result = interp.Repo.IsSubclassOf(actual, className)
		}
		f.Stack.Push(VBool(result))
		return 3

	case ATHROW:
		ref := f.Stack.Pop()
		if ref.IsNull() {
			interp.Throw(interp.ThrowIntrinsic("java/lang/NullPointerException"))
		}
		interp.Throw(ref)
		return 1 // unreached: Throw panics

	case MONITORENTER, MONITOREXIT:
		f.Stack.Pop()
		return 1

	default:
		interp.fatal(f, "object", "unreachable object opcode 0x%02X", op)
		return 0
	}
}

func resolveField(interp *Interpreter, f *Frame, idx uint16) (*Class, *Field) {
	className, name, _ := f.Class.CP.GetFieldref(idx)
	class, field, ok := interp.Repo.LookupField(className, name)
	if !ok {
		interp.fatal(f, "field", "no such field: %s.%s", className, name)
	}
	return class, field
}

func resolveInstanceField(interp *Interpreter, f *Frame, idx uint16) *Field {
	_, field := resolveField(interp, f, idx)
	return field
}
