package vm

// execArray handles array creation, length, and the typed element
// load/store opcodes.
func execArray(interp *Interpreter, f *Frame, op uint8) int {
	switch op {
	case NEWARRAY:
		atype := f.u1(1)
		length := f.Stack.Pop().Int()
		id := interp.Heap.AllocateArray(primitiveArrayKind(interp, f, atype), "", length)
		f.Stack.Push(VRef(id))
		return 2

	case ANEWARRAY:
		className := f.Class.resolveClassRef(f.u2(1))
		length := f.Stack.Pop().Int()
		id := interp.Heap.AllocateArray(KindObjRef, className, length)
		f.Stack.Push(VRef(id))
		return 3

	case ARRAYLENGTH:
		ref := f.Stack.Pop()
		if ref.IsNull() {
			interp.Throw(interp.ThrowIntrinsic("java/lang/NullPointerException"))
		}
		arr := interp.Heap.DerefArray(ref.Ref())
		f.Stack.Push(VInt(int32(len(arr.Elements))))
		return 1

	case IALOAD, LALOAD, FALOAD, DALOAD, AALOAD, BALOAD, CALOAD, SALOAD:
		idx := f.Stack.Pop().Int()
		ref := f.Stack.Pop()
		if ref.IsNull() {
			interp.Throw(interp.ThrowIntrinsic("java/lang/NullPointerException"))
		}
		arr := interp.Heap.DerefArray(ref.Ref())
		if idx < 0 || int(idx) >= len(arr.Elements) {
			interp.Throw(interp.ThrowIntrinsic("java/lang/ArrayIndexOutOfBoundsException"))
		}
		f.Stack.Push(arr.Elements[idx])
		return 1

	case IASTORE, LASTORE, FASTORE, DASTORE, AASTORE, BASTORE, CASTORE, SASTORE:
		val := f.Stack.Pop()
		idx := f.Stack.Pop().Int()
		ref := f.Stack.Pop()
		if ref.IsNull() {
			interp.Throw(interp.ThrowIntrinsic("java/lang/NullPointerException"))
		}
		arr := interp.Heap.DerefArray(ref.Ref())
		if idx < 0 || int(idx) >= len(arr.Elements) {
			interp.Throw(interp.ThrowIntrinsic("java/lang/ArrayIndexOutOfBoundsException"))
		}
		arr.Elements[idx] = val
		return 1

	default:
		interp.fatal(f, "array", "unreachable array opcode 0x%02X", op)
		return 0
	}
}

func primitiveArrayKind(interp *Interpreter, f *Frame, atype uint8) Kind {
	switch atype {
	case ATYPE_BOOLEAN:
		return KindBool
	case ATYPE_CHAR:
		return KindChar
	case ATYPE_FLOAT:
		return KindFloat
	case ATYPE_DOUBLE:
		return KindDouble
	case ATYPE_BYTE:
		return KindByte
	case ATYPE_SHORT:
		return KindShort
	case ATYPE_INT:
		return KindInt
	case ATYPE_LONG:
		return KindLong
	default:
		interp.fatal(f, "newarray", "unknown primitive array type %d", atype)
		return KindInt
	}
}
