package vm

// execInvoke handles the four supported invoke opcodes. invokeinterface
// is treated as invokevirtual (no interface method table is modeled;
// spec allows this since this engine never verifies interface
// conformance anyway). invokedynamic has no call-site resolution here and
// is rejected, matching jsr/ret's "may be rejected" allowance.
func execInvoke(interp *Interpreter, f *Frame, op uint8) int {
	switch op {
	case INVOKESTATIC:
		className, name, desc := f.Class.CP.GetMethodref(f.u2(1))
		class, method, ok := interp.Repo.LookupMethodExact(className, name, desc)
		if !ok {
			interp.fatal(f, "invokestatic", "no such method: %s", FQNameDesc(className, name, desc))
		}
		args := popArgs(f, desc, false)
		invokeAndPush(interp, f, class, method, desc, args)
		return 3

	case INVOKESPECIAL:
		className, name, desc := f.Class.CP.GetMethodref(f.u2(1))
		class, method, ok := interp.Repo.LookupMethodExact(className, name, desc)
		if !ok {
			interp.fatal(f, "invokespecial", "no such method: %s", FQNameDesc(className, name, desc))
		}
		args := popArgs(f, desc, true)
		invokeAndPush(interp, f, class, method, desc, args)
		return 3

	case INVOKEVIRTUAL, INVOKEINTERFACE:
		className, name, desc := f.Class.CP.GetMethodref(f.u2(1))
		args := popArgs(f, desc, true)
		receiver := args[0]
		if receiver.IsNull() {
			interp.Throw(interp.ThrowIntrinsic("java/lang/NullPointerException"))
		}
		actualClassName := interp.Heap.DerefInstance(receiver.Ref()).ClassName
		class, method, ok := interp.Repo.LookupMethodVirtual(actualClassName, name, desc)
		if !ok {
			class, method, ok = interp.Repo.LookupMethodExact(className, name, desc)
		}
		if !ok {
			interp.fatal(f, "invokevirtual", "no such method: %s", FQNameDesc(actualClassName, name, desc))
		}
		invokeAndPush(interp, f, class, method, desc, args)
		if op == INVOKEINTERFACE {
			return 5 // count + 0 padding byte, per the class-file encoding
		}
		return 3

	case INVOKEDYNAMIC:
		interp.fatal(f, "invokedynamic", "invokedynamic call sites are not supported")
		return 5

	default:
		interp.fatal(f, "invoke", "unreachable invoke opcode 0x%02X", op)
		return 0
	}
}

// popArgs pops a call's arguments off the stack (rightmost first) and
// returns them in declaration order. When withReceiver is true, the
// receiver (an ObjRef), which sits below the declared arguments, is popped
// last and returned as element 0.
func popArgs(f *Frame, desc string, withReceiver bool) []Value {
	kinds := ParseParamKinds(desc)
	n := len(kinds)
	if withReceiver {
		n++
	}
	args := make([]Value, n)
	for i := len(kinds) - 1; i >= 0; i-- {
		idx := i
		if withReceiver {
			idx++
		}
		args[idx] = f.Stack.Pop()
	}
	if withReceiver {
		args[0] = f.Stack.Pop()
	}
	return args
}

func invokeAndPush(interp *Interpreter, f *Frame, class *Class, method *Method, desc string, args []Value) {
	ret, hasRet := interp.Invoke(class, method, args)
	if hasRet {
		f.Stack.Push(ret)
	}
}
