package vm

import "ovm/classfile"

// execConst handles opcodes that push a constant onto the stack: the
// iconst/lconst/fconst/dconst family, bipush/sipush, and the three ldc
// variants that pull a literal out of the constant pool.
func execConst(interp *Interpreter, f *Frame, op uint8) int {
	switch op {
	case NOP:
		return 1
	case ACONST_NULL:
		f.Stack.Push(VNull())
		return 1
	case ICONST_M1, ICONST_0, ICONST_1, ICONST_2, ICONST_3, ICONST_4, ICONST_5:
		f.Stack.Push(VInt(int32(op) - int32(ICONST_0)))
		return 1
	case LCONST_0, LCONST_1:
		f.Stack.Push(VLong(int64(op) - int64(LCONST_0)))
		return 1
	case FCONST_0, FCONST_1, FCONST_2:
		f.Stack.Push(VFloat(float32(op) - float32(FCONST_0)))
		return 1
	case DCONST_0, DCONST_1:
		f.Stack.Push(VDouble(float64(op) - float64(DCONST_0)))
		return 1
	case BIPUSH:
		f.Stack.Push(VInt(int32(f.s1(1))))
		return 2
	case SIPUSH:
		f.Stack.Push(VInt(int32(f.s2(1))))
		return 3
	case LDC:
		pushConstant(interp, f, uint16(f.u1(1)))
		return 2
	case LDC_W:
		pushConstant(interp, f, f.u2(1))
		return 3
	case LDC2_W:
		pushConstant(interp, f, f.u2(1))
		return 3
	default:
		interp.fatal(f, "const", "unreachable const opcode 0x%02X", op)
		return 0
	}
}

func pushConstant(interp *Interpreter, f *Frame, idx uint16) {
	switch e := f.Class.CP[idx].(type) {
	case *classfile.ConstantIntegerInfo:
		f.Stack.Push(VInt(e.Value))
	case *classfile.ConstantFloatInfo:
		f.Stack.Push(VFloat(float32FromBits(e.Value)))
	case *classfile.ConstantLongInfo:
		f.Stack.Push(VLong(e.Value))
	case *classfile.ConstantDoubleInfo:
		f.Stack.Push(VDouble(float64FromBits(e.Value)))
	case *classfile.ConstantStringInfo:
		s := f.Class.CP.GetUtf8(e.StringIndex)
		f.Stack.Push(interp.InternString(s))
	default:
		interp.fatal(f, "ldc", "constant pool index %d is not loadable", idx)
	}
}
