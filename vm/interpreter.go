package vm

import "io"

// thrownValue is the panic payload used to unwind frames when bytecode
// throws an object reference (athrow, or an intrinsic like integer
// division by zero). It is distinct from FatalError so the per-frame
// recover in tryRun never mistakes a broken engine invariant for a
// catchable program exception.
type thrownValue struct{ v Value }

// Interpreter holds everything execution needs that outlives a single
// frame: the class repository, the heap, interned string contents (so
// println can render a java/lang/String instance without a full String
// class body), and the stack of active frames.
type Interpreter struct {
	Repo    *Repository
	Heap    *Heap
	Strings map[uint64]string
	Stdout  io.Writer

	Debug       bool
	TraceMethod string

	callStack []*Frame
}

func NewInterpreter(repo *Repository, heap *Heap, stdout io.Writer) *Interpreter {
	return &Interpreter{
		Repo:    repo,
		Heap:    heap,
		Strings: map[uint64]string{},
		Stdout:  stdout,
	}
}

// Invoke runs method on class with args already bound to parameter slots
// 0.., returning its return value (if any). Native methods short-circuit
// straight to their Go implementation; bytecode methods get a fresh
// Frame pushed onto the call stack for the duration of the call.
func (interp *Interpreter) Invoke(class *Class, method *Method, args []Value) (Value, bool) {
	if method.IsNative() {
		return method.Native(interp, args)
	}
	if method.Code == nil {
		panic(FatalErrorf("method has no code: %s", FQNameDesc(class.Name, method.Name, method.Descriptor)))
	}

	f := NewFrame(class, method)
	for slot, a := range args {
		f.Locals.Set(slot, a)
	}

	interp.callStack = append(interp.callStack, f)
	defer func() { interp.callStack = interp.callStack[:len(interp.callStack)-1] }()

	if interp.Debug && method.Name == interp.TraceMethod {
		Logger.Debugw("enter", "method", FQNameDesc(class.Name, method.Name, method.Descriptor))
	}

	return interp.runFrame(f)
}

func (interp *Interpreter) runFrame(f *Frame) (Value, bool) {
	for {
		returned, rv, hasRet := interp.tryRun(f)
		if returned {
			return rv, hasRet
		}
		// An exception was caught: f.PC now points at the handler and
		// the stack was reset to hold just the exception value. Resume.
	}
}

// tryRun executes instructions until the frame returns (done=true) or an
// uncaught-within-this-frame thrownValue bubbles past its recover, having
// found and jumped to a matching exception handler (done=false, loop in
// runFrame resumes at the handler PC). A thrownValue with no matching
// handler, or any other panic (FatalError), re-panics to the caller.
func (interp *Interpreter) tryRun(f *Frame) (done bool, retVal Value, hasRet bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		tv, ok := r.(thrownValue)
		if !ok {
			if fe, isFatal := r.(*FatalError); isFatal && fe.Class == "" {
				fe.WithLocation(f.Class.Name, f.Method.Name, f.PC, opcodeName(f.currentOp()))
			}
			panic(r)
		}
		excClass := interp.Heap.DerefInstance(tv.v.Ref()).ClassName
		for _, et := range f.Method.ExceptionTable {
			if f.PC >= et.StartPC && f.PC < et.EndPC &&
				(et.CatchType == "" || interp.Repo.IsSubclassOf(excClass, et.CatchType)) {
				f.Stack = NewEvalStack(f.Method.MaxStack)
				f.Stack.Push(tv.v)
				f.PC = et.HandlerPC
				done = false
				return
			}
		}
		panic(r)
	}()

	for {
		if f.PC < 0 || f.PC >= len(f.Method.Code) {
			panic(FatalErrorf("fell off the end of method code").
				WithLocation(f.Class.Name, f.Method.Name, f.PC, ""))
		}
		d, rv, hr := interp.execOne(f)
		if d {
			return true, rv, hr
		}
	}
}

// Throw raises an object reference as a program exception, unwinding
// frames via thrownValue until a handler matches or the call stack is
// exhausted (at which point the top-level runner reports it as an
// uncaught exception).
func (interp *Interpreter) Throw(ref Value) {
	panic(thrownValue{ref})
}

func (interp *Interpreter) fatal(f *Frame, opcode string, format string, args ...any) {
	panic(FatalErrorf(format, args...).WithLocation(f.Class.Name, f.Method.Name, f.PC, opcode))
}
