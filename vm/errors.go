package vm

import "fmt"

// FatalError reports a broken engine invariant: stack underflow, an
// operand-type mismatch, a malformed constant pool reference, a missing
// class/method/field, a local-variable-table index out of range, or code
// falling off the end of a method. These are never recoverable from
// bytecode's point of view (there is no verifier to have prevented them
// in the first place) and always terminate the run.
//
// This is distinct from a thrown object reference, which unwinds frames
// through the exception table; if no handler matches it, RunMain reports
// it as a plain "uncaught exception" error rather than a FatalError.
type FatalError struct {
	Msg    string
	Class  string
	Method string
	PC     int
	Opcode string
}

func (e *FatalError) Error() string {
	where := ""
	if e.Class != "" {
		where = fmt.Sprintf(" in %s.%s@%d", e.Class, e.Method, e.PC)
		if e.Opcode != "" {
			where += fmt.Sprintf(" (%s)", e.Opcode)
		}
	}
	return e.Msg + where
}

func FatalErrorf(format string, args ...any) *FatalError {
	return &FatalError{Msg: fmt.Sprintf(format, args...)}
}

// WithLocation annotates a FatalError with the frame it occurred in,
// returning the same error so call sites can `panic(err.WithLocation(...))`.
func (e *FatalError) WithLocation(class, method string, pc int, opcode string) *FatalError {
	e.Class = class
	e.Method = method
	e.PC = pc
	e.Opcode = opcode
	return e
}
