package vm

import "fmt"

const (
	entryDescriptor  = "([Ljava/lang/String;)I"
	entryMethodName  = "main2"
	fallbackDesc     = "([Ljava/lang/String;)V"
	fallbackMethod   = "main"
)

// RunMain locates the entry point on className — preferring
// "main2:([Ljava/lang/String;)I" and falling back to the conventional
// void "main:([Ljava/lang/String;)V" (exit code 0 on normal return) — and
// executes it with argv materialized as a String[].
func RunMain(interp *Interpreter, className string, argv []string) (exitCode int32, err error) {
	class, ok := interp.Repo.LookupKlass(className)
	if !ok {
		return 0, fmt.Errorf("entry class not found: %s", className)
	}

	method, ok := class.findMethod(entryMethodName, entryDescriptor)
	wantsInt := true
	if !ok {
		method, ok = class.findMethod(fallbackMethod, fallbackDesc)
		wantsInt = false
	}
	if !ok {
		return 0, fmt.Errorf("%s defines neither %s:%s nor %s:%s", className,
			entryMethodName, entryDescriptor, fallbackMethod, fallbackDesc)
	}

	argsRef := interp.BuildStringArray(argv)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch e := r.(type) {
		case thrownValue:
			excClass := interp.Heap.DerefInstance(e.v.Ref()).ClassName
			err = fmt.Errorf("uncaught exception: %s", excClass)
			exitCode = 1
		case *FatalError:
			err = e
			exitCode = 1
		default:
			panic(r)
		}
	}()

	ret, hasRet := interp.Invoke(class, method, []Value{argsRef})
	if !wantsInt || !hasRet {
		return 0, nil
	}
	return ret.Int(), nil
}

// BuildStringArray allocates a String[] populated with argv, for the
// entry point's parameter and for the interactive debugger to build one
// from the CLI's own program arguments.
func (interp *Interpreter) BuildStringArray(argv []string) Value {
	id := interp.Heap.AllocateArray(KindObjRef, "java/lang/String", int32(len(argv)))
	arr := interp.Heap.DerefArray(id)
	for i, s := range argv {
		arr.Elements[i] = interp.InternString(s)
	}
	return VRef(id)
}
