package vm

import "ovm/classfile"

// Field is a single declared field of a class: either an instance slot
// (Offset >= 0, indexing into an object's value array) or a static slot
// (Offset == -1, value lives in StaticValue).
type Field struct {
	Name       string
	Descriptor string
	AccessFlags uint16
	Static     bool
	Offset     int
	StaticValue Value
}

const (
	AccStatic = 0x0008
	AccNative = 0x0100
)

// ExceptionHandler is one row of a method's exception table: HandlerPC is
// entered when the PC is in [StartPC, EndPC) and the thrown object is an
// instance of CatchType (or CatchType is "" for catch-all / finally).
type ExceptionHandler struct {
	StartPC, EndPC, HandlerPC int
	CatchType                 string
}

// NativeFunc implements an intrinsic method body in Go instead of
// bytecode (see Bootstrap). It returns the method's return value and
// whether the descriptor is non-void.
type NativeFunc func(interp *Interpreter, args []Value) (Value, bool)

// Method is a single declared method: either bytecode-backed (Code is
// non-nil) or an intrinsic (Native is non-nil, installed by Bootstrap).
type Method struct {
	Name           string
	Descriptor     string
	AccessFlags    uint16
	OwnerClass     string
	MaxStack       int
	MaxLocals      int
	Code           []byte
	ExceptionTable []ExceptionHandler
	Native         NativeFunc
}

func (m *Method) IsStatic() bool { return m.AccessFlags&AccStatic != 0 }
func (m *Method) IsNative() bool { return m.Native != nil }

// FQNameDesc is the class-qualified "Class.Name:Desc" key used for the
// method lookup map, matching the stringification CPAsString produces for
// a Methodref constant pool entry.
func FQNameDesc(class, name, desc string) string { return class + "." + name + ":" + desc }

// Class is a loaded class or interface record. Instances are owned by a
// Repository and referenced by ID rather than by pointer so that
// re-loading a class by name (last-write-wins) never leaves a stale
// pointer dangling in another record (see Repository.AddKlass).
type Class struct {
	ID         int
	Name       string
	SuperName  string
	SuperID    int // -1 if none (java/lang/Object or a bootstrap root)
	AccessFlags uint16
	CP         classfile.ConstantPool

	Fields []*Field
	Methods []*Method

	fieldByName  map[string]*Field
	methodByKey  map[string]*Method // "Class.Name:Desc" -> method

	// InstanceSlots is the number of Value slots an instance of this
	// class occupies, including inherited fields (assigned by the
	// loader: inherited fields occupy the lower offsets).
	InstanceSlots int
	resolved      bool
}

func newClass() *Class {
	return &Class{
		SuperID:     -1,
		fieldByName: map[string]*Field{},
		methodByKey: map[string]*Method{},
	}
}

func (c *Class) addField(f *Field) {
	c.Fields = append(c.Fields, f)
	c.fieldByName[f.Name] = f
}

func (c *Class) addMethod(m *Method) {
	c.Methods = append(c.Methods, m)
	c.methodByKey[FQNameDesc(c.Name, m.Name, m.Descriptor)] = m
}

func (c *Class) findMethod(name, desc string) (*Method, bool) {
	m, ok := c.methodByKey[FQNameDesc(c.Name, name, desc)]
	return m, ok
}

// FindMethod exposes findMethod for callers outside the package (the CLI's
// interactive debugger needs to locate main2 without going through RunMain).
func (c *Class) FindMethod(name, desc string) (*Method, bool) { return c.findMethod(name, desc) }

func (c *Class) findField(name string) (*Field, bool) {
	f, ok := c.fieldByName[name]
	return f, ok
}
