package vm

import "ovm/classfile"

// BuildClass converts a parsed classfile.ClassFile into the Class domain
// record the repository and dispatcher operate on: it resolves field and
// method names/descriptors out of the constant pool once up front so the
// rest of the engine never has to chase a constant-pool index again for
// something it looked up by name.
func BuildClass(cf *classfile.ClassFile) *Class {
	c := newClass()
	c.Name = cf.ClassName()
	c.SuperName = cf.SuperClassName()
	c.AccessFlags = cf.AccessFlags
	c.CP = cf.ConstantPool

	for _, fi := range cf.Fields {
		f := &Field{
			Name:        fi.Name(cf.ConstantPool),
			Descriptor:  fi.Descriptor(cf.ConstantPool),
			AccessFlags: fi.AccessFlags,
			Static:      fi.AccessFlags&AccStatic != 0,
		}
		if f.Static {
			f.Offset = -1
			f.StaticValue = zeroValueForDescriptor(f.Descriptor)
		}
		c.addField(f)
	}

	for _, mi := range cf.Methods {
		m := &Method{
			Name:        mi.Name(cf.ConstantPool),
			Descriptor:  mi.Descriptor(cf.ConstantPool),
			AccessFlags: mi.AccessFlags,
			OwnerClass:  c.Name,
		}
		if code := mi.GetCodeAttribute(cf.ConstantPool); code != nil {
			m.MaxStack = int(code.MaxStack)
			m.MaxLocals = int(code.MaxLocals)
			m.Code = code.Code
			for _, et := range code.ExceptionTable {
				catch := ""
				if et.CatchType != 0 {
					catch = cf.ConstantPool.GetClassName(et.CatchType)
				}
				m.ExceptionTable = append(m.ExceptionTable, ExceptionHandler{
					StartPC:   int(et.StartPC),
					EndPC:     int(et.EndPC),
					HandlerPC: int(et.HandlerPC),
					CatchType: catch,
				})
			}
		}
		c.addMethod(m)
	}

	return c
}

// zeroValueForDescriptor gives a static field its kind-correct default
// before any <clinit>-equivalent runs (this engine has no <clinit>
// support beyond constant initializers already folded into bytecode, so
// statics simply start at their type's zero value).
func zeroValueForDescriptor(desc string) Value {
	if len(desc) == 0 {
		return DefaultValue
	}
	switch desc[0] {
	case 'Z':
		return VBool(false)
	case 'B':
		return VByte(0)
	case 'S':
		return VShort(0)
	case 'C':
		return VChar(0)
	case 'J':
		return VLong(0)
	case 'F':
		return VFloat(0)
	case 'D':
		return VDouble(0)
	case 'L', '[':
		return VNull()
	default:
		return VInt(0)
	}
}

// LoadIntoRepository builds and registers a Class for cf. It leaves the
// class's SuperID at -1; resolveLayout and the super-chain walks follow
// SuperID only, so RelinkSupers must be called once after a batch load to
// resolve each SuperName to an id.
func LoadIntoRepository(repo *Repository, cf *classfile.ClassFile) *Class {
	c := BuildClass(cf)
	repo.AddKlass(c)
	return c
}

// RelinkSupers re-resolves every class's SuperID against the repository's
// current name table. Call this after loading a batch of classes (a
// directory or zip classpath) so load order within the batch never
// matters, and again after loading the entry class's own dependencies.
func RelinkSupers(repo *Repository) {
	for _, c := range repo.classes {
		if c.SuperName == "" {
			c.SuperID = -1
			continue
		}
		if super, ok := repo.LookupKlass(c.SuperName); ok {
			c.SuperID = super.ID
		}
	}
}
