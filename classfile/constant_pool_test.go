package classfile

import "testing"

// buildTestPool hand-assembles a small constant pool mirroring what a
// real class file would contain for a single Methodref:
// "Thing.doStuff:()I" plus its transitive Utf8/Class/NameAndType entries.
func buildTestPool() ConstantPool {
	cp := make(ConstantPool, 7)
	cp[1] = &ConstantUtf8Info{tag: CONSTANT_Utf8, Value: "Thing"}
	cp[2] = &ConstantClassInfo{tag: CONSTANT_Class, NameIndex: 1}
	cp[3] = &ConstantUtf8Info{tag: CONSTANT_Utf8, Value: "doStuff"}
	cp[4] = &ConstantUtf8Info{tag: CONSTANT_Utf8, Value: "()I"}
	cp[5] = &ConstantNameAndTypeInfo{tag: CONSTANT_NameAndType, NameIndex: 3, DescriptorIndex: 4}
	cp[6] = &ConstantMethodrefInfo{tag: CONSTANT_Methodref, ClassIndex: 2, NameAndTypeIndex: 5}
	return cp
}

func TestCPAsStringMethodref(t *testing.T) {
	cp := buildTestPool()
	got := cp.CPAsString(6)
	want := "Thing.doStuff:()I"
	if got != want {
		t.Fatalf("CPAsString(Methodref) = %q, want %q", got, want)
	}
}

func TestCPAsStringClass(t *testing.T) {
	cp := buildTestPool()
	if got := cp.CPAsString(2); got != "Thing" {
		t.Fatalf("CPAsString(Class) = %q, want Thing", got)
	}
}

func TestGetMethodrefResolvesAllThreeParts(t *testing.T) {
	cp := buildTestPool()
	class, name, desc := cp.GetMethodref(6)
	if class != "Thing" || name != "doStuff" || desc != "()I" {
		t.Fatalf("GetMethodref = (%q,%q,%q), want (Thing,doStuff,()I)", class, name, desc)
	}
}
