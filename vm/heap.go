package vm

import "sync/atomic"

// Instance is a heap-allocated object: an ordered slice of field Values
// indexed the same way its Class assigns offsets (inherited fields occupy
// the lower indices).
type Instance struct {
	ClassID   int
	ClassName string
	Fields    []Value
}

// Array is a heap-allocated array. ElemKind is the Kind every element
// carries (arrays are homogeneous); ElemClass records the element class of
// reference-typed arrays. Array stores do not check element assignability
// against ElemClass.
type Array struct {
	ElemKind  Kind
	ElemClass string
	Elements  []Value
}

// Heap is allocate-only: spec.md's Non-goals explicitly exclude garbage
// collection, so there is no Free/GC here, only monotonic allocation.
// Object ids are opaque uint64s; 0 is reserved for null (see VNull).
type Heap struct {
	instances map[uint64]*Instance
	arrays    map[uint64]*Array
	nextID    atomic.Uint64
}

func NewHeap() *Heap {
	h := &Heap{
		instances: map[uint64]*Instance{},
		arrays:    map[uint64]*Array{},
	}
	h.nextID.Store(1)
	return h
}

func (h *Heap) AllocateInstance(repo *Repository, class *Class) uint64 {
	repo.resolveLayout(class)
	id := h.nextID.Add(1) - 1
	fields := make([]Value, class.InstanceSlots)
	for _, f := range repo.instanceFieldsOf(class) {
		fields[f.Offset] = zeroValueForDescriptor(f.Descriptor)
	}
	h.instances[id] = &Instance{ClassID: class.ID, ClassName: class.Name, Fields: fields}
	return id
}

func (h *Heap) AllocateArray(elemKind Kind, elemClass string, length int32) uint64 {
	if length < 0 {
		panic(FatalErrorf("negative array length: %d", length))
	}
	id := h.nextID.Add(1) - 1
	elements := make([]Value, length)
	def := DefaultValue
	if elemKind != KindInt {
		def = zeroOf(elemKind)
	}
	for i := range elements {
		elements[i] = def
	}
	h.arrays[id] = &Array{ElemKind: elemKind, ElemClass: elemClass, Elements: elements}
	return id
}

func zeroOf(k Kind) Value {
	switch k {
	case KindBool:
		return VBool(false)
	case KindByte:
		return VByte(0)
	case KindShort:
		return VShort(0)
	case KindChar:
		return VChar(0)
	case KindLong:
		return VLong(0)
	case KindFloat:
		return VFloat(0)
	case KindDouble:
		return VDouble(0)
	case KindObjRef:
		return VNull()
	default:
		return VInt(0)
	}
}

func (h *Heap) DerefInstance(id uint64) *Instance {
	if id == 0 {
		panic(FatalErrorf("null pointer dereference"))
	}
	obj, ok := h.instances[id]
	if !ok {
		panic(FatalErrorf("dangling object reference: %d", id))
	}
	return obj
}

func (h *Heap) DerefArray(id uint64) *Array {
	if id == 0 {
		panic(FatalErrorf("null pointer dereference"))
	}
	arr, ok := h.arrays[id]
	if !ok {
		panic(FatalErrorf("dangling array reference: %d", id))
	}
	return arr
}
