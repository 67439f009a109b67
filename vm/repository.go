package vm

// Repository owns every loaded Class by value-index. Names resolve to an
// index, never to a pointer: re-loading a class under a name already
// present (last write wins) only rebinds the name->id entry, it never
// mutates or invalidates a Class another id still points at. This
// sidesteps the aliasing bug in the source this system was distilled
// from, where handing out a reference into a map after moving the value
// it pointed to left stale borrows around.
type Repository struct {
	classes []*Class
	byName  map[string]int
}

func NewRepository() *Repository {
	return &Repository{byName: map[string]int{}}
}

// AddKlass assigns the next id (ids start at 1; 0 is reserved so a zero
// Class.SuperID/ID is recognizably "absent") and records it under the
// class's name, overwriting any previous id that name mapped to.
func (r *Repository) AddKlass(c *Class) int {
	id := len(r.classes) + 1
	c.ID = id
	r.classes = append(r.classes, c)
	r.byName[c.Name] = id
	return id
}

func (r *Repository) LookupKlass(name string) (*Class, bool) {
	id, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.classes[id-1], true
}

func (r *Repository) LookupKlassByID(id int) (*Class, bool) {
	if id <= 0 || id > len(r.classes) {
		return nil, false
	}
	return r.classes[id-1], true
}

func (r *Repository) MustLookupKlass(name string) *Class {
	c, ok := r.LookupKlass(name)
	if !ok {
		panic(FatalErrorf("no such class: %s", name))
	}
	return c
}

// LookupField walks the super chain starting at className, returning the
// first class that declares fieldName.
func (r *Repository) LookupField(className, fieldName string) (*Class, *Field, bool) {
	for cur, ok := r.LookupKlass(className); ok; cur, ok = r.LookupKlassByID(cur.SuperID) {
		if f, ok := cur.findField(fieldName); ok {
			return cur, f, true
		}
		if cur.SuperID <= 0 {
			break
		}
	}
	return nil, nil, false
}

// LookupMethodExact resolves a method against exactly the named class,
// without walking the super chain (used for invokespecial/invokestatic,
// which bind statically to the referenced class).
func (r *Repository) LookupMethodExact(className, name, desc string) (*Class, *Method, bool) {
	cur, ok := r.LookupKlass(className)
	if !ok {
		return nil, nil, false
	}
	if m, ok := cur.findMethod(name, desc); ok {
		return cur, m, true
	}
	return nil, nil, false
}

// LookupMethodVirtual resolves a method starting from the receiver's
// actual runtime class and walking up the super chain, so the
// most-derived override of the referenced name:desc wins (used for
// invokevirtual/invokeinterface).
func (r *Repository) LookupMethodVirtual(receiverClassName, name, desc string) (*Class, *Method, bool) {
	for cur, ok := r.LookupKlass(receiverClassName); ok; {
		if m, ok := cur.findMethod(name, desc); ok {
			return cur, m, true
		}
		if cur.SuperID <= 0 {
			break
		}
		cur, ok = r.LookupKlassByID(cur.SuperID)
		if !ok {
			break
		}
	}
	return nil, nil, false
}

// resolveLayout assigns instance field offsets for c, walking the super
// chain so inherited fields occupy the lower offsets and recursing to
// resolve an unresolved super first. Safe to call repeatedly; a resolved
// class is a no-op. Classes are resolved lazily (on first allocation)
// rather than at load time so load order never matters.
func (r *Repository) resolveLayout(c *Class) {
	if c.resolved {
		return
	}
	base := 0
	if c.SuperID > 0 {
		super, ok := r.LookupKlassByID(c.SuperID)
		if ok {
			r.resolveLayout(super)
			base = super.InstanceSlots
		}
	}
	next := base
	for _, f := range c.Fields {
		if f.Static {
			continue
		}
		f.Offset = next
		next++
	}
	c.InstanceSlots = next
	c.resolved = true
}

// instanceFieldsOf returns every non-static field of c and its
// superclasses in offset order, so index i of the result describes the
// field living at instance slot i. Used to zero a freshly allocated
// instance by each field's own descriptor rather than a single assumed
// kind.
func (r *Repository) instanceFieldsOf(c *Class) []*Field {
	var out []*Field
	if c.SuperID > 0 {
		if super, ok := r.LookupKlassByID(c.SuperID); ok {
			out = append(out, r.instanceFieldsOf(super)...)
		}
	}
	for _, f := range c.Fields {
		if !f.Static {
			out = append(out, f)
		}
	}
	return out
}

// IsSubclassOf reports whether className is classOrSuper itself, or
// inherits from it transitively. Backs instanceof/checkcast.
func (r *Repository) IsSubclassOf(className, classOrSuper string) bool {
	for cur, ok := r.LookupKlass(className); ok; {
		if cur.Name == classOrSuper {
			return true
		}
		if cur.SuperID <= 0 {
			return false
		}
		cur, ok = r.LookupKlassByID(cur.SuperID)
	}
	return false
}
