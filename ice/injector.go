package ice

import (
	"reflect"
	"unsafe"
)

// InjectTag marks struct fields the container fills after construction.
// The tag value is ignored.
const InjectTag = "inject"

type member struct {
	name  string
	index []int
	typ   reflect.Type
}

// an injectPlan lists what to fill for one pointer-to-struct type
type injectPlan struct {
	fields  []member
	setters []*setter
}

type injector struct {
	c     *Container
	plans map[reflect.Type]*injectPlan
}

func newInjector(c *Container) *injector {
	return &injector{c: c, plans: make(map[reflect.Type]*injectPlan)}
}

// injectMembers fills the tagged fields of v and calls its declared setters.
// Anything other than a non-nil pointer to a struct is left alone.
func (in *injector) injectMembers(v reflect.Value) {
	if v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return
	}
	p := in.plan(v.Type())
	target := v.Elem()
	for _, m := range p.fields {
		setField(target.FieldByIndex(m.index), in.c.resolver.resolve(m.typ))
	}
	for _, s := range p.setters {
		s.call(v, in.c.resolver.resolve(s.param))
	}
}

func (in *injector) plan(t reflect.Type) *injectPlan {
	if p, ok := in.plans[t]; ok {
		return p
	}
	p := &injectPlan{}
	collectFields(t.Elem(), nil, &p.fields)
	if d := in.c.catalog.lookup(t); d != nil {
		p.setters = d.setters
	}
	in.plans[t] = p
	return p
}

// forget drops the cached plan of t, after its descriptor changed.
func (in *injector) forget(t reflect.Type) {
	delete(in.plans, t)
}

func collectFields(st reflect.Type, prefix []int, out *[]member) {
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		index := append(append([]int(nil), prefix...), i)
		if _, ok := f.Tag.Lookup(InjectTag); ok {
			*out = append(*out, member{name: f.Name, index: index, typ: f.Type})
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			collectFields(f.Type, index, out)
		}
	}
}

// setField sets f, reaching unexported fields through their address.
func setField(f, v reflect.Value) {
	if !f.CanSet() {
		f = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
	}
	f.Set(v)
}
