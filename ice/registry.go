package ice

import (
	"reflect"
	"sort"
)

// Factory produces a value for a binding. It is invoked on every resolution of
// the binding's key and receives the container that is resolving it.
type Factory func(c *Container) (interface{}, error)

// BindingKind says how a binding produces its value.
type BindingKind int

const (
	KindSingleton BindingKind = iota
	KindFactory
)

func (k BindingKind) String() string {
	switch k {
	case KindSingleton:
		return "singleton"
	case KindFactory:
		return "factory"
	}
	return "unknown"
}

// a binding is shared by every key it was fanned out to
type binding struct {
	kind     BindingKind
	typ      reflect.Type
	instance interface{}
	factory  Factory
	seq      int
	refs     int
}

// BindingInfo is a snapshot of one key of the registry.
type BindingInfo struct {
	Key            reflect.Type
	Kind           BindingKind
	Implementation reflect.Type
	Sequence       int
}

// registry maps types to bindings. A binding registered for a type is also
// registered under every catalogued interface the type implements.
//
// Go has no way to list the interfaces a type implements, so interfaces are
// catalogued as the container sees them: binding keys, resolution requests,
// constructor parameters, injected members and collection elements.
type registry struct {
	bindings   map[reflect.Type]*binding
	live       []*binding
	interfaces []reflect.Type
	catalogued map[reflect.Type]bool
	seq        int
}

func newRegistry() *registry {
	r := &registry{}
	r.clear()
	return r
}

func (r *registry) registerFactory(t reflect.Type, f Factory) *binding {
	return r.register(&binding{kind: KindFactory, typ: t, factory: f})
}

func (r *registry) registerSingleton(t reflect.Type, instance interface{}) *binding {
	return r.register(&binding{kind: KindSingleton, typ: t, instance: instance})
}

func (r *registry) register(b *binding) *binding {
	r.seq++
	b.seq = r.seq
	r.live = append(r.live, b)
	r.addInterface(b.typ)
	r.put(b.typ, b)
	for _, iface := range r.interfaces {
		if iface != b.typ && b.typ.Implements(iface) {
			r.put(iface, b)
		}
	}
	return b
}

func (r *registry) put(key reflect.Type, b *binding) {
	if old, ok := r.bindings[key]; ok {
		if old == b {
			return
		}
		old.refs--
		if old.refs == 0 {
			r.drop(old)
		}
	}
	r.bindings[key] = b
	b.refs++
}

func (r *registry) drop(b *binding) {
	for i, l := range r.live {
		if l == b {
			r.live = append(r.live[:i], r.live[i+1:]...)
			return
		}
	}
}

// notice catalogues t if it is an interface seen for the first time, and
// mirrors the most recent live binding implementing it.
func (r *registry) notice(t reflect.Type) {
	if !r.addInterface(t) {
		return
	}
	if _, ok := r.bindings[t]; ok {
		return
	}
	for i := len(r.live) - 1; i >= 0; i-- {
		b := r.live[i]
		if b.typ != t && b.typ.Implements(t) {
			r.put(t, b)
			return
		}
	}
}

func (r *registry) addInterface(t reflect.Type) bool {
	if t == nil || t.Kind() != reflect.Interface || t.NumMethod() == 0 || r.catalogued[t] {
		return false
	}
	r.catalogued[t] = true
	r.interfaces = append(r.interfaces, t)
	return true
}

func (r *registry) lookup(t reflect.Type) (*binding, bool) {
	r.notice(t)
	b, ok := r.bindings[t]
	return b, ok
}

func (r *registry) isRegistered(t reflect.Type) bool {
	_, ok := r.lookup(t)
	return ok
}

// assignableTo returns the live bindings whose type is assignable to elem, in
// registration order. A binding reachable under several keys appears once.
func (r *registry) assignableTo(elem reflect.Type) []*binding {
	r.notice(elem)
	var out []*binding
	for _, b := range r.live {
		if b.typ.AssignableTo(elem) {
			out = append(out, b)
		}
	}
	return out
}

func (r *registry) clear() {
	r.bindings = make(map[reflect.Type]*binding)
	r.live = nil
	r.interfaces = nil
	r.catalogued = make(map[reflect.Type]bool)
	r.seq = 0
}

func (r *registry) entries() []BindingInfo {
	out := make([]BindingInfo, 0, len(r.bindings))
	for k, b := range r.bindings {
		out = append(out, BindingInfo{Key: k, Kind: b.kind, Implementation: b.typ, Sequence: b.seq})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sequence != out[j].Sequence {
			return out[i].Sequence < out[j].Sequence
		}
		return out[i].Key.String() < out[j].Key.String()
	})
	return out
}
