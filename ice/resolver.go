package ice

import (
	"fmt"
	"reflect"
	"runtime/debug"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/IgorRikhard/GameArchitecture/common/stats"
)

type frameKind int

const (
	resolving frameKind = iota
	constructing
	invoking
	collecting
)

// what we are doing at one level of a resolution
type frame struct {
	key  reflect.Type
	kind frameKind
	b    *binding
}

// a stack is the in-order frames of a resolution
type stack []frame

// collapse drops frames that repeat the key of the frame before them.
func (s stack) collapse() stack {
	var out stack
	for _, f := range s {
		if len(out) > 0 && out[len(out)-1].key == f.key {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (s stack) String() string {
	names := make([]string, 0, len(s))
	for _, f := range s.collapse() {
		names = append(names, fmt.Sprint(f.key))
	}
	return strings.Join(names, " -> ")
}

// resolver decides how to produce a value for a type and drives the recursion.
// Its stack is shared by re-entrant calls made from factories, so cycles that
// pass through user code are caught too.
type resolver struct {
	c     *Container
	stack stack
}

func (r *resolver) resolve(t reflect.Type) reflect.Value {
	r.enter(frame{key: t, kind: resolving})
	defer r.exit()

	if elem, ok := collectionElem(t); ok {
		return r.materialize(elem, t).viewFor(t)
	}
	if b, ok := r.c.registry.lookup(t); ok {
		return valueOf(r.realize(b), t)
	}
	if !constructible(t) {
		throw(ErrUnresolvableType, t, "%v is not registered and cannot be constructed; bind it explicitly", t)
	}
	return r.construct(t)
}

// construct builds t with its greedy constructor, resolving every parameter.
func (r *resolver) construct(t reflect.Type) reflect.Value {
	r.enter(frame{key: t, kind: constructing})
	defer r.exit()

	k := r.constructorFor(t)
	args := make([]reflect.Value, len(k.params))
	for i, p := range k.params {
		args[i] = r.resolve(p)
	}
	return r.finish(k, args)
}

// constructWithArgs builds t, preferring caller-provided arguments over resolution.
func (r *resolver) constructWithArgs(t reflect.Type, provided []interface{}) reflect.Value {
	r.enter(frame{key: t, kind: constructing})
	defer r.exit()

	k := r.constructorFor(t)
	args := make([]reflect.Value, len(k.params))
	used := make([]bool, len(provided))
	for i, p := range k.params {
		for j, a := range provided {
			if used[j] || a == nil || !reflect.TypeOf(a).AssignableTo(p) {
				continue
			}
			args[i] = reflect.ValueOf(a)
			used[j] = true
			break
		}
	}
	for i, p := range k.params {
		if args[i].IsValid() {
			continue
		}
		if _, ok := collectionElem(p); !ok && valueLike(p) && !r.c.registry.isRegistered(p) {
			throw(ErrMissingRequiredArgument, t, "parameter %d (%v) of %s was not provided and is not bound", i, p, k.name)
		}
		args[i] = r.resolve(p)
	}
	return r.finish(k, args)
}

func (r *resolver) constructorFor(t reflect.Type) *constructor {
	if !constructible(t) {
		throw(ErrUnresolvableType, t, "cannot construct %v; only pointers to structs can be constructed", t)
	}
	d := r.c.catalog.lookup(t)
	if d == nil || len(d.constructors) == 0 {
		if d != nil && d.sealed {
			throw(ErrNoPublicConstructor, t, "%v is sealed and declares no constructors", t)
		}
		return zeroConstructor(t)
	}
	return d.greedy()
}

func (r *resolver) finish(k *constructor, args []reflect.Value) reflect.Value {
	v := k.call(args)
	r.c.injector.injectMembers(v)
	r.c.stat.Counter(stats.IceConstructCounter).Inc(1)
	r.c.log.Debugf("Constructed: %v", k.out)
	return v
}

// realize returns a binding's value, invoking its factory if it has one.
func (r *resolver) realize(b *binding) interface{} {
	if b.kind == KindSingleton {
		return b.instance
	}
	r.enter(frame{key: b.typ, kind: invoking, b: b})
	defer r.exit()

	r.c.stat.Counter(stats.IceFactoryCallCounter).Inc(1)
	var v interface{}
	var err error
	guard(ErrFactoryFailed, b.typ, "factory", func() {
		v, err = b.factory(r.c)
	})
	if err != nil {
		throwCause(ErrFactoryFailed, b.typ, err, "factory for %v returned an error", b.typ)
	}
	if v != nil && !reflect.TypeOf(v).AssignableTo(b.typ) {
		throw(ErrFactoryFailed, b.typ, "factory for %v returned %T", b.typ, v)
	}
	return v
}

// materialize returns the collection entry for elem, building it from the
// current bindings on first use.
func (r *resolver) materialize(elem, key reflect.Type) *collectionEntry {
	if e, ok := r.c.collections.get(elem); ok {
		return e
	}
	r.enter(frame{key: key, kind: collecting})
	defer r.exit()

	e := &collectionEntry{elem: elem}
	for _, b := range r.c.registry.assignableTo(elem) {
		e.items = append(e.items, r.realize(b))
	}
	r.c.collections.store(e)
	r.c.stat.Counter(stats.IceCollectionMaterializeCounter).Inc(1)
	r.c.log.WithFields(log.Fields{"element": elem.String(), "items": len(e.items)}).Debug("Materialized collection")
	return e
}

func (r *resolver) enter(f frame) {
	if f.kind != resolving {
		for _, g := range r.stack {
			if g.kind == f.kind && g.key == f.key && g.b == f.b {
				chain := append(append(stack(nil), r.stack...), f)
				panic(&ResolutionError{
					kind:   ErrCyclicDependency,
					typ:    f.key,
					detail: fmt.Sprintf("already %s %v", f.kind, f.key),
					chain:  chain,
				})
			}
		}
	}
	r.stack = append(r.stack, f)
}

// exit pops a frame. Called deferred; a panic passing through gets the
// resolution chain attached once, at the innermost level.
func (r *resolver) exit() {
	p := recover()
	if p != nil {
		re, ok := p.(*ResolutionError)
		if !ok {
			re = &ResolutionError{
				kind:    ErrConstructorFailed,
				typ:     r.stack[len(r.stack)-1].key,
				detail:  "unexpected panic",
				cause:   asError(p),
				goStack: string(debug.Stack()),
			}
		}
		if re.chain == nil {
			re.chain = append(stack(nil), r.stack...)
		}
		r.stack = r.stack[:len(r.stack)-1]
		panic(re)
	}
	r.stack = r.stack[:len(r.stack)-1]
}

func (k frameKind) String() string {
	switch k {
	case constructing:
		return "constructing"
	case invoking:
		return "invoking the factory for"
	case collecting:
		return "collecting"
	}
	return "resolving"
}

func valueOf(v interface{}, t reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(v)
}

// valueLike types cannot be auto-constructed or mirrored: anything that is
// neither a pointer nor an interface.
func valueLike(t reflect.Type) bool {
	return t.Kind() != reflect.Ptr && t.Kind() != reflect.Interface
}
