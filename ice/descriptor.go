package ice

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// constructor is a function declared to build a concrete type.
// It returns either T or (T, error).
type constructor struct {
	fn     reflect.Value
	name   string
	params []reflect.Type
	out    reflect.Type
}

func newConstructor(f interface{}) *constructor {
	v := reflect.ValueOf(f)
	if !v.IsValid() || v.Kind() != reflect.Func {
		panic(fmt.Errorf("ice: constructor must be a func; was %T", f))
	}
	t := v.Type()
	if t.IsVariadic() {
		panic(fmt.Errorf("ice: constructor must not be variadic; was %v", t))
	}
	out := checkResult(t)
	if !constructible(out) {
		panic(fmt.Errorf("ice: constructor must return a pointer to a struct; was %v", t))
	}
	k := &constructor{fn: v, name: getFunctionName(v), out: out}
	for i := 0; i < t.NumIn(); i++ {
		k.params = append(k.params, t.In(i))
	}
	return k
}

func zeroConstructor(t reflect.Type) *constructor {
	fn := reflect.MakeFunc(reflect.FuncOf(nil, []reflect.Type{t}, false), func([]reflect.Value) []reflect.Value {
		return []reflect.Value{reflect.New(t.Elem())}
	})
	return &constructor{fn: fn, name: "new(" + t.Elem().String() + ")", out: t}
}

func checkResult(t reflect.Type) reflect.Type {
	switch {
	case t.NumOut() == 1:
		return t.Out(0)
	case t.NumOut() == 2 && t.Out(1) == errorType:
		return t.Out(0)
	}
	panic(fmt.Errorf("ice: constructor must return either exactly 1 value or 2 values with the second an error; was %v", t))
}

func (k *constructor) call(args []reflect.Value) reflect.Value {
	var results []reflect.Value
	guard(ErrConstructorFailed, k.out, "constructor "+k.name, func() {
		results = k.fn.Call(args)
	})
	if len(results) == 2 && !results[1].IsNil() {
		throwCause(ErrConstructorFailed, k.out, results[1].Interface().(error), "constructor %s returned an error", k.name)
	}
	return results[0]
}

// setter is a method called with a resolved value after construction.
type setter struct {
	name  string
	param reflect.Type
	errs  bool
}

func newSetter(t reflect.Type, name string) *setter {
	m, ok := t.MethodByName(name)
	if !ok {
		panic(fmt.Errorf("ice: %v has no exported method %s", t, name))
	}
	mt := m.Type
	if mt.NumIn() != 2 || mt.IsVariadic() {
		panic(fmt.Errorf("ice: setter %v.%s must take exactly one argument; was %v", t, name, mt))
	}
	s := &setter{name: name, param: mt.In(1)}
	switch {
	case mt.NumOut() == 0:
	case mt.NumOut() == 1 && mt.Out(0) == errorType:
		s.errs = true
	default:
		panic(fmt.Errorf("ice: setter %v.%s must return nothing or an error; was %v", t, name, mt))
	}
	return s
}

func (s *setter) call(target, arg reflect.Value) {
	var results []reflect.Value
	t := target.Type()
	guard(ErrConstructorFailed, t, "setter "+s.name, func() {
		results = target.MethodByName(s.name).Call([]reflect.Value{arg})
	})
	if s.errs && !results[0].IsNil() {
		throwCause(ErrConstructorFailed, t, results[0].Interface().(error), "setter %v.%s returned an error", t, s.name)
	}
}

// Descriptor is what the container knows about building one concrete type:
// its declared constructors, the setters to call after construction, and
// whether the implicit zero-value constructor is allowed.
type Descriptor struct {
	typ          reflect.Type
	constructors []*constructor
	setters      []*setter
	sealed       bool
}

// DescribeOption adds to a Descriptor.
type DescribeOption func(d *Descriptor)

// Constructors declares constructor functions for the described type. Each
// must return the described type, optionally followed by an error.
func Constructors(fns ...interface{}) DescribeOption {
	return func(d *Descriptor) {
		for _, f := range fns {
			d.addConstructor(newConstructor(f))
		}
	}
}

// Setters names exported methods that receive a resolved value after construction.
func Setters(names ...string) DescribeOption {
	return func(d *Descriptor) {
		for _, n := range names {
			d.setters = append(d.setters, newSetter(d.typ, n))
		}
	}
}

// Sealed forbids the implicit zero-value constructor. A sealed type with no
// declared constructors fails with ErrNoPublicConstructor.
func Sealed() DescribeOption {
	return func(d *Descriptor) { d.sealed = true }
}

func (d *Descriptor) addConstructor(k *constructor) {
	if k.out != d.typ {
		panic(errors.Errorf("ice: constructor %s returns %v, not %v", k.name, k.out, d.typ))
	}
	d.constructors = append(d.constructors, k)
}

// greedy returns the declared constructor with the most parameters; the first
// declared wins a tie.
func (d *Descriptor) greedy() *constructor {
	var best *constructor
	for _, k := range d.constructors {
		if best == nil || len(k.params) > len(best.params) {
			best = k
		}
	}
	return best
}

// Type returns the described type.
func (d *Descriptor) Type() reflect.Type { return d.typ }

// Arities returns the parameter count of each declared constructor, in declaration order.
func (d *Descriptor) Arities() []int {
	out := make([]int, len(d.constructors))
	for i, k := range d.constructors {
		out[i] = len(k.params)
	}
	return out
}

type catalog struct {
	descriptors map[reflect.Type]*Descriptor
}

func newCatalog() *catalog {
	return &catalog{descriptors: make(map[reflect.Type]*Descriptor)}
}

func (k *catalog) describe(t reflect.Type) *Descriptor {
	if !constructible(t) {
		panic(errors.Errorf("ice: only pointers to structs can be described; was %v", t))
	}
	d, ok := k.descriptors[t]
	if !ok {
		d = &Descriptor{typ: t}
		k.descriptors[t] = d
	}
	return d
}

func (k *catalog) lookup(t reflect.Type) *Descriptor {
	return k.descriptors[t]
}

// constructible reports whether the container can build t itself.
func constructible(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct
}
