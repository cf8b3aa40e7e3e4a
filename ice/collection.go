package ice

import (
	"reflect"
)

// Collection is an ordered, read-only view of every registered implementation
// of T. Request *Collection[T] (or Collection[T]) as a constructor parameter, an
// injected field or through Resolve. The first request materializes it from the
// bindings registered at that time; instances bound later with BindInstance are
// appended.
type Collection[T any] struct {
	entry *collectionEntry
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	if c == nil || c.entry == nil {
		return 0
	}
	return len(c.entry.items)
}

// At returns the i'th item.
func (c *Collection[T]) At(i int) T {
	return as[T](c.entry.items[i])
}

// Items returns a copy of the items.
func (c *Collection[T]) Items() []T {
	out := make([]T, c.Len())
	for i := range out {
		out[i] = c.At(i)
	}
	return out
}

// Each calls fn for every item, in order.
func (c *Collection[T]) Each(fn func(i int, item T)) {
	for i := 0; i < c.Len(); i++ {
		fn(i, c.At(i))
	}
}

// Contains reports whether item is in the collection.
func (c *Collection[T]) Contains(item T) bool {
	return c.Len() > 0 && c.entry.contains(item)
}

func (c *Collection[T]) elementType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (c *Collection[T]) attach(e *collectionEntry) {
	c.entry = e
}

type collectionMarker interface {
	elementType() reflect.Type
	attach(e *collectionEntry)
}

var markerType = reflect.TypeOf((*collectionMarker)(nil)).Elem()

// collectionElem reports whether t is *Collection[E] or Collection[E], and returns E.
func collectionElem(t reflect.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}
	ptr := t
	if t.Kind() != reflect.Ptr {
		ptr = reflect.PointerTo(t)
	}
	if ptr.Elem().Kind() != reflect.Struct || !ptr.Implements(markerType) {
		return nil, false
	}
	return reflect.New(ptr.Elem()).Interface().(collectionMarker).elementType(), true
}

func as[T any](v interface{}) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

type collectionEntry struct {
	elem  reflect.Type
	items []interface{}
	view  reflect.Value
}

func (e *collectionEntry) contains(instance interface{}) bool {
	for _, item := range e.items {
		if sameInstance(item, instance) {
			return true
		}
	}
	return false
}

// viewFor returns the entry's single *Collection[E], or the struct it points
// to when marker is a Collection[E] value type.
func (e *collectionEntry) viewFor(marker reflect.Type) reflect.Value {
	if !e.view.IsValid() {
		ptr := marker
		if marker.Kind() != reflect.Ptr {
			ptr = reflect.PointerTo(marker)
		}
		v := reflect.New(ptr.Elem())
		v.Interface().(collectionMarker).attach(e)
		e.view = v
	}
	if marker.Kind() != reflect.Ptr {
		return e.view.Elem()
	}
	return e.view
}

func sameInstance(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// collectionIndex caches one entry per element type.
type collectionIndex struct {
	entries map[reflect.Type]*collectionEntry
	order   []*collectionEntry
}

func newCollectionIndex() *collectionIndex {
	x := &collectionIndex{}
	x.clear()
	return x
}

func (x *collectionIndex) get(elem reflect.Type) (*collectionEntry, bool) {
	e, ok := x.entries[elem]
	return e, ok
}

func (x *collectionIndex) store(e *collectionEntry) {
	x.entries[e.elem] = e
	x.order = append(x.order, e)
}

// addToExisting appends instance to every materialized entry that accepts it
// and does not hold it yet. It returns how many entries grew.
func (x *collectionIndex) addToExisting(instance interface{}) int {
	if instance == nil {
		return 0
	}
	t := reflect.TypeOf(instance)
	n := 0
	for _, e := range x.order {
		if !t.AssignableTo(e.elem) || e.contains(instance) {
			continue
		}
		e.items = append(e.items, instance)
		n++
	}
	return n
}

func (x *collectionIndex) clear() {
	x.entries = make(map[reflect.Type]*collectionEntry)
	x.order = nil
}
