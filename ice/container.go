package ice

import (
	"fmt"
	"reflect"

	uuid "github.com/nu7hatch/gouuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/IgorRikhard/GameArchitecture/common/stats"
)

// Container binds types to the way their values are produced, and builds
// object graphs from those bindings.
//
// A Container is not safe for concurrent use.
type Container struct {
	id          string
	log         log.FieldLogger
	stat        stats.StatsReceiver
	registry    *registry
	catalog     *catalog
	collections *collectionIndex
	resolver    *resolver
	injector    *injector
}

// Option configures a Container.
type Option func(c *Container)

// WithLogger sets the logger; the default is the logrus standard logger.
func WithLogger(l log.FieldLogger) Option {
	return func(c *Container) { c.log = l }
}

// WithStats sets where the container records metrics, under the "ice" scope.
func WithStats(s stats.StatsReceiver) Option {
	return func(c *Container) { c.stat = s }
}

func NewContainer(opts ...Option) *Container {
	c := &Container{
		log:         log.StandardLogger(),
		stat:        stats.NilStatsReceiver(),
		registry:    newRegistry(),
		catalog:     newCatalog(),
		collections: newCollectionIndex(),
	}
	c.resolver = &resolver{c: c}
	c.injector = newInjector(c)
	for _, opt := range opts {
		opt(c)
	}
	c.id = newID()
	c.log = c.log.WithField("container", c.id)
	c.stat = c.stat.Scope(stats.IceScope)
	return c
}

func newID() string {
	u, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return u.String()
}

// ID identifies this container in logs and on the admin endpoint.
func (c *Container) ID() string { return c.id }

// BindFactory binds t to f. f runs on every resolution of t.
func (c *Container) BindFactory(t reflect.Type, f Factory) {
	mustType(t)
	if f == nil {
		panic(errors.Errorf("ice: nil factory for %v", t))
	}
	c.registry.registerFactory(t, f)
	c.bound(t, KindFactory)
}

// BindType binds t to a factory that constructs a new t on every resolution.
func (c *Container) BindType(t reflect.Type) {
	mustType(t)
	c.BindFactory(t, func(c *Container) (interface{}, error) {
		return c.resolver.construct(t).Interface(), nil
	})
}

// BindArgs is BindType, passing args to the constructor on every construction.
// Parameters no argument fits are resolved as usual.
func (c *Container) BindArgs(t reflect.Type, args ...interface{}) {
	mustType(t)
	provided := append([]interface{}(nil), args...)
	c.BindFactory(t, func(c *Container) (interface{}, error) {
		return c.resolver.constructWithArgs(t, provided).Interface(), nil
	})
}

// BindInstance binds t to instance, which every resolution of t returns.
// Materialized collections that accept instance get it appended.
func (c *Container) BindInstance(t reflect.Type, instance interface{}) {
	mustType(t)
	if instance != nil && !reflect.TypeOf(instance).AssignableTo(t) {
		panic(errors.Errorf("ice: instance of %T is not assignable to %v", instance, t))
	}
	c.registry.registerSingleton(t, instance)
	c.bound(t, KindSingleton)
	if n := c.collections.addToExisting(instance); n > 0 {
		c.stat.Counter(stats.IceCollectionAppendCounter).Inc(int64(n))
	}
}

// BindCollection materializes the collection of elem now, so that instances
// bound from here on are appended to it.
func (c *Container) BindCollection(elem reflect.Type) (err error) {
	mustType(elem)
	defer c.catch(&err)
	c.resolver.materialize(elem, elem)
	return nil
}

// Instantiate constructs a new t without binding it. With args, they are
// matched to constructor parameters by type first. Members are injected.
func (c *Container) Instantiate(t reflect.Type, args ...interface{}) (_ interface{}, err error) {
	defer c.catch(&err)
	if len(args) > 0 {
		return c.resolver.constructWithArgs(t, args).Interface(), nil
	}
	return c.resolver.construct(t).Interface(), nil
}

// InstantiateAndBind instantiates t and binds the result as a singleton.
func (c *Container) InstantiateAndBind(t reflect.Type, args ...interface{}) (interface{}, error) {
	v, err := c.Instantiate(t, args...)
	if err != nil {
		return nil, err
	}
	c.BindInstance(t, v)
	return v, nil
}

// Resolve returns a value for t: a collection for Collection markers, the
// binding of t if there is one, or else a newly constructed t.
func (c *Container) Resolve(t reflect.Type) (_ interface{}, err error) {
	defer c.catch(&err)
	defer c.stat.Latency(stats.IceResolveLatency_ms).Time().Stop()
	c.stat.Counter(stats.IceResolveCounter).Inc(1)
	return c.resolver.resolve(t).Interface(), nil
}

// Extract resolves the type dest points to and stores the result in *dest.
func (c *Container) Extract(dest interface{}) (err error) {
	destVal := reflect.ValueOf(dest)
	if !destVal.IsValid() || destVal.Kind() != reflect.Ptr || destVal.IsNil() {
		return fmt.Errorf("ice: dest must be a non-nil pointer; was %T", dest)
	}
	defer c.catch(&err)
	defer c.stat.Latency(stats.IceResolveLatency_ms).Time().Stop()
	c.stat.Counter(stats.IceResolveCounter).Inc(1)
	destVal.Elem().Set(c.resolver.resolve(destVal.Type().Elem()))
	return nil
}

// Inject fills the members of an instance the container did not create.
func (c *Container) Inject(target interface{}) (err error) {
	defer c.catch(&err)
	c.injector.injectMembers(reflect.ValueOf(target))
	return nil
}

// Put declares constructors. Each must be a non-variadic func returning a
// pointer to a struct, optionally followed by an error; it becomes a
// constructor of that type.
func (c *Container) Put(f interface{}) {
	k := newConstructor(f)
	c.catalog.describe(k.out).addConstructor(k)
}

func (c *Container) PutMany(fs ...interface{}) {
	for _, f := range fs {
		c.Put(f)
	}
}

// Describe adds to the descriptor of t, which must be a pointer to a struct.
func (c *Container) Describe(t reflect.Type, opts ...DescribeOption) *Descriptor {
	d := c.catalog.describe(t)
	for _, opt := range opts {
		opt(d)
	}
	c.injector.forget(t)
	return d
}

// IsRegistered reports whether t has a binding of its own or mirrored from an
// implementation.
func (c *Container) IsRegistered(t reflect.Type) bool {
	return c.registry.isRegistered(t)
}

// Clear removes every binding and cached collection. Descriptors are kept.
func (c *Container) Clear() {
	c.registry.clear()
	c.collections.clear()
	c.stat.Gauge(stats.IceLiveBindingsGauge).Update(0)
	c.log.Debug("Cleared")
}

// Bindings returns a snapshot of the registry, in registration order.
func (c *Container) Bindings() []BindingInfo {
	return c.registry.entries()
}

func (c *Container) bound(t reflect.Type, kind BindingKind) {
	c.stat.Counter(stats.IceBindCounter).Inc(1)
	c.stat.Gauge(stats.IceLiveBindingsGauge).Update(int64(len(c.registry.live)))
	c.log.WithFields(log.Fields{"type": t.String(), "kind": kind.String()}).Debug("Bound")
}

// catch turns a panic unwinding a resolution into the returned error.
func (c *Container) catch(err *error) {
	r := recover()
	if r == nil {
		return
	}
	c.stat.Counter(stats.IceResolveFailureCounter).Inc(1)
	if re, ok := r.(*ResolutionError); ok {
		*err = re
		return
	}
	*err = &ResolutionError{kind: ErrConstructorFailed, detail: "unexpected panic", cause: asError(r)}
}

func mustType(t reflect.Type) {
	if t == nil {
		panic(errors.New("ice: nil type"))
	}
}
