package ice

import (
	"reflect"
)

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Bind binds T to a new construction of T on every resolution.
func Bind[T any](c *Container) {
	c.BindType(TypeOf[T]())
}

// BindFactory binds T to fn, which runs on every resolution of T.
func BindFactory[T any](c *Container, fn func(c *Container) (T, error)) {
	c.BindFactory(TypeOf[T](), func(c *Container) (interface{}, error) {
		v, err := fn(c)
		if err != nil {
			return nil, err
		}
		return v, nil
	})
}

// BindArgs binds T to a new construction of T that receives args.
func BindArgs[T any](c *Container, args ...interface{}) {
	c.BindArgs(TypeOf[T](), args...)
}

// BindInstance binds T to instance.
func BindInstance[T any](c *Container, instance T) {
	c.BindInstance(TypeOf[T](), instance)
}

// BindCollection materializes Collection[T] now.
func BindCollection[T any](c *Container) error {
	return c.BindCollection(TypeOf[T]())
}

// Instantiate constructs a new T without binding it.
func Instantiate[T any](c *Container, args ...interface{}) (T, error) {
	v, err := c.Instantiate(TypeOf[T](), args...)
	if err != nil {
		var zero T
		return zero, err
	}
	return as[T](v), nil
}

// InstantiateAndBind constructs a new T and binds it as a singleton.
func InstantiateAndBind[T any](c *Container, args ...interface{}) (T, error) {
	v, err := c.InstantiateAndBind(TypeOf[T](), args...)
	if err != nil {
		var zero T
		return zero, err
	}
	return as[T](v), nil
}

// Resolve returns a value for T.
func Resolve[T any](c *Container) (T, error) {
	v, err := c.Resolve(TypeOf[T]())
	if err != nil {
		var zero T
		return zero, err
	}
	return as[T](v), nil
}

// MustResolve is Resolve that panics on failure. For use in modules and mains.
func MustResolve[T any](c *Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		panic(err)
	}
	return v
}

// ResolveCollection returns the collection of every registered implementation of T.
func ResolveCollection[T any](c *Container) (*Collection[T], error) {
	return Resolve[*Collection[T]](c)
}

// Describe adds to the descriptor of T.
func Describe[T any](c *Container, opts ...DescribeOption) *Descriptor {
	return c.Describe(TypeOf[T](), opts...)
}
