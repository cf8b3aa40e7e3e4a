/*
ice is a lightweight Dependency Injection container.

You bind types to the way their values are produced, then ask for values and
ice builds the object graph behind them.

Bindings

A binding is keyed by a Go type and is either a singleton instance
(BindInstance) or a factory run on every resolution (BindFactory, Bind,
BindArgs). A binding is also reachable through every interface its type
implements that the container has seen. Go cannot list the interfaces of a
type, so ice catalogues an interface the first time it appears as a binding
key, a resolution request, a constructor parameter, an injected field or a
collection element.

Construction

A type without a binding is constructed if it is a pointer to a struct. ice
uses the constructor with the most parameters among those declared with Put
or Describe, resolving each parameter. A type with no declared constructors is
built with new(T), unless it is Sealed.

After construction, fields tagged `inject:""` are filled, including unexported
fields and those promoted from embedded structs, and declared setters are
called.

Collections

Asking for *Collection[T] yields every registered implementation of T, in
registration order. The collection is built once; instances bound afterwards
with BindInstance are appended to it.

Errors

Resolution fails with a *ResolutionError that matches one of the Err* kinds
under errors.Is and names the chain of types being resolved. Cycles are
reported, never resolved.

Lifecycle

1) Create a Container
2) Declare constructors and install Modules
3) Resolve values

A Container is meant to be owned by the program's bootstrap and passed
explicitly; it is not safe for concurrent use.
*/
package ice
