// Package loading runs the operations a program needs before it starts,
// reporting progress as it goes.
//
// Operations are gathered by the container: every Operation bound in any
// module ends up in the *ice.Collection[Operation] the Service is built with.
// LoadingConfig sets up the pipeline; SimulationConfig adds timed stand-in
// operations.
package loading
