// Package object implements the dynamic, schema-driven object model: typed
// values bound to server-declared property definitions, and instances that
// expose them through tag-checked accessors and dotted-path navigation.
//
// Because schemas evolve server-side without a client rebuild, lookups and
// type checks report absence instead of failing: a missing property or a
// type mismatch is an expected, recoverable outcome. The one hard failure
// is constructing an instance whose object definition cannot be resolved.
package object
