// Package runtime provides the execution context for shipit commands.
//
// It encapsulates the resolved provider adapter, the layered configuration
// store, and the logger threaded into every command, and owns the
// per-invocation lifecycle that binds exactly one adapter per process.
package runtime
