/*
Package sdk provides the core entry point and runtime configuration for
building key-value store modules as WebAssembly guest functions.

A module registers its commands with New; the host runtime dispatches each
named command to the registered handler over waPC. RuntimeConfig is shared by
the capability clients (call, hash, kv, list, logging, metrics) and
DefaultNamespace is used when a namespace is not explicitly provided.

The host's own command dispatcher is variadic and cannot be invoked across
the waPC boundary directly. The subpackages of this SDK therefore expose the
store's module API as narrow, fixed-arity call shapes: see package call for
raw command dispatch and package hash for single-field hash access.
*/
package sdk
