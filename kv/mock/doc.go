/*
Package mock provides an in-memory mock implementation of the kv.KV interface.

It can be pre-seeded with data, configured with per-operation overrides using
the fluent On* builders, and it records calls for assertions in tests. Module
authors can test code that depends on the kv component without invoking host
calls.
*/
package mock
