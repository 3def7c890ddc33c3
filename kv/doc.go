/*
Package kv provides a whole-key client for the store's key-value capability.

The client serializes requests with the kvstore protobufs, forwards them to
the host with waPC, and validates the returned status before handing data
back. Zero-value Config options fall back to sensible defaults such as
sdk.DefaultNamespace and the default waPC host call.

Typical usage is to construct a client with New, then invoke Set, Get,
Delete, Keys, and Expire. Tests can inject custom host behaviour with Config.HostCall
to exercise failure paths without a real host, or use the in-memory
implementation in the mock subpackage.
*/
package kv
