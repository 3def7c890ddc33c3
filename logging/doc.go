/*
Package logging offers a client for emitting log entries from key-value store
modules to the host runtime.

The package exposes a small interface whose methods map onto the store's own
log levels (Debug, Verbose, Notice, Warning). Emission is best-effort: the
host owns log output, and a failed host call never disturbs caller control
flow.
*/
package logging
