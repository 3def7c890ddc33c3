/*
Package call provides fixed-arity command dispatch against the key-value
store's module API.

The store's native dispatch primitive is variadic and cannot be invoked
across the waPC boundary, so this package exposes one narrow call shape per
argument count (Call0 through Call3). Each shape forwards a hard-coded format
descriptor (one "c" token per string argument) together with the arguments in
caller order, and returns the decoded reply unexamined: error-typed replies
come back as replies for the caller to inspect.

CallInt2 and CallInt3 are the interpreting variants. They require an
integer-typed reply and extract its payload; on a host failure or any other
reply type they return the NoInteger sentinel (-1). Keys performs the
command-name-fixed "keys" lookup and unpacks the array reply into key names.
*/
package call
