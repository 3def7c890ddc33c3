/*
Package hash provides single-field accessors for hash-shaped values stored in
the key-value store.

Get and Set forward exactly one field (and, for Set, one value) to the host's
hash accessor primitives, always with the default access flag; there is no
field enumeration and no multi-field variant. Get distinguishes a missing
field (ErrFieldNotFound) from host failures, which are reported with the
shared SDK sentinels and can be checked with errors.Is.
*/
package hash
