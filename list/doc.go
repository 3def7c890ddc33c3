/*
Package list provides head and tail accessors for list-shaped values stored
in the key-value store.

PushHead and PushTail forward one element to the host's list push primitive;
PopHead and PopTail remove and return one element. Pops report an absent key
or exhausted list as ErrListEmpty rather than an error-shaped host failure,
matching the store's own empty-key behaviour. Wrong-typed keys surface as
host failures with the shared SDK sentinels.
*/
package list
