package mock

import (
	"sort"
	"time"

	"github.com/kvmod-project/sdk/kv"
)

// Operation names used for per-call configuration and call recording.
const (
	opGet    = "GET"
	opSet    = "SET"
	opDelete = "DELETE"
	opKeys   = "KEYS"
	opExpire = "EXPIRE"
)

// Config configures the mock client.
type Config struct {
	// Seed pre-populates the in-memory store.
	Seed map[string][]byte
}

// Response describes a configured mock outcome.
type Response struct {
	// Value applies to GET.
	Value []byte

	// Keys applies to KEYS.
	Keys []string

	// Err indicates an error to return for the operation.
	Err error

	// storeOnSet controls whether SET updates the in-memory store when a
	// configured SET response exists and Err == nil. Defaults to true.
	storeOnSet *bool
}

// ResponseBuilder allows fluent configuration of responses.
type ResponseBuilder struct {
	m   *Client
	key string // composite key: OP + " " + target
}

// ReturnValue sets the bytes returned by GET.
func (b *ResponseBuilder) ReturnValue(v []byte) *ResponseBuilder {
	r := b.m.getOrCreate(b.key)
	r.Value = v
	b.m.responses[b.key] = r
	return b
}

// ReturnKeys sets the key names returned by KEYS.
func (b *ResponseBuilder) ReturnKeys(keys []string) *ResponseBuilder {
	r := b.m.getOrCreate(b.key)
	r.Keys = append([]string(nil), keys...)
	b.m.responses[b.key] = r
	return b
}

// ReturnError sets an error for the configured operation.
func (b *ResponseBuilder) ReturnError(err error) *Client {
	r := b.m.getOrCreate(b.key)
	r.Err = err
	b.m.responses[b.key] = r
	return b.m
}

// StoreOnSet controls whether a configured SET without error updates the
// store (default true).
func (b *ResponseBuilder) StoreOnSet(v bool) *ResponseBuilder {
	r := b.m.getOrCreate(b.key)
	r.storeOnSet = &v
	b.m.responses[b.key] = r
	return b
}

// Call records an operation performed against the mock.
type Call struct {
	Op    string
	Key   string
	Value []byte
	TTL   time.Duration
}

// Client implements kv.KV for tests.
type Client struct {
	store     map[string][]byte
	responses map[string]Response

	// Calls stores a history of operations for assertions.
	Calls []Call
}

// Ensure Client satisfies the kv.KV interface at compile time.
var _ kv.KV = (*Client)(nil)

// New creates a new mock store client.
func New(cfg Config) *Client {
	st := make(map[string][]byte)
	for k, v := range cfg.Seed {
		st[k] = append([]byte(nil), v...)
	}
	return &Client{
		store:     st,
		responses: make(map[string]Response),
		Calls:     []Call{},
	}
}

// OnGet configures a GET response for a key.
func (m *Client) OnGet(key string) *ResponseBuilder {
	return &ResponseBuilder{m: m, key: opGet + " " + key}
}

// OnSet configures a SET response for a key.
func (m *Client) OnSet(key string) *ResponseBuilder {
	return &ResponseBuilder{m: m, key: opSet + " " + key}
}

// OnDelete configures a DELETE response for a key.
func (m *Client) OnDelete(key string) *ResponseBuilder {
	return &ResponseBuilder{m: m, key: opDelete + " " + key}
}

// OnKeys configures the KEYS response.
func (m *Client) OnKeys() *ResponseBuilder { return &ResponseBuilder{m: m, key: opKeys} }

// OnExpire configures an EXPIRE response for a key.
func (m *Client) OnExpire(key string) *ResponseBuilder {
	return &ResponseBuilder{m: m, key: opExpire + " " + key}
}

// getOrCreate returns an existing response config or a new one.
func (m *Client) getOrCreate(k string) Response {
	if r, ok := m.responses[k]; ok {
		return r
	}
	return Response{}
}

// effectiveStoreOnSet returns the effective storeOnSet flag for a response.
func effectiveStoreOnSet(r Response) bool {
	if r.storeOnSet == nil {
		return true
	}
	return *r.storeOnSet
}

// Get implements kv.KV.
func (m *Client) Get(key string) ([]byte, error) {
	m.Calls = append(m.Calls, Call{Op: opGet, Key: key})
	if key == "" {
		return nil, kv.ErrInvalidKey
	}
	if r, ok := m.responses[opGet+" "+key]; ok {
		if r.Value == nil {
			return nil, r.Err
		}
		return append([]byte(nil), r.Value...), r.Err
	}
	v, ok := m.store[key]
	if !ok {
		return nil, kv.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set implements kv.KV.
func (m *Client) Set(key string, value []byte) error {
	m.Calls = append(m.Calls, Call{Op: opSet, Key: key, Value: append([]byte(nil), value...)})
	if key == "" {
		return kv.ErrInvalidKey
	}
	if value == nil {
		return kv.ErrInvalidValue
	}
	if r, ok := m.responses[opSet+" "+key]; ok {
		if r.Err != nil {
			return r.Err
		}
		if effectiveStoreOnSet(r) {
			m.store[key] = append([]byte(nil), value...)
		}
		return nil
	}
	m.store[key] = append([]byte(nil), value...)
	return nil
}

// Delete implements kv.KV.
func (m *Client) Delete(key string) error {
	m.Calls = append(m.Calls, Call{Op: opDelete, Key: key})
	if key == "" {
		return kv.ErrInvalidKey
	}
	if r, ok := m.responses[opDelete+" "+key]; ok {
		return r.Err
	}
	if _, ok := m.store[key]; !ok {
		return kv.ErrKeyNotFound
	}
	delete(m.store, key)
	return nil
}

// Keys implements kv.KV.
func (m *Client) Keys() ([]string, error) {
	m.Calls = append(m.Calls, Call{Op: opKeys})
	if r, ok := m.responses[opKeys]; ok {
		return append([]string(nil), r.Keys...), r.Err
	}
	keys := make([]string, 0, len(m.store))
	for k := range m.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Expire implements kv.KV. The mock records the requested TTL but does not
// schedule removal; configure OnExpire to script failures.
func (m *Client) Expire(key string, ttl time.Duration) error {
	m.Calls = append(m.Calls, Call{Op: opExpire, Key: key, TTL: ttl})
	if key == "" {
		return kv.ErrInvalidKey
	}
	if ttl <= 0 {
		return kv.ErrInvalidTTL
	}
	if r, ok := m.responses[opExpire+" "+key]; ok {
		return r.Err
	}
	if _, ok := m.store[key]; !ok {
		return kv.ErrKeyNotFound
	}
	return nil
}

// Close implements kv.KV.
func (m *Client) Close() error { return nil }
