package kv

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	sdk "github.com/kvmod-project/sdk"
	sdkproto "github.com/tarmac-project/protobuf-go/sdk"
	proto "github.com/tarmac-project/protobuf-go/sdk/kvstore"
	wapc "github.com/wapc/wapc-guest-tinygo"
	pb "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	capabilityName = "kvstore"
	fnGet          = "get"
	fnSet          = "set"
	fnDelete       = "delete"
	fnKeys         = "keys"
	fnExpire       = "expire"

	hostStatusOK      = int32(0)
	hostStatusOKHTTP  = int32(200)
	hostStatusMissing = int32(404)
)

var (
	// ErrInvalidKey indicates an empty key name.
	ErrInvalidKey = errors.New("key is invalid")

	// ErrInvalidValue indicates a nil value on write.
	ErrInvalidValue = errors.New("value is invalid")

	// ErrKeyNotFound is returned when the store holds no value for the key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidTTL indicates a zero or negative expiry duration.
	ErrInvalidTTL = errors.New("ttl is invalid")

	// ErrMarshalRequest wraps failures while encoding the request payload.
	ErrMarshalRequest = errors.New("failed to marshal request")

	// ErrUnmarshalResponse wraps failures while decoding the host response.
	ErrUnmarshalResponse = errors.New("failed to unmarshal response")
)

// HostCall defines the waPC host function signature used by store operations.
type HostCall func(string, string, string, []byte) ([]byte, error)

// KV defines the whole-key store client interface.
type KV interface {
	// Get reads the value stored at key.
	Get(key string) ([]byte, error)

	// Set writes the value stored at key.
	Set(key string, value []byte) error

	// Delete removes the key and its value.
	Delete(key string) error

	// Keys enumerates the key names held by the store.
	Keys() ([]string, error)

	// Expire schedules the key for removal after the given duration.
	Expire(key string, ttl time.Duration) error

	// Close releases resources held by the client.
	Close() error
}

// Config controls how a client instance interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig sdk.RuntimeConfig

	// HostCall overrides the waPC host function used for store operations.
	HostCall HostCall
}

// HostKV is the store capability client implementation.
type HostKV struct {
	runtime  sdk.RuntimeConfig
	hostCall HostCall
}

// Ensure HostKV satisfies the KV interface at compile time.
var _ KV = (*HostKV)(nil)

// New creates a store client with namespace defaults and optional host-call
// override.
func New(config Config) (*HostKV, error) {
	runtime := config.SDKConfig
	if runtime.Namespace == "" {
		runtime.Namespace = sdk.DefaultNamespace
	}

	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	return &HostKV{runtime: runtime, hostCall: hostCall}, nil
}

// Get reads the value stored at key.
func (c *HostKV) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	req := &proto.KVStoreGet{Key: key}
	b, err := req.MarshalVT()
	if err != nil {
		return nil, errors.Join(ErrMarshalRequest, err)
	}

	respBytes, callErr := c.hostCall(c.runtime.Namespace, capabilityName, fnGet, b)
	if callErr != nil && len(respBytes) == 0 {
		return nil, errors.Join(sdk.ErrHostCall, callErr)
	}

	var resp proto.KVStoreGetResponse
	if unmarshalErr := resp.UnmarshalVT(respBytes); unmarshalErr != nil {
		return nil, joinUnmarshal(callErr, unmarshalErr)
	}

	if statusErr := validateStatus(resp.GetStatus(), callErr); statusErr != nil {
		return nil, statusErr
	}

	return resp.GetData(), nil
}

// Set writes the value stored at key.
func (c *HostKV) Set(key string, value []byte) error {
	if key == "" {
		return ErrInvalidKey
	}
	if value == nil {
		return ErrInvalidValue
	}

	req := &proto.KVStoreSet{Key: key, Data: value}
	b, err := req.MarshalVT()
	if err != nil {
		return errors.Join(ErrMarshalRequest, err)
	}

	respBytes, callErr := c.hostCall(c.runtime.Namespace, capabilityName, fnSet, b)
	if callErr != nil && len(respBytes) == 0 {
		return errors.Join(sdk.ErrHostCall, callErr)
	}

	var resp proto.KVStoreSetResponse
	if unmarshalErr := resp.UnmarshalVT(respBytes); unmarshalErr != nil {
		return joinUnmarshal(callErr, unmarshalErr)
	}

	return validateStatus(resp.GetStatus(), callErr)
}

// Delete removes the key and its value.
func (c *HostKV) Delete(key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	req := &proto.KVStoreDelete{Key: key}
	b, err := req.MarshalVT()
	if err != nil {
		return errors.Join(ErrMarshalRequest, err)
	}

	respBytes, callErr := c.hostCall(c.runtime.Namespace, capabilityName, fnDelete, b)
	if callErr != nil && len(respBytes) == 0 {
		return errors.Join(sdk.ErrHostCall, callErr)
	}

	var resp proto.KVStoreDeleteResponse
	if unmarshalErr := resp.UnmarshalVT(respBytes); unmarshalErr != nil {
		return joinUnmarshal(callErr, unmarshalErr)
	}

	return validateStatus(resp.GetStatus(), callErr)
}

// Keys enumerates the key names held by the store.
func (c *HostKV) Keys() ([]string, error) {
	req := &proto.KVStoreKeys{}
	b, err := req.MarshalVT()
	if err != nil {
		return nil, errors.Join(ErrMarshalRequest, err)
	}

	respBytes, callErr := c.hostCall(c.runtime.Namespace, capabilityName, fnKeys, b)
	if callErr != nil && len(respBytes) == 0 {
		return nil, errors.Join(sdk.ErrHostCall, callErr)
	}

	var resp proto.KVStoreKeysResponse
	if unmarshalErr := resp.UnmarshalVT(respBytes); unmarshalErr != nil {
		return nil, joinUnmarshal(callErr, unmarshalErr)
	}

	if statusErr := validateStatus(resp.GetStatus(), callErr); statusErr != nil {
		return nil, statusErr
	}

	return resp.GetKeys(), nil
}

// Expire schedules the key for removal after the given duration. The host
// applies the expiry in milliseconds, carried as a decimal string so the
// full int64 range stays exact on the wire.
func (c *HostKV) Expire(key string, ttl time.Duration) error {
	if key == "" {
		return ErrInvalidKey
	}
	if ttl <= 0 {
		return ErrInvalidTTL
	}

	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"key":    structpb.NewStringValue(key),
		"ttl_ms": structpb.NewStringValue(strconv.FormatInt(ttl.Milliseconds(), 10)),
	}}
	b, err := pb.Marshal(req)
	if err != nil {
		return errors.Join(ErrMarshalRequest, err)
	}

	if _, callErr := c.hostCall(c.runtime.Namespace, capabilityName, fnExpire, b); callErr != nil {
		return errors.Join(sdk.ErrHostCall, callErr)
	}

	return nil
}

// Close releases resources held by the client.
func (c *HostKV) Close() error {
	return nil
}

// joinUnmarshal combines an unmarshal failure with any host-call error that
// accompanied the partial response.
func joinUnmarshal(callErr error, unmarshalErr error) error {
	if callErr != nil {
		return errors.Join(sdk.ErrHostCall, callErr, sdk.ErrHostResponseInvalid, ErrUnmarshalResponse, unmarshalErr)
	}
	return errors.Join(sdk.ErrHostResponseInvalid, ErrUnmarshalResponse, unmarshalErr)
}

func validateStatus(status *sdkproto.Status, callErr error) error {
	if status == nil {
		if callErr != nil {
			return errors.Join(sdk.ErrHostCall, callErr, sdk.ErrHostResponseInvalid)
		}
		return sdk.ErrHostResponseInvalid
	}

	switch code := status.GetCode(); code {
	case hostStatusOK, hostStatusOKHTTP:
		return nil
	case hostStatusMissing:
		return ErrKeyNotFound
	default:
		detail := fmt.Sprintf("host status %d", code)
		if msg := status.GetStatus(); msg != "" {
			detail = fmt.Sprintf("%s: %s", detail, msg)
		}
		if callErr != nil {
			return errors.Join(sdk.ErrHostCall, callErr, sdk.ErrHostError, errors.New(detail))
		}
		return errors.Join(sdk.ErrHostError, errors.New(detail))
	}
}
