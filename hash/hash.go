package hash

import (
	"errors"

	sdk "github.com/kvmod-project/sdk"
	wapc "github.com/wapc/wapc-guest-tinygo"
	pb "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	capabilityName = "hash"
	fnGet          = "get"
	fnSet          = "set"
)

// FlagsNone is the default field-access option forwarded with every
// operation. Specialized host options (conditional writes, existence-only
// lookups) are not exposed by this client.
const FlagsNone = 0

var (
	// ErrInvalidKey indicates an empty key name.
	ErrInvalidKey = errors.New("key is invalid")

	// ErrInvalidField indicates an empty field name.
	ErrInvalidField = errors.New("field is invalid")

	// ErrFieldNotFound is returned when the hash holds no value for the field.
	ErrFieldNotFound = errors.New("field not found")

	// ErrMarshalRequest wraps failures while encoding the request payload.
	ErrMarshalRequest = errors.New("failed to marshal request")

	// ErrUnmarshalResponse wraps failures while decoding the host response.
	ErrUnmarshalResponse = errors.New("failed to unmarshal response")
)

// HostCall defines the waPC host function signature used by hash operations.
type HostCall func(string, string, string, []byte) ([]byte, error)

// Client defines the single-field hash accessor interface.
type Client interface {
	// Get reads one field of the hash stored at key.
	Get(key string, field string) (string, error)

	// Set writes one field of the hash stored at key.
	Set(key string, field string, value string) error
}

// Config controls how a client instance interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig sdk.RuntimeConfig

	// HostCall overrides the waPC host function used for hash operations.
	HostCall HostCall
}

// HostHash is the hash accessor client implementation.
type HostHash struct {
	runtime  sdk.RuntimeConfig
	hostCall HostCall
}

// Ensure HostHash satisfies the Client interface at compile time.
var _ Client = (*HostHash)(nil)

// New creates a hash accessor client with namespace defaults and optional
// host-call override.
func New(config Config) (*HostHash, error) {
	runtime := config.SDKConfig
	if runtime.Namespace == "" {
		runtime.Namespace = sdk.DefaultNamespace
	}

	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	return &HostHash{runtime: runtime, hostCall: hostCall}, nil
}

// Get reads one field of the hash stored at key. The field name is passed
// through unchanged and the default access flag is always applied.
func (c *HostHash) Get(key string, field string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}
	if field == "" {
		return "", ErrInvalidField
	}

	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"key":   structpb.NewStringValue(key),
		"field": structpb.NewStringValue(field),
		"flags": structpb.NewNumberValue(FlagsNone),
	}}
	b, err := pb.Marshal(req)
	if err != nil {
		return "", errors.Join(ErrMarshalRequest, err)
	}

	respBytes, callErr := c.hostCall(c.runtime.Namespace, capabilityName, fnGet, b)
	if callErr != nil {
		return "", errors.Join(sdk.ErrHostCall, callErr)
	}

	var resp structpb.Struct
	if err := pb.Unmarshal(respBytes, &resp); err != nil {
		return "", errors.Join(sdk.ErrHostResponseInvalid, ErrUnmarshalResponse, err)
	}

	value, ok := resp.GetFields()["value"]
	if !ok {
		return "", ErrFieldNotFound
	}

	return value.GetStringValue(), nil
}

// Set writes one field of the hash stored at key. The field/value pair is
// passed through unchanged and the default access flag is always applied.
func (c *HostHash) Set(key string, field string, value string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if field == "" {
		return ErrInvalidField
	}

	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"key":   structpb.NewStringValue(key),
		"field": structpb.NewStringValue(field),
		"value": structpb.NewStringValue(value),
		"flags": structpb.NewNumberValue(FlagsNone),
	}}
	b, err := pb.Marshal(req)
	if err != nil {
		return errors.Join(ErrMarshalRequest, err)
	}

	if _, callErr := c.hostCall(c.runtime.Namespace, capabilityName, fnSet, b); callErr != nil {
		return errors.Join(sdk.ErrHostCall, callErr)
	}

	return nil
}
