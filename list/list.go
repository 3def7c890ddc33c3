package list

import (
	"errors"

	sdk "github.com/kvmod-project/sdk"
	wapc "github.com/wapc/wapc-guest-tinygo"
	pb "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	capabilityName = "list"
	fnPush         = "push"
	fnPop          = "pop"
)

// Place values match the host's list-access primitive: 0 addresses the head
// of the list and -1 the tail.
const (
	placeHead = 0
	placeTail = -1
)

var (
	// ErrInvalidKey indicates an empty key name.
	ErrInvalidKey = errors.New("key is invalid")

	// ErrInvalidElement indicates an empty element on push.
	ErrInvalidElement = errors.New("element is invalid")

	// ErrListEmpty is returned by pops when the key holds no list or the
	// list has no elements left.
	ErrListEmpty = errors.New("list is empty")

	// ErrMarshalRequest wraps failures while encoding the request payload.
	ErrMarshalRequest = errors.New("failed to marshal request")

	// ErrUnmarshalResponse wraps failures while decoding the host response.
	ErrUnmarshalResponse = errors.New("failed to unmarshal response")
)

// HostCall defines the waPC host function signature used by list operations.
type HostCall func(string, string, string, []byte) ([]byte, error)

// Client defines the list accessor interface.
type Client interface {
	// PushHead prepends an element to the list stored at key.
	PushHead(key string, element string) error

	// PushTail appends an element to the list stored at key.
	PushTail(key string, element string) error

	// PopHead removes and returns the first element of the list stored at key.
	PopHead(key string) (string, error)

	// PopTail removes and returns the last element of the list stored at key.
	PopTail(key string) (string, error)
}

// Config controls how a client instance interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig sdk.RuntimeConfig

	// HostCall overrides the waPC host function used for list operations.
	HostCall HostCall
}

// HostList is the list accessor client implementation.
type HostList struct {
	runtime  sdk.RuntimeConfig
	hostCall HostCall
}

// Ensure HostList satisfies the Client interface at compile time.
var _ Client = (*HostList)(nil)

// New creates a list accessor client with namespace defaults and optional
// host-call override.
func New(config Config) (*HostList, error) {
	runtime := config.SDKConfig
	if runtime.Namespace == "" {
		runtime.Namespace = sdk.DefaultNamespace
	}

	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	return &HostList{runtime: runtime, hostCall: hostCall}, nil
}

// PushHead prepends an element to the list stored at key.
func (c *HostList) PushHead(key string, element string) error {
	return c.push(key, element, placeHead)
}

// PushTail appends an element to the list stored at key.
func (c *HostList) PushTail(key string, element string) error {
	return c.push(key, element, placeTail)
}

// PopHead removes and returns the first element of the list stored at key.
// An absent key or exhausted list is reported as ErrListEmpty.
func (c *HostList) PopHead(key string) (string, error) {
	return c.pop(key, placeHead)
}

// PopTail removes and returns the last element of the list stored at key.
// An absent key or exhausted list is reported as ErrListEmpty.
func (c *HostList) PopTail(key string) (string, error) {
	return c.pop(key, placeTail)
}

func (c *HostList) push(key string, element string, place int) error {
	if key == "" {
		return ErrInvalidKey
	}
	if element == "" {
		return ErrInvalidElement
	}

	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"key":     structpb.NewStringValue(key),
		"element": structpb.NewStringValue(element),
		"place":   structpb.NewNumberValue(float64(place)),
	}}
	b, err := pb.Marshal(req)
	if err != nil {
		return errors.Join(ErrMarshalRequest, err)
	}

	if _, callErr := c.hostCall(c.runtime.Namespace, capabilityName, fnPush, b); callErr != nil {
		return errors.Join(sdk.ErrHostCall, callErr)
	}

	return nil
}

func (c *HostList) pop(key string, place int) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"key":   structpb.NewStringValue(key),
		"place": structpb.NewNumberValue(float64(place)),
	}}
	b, err := pb.Marshal(req)
	if err != nil {
		return "", errors.Join(ErrMarshalRequest, err)
	}

	respBytes, callErr := c.hostCall(c.runtime.Namespace, capabilityName, fnPop, b)
	if callErr != nil {
		return "", errors.Join(sdk.ErrHostCall, callErr)
	}

	var resp structpb.Struct
	if err := pb.Unmarshal(respBytes, &resp); err != nil {
		return "", errors.Join(sdk.ErrHostResponseInvalid, ErrUnmarshalResponse, err)
	}

	element, ok := resp.GetFields()["element"]
	if !ok {
		return "", ErrListEmpty
	}

	return element.GetStringValue(), nil
}
