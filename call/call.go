package call

import (
	"errors"
	"fmt"

	sdk "github.com/kvmod-project/sdk"
	wapc "github.com/wapc/wapc-guest-tinygo"
	pb "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	capabilityName = "call"

	// Format descriptors understood by the host dispatcher. One "c" token
	// per string argument, matching the fixed arity of each call shape.
	format0 = ""
	format1 = "c"
	format2 = "cc"
	format3 = "ccc"

	// cmdKeys is the fixed command name used by Keys.
	cmdKeys = "keys"
)

// NoInteger is the sentinel returned by CallInt2 when the host call fails or
// the reply is not integer typed.
const NoInteger = int64(-1)

var (
	// ErrInvalidCommand indicates an empty command name.
	ErrInvalidCommand = errors.New("command name is invalid")

	// ErrMarshalRequest wraps failures while encoding the request payload.
	ErrMarshalRequest = errors.New("failed to marshal request")

	// ErrUnmarshalReply wraps failures while decoding the host reply.
	ErrUnmarshalReply = errors.New("failed to unmarshal reply")
)

// HostCall defines the waPC host function signature used by command dispatch.
type HostCall func(string, string, string, []byte) ([]byte, error)

// Client defines the fixed-arity command dispatch interface.
type Client interface {
	// Call0 dispatches a command with no arguments.
	Call0(cmd string) (*Reply, error)

	// Call1 dispatches a command with one string argument.
	Call1(cmd string, arg0 string) (*Reply, error)

	// Call2 dispatches a command with two string arguments.
	Call2(cmd string, arg0 string, arg1 string) (*Reply, error)

	// Call3 dispatches a command with three string arguments.
	Call3(cmd string, arg0 string, arg1 string, arg2 string) (*Reply, error)

	// CallInt2 dispatches a two-argument command and extracts an integer reply.
	CallInt2(cmd string, key string, arg0 string) int64

	// CallInt3 dispatches a three-argument command and extracts an integer reply.
	CallInt3(cmd string, key string, arg0 string, arg1 string) int64

	// Keys looks up key names matching a pattern.
	Keys(pattern string) ([]string, error)
}

// Config controls how a client instance interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig sdk.RuntimeConfig

	// HostCall overrides the waPC host function used for command dispatch.
	HostCall HostCall
}

// Commands is the command dispatch client implementation.
type Commands struct {
	runtime  sdk.RuntimeConfig
	hostCall HostCall
}

// Ensure Commands satisfies the Client interface at compile time.
var _ Client = (*Commands)(nil)

// New creates a command dispatch client with namespace defaults and optional
// host-call override.
func New(config Config) (*Commands, error) {
	runtime := config.SDKConfig
	if runtime.Namespace == "" {
		runtime.Namespace = sdk.DefaultNamespace
	}

	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	return &Commands{runtime: runtime, hostCall: hostCall}, nil
}

// Call0 dispatches a command that takes no arguments and returns the reply
// unexamined. Error-typed replies are returned as replies, not Go errors.
func (c *Commands) Call0(cmd string) (*Reply, error) {
	return c.dispatch(cmd, format0)
}

// Call1 dispatches a command with one string argument and returns the reply
// unexamined.
func (c *Commands) Call1(cmd string, arg0 string) (*Reply, error) {
	return c.dispatch(cmd, format1, arg0)
}

// Call2 dispatches a command with two string arguments and returns the reply
// unexamined.
func (c *Commands) Call2(cmd string, arg0 string, arg1 string) (*Reply, error) {
	return c.dispatch(cmd, format2, arg0, arg1)
}

// Call3 dispatches a command with three string arguments and returns the
// reply unexamined.
func (c *Commands) Call3(cmd string, arg0 string, arg1 string, arg2 string) (*Reply, error) {
	return c.dispatch(cmd, format3, arg0, arg1, arg2)
}

// CallInt2 dispatches a two-argument command and extracts the integer payload
// of the reply. If the host call fails, or the reply carries any other type,
// the NoInteger sentinel is returned instead.
func (c *Commands) CallInt2(cmd string, key string, arg0 string) int64 {
	reply, err := c.Call2(cmd, key, arg0)
	return replyInteger(reply, err)
}

// CallInt3 is the three-argument form of CallInt2, with the same NoInteger
// sentinel on every failure path.
func (c *Commands) CallInt3(cmd string, key string, arg0 string, arg1 string) int64 {
	reply, err := c.Call3(cmd, key, arg0, arg1)
	return replyInteger(reply, err)
}

// replyInteger extracts the integer payload of a reply, collapsing dispatch
// failures and wrong-typed replies into the NoInteger sentinel.
func replyInteger(reply *Reply, err error) int64 {
	if err != nil {
		return NoInteger
	}

	v, err := reply.Integer()
	if err != nil {
		return NoInteger
	}

	return v
}

// Keys looks up key names matching a pattern using the store's keys command.
// The command name is fixed; only the pattern argument varies.
func (c *Commands) Keys(pattern string) ([]string, error) {
	reply, err := c.Call1(cmdKeys, pattern)
	if err != nil {
		return nil, err
	}
	if reply.Type() != ReplyArray {
		return nil, fmt.Errorf("%w: expected array, got %s", ErrWrongType, reply.Type())
	}

	keys := make([]string, 0, reply.Len())
	for i := 0; i < reply.Len(); i++ {
		elem, err := reply.Element(i)
		if err != nil {
			return nil, err
		}
		name, err := elem.Text()
		if err != nil {
			return nil, err
		}
		keys = append(keys, name)
	}

	return keys, nil
}

// dispatch forwards a command to the host dispatcher. The format descriptor
// is hard-coded per call shape and the argument order is preserved verbatim.
func (c *Commands) dispatch(cmd string, format string, args ...string) (*Reply, error) {
	if cmd == "" {
		return nil, ErrInvalidCommand
	}

	vals := make([]*structpb.Value, len(args))
	for i, arg := range args {
		vals[i] = structpb.NewStringValue(arg)
	}
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"format": structpb.NewStringValue(format),
		"args":   structpb.NewListValue(&structpb.ListValue{Values: vals}),
	}}

	b, err := pb.Marshal(req)
	if err != nil {
		return nil, errors.Join(ErrMarshalRequest, err)
	}

	respBytes, callErr := c.hostCall(c.runtime.Namespace, capabilityName, cmd, b)
	if callErr != nil {
		return nil, errors.Join(sdk.ErrHostCall, callErr)
	}

	reply, err := decodeReply(respBytes)
	if err != nil {
		return nil, errors.Join(sdk.ErrHostResponseInvalid, ErrUnmarshalReply, err)
	}

	return reply, nil
}
