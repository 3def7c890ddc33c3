package call

import (
	"errors"
	"fmt"
	"strconv"

	pb "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ReplyType identifies the payload carried by a Reply. The numbering mirrors
// the host dispatcher's reply type tags.
type ReplyType int

const (
	ReplyUnknown ReplyType = iota - 1
	ReplyString
	ReplyError
	ReplyInteger
	ReplyArray
	ReplyNil
)

// String returns the wire name of the reply type.
func (t ReplyType) String() string {
	switch t {
	case ReplyString:
		return "string"
	case ReplyError:
		return "error"
	case ReplyInteger:
		return "integer"
	case ReplyArray:
		return "array"
	case ReplyNil:
		return "nil"
	default:
		return "unknown"
	}
}

var (
	// ErrWrongType is returned by reply accessors when the reply does not
	// carry the requested payload type.
	ErrWrongType = errors.New("reply has wrong type")

	// ErrNoElement is returned by Element for an index outside the array.
	ErrNoElement = errors.New("array element index out of range")
)

// Reply is a decoded command reply: a type tag plus one payload. Replies are
// plain values; unlike the host-side reply handles they require no release.
type Reply struct {
	rtype   ReplyType
	integer int64
	text    string
	errText string
	elems   []*Reply
}

// Type returns the reply's type tag.
func (r *Reply) Type() ReplyType { return r.rtype }

// Integer returns the payload of an integer reply.
func (r *Reply) Integer() (int64, error) {
	if r.rtype != ReplyInteger {
		return 0, fmt.Errorf("%w: expected integer, got %s", ErrWrongType, r.rtype)
	}
	return r.integer, nil
}

// Text returns the payload of a string reply.
func (r *Reply) Text() (string, error) {
	if r.rtype != ReplyString {
		return "", fmt.Errorf("%w: expected string, got %s", ErrWrongType, r.rtype)
	}
	return r.text, nil
}

// ErrorMessage returns the message of an error reply.
func (r *Reply) ErrorMessage() (string, error) {
	if r.rtype != ReplyError {
		return "", fmt.Errorf("%w: expected error, got %s", ErrWrongType, r.rtype)
	}
	return r.errText, nil
}

// Len returns the number of elements in an array reply, zero for any other
// reply type.
func (r *Reply) Len() int { return len(r.elems) }

// Element returns the i-th element of an array reply.
func (r *Reply) Element(i int) (*Reply, error) {
	if r.rtype != ReplyArray {
		return nil, fmt.Errorf("%w: expected array, got %s", ErrWrongType, r.rtype)
	}
	if i < 0 || i >= len(r.elems) {
		return nil, fmt.Errorf("%w: %d", ErrNoElement, i)
	}
	return r.elems[i], nil
}

// decodeReply unmarshals a serialized reply struct received from the host.
func decodeReply(payload []byte) (*Reply, error) {
	var st structpb.Struct
	if err := pb.Unmarshal(payload, &st); err != nil {
		return nil, err
	}
	return replyFromStruct(&st)
}

func replyFromStruct(st *structpb.Struct) (*Reply, error) {
	fields := st.GetFields()
	r := &Reply{rtype: replyTypeFromWire(fields["type"].GetStringValue())}

	switch r.rtype {
	case ReplyInteger:
		// int64 crosses the wire as a decimal string, the same convention
		// proto3 JSON uses for 64-bit integers.
		n, err := strconv.ParseInt(fields["integer"].GetStringValue(), 10, 64)
		if err != nil {
			return nil, err
		}
		r.integer = n
	case ReplyString:
		r.text = fields["string"].GetStringValue()
	case ReplyError:
		r.errText = fields["error"].GetStringValue()
	case ReplyArray:
		values := fields["array"].GetListValue().GetValues()
		r.elems = make([]*Reply, 0, len(values))
		for _, v := range values {
			inner := v.GetStructValue()
			if inner == nil {
				return nil, errors.New("array element is not a reply")
			}
			elem, err := replyFromStruct(inner)
			if err != nil {
				return nil, err
			}
			r.elems = append(r.elems, elem)
		}
	case ReplyNil, ReplyUnknown:
		// No payload to decode.
	}

	return r, nil
}

func replyTypeFromWire(name string) ReplyType {
	switch name {
	case "string":
		return ReplyString
	case "error":
		return ReplyError
	case "integer":
		return ReplyInteger
	case "array":
		return ReplyArray
	case "nil":
		return ReplyNil
	default:
		return ReplyUnknown
	}
}
