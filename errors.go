package sdk

import "errors"

// Sentinel errors shared by every capability client. Clients join these with
// the underlying cause via errors.Join so callers can branch with errors.Is.
var (
	// ErrHostCall reports that the waPC call never completed on the host side.
	ErrHostCall = errors.New("host call failed")

	// ErrHostResponseInvalid reports a host payload that could not be decoded
	// into the expected response shape.
	ErrHostResponseInvalid = errors.New("host response is invalid or unexpected")

	// ErrHostError reports a call the host completed but answered with a
	// failure status.
	ErrHostError = errors.New("host returned an error status")
)
