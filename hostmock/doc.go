/*
Package hostmock provides a configurable stand-in for the waPC host call
used throughout the SDK. It lets tests validate the namespace, capability,
function, and payload of outgoing host calls and return canned responses
or errors without a running host.

	mock, err := hostmock.New(hostmock.Config{
		ExpectedNamespace:  "kvmod",
		ExpectedCapability: "kvstore",
		ExpectedFunction:   "get",
		Response: func() []byte {
			return responseBytes
		},
	})
	if err != nil {
		// handle error
	}

	client, err := kv.New(kv.Config{HostCall: mock.HostCall})

Set Fail to force the mock to return an error, optionally supplying a
custom Error value. Provide a PayloadValidator to assert over the raw
request bytes.
*/
package hostmock
