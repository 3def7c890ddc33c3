package hash

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	sdk "github.com/kvmod-project/sdk"
	"github.com/kvmod-project/sdk/hostmock"
	pb "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// fieldRequestValidator asserts that a hash request carries the expected
// key/field pair (and value for writes) together with the default flag.
func fieldRequestValidator(wantFields map[string]string) func([]byte) error {
	return func(payload []byte) error {
		var req structpb.Struct
		if err := pb.Unmarshal(payload, &req); err != nil {
			return err
		}

		for name, want := range wantFields {
			got, ok := req.GetFields()[name]
			if !ok {
				return fmt.Errorf("request is missing %q", name)
			}
			if got.GetStringValue() != want {
				return fmt.Errorf("%s mismatch: want %q, got %q", name, want, got.GetStringValue())
			}
		}

		flags, ok := req.GetFields()["flags"]
		if !ok {
			return errors.New("request is missing flags")
		}
		if flags.GetNumberValue() != FlagsNone {
			return fmt.Errorf("flags mismatch: want %d, got %v", FlagsNone, flags.GetNumberValue())
		}

		return nil
	}
}

func valueResponse(value string) func() []byte {
	return func() []byte {
		resp := &structpb.Struct{Fields: map[string]*structpb.Value{
			"value": structpb.NewStringValue(value),
		}}
		b, _ := pb.Marshal(resp)
		return b
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	customHostCall := func(string, string, string, []byte) ([]byte, error) {
		return nil, nil
	}

	tt := []struct {
		name        string
		namespace   string
		hostCall    HostCall
		wantNS      string
		wantHostPtr uintptr
	}{
		{
			name:      "custom namespace",
			namespace: "custom",
			wantNS:    "custom",
		},
		{
			name:        "default namespace with override",
			hostCall:    customHostCall,
			wantNS:      sdk.DefaultNamespace,
			wantHostPtr: reflect.ValueOf(customHostCall).Pointer(),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c, err := New(Config{SDKConfig: sdk.RuntimeConfig{Namespace: tc.namespace}, HostCall: tc.hostCall})
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}

			if c.runtime.Namespace != tc.wantNS {
				t.Fatalf("namespace mismatch: want %q, got %q", tc.wantNS, c.runtime.Namespace)
			}

			if tc.wantHostPtr != 0 {
				if got := reflect.ValueOf(c.hostCall).Pointer(); got != tc.wantHostPtr {
					t.Fatalf("hostcall pointer mismatch: want %v, got %v", tc.wantHostPtr, got)
				}
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name      string
		key       string
		field     string
		mock      hostmock.Config
		wantValue string
		wantErr   error
	}{
		{
			name:  "success",
			key:   "user:100",
			field: "email",
			mock: hostmock.Config{
				ExpectedNamespace:  sdk.DefaultNamespace,
				ExpectedCapability: "hash",
				ExpectedFunction:   "get",
				PayloadValidator:   fieldRequestValidator(map[string]string{"key": "user:100", "field": "email"}),
				Response:           valueResponse("someone@example.com"),
			},
			wantValue: "someone@example.com",
		},
		{
			name:  "field not found",
			key:   "user:100",
			field: "phone",
			mock: hostmock.Config{
				ExpectedNamespace:  sdk.DefaultNamespace,
				ExpectedCapability: "hash",
				ExpectedFunction:   "get",
				Response: func() []byte {
					b, _ := pb.Marshal(&structpb.Struct{})
					return b
				},
			},
			wantErr: ErrFieldNotFound,
		},
		{
			name:  "host error",
			key:   "user:100",
			field: "email",
			mock: hostmock.Config{
				Fail:  true,
				Error: errors.New("host failure"),
			},
			wantErr: sdk.ErrHostCall,
		},
		{
			name:  "invalid response",
			key:   "user:100",
			field: "email",
			mock: hostmock.Config{
				ExpectedNamespace:  sdk.DefaultNamespace,
				ExpectedCapability: "hash",
				ExpectedFunction:   "get",
				Response: func() []byte {
					return []byte("invalid response")
				},
			},
			wantErr: sdk.ErrHostResponseInvalid,
		},
		{
			name:    "empty key",
			key:     "",
			field:   "email",
			wantErr: ErrInvalidKey,
		},
		{
			name:    "empty field",
			key:     "user:100",
			field:   "",
			wantErr: ErrInvalidField,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mock, err := hostmock.New(tc.mock)
			if err != nil {
				t.Fatalf("hostmock: %v", err)
			}

			client, err := New(Config{HostCall: mock.HostCall})
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}

			got, err := client.Get(tc.key, tc.field)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: want %v, got %v", tc.wantErr, err)
			}
			if got != tc.wantValue {
				t.Fatalf("value mismatch: want %q, got %q", tc.wantValue, got)
			}
		})
	}
}

func TestSet(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name    string
		key     string
		field   string
		value   string
		mock    hostmock.Config
		wantErr error
	}{
		{
			name:  "success",
			key:   "user:100",
			field: "email",
			value: "someone@example.com",
			mock: hostmock.Config{
				ExpectedNamespace:  sdk.DefaultNamespace,
				ExpectedCapability: "hash",
				ExpectedFunction:   "set",
				PayloadValidator: fieldRequestValidator(map[string]string{
					"key":   "user:100",
					"field": "email",
					"value": "someone@example.com",
				}),
			},
		},
		{
			name:  "empty value allowed",
			key:   "user:100",
			field: "nickname",
			value: "",
			mock: hostmock.Config{
				ExpectedNamespace:  sdk.DefaultNamespace,
				ExpectedCapability: "hash",
				ExpectedFunction:   "set",
				PayloadValidator: fieldRequestValidator(map[string]string{
					"key":   "user:100",
					"field": "nickname",
					"value": "",
				}),
			},
		},
		{
			name:  "host error",
			key:   "user:100",
			field: "email",
			value: "someone@example.com",
			mock: hostmock.Config{
				Fail: true,
			},
			wantErr: sdk.ErrHostCall,
		},
		{
			name:    "empty key",
			key:     "",
			field:   "email",
			value:   "x",
			wantErr: ErrInvalidKey,
		},
		{
			name:    "empty field",
			key:     "user:100",
			field:   "",
			value:   "x",
			wantErr: ErrInvalidField,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mock, err := hostmock.New(tc.mock)
			if err != nil {
				t.Fatalf("hostmock: %v", err)
			}

			client, err := New(Config{HostCall: mock.HostCall})
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}

			if err := client.Set(tc.key, tc.field, tc.value); !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: want %v, got %v", tc.wantErr, err)
			}
		})
	}
}
