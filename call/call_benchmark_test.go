package call

import (
	"testing"

	sdk "github.com/kvmod-project/sdk"
	"github.com/kvmod-project/sdk/hostmock"
	pb "google.golang.org/protobuf/proto"
)

func BenchmarkCommands(b *testing.B) {
	const namespace = "benchmark"

	// Pre-marshal a happy-path integer reply
	intResp := func() []byte {
		bz, _ := pb.Marshal(integerReply(1))
		return bz
	}
	mockInt, _ := hostmock.New(hostmock.Config{
		ExpectedNamespace:  namespace,
		ExpectedCapability: "call",
		ExpectedFunction:   "incrby",
		Response:           intResp,
	})
	clientInt, _ := New(Config{SDKConfig: sdk.RuntimeConfig{Namespace: namespace}, HostCall: mockInt.HostCall})

	b.Run("Call2", func(b *testing.B) {
		b.ResetTimer()
		for range b.N {
			if _, err := clientInt.Call2("incrby", "benchmark-key", "1"); err != nil {
				b.Fatalf("Call2 failed: %v", err)
			}
		}
	})

	b.Run("CallInt2", func(b *testing.B) {
		b.ResetTimer()
		for range b.N {
			if got := clientInt.CallInt2("incrby", "benchmark-key", "1"); got != 1 {
				b.Fatalf("CallInt2 returned %d", got)
			}
		}
	})

	// Pre-marshal a happy-path keys reply
	keysResp := func() []byte {
		bz, _ := pb.Marshal(arrayReply(stringReply("a"), stringReply("b"), stringReply("c")))
		return bz
	}
	mockKeys, _ := hostmock.New(hostmock.Config{
		ExpectedNamespace:  namespace,
		ExpectedCapability: "call",
		ExpectedFunction:   "keys",
		Response:           keysResp,
	})
	clientKeys, _ := New(Config{SDKConfig: sdk.RuntimeConfig{Namespace: namespace}, HostCall: mockKeys.HostCall})

	b.Run("Keys", func(b *testing.B) {
		b.ResetTimer()
		for range b.N {
			if _, err := clientKeys.Keys("*"); err != nil {
				b.Fatalf("Keys failed: %v", err)
			}
		}
	})
}
