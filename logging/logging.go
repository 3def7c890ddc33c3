package logging

import (
	sdk "github.com/kvmod-project/sdk"
	wapc "github.com/wapc/wapc-guest-tinygo"
)

const capabilityName = "logging"

// Level names match the store's log directive levels on the wire.
const (
	levelDebug   = "debug"
	levelVerbose = "verbose"
	levelNotice  = "notice"
	levelWarning = "warning"
)

// Client exposes convenience helpers for sending log entries to the host
// runtime. Levels mirror the store's own log levels.
type Client interface {
	Debug(message string)
	Verbose(message string)
	Notice(message string)
	Warning(message string)
}

// Config controls how a Client instance interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig sdk.RuntimeConfig

	// HostCall overrides the waPC host function used for logging operations.
	HostCall func(string, string, string, []byte) ([]byte, error)
}

// client implements Client using the configured host call entrypoint.
type client struct {
	runtime  sdk.RuntimeConfig
	hostCall func(string, string, string, []byte) ([]byte, error)
}

// New creates a Client that emits logs through the configured host capability.
func New(cfg Config) (Client, error) {
	runtimeCfg := cfg.SDKConfig
	if runtimeCfg.Namespace == "" {
		runtimeCfg.Namespace = sdk.DefaultNamespace
	}

	hostCall := cfg.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	return &client{
		runtime:  runtimeCfg,
		hostCall: hostCall,
	}, nil
}

func (c *client) Debug(message string)   { c.log(levelDebug, message) }
func (c *client) Verbose(message string) { c.log(levelVerbose, message) }
func (c *client) Notice(message string)  { c.log(levelNotice, message) }
func (c *client) Warning(message string) { c.log(levelWarning, message) }

// log sends a log entry to the host as a best-effort call.
func (c *client) log(level string, message string) {
	_, _ = c.hostCall(c.runtime.Namespace, capabilityName, level, []byte(message))
}
