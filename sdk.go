package sdk

import (
	"errors"
	"fmt"

	wapc "github.com/wapc/wapc-guest-tinygo"
)

// DefaultNamespace is used when no explicit namespace is provided.
const DefaultNamespace = "kvmod"

var (
	// ErrNoCommands is returned when the configuration registers no commands.
	ErrNoCommands = errors.New("at least one command is required")

	// ErrHandlerNil is returned when a command handler is nil.
	ErrHandlerNil = errors.New("command handler cannot be nil")
)

// Handler is a command entry point. It receives the raw argument payload the
// host forwards when the store dispatches the command, and returns the bytes
// to reply with.
type Handler func([]byte) ([]byte, error)

// Config provides configuration options for SDK initialization.
type Config struct {
	// Namespace controls the namespace to use for host callbacks.
	// If empty, DefaultNamespace is used.
	Namespace string

	// Commands maps command names to their handlers. Each entry is
	// registered with the host so the store can route the named command
	// to this module.
	Commands map[string]Handler
}

// RuntimeConfig carries configuration that is used during creation of SDK components.
type RuntimeConfig struct {
	// Namespace is the namespace used to scope host interactions.
	Namespace string
}

// SDK represents the initialized runtime with registered command handlers.
type SDK struct {
	// runtime holds the current runtime configuration snapshot.
	runtime RuntimeConfig

	// commands holds the handlers registered as waPC entry points.
	commands map[string]Handler
}

// New initializes the SDK and registers every configured command with waPC.
func New(config Config) (*SDK, error) {
	// Validate that at least one command is provided and none are nil
	if len(config.Commands) == 0 {
		return nil, ErrNoCommands
	}
	for name, fn := range config.Commands {
		if fn == nil {
			return nil, fmt.Errorf("%w: %q", ErrHandlerNil, name)
		}
	}

	// Create runtime configuration with defaults
	cfg := RuntimeConfig{Namespace: DefaultNamespace}

	// Override defaults with provided configuration
	if config.Namespace != "" {
		cfg.Namespace = config.Namespace
	}

	// Create SDK instance
	s := &SDK{
		runtime:  cfg,
		commands: make(map[string]Handler, len(config.Commands)),
	}

	// Register each command handler with waPC
	for name, fn := range config.Commands {
		s.commands[name] = fn
		wapc.RegisterFunction(name, wapc.Function(fn))
	}

	return s, nil
}

// Config returns the current runtime configuration snapshot.
func (s *SDK) Config() RuntimeConfig { return s.runtime }
