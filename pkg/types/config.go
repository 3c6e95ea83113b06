package types

import "errors"

// Config holds the memory backend selection and session options.
type Config struct {
	Memory        string `json:"memory" yaml:"memory" mapstructure:"memory"`
	DataDir       string `json:"data_dir" yaml:"data_dir,omitempty" mapstructure:"data_dir"`
	EntryFallback string `json:"entry_fallback" yaml:"entry_fallback" mapstructure:"entry_fallback"`
	Locale        string `json:"locale" yaml:"locale,omitempty" mapstructure:"locale"`
	LogLevel      string `json:"log_level" yaml:"log_level,omitempty" mapstructure:"log_level"`
}

// Supported redirect memory backends.
const (
	MemoryInProcess = "memory"
	MemorySQLite    = "sqlite"
)

// Entry fallback modes. With FallbackGuard a fresh entry navigation settles
// on the entry state and the guard issues a corrective navigation. With
// FallbackEager the entry state redirects to the results state directly.
const (
	FallbackGuard = "guard"
	FallbackEager = "eager"
)

// Config validation errors.
var (
	ErrMemoryEmpty          = errors.New("memory backend must not be empty")
	ErrMemoryUnknown        = errors.New("unknown memory backend")
	ErrEntryFallbackUnknown = errors.New("unknown entry fallback mode")
)

var knownMemories = map[string]bool{
	MemoryInProcess: true,
	MemorySQLite:    true,
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Memory:        MemoryInProcess,
		EntryFallback: FallbackGuard,
		Locale:        "en",
		LogLevel:      "warn",
	}
}

// Validate checks that the Config is well-formed. An empty EntryFallback is
// treated as FallbackGuard.
func (c Config) Validate() error {
	if c.Memory == "" {
		return ErrMemoryEmpty
	}
	if !knownMemories[c.Memory] {
		return ErrMemoryUnknown
	}
	switch c.EntryFallback {
	case "", FallbackGuard, FallbackEager:
	default:
		return ErrEntryFallbackUnknown
	}
	return nil
}
