package dfa

// Config configures determinization.
type Config struct {
	// MaxStates is the maximum number of DFA states subset construction may
	// discover before failing with ErrStateLimitExceeded.
	//
	// Default: 1<<20 states. Each state costs alphabet-size transition slots
	// plus its NFA configuration, so the default bounds memory at a few
	// hundred MB for small alphabets.
	//
	// The reachable configuration count is at most 2^(NFA states), but stays
	// far smaller for realistic patterns. Patterns such as .*A.{16} need
	// every one of their 2^17 configurations.
	MaxStates int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates: 1 << 20,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of acceptable range.
func (c *Config) Validate() error {
	if c.MaxStates <= 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be > 0",
		}
	}
	return nil
}

// WithMaxStates returns a new config with the specified max states
func (c Config) WithMaxStates(maxStates int) Config {
	c.MaxStates = maxStates
	return c
}
