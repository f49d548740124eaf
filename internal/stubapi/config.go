package stubapi

// Config holds configuration for the stub API server.
type Config struct {
	// Port is the port on which the stub API listens.
	Port int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Port: 9999,
	}
}
