package cli

// Config carries the global flags shared across command groups.
type Config struct {
	ContextName string
	StreamID    string
	ConsumerID  string
	AsCurl      bool
}
