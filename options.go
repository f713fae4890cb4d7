package rpn

// Options configures evaluation behavior.
type Options struct {
	// AllowLeftover returns the top of the stack instead of failing with
	// MalformedExpression when more than one operand remains (default: false).
	AllowLeftover bool

	// Logger receives per-token debug traces. Nil disables logging.
	Logger Logger
}

// DefaultOptions returns the default configuration for evaluation.
func DefaultOptions() Options {
	return Options{
		AllowLeftover: false,
		Logger:        nil,
	}
}
