package transcoder

// DefaultMaxDepth bounds type nesting during encoding.
const DefaultMaxDepth = 256

type config struct {
	maxDepth     int
	strictDecode bool
}

func defaultConfig() config {
	return config{maxDepth: DefaultMaxDepth}
}

// Option configures an Encoder or Decoder.
type Option func(*config)

// WithMaxDepth sets the maximum type nesting depth. Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithStrictDecode makes the decoder reject bytes left over after a primitive.
func WithStrictDecode() Option {
	return func(c *config) {
		c.strictDecode = true
	}
}

func newConfig(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
