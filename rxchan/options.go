package rxchan

// OverflowPolicy controls how an Observer behaves when its value buffer is
// full.
type OverflowPolicy uint8

const (
	// DropNewest drops the incoming value when the buffer is full.
	//
	// This policy never blocks the stream and is the default.
	DropNewest OverflowPolicy = iota

	// DropOldest drops one buffered value to make room for the incoming one.
	//
	// This policy never blocks and suits consumers that only care about the
	// latest state.
	DropOldest

	// Block blocks delivery until the consumer receives or the Observer is
	// closed.
	//
	// Blocking holds up every later event of the subscription; it is best
	// suited to tests and to consumers that must not miss values.
	Block
)

const defaultBufSize = 1024

// Option configures an Observer.
type Option func(*config)

type config struct {
	buf    int
	policy OverflowPolicy
}

// WithBuffer sets the value channel buffer size. Negative sizes are treated
// as zero.
func WithBuffer(n int) Option {
	return func(c *config) {
		c.buf = n
	}
}

// WithOverflowPolicy sets the overflow policy.
func WithOverflowPolicy(p OverflowPolicy) Option {
	return func(c *config) {
		c.policy = p
	}
}
