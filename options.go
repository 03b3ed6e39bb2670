package keydist

import "github.com/prometheus/client_golang/prometheus"

// config holds resolved construction options for a [Distributor].
type config struct {
	expectedConcurrency int
	maxTasksPerCycle    int
	hook                FailureHook
	registerer          prometheus.Registerer
}

// Option configures a [Distributor] at construction time.
type Option interface {
	apply(*config) error
}

type optionFunc struct {
	fn func(*config) error
}

func (o *optionFunc) apply(c *config) error { return o.fn(c) }

// WithExpectedConcurrency sets the expected number of keys that will be
// in flight concurrently, used to size the [StripedLock]. Defaults to 16.
func WithExpectedConcurrency(n int) Option {
	return &optionFunc{func(c *config) error {
		if n < 1 {
			return &InvalidArgumentError{Message: "expectedConcurrency must be >= 1"}
		}
		c.expectedConcurrency = n
		return nil
	}}
}

// WithMaxTasksPerCycle bounds how many tasks a worker runs before
// yielding the backend thread back to the executor, letting other keys
// get a turn. Defaults to unbounded (disables the yield).
func WithMaxTasksPerCycle(n int) Option {
	return &optionFunc{func(c *config) error {
		if n < 1 {
			return &InvalidArgumentError{Message: "maxTasksPerCycle must be >= 1"}
		}
		c.maxTasksPerCycle = n
		return nil
	}}
}

// WithFailureHook overrides the global [FailureHook] for failures
// observed by this distributor's workers. Failures of listeners on its
// futures are still reported to the global hook.
func WithFailureHook(hook FailureHook) Option {
	return &optionFunc{func(c *config) error {
		if hook == nil {
			return &InvalidArgumentError{Message: "hook must not be nil"}
		}
		c.hook = hook
		return nil
	}}
}

// WithMetricsRegisterer registers the distributor's [Metrics] against
// the given [prometheus.Registerer] instead of a private per-instance
// registry.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return &optionFunc{func(c *config) error {
		if reg == nil {
			return &InvalidArgumentError{Message: "registerer must not be nil"}
		}
		c.registerer = reg
		return nil
	}}
}

func resolveOptions(opts []Option) (*config, error) {
	c := &config{
		expectedConcurrency: 16,
		maxTasksPerCycle:    maxInt,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(c); err != nil {
			return nil, err
		}
	}
	if c.registerer == nil {
		c.registerer = prometheus.NewRegistry()
	}
	if c.hook == nil {
		c.hook = getFailureHook()
	}
	return c, nil
}

const maxInt = int(^uint(0) >> 1)
