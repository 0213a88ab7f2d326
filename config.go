package airlock

import (
	"time"

	"github.com/go-kit/log"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Defaults applied by New for zero-valued Config fields.
const (
	DefaultWindow        = 5
	DefaultWaitPeriod    = time.Second
	DefaultMaxWaitPeriod = time.Minute
)

// Config collects the recognized Prober options. The zero value is a
// working configuration: every field left at its zero value takes the
// documented default.
type Config struct {
	// Disabled turns health gating off. A disabled Prober dispatches
	// every probe to the backend and keeps recording outcomes, so
	// re-enabling resumes from live history rather than a blank slate.
	Disabled bool

	// Window is the number of most recent outcomes considered when
	// judging health. Zero means DefaultWindow.
	Window int

	// Threshold is the minimum number of healthy outcomes within the
	// window required to be judged healthy. Zero means the window size,
	// so by default a single unhealthy outcome turns the Prober sick.
	Threshold int

	// WaitPeriod is the initial duration probes are short-circuited for
	// after the Prober turns sick. Zero means DefaultWaitPeriod.
	WaitPeriod time.Duration

	// MaxWaitPeriod caps the doubling of the wait period across failed
	// recovery cycles. Zero means DefaultMaxWaitPeriod.
	MaxWaitPeriod time.Duration

	// Now supplies the current time and must be monotonically
	// non-decreasing. Nil means time.Now.
	Now func() time.Time

	// Classifier maps probe results to outcomes. Nil means
	// DefaultClassifier.
	Classifier Classifier

	// Logger receives state transition events. Nil means no logging.
	Logger log.Logger

	// OnStateChange, when non-nil, runs synchronously on every state
	// transition with the Prober's mutex held. It must not call back
	// into the Prober.
	OnStateChange func(from, to State)
}

// resolve fills in defaults for zero-valued fields.
func (c Config) resolve() Config {
	if c.Window == 0 {
		c.Window = DefaultWindow
	}
	if c.Threshold == 0 {
		c.Threshold = c.Window
	}
	if c.WaitPeriod == 0 {
		c.WaitPeriod = DefaultWaitPeriod
	}
	if c.MaxWaitPeriod == 0 {
		c.MaxWaitPeriod = DefaultMaxWaitPeriod
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Classifier == nil {
		c.Classifier = DefaultClassifier
	}
	if c.Logger == nil {
		c.Logger = log.NewNopLogger()
	}
	return c
}

// Validate reports whether the configuration, after default resolution,
// satisfies the Prober invariants: a window of at least one outcome, a
// threshold within the window, and a wait period ceiling no smaller than
// the initial wait period.
func (c Config) Validate() error {
	c = c.resolve()
	return validation.ValidateStruct(&c,
		validation.Field(&c.Window, validation.Min(1)),
		validation.Field(&c.Threshold, validation.Min(1), validation.Max(c.Window)),
		validation.Field(&c.WaitPeriod, validation.Min(time.Duration(1))),
		validation.Field(&c.MaxWaitPeriod, validation.Min(c.WaitPeriod)),
	)
}
