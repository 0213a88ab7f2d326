package airlock

import (
	"context"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/pkg/errors"
)

// State labels the two health conditions a Prober derives from its outcome
// window.
type State int

const (
	// StateHealthy lets probes through to the backend.
	StateHealthy State = iota

	// StateSick short-circuits probes until the wait period elapses.
	StateSick
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateHealthy:
		return "healthy"
	case StateSick:
		return "sick"
	default:
		return "unknown"
	}
}

// ErrInvalidArgument is returned by SetEnabled when the supplied value is
// not strictly a bool.
var ErrInvalidArgument = errors.New("airlock: argument must be a bool")

// ErrBypassed is returned by Probe and CustomProbe when the backend is
// sick, the wait period has not elapsed, and no bypass path was supplied.
var ErrBypassed = errors.New("airlock: probe bypassed, backend is sick")

// Backend performs the real call against the monitored dependency. The
// Prober invokes it outside its mutex, exactly once per allowed attempt.
// Timeouts and cancellation belong to the Backend's own ctx handling.
type Backend func(ctx context.Context) (interface{}, error)

// Bypass is the fallback invoked when a probe is short-circuited. Its
// results are returned to the caller verbatim and never recorded as an
// outcome, since the backend was not attempted.
type Bypass func(ctx context.Context) (interface{}, error)

// Prober gates attempts against a single monitored backend. It keeps a
// rolling window of recent outcomes, judges the backend healthy while the
// healthy outcomes in that window reach a threshold, and short-circuits
// attempts for an exponentially growing wait period while sick. Share one
// Prober per backend across all its callers; all methods are safe for
// concurrent use.
type Prober struct {
	mtx               sync.Mutex
	enabled           bool
	window            *window
	threshold         int
	waitPeriod        time.Duration
	defaultWaitPeriod time.Duration
	maxWaitPeriod     time.Duration
	sickSince         time.Time
	waiting           bool
	now               func() time.Time
	classify          Classifier
	logger            log.Logger
	onStateChange     func(from, to State)
}

// New constructs a Prober. Zero-valued Config fields take the documented
// defaults; explicitly invalid values fail fast without constructing
// anything.
func New(config Config) (*Prober, error) {
	config = config.resolve()
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "airlock: invalid config")
	}
	return &Prober{
		enabled:           !config.Disabled,
		window:            newWindow(config.Window),
		threshold:         config.Threshold,
		waitPeriod:        config.WaitPeriod,
		defaultWaitPeriod: config.WaitPeriod,
		maxWaitPeriod:     config.MaxWaitPeriod,
		now:               config.Now,
		classify:          config.Classifier,
		logger:            config.Logger,
		onStateChange:     config.OnStateChange,
	}, nil
}

// Healthy reports whether the healthy outcomes in the window reach the
// threshold. Absent outcomes never count as healthy, so a prober whose
// window has not yet filled can already be judged sick, and a freshly
// constructed prober with a nonzero threshold reports sick until enough
// healthy outcomes accumulate. Fresh sickness of that kind never blocks
// probes; only a recorded failure arms the wait period.
func (p *Prober) Healthy() bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.healthy()
}

// Sick is the complement of Healthy.
func (p *Prober) Sick() bool {
	return !p.Healthy()
}

// State returns the current state derived from the window and threshold.
func (p *Prober) State() State {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.state()
}

func (p *Prober) healthy() bool {
	return p.window.healthyCount() >= p.threshold
}

func (p *Prober) state() State {
	if p.healthy() {
		return StateHealthy
	}
	return StateSick
}

// Ok records a healthy outcome. Recovering to health resets the wait
// period and clears the sickness timestamp.
func (p *Prober) Ok() {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	from := p.state()
	p.window.push(true)
	if from == StateSick && p.state() == StateHealthy {
		p.waitPeriod = p.defaultWaitPeriod
		p.sickSince = time.Time{}
		p.waiting = false
		p.transition(StateSick, StateHealthy)
	}
}

// NotOk records an unhealthy outcome. The first failure that leaves the
// prober sick stamps the sickness time and arms the default wait period. A
// further failure recorded after the wait period has elapsed means a
// recovery probe was let through and failed, so the wait period doubles,
// capped at the maximum, and a new wait cycle starts. Failures recorded
// mid-wait leave the wait period untouched.
func (p *Prober) NotOk() {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	from := p.state()
	p.window.push(false)
	switch {
	case p.healthy():
		// Still above threshold, nothing to do.
	case !p.waiting:
		p.waiting = true
		p.sickSince = p.now()
		p.waitPeriod = p.defaultWaitPeriod
		if from == StateHealthy {
			p.transition(StateHealthy, StateSick)
		}
	case p.waitElapsed():
		p.waitPeriod = exponential(p.waitPeriod, p.maxWaitPeriod)
		p.sickSince = p.now()
	}
}

// Allow reports whether an attempt against the backend may proceed right
// now: the prober is disabled, healthy, or sick with its wait period
// elapsed. Allow has no side effects; outcomes are recorded separately
// through Ok and NotOk.
func (p *Prober) Allow() bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.allow()
}

func (p *Prober) allow() bool {
	if !p.enabled || p.healthy() {
		return true
	}
	return !p.waiting || p.waitElapsed()
}

func (p *Prober) waitElapsed() bool {
	return p.now().Sub(p.sickSince) >= p.waitPeriod
}

// Probe dispatches one attempt. When the attempt is allowed, backend runs
// and its result is fed to the prober's classifier: an unhealthy outcome
// is recorded through NotOk, anything else through Ok, and the backend's
// results are returned either way. When the attempt is refused, bypass
// runs instead if non-nil, and a nil bypass yields ErrBypassed.
func (p *Prober) Probe(ctx context.Context, backend Backend, bypass Bypass) (interface{}, error) {
	if !p.Allow() {
		if bypass != nil {
			return bypass(ctx)
		}
		return nil, ErrBypassed
	}
	response, err := backend(ctx)
	if p.classify(err, response) == OutcomeUnhealthy {
		p.NotOk()
	} else {
		p.Ok()
	}
	return response, err
}

// CustomProbe dispatches one attempt without consulting the classifier. A
// backend error routes to onError, where the caller decides what, if
// anything, to record: calling Ok there marks an expected error benign,
// calling NotOk counts it against the window. Successful attempts record
// nothing. Gating is identical to Probe, with ErrBypassed standing in for
// a refused attempt.
func (p *Prober) CustomProbe(ctx context.Context, backend Backend, onError func(error)) (interface{}, error) {
	if !p.Allow() {
		return nil, ErrBypassed
	}
	response, err := backend(ctx)
	if err != nil && onError != nil {
		onError(err)
	}
	return response, err
}

// SetEnabled flips the gating switch. The value must be strictly a bool;
// anything else, including bool-ish strings from loosely typed
// configuration sources, leaves the prober untouched and returns an error
// wrapping ErrInvalidArgument.
func (p *Prober) SetEnabled(value interface{}) error {
	enabled, ok := value.(bool)
	if !ok {
		return errors.Wrapf(ErrInvalidArgument, "got %T", value)
	}
	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.enabled = enabled
	return nil
}

// Enabled reports whether health gating is on.
func (p *Prober) Enabled() bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.enabled
}

// WaitPeriod returns the duration of the current wait cycle.
func (p *Prober) WaitPeriod() time.Duration {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.waitPeriod
}

// SickSince returns the start of the current wait cycle. The bool is
// false while no wait cycle is armed.
func (p *Prober) SickSince() (time.Time, bool) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	if !p.waiting {
		return time.Time{}, false
	}
	return p.sickSince, true
}

// transition runs with the mutex held.
func (p *Prober) transition(from, to State) {
	p.logger.Log("from", from, "to", to, "wait_period", p.waitPeriod)
	if p.onStateChange != nil {
		p.onStateChange(from, to)
	}
}

// exponential doubles d up to max.
func exponential(d, max time.Duration) time.Duration {
	d *= 2
	if d > max {
		d = max
	}
	return d
}
