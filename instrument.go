package airlock

import "github.com/go-kit/kit/metrics"

// InstrumentingHook returns a state change hook that counts transitions
// and gauges current health, for wiring a Prober's OnStateChange to any
// Go kit metrics provider. The counter is labeled with the from and to
// state names; the gauge reads 1 while healthy and 0 while sick. Either
// metric may be nil to skip it.
func InstrumentingHook(transitions metrics.Counter, healthy metrics.Gauge) func(from, to State) {
	return func(from, to State) {
		if transitions != nil {
			transitions.With("from", from.String(), "to", to.String()).Add(1)
		}
		if healthy != nil {
			if to == StateHealthy {
				healthy.Set(1)
			} else {
				healthy.Set(0)
			}
		}
	}
}
