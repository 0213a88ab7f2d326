// Package airlock implements a client-side health prober. A Prober sits
// in front of a single downstream dependency and decides, per attempt,
// whether the caller should issue the real request or fail fast. Health is
// judged over a rolling window of recent outcomes: while the healthy
// outcomes in the window reach a configured threshold the backend is
// considered healthy and every attempt goes through. Once they fall below
// it, attempts are short-circuited for a wait period that doubles on each
// failed recovery, up to a ceiling, so a struggling backend sees single
// recovery probes at growing intervals instead of the full client load.
//
// The simplest use wraps each call in Probe, which classifies the result
// and records the outcome automatically:
//
//	p, _ := airlock.New(airlock.Config{})
//	resp, err := p.Probe(ctx, func(ctx context.Context) (interface{}, error) {
//		return client.Do(req.WithContext(ctx))
//	}, nil)
//
// Callers that need manual control can consult Allow and record outcomes
// through Ok and NotOk themselves, or use CustomProbe to decide per error
// what to record. Package circuitbreaker adapts a Prober, and several
// third-party breaker engines, into Go kit endpoint middleware.
package airlock
