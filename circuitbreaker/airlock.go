package circuitbreaker

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	airlock "github.com/ep-infosec/31-uber-airlock"
)

// Airlock returns an endpoint.Middleware that gates the next endpoint
// behind the given health prober. Results flow through the prober's
// classifier, so unhealthy responses and errors count against its outcome
// window, and refused attempts fail fast with airlock.ErrBypassed.
//
// Share one prober per backend: wrapping several endpoints that talk to
// the same backend with the same prober pools their outcomes.
func Airlock(p *airlock.Prober) endpoint.Middleware {
	return AirlockWithBypass(p, nil)
}

// AirlockWithBypass behaves like Airlock, but invokes the bypass endpoint
// whenever the prober refuses an attempt, returning its results instead of
// airlock.ErrBypassed. Bypass results are never recorded as outcomes.
func AirlockWithBypass(p *airlock.Prober, bypass endpoint.Endpoint) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			var b airlock.Bypass
			if bypass != nil {
				b = func(ctx context.Context) (interface{}, error) {
					return bypass(ctx, request)
				}
			}
			return p.Probe(ctx, func(ctx context.Context) (interface{}, error) {
				return next(ctx, request)
			}, b)
		}
	}
}
