// Package circuitbreaker implements the circuit breaker pattern as
// endpoint middleware.
//
// Circuit breakers prevent thundering herds, and improve resiliency
// against intermittent errors. Every client-side endpoint should be
// wrapped in a circuit breaker. Airlock gates endpoints through a health
// prober; Gobreaker, HandyBreaker and Hystrix adapt third-party breaker
// engines to the same middleware seam.
package circuitbreaker
