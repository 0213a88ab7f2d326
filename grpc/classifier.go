// Package grpc classifies probe outcomes by gRPC status code.
package grpc

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	airlock "github.com/ep-infosec/31-uber-airlock"
)

// DefaultUnhealthyCodes are the status codes judged unhealthy when none
// are given to Classifier: the gRPC analogs of HTTP 5xx, indicating
// trouble in the backend itself rather than in the request.
var DefaultUnhealthyCodes = []codes.Code{
	codes.Unknown,
	codes.DeadlineExceeded,
	codes.Internal,
	codes.Unavailable,
	codes.DataLoss,
}

// Classifier returns an airlock.Classifier that judges outcomes by gRPC
// status code. Status errors carrying one of the given codes are
// unhealthy; other status errors are business failures and leave the
// backend looking well. Errors carrying no status at all are judged
// unhealthy, and the response value is ignored.
func Classifier(unhealthy ...codes.Code) airlock.Classifier {
	if len(unhealthy) == 0 {
		unhealthy = DefaultUnhealthyCodes
	}
	set := make(map[codes.Code]struct{}, len(unhealthy))
	for _, code := range unhealthy {
		set[code] = struct{}{}
	}
	return func(err error, _ interface{}) airlock.Outcome {
		if err == nil {
			return airlock.OutcomeHealthy
		}
		st, ok := status.FromError(err)
		if !ok {
			return airlock.OutcomeUnhealthy
		}
		if _, found := set[st.Code()]; found {
			return airlock.OutcomeUnhealthy
		}
		return airlock.OutcomeHealthy
	}
}
