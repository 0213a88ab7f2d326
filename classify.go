package airlock

import "net/http"

// Outcome is the health classification of one completed probe attempt.
type Outcome int

const (
	// OutcomeHealthy marks an attempt whose result leaves the backend
	// looking well.
	OutcomeHealthy Outcome = iota

	// OutcomeUnhealthy marks an attempt whose result indicates trouble in
	// the backend itself.
	OutcomeUnhealthy
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeHealthy:
		return "healthy"
	case OutcomeUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Classifier maps the raw result of a probe attempt to an Outcome. The
// response value is opaque to the Prober, so implementations are free to
// type-assert whatever shapes their transport produces. Classifiers judge
// backend health, not request success: a well-formed rejection should
// usually classify healthy even though the caller treats it as an error.
type Classifier func(err error, response interface{}) Outcome

// StatusCoder is implemented by response types that carry an HTTP-style
// status code. DefaultClassifier consults it before looking at the error.
type StatusCoder interface {
	StatusCode() int
}

// DefaultClassifier applies plain HTTP semantics. A response carrying a
// status code decides first, with 500 and above judged unhealthy. When the
// response carries no code, a non-nil error is unhealthy and anything else
// is healthy.
func DefaultClassifier(err error, response interface{}) Outcome {
	switch r := response.(type) {
	case *http.Response:
		if r != nil {
			return classifyStatusCode(r.StatusCode)
		}
	case StatusCoder:
		return classifyStatusCode(r.StatusCode())
	}
	if err != nil {
		return OutcomeUnhealthy
	}
	return OutcomeHealthy
}

func classifyStatusCode(code int) Outcome {
	if code >= http.StatusInternalServerError {
		return OutcomeUnhealthy
	}
	return OutcomeHealthy
}
