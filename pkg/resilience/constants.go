package resilience

import "time"

// Circuit breaker defaults, tuned for the Kafka event producer: a burst
// of broker failures opens the circuit quickly and publishing resumes
// after a short half-open window.
const (
	DefaultMaxRequests           uint32        = 3
	DefaultInterval              time.Duration = 60 * time.Second
	DefaultTimeout               time.Duration = 30 * time.Second
	DefaultFailureThreshold      uint32        = 5
	DefaultFailureRatioThreshold float64       = 0.5
	DefaultMinRequestsToTrip     uint32        = 10
)

// Retry defaults, used for the MongoDB connection at startup
const (
	DefaultRetryMaxAttempts   int           = 5
	DefaultRetryInitialDelay  time.Duration = 500 * time.Millisecond
	DefaultRetryMaxDelay      time.Duration = 5 * time.Second
	DefaultRetryBackoffFactor float64       = 2.0
)
