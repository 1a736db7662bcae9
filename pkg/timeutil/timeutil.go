package timeutil

import (
	"math"
	"math/rand"
	"time"
)

// durationPtr is a helper function to create a pointer to a time.Duration
func DurationPtr(d time.Duration) *time.Duration {
	return &d
}

// MaxDuration returns the largest duration in durations, or 0 for an empty slice.
// It does not mutate its argument.
func MaxDuration(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}
	max := durations[0]
	for _, d := range durations[1:] {
		if d > max {
			max = d
		}
	}
	return max
}

// ComputeJitter returns a uniform random duration in [0, max) drawn from rng,
// or 0 when max is not positive.
func ComputeJitter(max time.Duration, rng rand.Rand) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rng.Int63n(int64(max)))
}

// ExponentialBackoffDelay computes initialDuration * multiplier^(backoffCount-1),
// capped at maxDuration, plus a uniform random jitter in [0, jitter).
// backoffCount < 1 is treated as 1 (the first attempt never waits longer than
// the initial duration).
func ExponentialBackoffDelay(backoffCount int, jitter time.Duration, rng rand.Rand, backoffParam BackoffParam) time.Duration {
	if backoffCount < 1 {
		backoffCount = 1
	}

	exponent := float64(backoffCount - 1)
	delay := float64(backoffParam.InitialDuration()) * math.Pow(backoffParam.Multiplier(), exponent)

	if max := backoffParam.MaxDuration(); max > 0 && delay > float64(max) {
		delay = float64(max)
	}

	result := time.Duration(delay)

	if jitter > 0 {
		result += time.Duration(rng.Int63n(int64(jitter)))
	}

	return result
}
