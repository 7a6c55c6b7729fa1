package timeutil

import (
	"math"
	"math/rand"
	"time"
)

// BackoffParam is an exponential backoff curve: the first wait, the growth
// factor per attempt and the cap.
type BackoffParam struct {
	initialDuration time.Duration
	multiplier      float64
	maxDuration     time.Duration
}

func NewBackoffParam(initialDuration time.Duration, multiplier float64, maxDuration time.Duration) BackoffParam {
	return BackoffParam{
		initialDuration: initialDuration,
		multiplier:      multiplier,
		maxDuration:     maxDuration,
	}
}

func (b *BackoffParam) InitialDuration() time.Duration { return b.initialDuration }

func (b *BackoffParam) Multiplier() float64 { return b.multiplier }

func (b *BackoffParam) MaxDuration() time.Duration { return b.maxDuration }

// ComputeJitter returns a random duration in [0, max). A non-positive max
// yields zero.
func ComputeJitter(max time.Duration, rng *rand.Rand) time.Duration {
	if max <= 0 || rng == nil {
		return 0
	}
	return time.Duration(rng.Int63n(int64(max)))
}

// ExponentialBackoffDelay returns the wait before retry number attempt
// (1-based): initial * multiplier^(attempt-1), capped at the maximum, plus
// up to jitter of random noise.
func ExponentialBackoffDelay(
	attempt int,
	jitter time.Duration,
	rng *rand.Rand,
	param BackoffParam,
) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := float64(param.initialDuration) * math.Pow(param.multiplier, float64(attempt-1))
	if param.maxDuration > 0 && delay > float64(param.maxDuration) {
		delay = float64(param.maxDuration)
	}
	return time.Duration(delay) + ComputeJitter(jitter, rng)
}
