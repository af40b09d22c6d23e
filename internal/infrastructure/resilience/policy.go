package resilience

import (
	"log/slog"
	"time"
)

const (
	OperationSummarize  = "ollama.generate"
	OperationPublish    = "nats.publish"
)

// RetryPolicy bounds the attempts made for one call.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

// BreakerPolicy configures the circuit breaker kept per operation.
type BreakerPolicy struct {
	Enabled          bool
	MinRequests      uint32
	FailureRatio     float64
	OpenTimeout      time.Duration
	HalfOpenMaxCalls uint32
}

type Config struct {
	Retry   RetryPolicy
	Breaker BreakerPolicy

	// OperationRetry replaces Retry for the named operations.
	OperationRetry map[string]RetryPolicy

	Logger        *slog.Logger
	OnStateChange func(operation, from, to string)
}

// DefaultConfig gives summary generation a single retry with a longer pause.
func DefaultConfig() Config {
	return Config{
		Retry: RetryPolicy{
			MaxAttempts:    3,
			InitialBackoff: 250 * time.Millisecond,
			MaxBackoff:     2 * time.Second,
			Multiplier:     2.0,
		},
		Breaker: BreakerPolicy{
			Enabled:          true,
			MinRequests:      10,
			FailureRatio:     0.5,
			OpenTimeout:      30 * time.Second,
			HalfOpenMaxCalls: 2,
		},
		OperationRetry: map[string]RetryPolicy{
			OperationSummarize: {
				MaxAttempts:    2,
				InitialBackoff: time.Second,
				MaxBackoff:     4 * time.Second,
				Multiplier:     2.0,
			},
		},
	}
}

func (c Config) normalize() Config {
	def := DefaultConfig()
	out := c
	out.Retry = c.Retry.normalize(def.Retry)
	out.Breaker = c.Breaker.normalize(def.Breaker)
	if len(c.OperationRetry) > 0 {
		out.OperationRetry = make(map[string]RetryPolicy, len(c.OperationRetry))
		for op, policy := range c.OperationRetry {
			out.OperationRetry[op] = policy.normalize(out.Retry)
		}
	}
	return out
}

func (c Config) retryFor(operation string) RetryPolicy {
	if policy, ok := c.OperationRetry[operation]; ok {
		return policy
	}
	return c.Retry
}

func (p RetryPolicy) normalize(def RetryPolicy) RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = def.InitialBackoff
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = def.MaxBackoff
	}
	p.MaxBackoff = max(p.MaxBackoff, p.InitialBackoff)
	if p.Multiplier < 1.0 {
		p.Multiplier = def.Multiplier
	}
	return p
}

func (p BreakerPolicy) normalize(def BreakerPolicy) BreakerPolicy {
	if p.MinRequests == 0 {
		p.MinRequests = def.MinRequests
	}
	if p.FailureRatio <= 0 || p.FailureRatio > 1 {
		p.FailureRatio = def.FailureRatio
	}
	if p.OpenTimeout <= 0 {
		p.OpenTimeout = def.OpenTimeout
	}
	if p.HalfOpenMaxCalls == 0 {
		p.HalfOpenMaxCalls = def.HalfOpenMaxCalls
	}
	return p
}
