package llm

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// RetryPolicy controls the automatic retry of transient provider failures:
// five attempts, exponential base 2, one second initial delay, retrying only
// HTTP 429, 500, 503 and 504.
type RetryPolicy struct {
	Attempts     int
	ExpBase      float64
	InitialDelay time.Duration
	StatusCodes  []int
}

// DefaultRetryPolicy returns the standard retry policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts:     5,
		ExpBase:      2,
		InitialDelay: time.Second,
		StatusCodes:  []int{429, 500, 503, 504},
	}
}

func (p RetryPolicy) retryableStatus(code int) bool {
	for _, c := range p.StatusCodes {
		if c == code {
			return true
		}
	}
	return false
}

// retryable reports whether the error is worth another attempt: a retry-
// eligible HTTP status from the provider, or a transport-level failure.
func (p RetryPolicy) retryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return p.retryableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode > 0 {
			return p.retryableStatus(reqErr.HTTPStatusCode)
		}
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// delay returns the backoff before the given (zero-based) retry.
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.InitialDelay
	for i := 0; i < attempt; i++ {
		d = time.Duration(float64(d) * p.ExpBase)
	}
	return d
}

// retryService decorates a Service with retry/backoff and optional
// client-side rate limiting.
type retryService struct {
	inner   Service
	policy  RetryPolicy
	limiter *rate.Limiter
}

// WithRetry wraps a Service with the given retry policy. Pass a nil limiter
// to disable client-side rate limiting.
func WithRetry(inner Service, policy RetryPolicy, limiter *rate.Limiter) Service {
	if policy.Attempts <= 0 {
		policy = DefaultRetryPolicy()
	}
	return &retryService{inner: inner, policy: policy, limiter: limiter}
}

func (r *retryService) do(ctx context.Context, call func() error) error {
	var lastErr error
	for attempt := 0; attempt < r.policy.Attempts; attempt++ {
		if attempt > 0 {
			delay := r.policy.delay(attempt - 1)
			slog.Warn("LLM: transient failure, retrying",
				"attempt", attempt+1,
				"max_attempts", r.policy.Attempts,
				"delay", delay,
				"error", lastErr,
			)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		lastErr = call()
		if lastErr == nil {
			return nil
		}
		if !r.policy.retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (r *retryService) Chat(ctx context.Context, messages []Message) (string, *CallStats, error) {
	var content string
	var stats *CallStats
	err := r.do(ctx, func() error {
		var callErr error
		content, stats, callErr = r.inner.Chat(ctx, messages)
		return callErr
	})
	return content, stats, err
}

func (r *retryService) ChatWithTools(ctx context.Context, messages []Message, tools []ToolDescriptor) (*ChatResponse, *CallStats, error) {
	var resp *ChatResponse
	var stats *CallStats
	err := r.do(ctx, func() error {
		var callErr error
		resp, stats, callErr = r.inner.ChatWithTools(ctx, messages, tools)
		return callErr
	})
	return resp, stats, err
}
