package provider

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"
)

type retryingClient struct {
	next     ChatClient
	maxTries uint
	timeout  time.Duration
	log      logrus.FieldLogger
}

// WithRetry retries next with exponential backoff, up to maxRetries times
// after the first attempt. Each attempt gets its own timeout when timeout is
// positive. Errors wrapping ErrRejected and context cancellation are returned
// immediately.
func WithRetry(next ChatClient, maxRetries uint, timeout time.Duration, log logrus.FieldLogger) ChatClient {
	return &retryingClient{
		next:     next,
		maxTries: maxRetries + 1,
		timeout:  timeout,
		log:      log,
	}
}

func (c *retryingClient) Complete(ctx context.Context, req Request) (string, error) {
	attempt := func() (string, error) {
		attemptCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
		reply, err := c.next.Complete(attemptCtx, req)
		if err != nil && permanent(ctx, err) {
			return "", backoff.Permanent(err)
		}
		return reply, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond

	return backoff.Retry(ctx, attempt,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.log.WithError(err).WithField("retry_in", next).Warn("LLM call failed, retrying")
		}),
	)
}

func permanent(ctx context.Context, err error) bool {
	return errors.Is(err, ErrRejected) || ctx.Err() != nil
}
