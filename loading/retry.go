package loading

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	log "github.com/sirupsen/logrus"

	"github.com/IgorRikhard/GameArchitecture/common/stats"
)

// RetryPolicy bounds the retries of a RetryOperation. Zero intervals keep the
// backoff package defaults.
type RetryPolicy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func (p RetryPolicy) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	b.MaxElapsedTime = 0
	return backoff.WithMaxRetries(b, p.MaxRetries)
}

// RetryOperation loads the wrapped operation again while it fails, up to
// MaxRetries more times. Context errors end it immediately.
type RetryOperation struct {
	op     Operation
	policy RetryPolicy
	stat   stats.StatsReceiver
}

func NewRetryOperation(op Operation, policy RetryPolicy, stat stats.StatsReceiver) *RetryOperation {
	return &RetryOperation{op: op, policy: policy, stat: stat.Scope(stats.LoadingScope)}
}

func (r *RetryOperation) Description() string {
	return r.op.Description()
}

func (r *RetryOperation) Load(ctx context.Context) error {
	try := 1
	return backoff.Retry(func() error {
		if try > 1 {
			log.Debugf("Retrying %q, try #%d", r.op.Description(), try)
			r.stat.Counter(stats.LoadingRetryCounter).Inc(1)
		}
		try++
		err := r.op.Load(ctx)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(r.policy.backOff(), ctx))
}
