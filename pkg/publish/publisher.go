// Package publish pushes batches of findings to the external annotation
// host, sequentially and with idempotent retry.
package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/Nyeloz/VibeGuard/pkg/batch"
	"github.com/Nyeloz/VibeGuard/pkg/ui"
)

// Host is the external annotation API. One call publishes one batch.
// Implementations classify their failures as Transient or Terminal; any
// untyped error is treated as terminal and not retried. The idempotency key
// is stable across retries of the same batch, so a host that deduplicates on
// it must either reject or harmlessly ignore the repeat.
type Host interface {
	PublishBatch(ctx context.Context, idempotencyKey string, annotations []Annotation) error
}

// Config bounds the retry behavior for one publisher.
type Config struct {
	MaxRetryAttempts int
	BackoffBase      time.Duration
}

// BatchOutcome is the result of publishing one batch. First/End give the
// half-open finding-index range the batch covered in the original request.
type BatchOutcome struct {
	BatchIndex int
	First      int
	End        int
	Published  int
	Err        error
}

// Publisher publishes batches one at a time against a Host. It holds no
// per-request state and is safe to share across concurrent pipelines.
type Publisher struct {
	host Host
	cfg  Config
}

func New(host Host, cfg Config) *Publisher {
	return &Publisher{host: host, cfg: cfg}
}

// IdempotencyKey derives the stable key for one batch of one request: a
// name-based UUID over the request identity and batch index. The same
// request and index always map to the same key, so an ambiguous network
// outcome followed by a retry cannot duplicate annotations host-side.
func IdempotencyKey(requestID string, batchIndex int) string {
	name := fmt.Sprintf("vibeguard://%s/batch/%d", requestID, batchIndex)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

// Publish issues one host call per batch, in order, and returns one outcome
// per batch in the same order. Batch N is only attempted once batch N-1's
// outcome is recorded. A cancelled context stops before the next
// not-yet-started call; the remaining batches are recorded as
// cancellation failures so the aggregator can name every unpublished
// finding.
func (p *Publisher) Publish(ctx context.Context, requestID string, batches []batch.Batch) []BatchOutcome {
	outcomes := make([]BatchOutcome, 0, len(batches))

	for _, b := range batches {
		outcome := BatchOutcome{BatchIndex: b.Index, First: b.Start, End: b.End()}

		if err := ctx.Err(); err != nil {
			outcome.Err = err
			outcomes = append(outcomes, outcome)
			continue
		}

		key := IdempotencyKey(requestID, b.Index)
		ui.Debugf("publishing batch %d (findings %d-%d, key %s)", b.Index, b.Start, b.End()-1, key)

		if err := p.publishBatch(ctx, key, b); err != nil {
			outcome.Err = err
		} else {
			outcome.Published = len(b.Findings)
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func (p *Publisher) publishBatch(ctx context.Context, key string, b batch.Batch) error {
	annotations := toAnnotations(b.Findings)

	attempt := 0
	op := func() error {
		attempt++
		err := p.host.PublishBatch(ctx, key, annotations)
		if err == nil {
			return nil
		}
		if IsTransient(err) {
			ui.Debugf("batch %d attempt %d failed (retryable): %v", b.Index, attempt, err)
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = p.cfg.BackoffBase

	return backoff.Retry(op, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(p.cfg.MaxRetryAttempts)), ctx))
}
