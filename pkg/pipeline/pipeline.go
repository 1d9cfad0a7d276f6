// Package pipeline runs one scan request end to end: validate, batch,
// publish, aggregate.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/Nyeloz/VibeGuard/pkg/batch"
	"github.com/Nyeloz/VibeGuard/pkg/publish"
	"github.com/Nyeloz/VibeGuard/pkg/result"
	"github.com/Nyeloz/VibeGuard/pkg/ui"
	"github.com/Nyeloz/VibeGuard/pkg/validate"
)

// Options configures one pipeline.
type Options struct {
	MaxBatchSize     int
	MaxRetryAttempts int
	BackoffBase      time.Duration
}

// Pipeline processes scan requests against one annotation host. It holds no
// per-request state: independent requests may run concurrently through the
// same Pipeline, each as its own sequential flow.
type Pipeline struct {
	publisher    *publish.Publisher
	maxBatchSize int
}

func New(host publish.Host, opts Options) *Pipeline {
	return &Pipeline{
		publisher: publish.New(host, publish.Config{
			MaxRetryAttempts: opts.MaxRetryAttempts,
			BackoffBase:      opts.BackoffBase,
		}),
		maxBatchSize: opts.MaxBatchSize,
	}
}

// RequestID derives a stable identity for a raw request body. Retrying the
// same body yields the same identity and therefore the same idempotency
// keys downstream.
func RequestID(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Run validates raw, partitions the findings, publishes every batch in
// order, and folds the outcomes into one result. A validation failure
// returns a *validate.ValidationError before any host call is made, so an
// invalid request can never be partially published. requestID may be empty,
// in which case it is derived from the body.
func (p *Pipeline) Run(ctx context.Context, requestID string, raw []byte) (result.PublicationResult, error) {
	findings, err := validate.Validate(raw)
	if err != nil {
		return result.PublicationResult{}, err
	}
	if requestID == "" {
		requestID = RequestID(raw)
	}

	batches, err := batch.Split(findings, p.maxBatchSize)
	if err != nil {
		return result.PublicationResult{}, err
	}
	ui.Debugf("request %s: %d findings in %d batches", requestID, len(findings), len(batches))

	outcomes := p.publisher.Publish(ctx, requestID, batches)
	return result.Aggregate(outcomes), nil
}
