// Package result folds per-batch publication outcomes into one overall
// publication result.
package result

import (
	"github.com/Nyeloz/VibeGuard/pkg/publish"
)

// Status classifies the overall outcome of one publication attempt.
type Status string

const (
	// StatusSuccess: every batch was published. An empty-but-valid request
	// publishes zero findings and is still a success.
	StatusSuccess Status = "success"
	// StatusPartialFailure: at least one batch succeeded and at least one
	// failed terminally.
	StatusPartialFailure Status = "partial_failure"
	// StatusTotalFailure: batches were attempted and none succeeded.
	StatusTotalFailure Status = "total_failure"
)

// FailureKind names why a batch was not published.
type FailureKind string

const (
	FailureTransient FailureKind = "transient"
	FailureTerminal  FailureKind = "terminal"
	FailureCancelled FailureKind = "cancelled"
)

// BatchFailure identifies one unpublished batch and the inclusive range of
// request finding indices it covered, so callers know exactly which findings
// never reached the host.
type BatchFailure struct {
	BatchIndex   int         `json:"batch_index"`
	FirstFinding int         `json:"first_finding"`
	LastFinding  int         `json:"last_finding"`
	Kind         FailureKind `json:"kind"`
	Reason       string      `json:"reason"`
}

// PublicationResult is the final word on one request: how many findings were
// published, which batches failed and why, and the overall status.
type PublicationResult struct {
	Status        Status         `json:"status"`
	Published     int            `json:"published"`
	FailedBatches []BatchFailure `json:"failed_batches,omitempty"`
}

// Aggregate merges per-batch outcomes into one result. It is a pure fold
// over the outcome list and never inspects shared state, so a future
// revision may produce the outcomes concurrently without touching it.
func Aggregate(outcomes []publish.BatchOutcome) PublicationResult {
	res := PublicationResult{Status: StatusSuccess}

	succeeded := 0
	for _, o := range outcomes {
		if o.Err == nil {
			res.Published += o.Published
			succeeded++
			continue
		}
		res.FailedBatches = append(res.FailedBatches, BatchFailure{
			BatchIndex:   o.BatchIndex,
			FirstFinding: o.First,
			LastFinding:  o.End - 1,
			Kind:         kindOf(o.Err),
			Reason:       o.Err.Error(),
		})
	}

	switch {
	case len(res.FailedBatches) == 0:
		res.Status = StatusSuccess
	case succeeded > 0:
		res.Status = StatusPartialFailure
	default:
		res.Status = StatusTotalFailure
	}
	return res
}

func kindOf(err error) FailureKind {
	switch {
	case publish.IsCancellation(err):
		return FailureCancelled
	case publish.IsTransient(err):
		return FailureTransient
	default:
		return FailureTerminal
	}
}

// Unpublished expands the failed batches back into individual finding
// indices, in request order.
func (r PublicationResult) Unpublished() []int {
	var indices []int
	for _, bf := range r.FailedBatches {
		for i := bf.FirstFinding; i <= bf.LastFinding; i++ {
			indices = append(indices, i)
		}
	}
	return indices
}
