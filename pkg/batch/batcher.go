// Package batch partitions validated findings into publication-sized chunks.
package batch

import (
	"fmt"

	"github.com/Nyeloz/VibeGuard/pkg/contract"
)

// Batch is one contiguous, order-preserving slice of the validated findings.
// Start is the index of the first finding within the original request, so a
// failed batch can be reported back in terms of request indices.
type Batch struct {
	Index    int
	Start    int
	Findings []contract.Finding
}

// End returns the exclusive upper bound of the finding indices this batch
// covers.
func (b Batch) End() int {
	return b.Start + len(b.Findings)
}

// Split partitions findings strictly in input order into contiguous batches
// of at most maxBatchSize; the last batch may be smaller. Empty input yields
// no batches, which is a legal terminal state. The partition is a pure
// function of its arguments: identical input always yields an identical
// partition, which the publisher's idempotent retry relies on.
func Split(findings []contract.Finding, maxBatchSize int) ([]Batch, error) {
	if maxBatchSize < 1 {
		return nil, fmt.Errorf("maxBatchSize must be at least 1, got %d", maxBatchSize)
	}

	var batches []Batch
	for start := 0; start < len(findings); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(findings) {
			end = len(findings)
		}
		batches = append(batches, Batch{
			Index:    len(batches),
			Start:    start,
			Findings: findings[start:end],
		})
	}
	return batches, nil
}
