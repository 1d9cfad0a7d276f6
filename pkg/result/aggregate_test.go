package result

import (
	"context"
	"reflect"
	"testing"

	"github.com/Nyeloz/VibeGuard/pkg/publish"
)

func TestAggregateZeroBatchesIsSuccess(t *testing.T) {
	res := Aggregate(nil)
	if res.Status != StatusSuccess {
		t.Errorf("expected success, got %s", res.Status)
	}
	if res.Published != 0 {
		t.Errorf("expected 0 published, got %d", res.Published)
	}
	if len(res.FailedBatches) != 0 {
		t.Errorf("expected no failed batches, got %v", res.FailedBatches)
	}
}

func TestAggregateAllSucceeded(t *testing.T) {
	res := Aggregate([]publish.BatchOutcome{
		{BatchIndex: 0, First: 0, End: 50, Published: 50},
		{BatchIndex: 1, First: 50, End: 70, Published: 20},
	})
	if res.Status != StatusSuccess {
		t.Errorf("expected success, got %s", res.Status)
	}
	if res.Published != 70 {
		t.Errorf("expected 70 published, got %d", res.Published)
	}
}

func TestAggregatePartialFailureNamesFindingRange(t *testing.T) {
	// Middle batch of three fails terminally.
	res := Aggregate([]publish.BatchOutcome{
		{BatchIndex: 0, First: 0, End: 10, Published: 10},
		{BatchIndex: 1, First: 10, End: 20, Err: publish.Terminal("payload rejected", nil)},
		{BatchIndex: 2, First: 20, End: 25, Published: 5},
	})

	if res.Status != StatusPartialFailure {
		t.Errorf("expected partial failure, got %s", res.Status)
	}
	if res.Published != 15 {
		t.Errorf("expected 15 published, got %d", res.Published)
	}
	if len(res.FailedBatches) != 1 {
		t.Fatalf("expected 1 failed batch, got %d", len(res.FailedBatches))
	}

	bf := res.FailedBatches[0]
	if bf.BatchIndex != 1 || bf.FirstFinding != 10 || bf.LastFinding != 19 {
		t.Errorf("failed batch misidentified: %+v", bf)
	}
	if bf.Kind != FailureTerminal {
		t.Errorf("expected terminal kind, got %s", bf.Kind)
	}

	want := []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}
	if got := res.Unpublished(); !reflect.DeepEqual(got, want) {
		t.Errorf("unpublished indices: expected %v, got %v", want, got)
	}
}

func TestAggregateTotalFailure(t *testing.T) {
	res := Aggregate([]publish.BatchOutcome{
		{BatchIndex: 0, First: 0, End: 10, Err: publish.Transient("network", nil)},
		{BatchIndex: 1, First: 10, End: 20, Err: publish.Terminal("rejected", nil)},
	})
	if res.Status != StatusTotalFailure {
		t.Errorf("expected total failure, got %s", res.Status)
	}
	if res.Published != 0 {
		t.Errorf("expected 0 published, got %d", res.Published)
	}
	if res.FailedBatches[0].Kind != FailureTransient {
		t.Errorf("expected transient kind, got %s", res.FailedBatches[0].Kind)
	}
}

func TestAggregateCancelledBatches(t *testing.T) {
	res := Aggregate([]publish.BatchOutcome{
		{BatchIndex: 0, First: 0, End: 10, Published: 10},
		{BatchIndex: 1, First: 10, End: 20, Err: context.Canceled},
	})
	if res.Status != StatusPartialFailure {
		t.Errorf("expected partial failure, got %s", res.Status)
	}
	if res.FailedBatches[0].Kind != FailureCancelled {
		t.Errorf("expected cancelled kind, got %s", res.FailedBatches[0].Kind)
	}
}
