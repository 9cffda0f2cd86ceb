package pool

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestRunExecutesAllItems(t *testing.T) {
	p := New(4)

	var done [100]atomic.Bool
	p.Run(context.Background(), len(done), func(ctx context.Context, i int) {
		done[i].Store(true)
	})

	for i := range done {
		if !done[i].Load() {
			t.Errorf("item %d never ran", i)
		}
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	const workers = 3
	p := New(workers)

	var active, peak atomic.Int64
	p.Run(context.Background(), 64, func(ctx context.Context, i int) {
		n := active.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		active.Add(-1)
	})

	if got := peak.Load(); got > workers {
		t.Errorf("observed %d concurrent items, limit is %d", got, workers)
	}
}

func TestRunWithCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(2)
	var ran atomic.Int64
	p.Run(ctx, 50, func(ctx context.Context, i int) {
		ran.Add(1)
	})

	if ran.Load() != 0 {
		t.Errorf("%d items ran under a cancelled context, want 0", ran.Load())
	}
}

func TestNewClampsWorkerCount(t *testing.T) {
	if got := New(0).Workers(); got != 1 {
		t.Errorf("New(0).Workers() = %d, want 1", got)
	}
	if got := New(-5).Workers(); got != 1 {
		t.Errorf("New(-5).Workers() = %d, want 1", got)
	}
}
