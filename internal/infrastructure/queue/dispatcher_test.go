package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"

	"github.com/securevault/vault-system/internal/core/ports"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingService struct {
	mu    sync.Mutex
	seen  map[string][]string
	fails map[string]bool
}

func (s *recordingService) Search(context.Context, ports.SearchInput) (*ports.SearchResult, error) {
	return nil, errors.New("not used")
}

func (s *recordingService) Import(_ context.Context, in ports.ImportInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails[in.CustomerName] {
		return errors.New("boom")
	}
	if s.seen == nil {
		s.seen = make(map[string][]string)
	}
	s.seen[in.AccountID] = append(s.seen[in.AccountID], in.CustomerName)
	return nil
}

func TestDispatcher_ImportsAllAndCounts(t *testing.T) {
	svc := &recordingService{fails: map[string]bool{"bad": true}}
	d := NewDispatcher(3, svc, zerolog.Nop())
	d.Start(context.Background())

	err := d.EnqueueBatch(context.Background(), []ports.ImportInput{
		{AccountID: "ACC-1", CustomerName: "first"},
		{AccountID: "ACC-2", CustomerName: "x"},
		{AccountID: "ACC-1", CustomerName: "second"},
		{AccountID: "ACC-3", CustomerName: "bad"},
		{AccountID: "ACC-1", CustomerName: "third"},
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	sum := d.Wait()
	if sum.Imported != 4 || sum.Failed != 1 {
		t.Fatalf("unexpected summary %+v", sum)
	}

	got := svc.seen["ACC-1"]
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("per-account order lost: %v", got)
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(5, &recordingService{}, zerolog.Nop())
	first := d.shardIndex("ACC-42")
	for i := 0; i < 10; i++ {
		if d.shardIndex("ACC-42") != first {
			t.Fatalf("shard index changed between calls")
		}
	}
	if first < 0 || first >= 5 {
		t.Fatalf("shard index out of range: %d", first)
	}
	d.Close()
}

func TestDispatcher_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher(2, &recordingService{}, zerolog.Nop())
	d.Start(ctx)
	cancel()

	if sum := d.Wait(); sum.Imported != 0 || sum.Failed != 0 {
		t.Fatalf("expected nothing imported, got %+v", sum)
	}
}

func TestDispatcher_EnqueueAfterCancelDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher(1, &recordingService{}, zerolog.Nop())
	d.Start(ctx)
	cancel()

	records := make([]ports.ImportInput, channelBuffer+1)
	for i := range records {
		records[i] = ports.ImportInput{AccountID: "ACC-1", CustomerName: "n"}
	}

	done := make(chan error, 1)
	go func() { done <- d.EnqueueBatch(ctx, records) }()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("EnqueueBatch blocked after cancel (%d records)", len(records))
	}
	d.Wait()
}

func TestDispatcher_EnqueueUnblocksWhenWorkersStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher(1, &recordingService{}, zerolog.Nop())
	d.Start(ctx)
	cancel()
	d.wg.Wait()

	// The worker is gone, so the buffer fills and the next send can only
	// end through the Start context.
	records := make([]ports.ImportInput, channelBuffer+1)
	for i := range records {
		records[i] = ports.ImportInput{AccountID: "ACC-1", CustomerName: "n"}
	}

	done := make(chan error, 1)
	go func() { done <- d.EnqueueBatch(context.Background(), records) }()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("EnqueueBatch blocked on a stopped worker")
	}

	sum := d.Wait()
	if sum.Imported != 0 || sum.Skipped > channelBuffer {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestDispatcher_WaitCountsUnconsumedAsSkipped(t *testing.T) {
	d := NewDispatcher(2, &recordingService{}, zerolog.Nop())

	err := d.EnqueueBatch(context.Background(), []ports.ImportInput{
		{AccountID: "ACC-1", CustomerName: "a"},
		{AccountID: "ACC-2", CustomerName: "b"},
		{AccountID: "ACC-3", CustomerName: "c"},
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if sum := d.Wait(); sum.Skipped != 3 || sum.Imported != 0 {
		t.Fatalf("expected 3 skipped, got %+v", sum)
	}
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingService{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	d.Wait()
}
