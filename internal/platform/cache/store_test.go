package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_DeduplicatesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "Alpha|Beta", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "2026-03-02", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "Alpha|Beta" {
				errCh <- errors.New("unexpected loaded value " + v)
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresEntriesAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	store := NewStore[int](time.Minute)
	store.now = func() time.Time { return now }

	store.Set("2026-03-02", 1)
	if _, ok := store.Get("2026-03-02"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(time.Minute)
	if _, ok := store.Get("2026-03-02"); ok {
		t.Fatalf("expected entry to expire at ttl boundary")
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	store := NewStore[int](0)
	store.now = func() time.Time { return now }

	store.Set("k", 7)
	now = now.AddDate(1, 0, 0)
	if v, ok := store.Get("k"); !ok || v != 7 {
		t.Fatalf("expected entry to survive: v=%d ok=%v", v, ok)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (int, error) {
		calls.Add(1)
		return 0, errors.New("db down")
	}

	for i := 0; i < 2; i++ {
		if _, err := store.GetOrLoad(context.Background(), "k", loader); err == nil {
			t.Fatalf("expected loader error")
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
}

func TestStore_InvalidateDiscardsLoadInFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	loading := make(chan struct{})
	release := make(chan struct{})

	done := make(chan string, 1)
	go func() {
		v, _ := store.GetOrLoad(context.Background(), "week", func(context.Context) (string, error) {
			close(loading)
			<-release
			return "stale", nil
		})
		done <- v
	}()

	<-loading
	store.Invalidate("week")

	// a caller after the invalidation must not join the stale load
	fresh, err := store.GetOrLoad(context.Background(), "week", func(context.Context) (string, error) {
		return "fresh", nil
	})
	if err != nil || fresh != "fresh" {
		t.Fatalf("expected fresh load, got %q err=%v", fresh, err)
	}

	close(release)
	if got := <-done; got != "stale" {
		t.Fatalf("in-flight caller should still get its own result, got %q", got)
	}
	if v, ok := store.Get("week"); !ok || v != "fresh" {
		t.Fatalf("stale load overwrote the cache: %q ok=%v", v, ok)
	}
}
