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

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "players", nil
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
			v, err := store.GetOrLoad(context.Background(), "catalog:players", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "players" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	t.Parallel()

	store := NewStore(10 * time.Millisecond)
	ctx := context.Background()

	store.Set(ctx, "k", "v")
	if _, ok := store.Get(ctx, "k"); !ok {
		t.Fatal("value missing right after Set")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("value survived past its TTL")
	}
}

func TestStore_DeleteAndDeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "catalog:players", 1)
	store.Set(ctx, "catalog:teams", 2)
	store.Set(ctx, "other", 3)

	store.Delete(ctx, "other")
	if _, ok := store.Get(ctx, "other"); ok {
		t.Fatal("deleted key still present")
	}

	store.DeletePrefix(ctx, "catalog:")
	if _, ok := store.Get(ctx, "catalog:players"); ok {
		t.Fatal("prefix delete missed catalog:players")
	}
	if _, ok := store.Get(ctx, "catalog:teams"); ok {
		t.Fatal("prefix delete missed catalog:teams")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
