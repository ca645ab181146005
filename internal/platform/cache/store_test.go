package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	if _, ok := store.Get(ctx, "bidding"); ok {
		t.Fatal("expected miss on empty store")
	}

	store.Set(ctx, "bidding", true)
	value, ok := store.Get(ctx, "bidding")
	if !ok || value != true {
		t.Fatalf("expected cached value, got %v ok=%t", value, ok)
	}

	store.Delete(ctx, "bidding")
	if _, ok := store.Get(ctx, "bidding"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(10 * time.Millisecond)

	store.Set(ctx, "bidding", true)
	time.Sleep(25 * time.Millisecond)

	if _, ok := store.Get(ctx, "bidding"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestStore_GetOrLoadSharesSingleLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	var loads int32
	const workers = 10
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			value, err := store.GetOrLoad(ctx, "settings", func(context.Context) (any, error) {
				atomic.AddInt32(&loads, 1)
				time.Sleep(15 * time.Millisecond)
				return "loaded", nil
			})
			if err != nil {
				t.Errorf("GetOrLoad error: %v", err)
			}
			if value != "loaded" {
				t.Errorf("unexpected value: %v", value)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&loads); got != 1 {
		t.Fatalf("expected one load, got %d", got)
	}
}

func TestStore_GetOrLoadErrorNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)

	boom := errors.New("load failed")
	if _, err := store.GetOrLoad(ctx, "settings", func(context.Context) (any, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}

	value, err := store.GetOrLoad(ctx, "settings", func(context.Context) (any, error) {
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad error: %v", err)
	}
	if value != "recovered" {
		t.Fatalf("expected fresh load after error, got %v", value)
	}
}
