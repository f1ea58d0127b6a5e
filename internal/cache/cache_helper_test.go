package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type entry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheHelper(client, "test:"), mr
}

func TestCacheHelper_GetSet(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	var got entry
	if err := helper.Get(ctx, "missing", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Fatalf("Get() missing error = %v", err)
	}

	if err := helper.Set(ctx, "one", entry{ID: 1, Name: "Science"}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !mr.Exists("test:one") {
		t.Fatal("expected prefixed key in redis")
	}
	if err := helper.Get(ctx, "one", &got); err != nil || got.Name != "Science" {
		t.Fatalf("Get() = %+v, %v", got, err)
	}

	mr.FastForward(2 * time.Minute)
	if err := helper.Get(ctx, "one", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() after ttl error = %v", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) (interface{}, error) {
		calls++
		return []entry{{ID: 1, Name: "Art"}}, nil
	}

	for i := 0; i < 3; i++ {
		var got []entry
		if err := helper.CacheOrExecute(ctx, "list", &got, time.Minute, fetch); err != nil {
			t.Fatalf("CacheOrExecute() error = %v", err)
		}
		if len(got) != 1 || got[0].Name != "Art" {
			t.Fatalf("CacheOrExecute() = %+v", got)
		}
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}

	failing := func(context.Context) (interface{}, error) { return nil, errors.New("offline") }
	var got []entry
	if err := helper.CacheOrExecute(ctx, "other", &got, time.Minute, failing); err == nil {
		t.Fatal("expected fetch error")
	}
	if mr.Exists("test:other") {
		t.Error("failed fetch must not be cached")
	}
}

func TestCacheHelper_Disabled(t *testing.T) {
	helper := NewCacheHelper(nil, "")
	ctx := context.Background()

	if helper.Enabled() {
		t.Fatal("helper without client reports enabled")
	}
	if err := helper.Set(ctx, "k", 1, time.Minute); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	if err := helper.HealthCheck(ctx); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("HealthCheck() error = %v", err)
	}

	var got int
	err := helper.CacheOrExecute(ctx, "k", &got, time.Minute, func(context.Context) (interface{}, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Errorf("CacheOrExecute() = %d, %v", got, err)
	}
}

func TestCacheHelper_BrokenRedisFallsBackToFetch(t *testing.T) {
	helper, mr := newTestHelper(t)
	mr.Close()

	var got int
	err := helper.CacheOrExecute(context.Background(), "k", &got, time.Minute, func(context.Context) (interface{}, error) { return 3, nil })
	if err != nil || got != 3 {
		t.Errorf("CacheOrExecute() = %d, %v", got, err)
	}
}
