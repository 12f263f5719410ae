package repositories

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newQuotaRepo(t *testing.T) *QuotaRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return &QuotaRepository{RDB: rdb}
}

func TestConsumeWithinLimit(t *testing.T) {
	repo := newQuotaRepo(t)
	ctx := context.Background()

	for i := 1; i <= RerankQuotaLimit; i++ {
		allowed, err := repo.Consume(ctx, QuotaScopeRerank, 42, RerankQuotaLimit)
		if err != nil {
			t.Fatalf("Consume #%d: %v", i, err)
		}
		if !allowed {
			t.Errorf("use %d of %d should be allowed", i, RerankQuotaLimit)
		}
	}

	allowed, err := repo.Consume(ctx, QuotaScopeRerank, 42, RerankQuotaLimit)
	if err != nil {
		t.Fatalf("Consume over limit: %v", err)
	}
	if allowed {
		t.Error("use beyond the limit should be denied")
	}
}

func TestConsumeIsPerUserAndScope(t *testing.T) {
	repo := newQuotaRepo(t)
	ctx := context.Background()

	for i := 0; i < NLSearchDailyLimit; i++ {
		if _, err := repo.Consume(ctx, QuotaScopeNLSearch, 1, NLSearchDailyLimit); err != nil {
			t.Fatal(err)
		}
	}

	// Another user and another scope are unaffected.
	if allowed, _ := repo.Consume(ctx, QuotaScopeNLSearch, 2, NLSearchDailyLimit); !allowed {
		t.Error("other user should not share the counter")
	}
	if allowed, _ := repo.Consume(ctx, QuotaScopeRerank, 1, RerankQuotaLimit); !allowed {
		t.Error("other scope should not share the counter")
	}
}

func TestUsage(t *testing.T) {
	repo := newQuotaRepo(t)
	ctx := context.Background()

	count, err := repo.Usage(ctx, QuotaScopeRerank, 9)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("fresh usage = %d, want 0", count)
	}

	repo.Consume(ctx, QuotaScopeRerank, 9, RerankQuotaLimit)
	repo.Consume(ctx, QuotaScopeRerank, 9, RerankQuotaLimit)

	count, err = repo.Usage(ctx, QuotaScopeRerank, 9)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("usage = %d, want 2", count)
	}
}

func TestMatchedOrderRoundTrip(t *testing.T) {
	repo := newQuotaRepo(t)
	ctx := context.Background()

	ids, err := repo.GetMatchedOrder(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if ids != nil {
		t.Errorf("expected nil for empty cache, got %v", ids)
	}

	want := []string{"job-3", "job-1", "job-2"}
	if err := repo.CacheMatchedOrder(ctx, 5, want); err != nil {
		t.Fatal(err)
	}

	ids, err = repo.GetMatchedOrder(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("GetMatchedOrder = %v, want %v", ids, want)
	}
}

func TestConsumeSetsDailyExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	repo := &QuotaRepository{RDB: rdb}
	ctx := context.Background()

	if _, err := repo.Consume(ctx, QuotaScopeNLSearch, 11, NLSearchDailyLimit); err != nil {
		t.Fatal(err)
	}

	key := quotaKey(QuotaScopeNLSearch, 11, time.Now())
	ttl := mr.TTL(key)
	if ttl <= 0 || ttl > 24*time.Hour {
		t.Errorf("TTL = %v, want within (0, 24h]", ttl)
	}

	// The counter survives repeated uses and the expiry stays bounded.
	repo.Consume(ctx, QuotaScopeNLSearch, 11, NLSearchDailyLimit)
	if n, err := repo.Usage(ctx, QuotaScopeNLSearch, 11); err != nil || n != 2 {
		t.Errorf("usage = %d (%v), want 2", n, err)
	}
	if ttl := mr.TTL(key); ttl <= 0 || ttl > 24*time.Hour {
		t.Errorf("TTL after second use = %v, want within (0, 24h]", ttl)
	}
}
