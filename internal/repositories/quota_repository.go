package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AI usage limits. Generic re-rank runs while the counter is at or below the
// quota; the natural-language search has its own daily cap.
const (
	RerankQuotaLimit   = 3
	NLSearchDailyLimit = 5

	matchedOrderTTL = 24 * time.Hour
)

const (
	QuotaScopeRerank   = "rerank"
	QuotaScopeNLSearch = "nlsearch"
)

// QuotaRepository tracks per-user AI usage in Redis. Consumption is a single
// INCR followed by a limit comparison, so two rapid searches by the same user
// cannot under-count.
type QuotaRepository struct {
	RDB *redis.Client
}

func quotaKey(scope string, userID int, day time.Time) string {
	return fmt.Sprintf("ai:quota:%s:%d:%s", scope, userID, day.UTC().Format("2006-01-02"))
}

func matchedOrderKey(userID int) string {
	return fmt.Sprintf("ai:matched:%d", userID)
}

// Consume atomically increments the user's counter for the scope and reports
// whether this use is within the limit. INCR and the end-of-UTC-day expiry run
// in one pipeline; the expiry target is constant within a day, so re-setting
// it on every use is harmless and keeps the key from surviving past midnight
// if an earlier expiry write was lost.
func (r *QuotaRepository) Consume(ctx context.Context, scope string, userID, limit int) (bool, error) {
	now := time.Now()
	key := quotaKey(scope, userID, now)
	endOfDay := now.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)

	pipe := r.RDB.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireAt(ctx, key, endOfDay)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("increment quota: %w", err)
	}
	return incr.Val() <= int64(limit), nil
}

// Usage returns the current counter without consuming.
func (r *QuotaRepository) Usage(ctx context.Context, scope string, userID int) (int, error) {
	count, err := r.RDB.Get(ctx, quotaKey(scope, userID, time.Now())).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CacheMatchedOrder stores the last AI-ranked id order for the user so the
// over-quota path can reuse it instead of erroring.
func (r *QuotaRepository) CacheMatchedOrder(ctx context.Context, userID int, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return r.RDB.Set(ctx, matchedOrderKey(userID), data, matchedOrderTTL).Err()
}

// GetMatchedOrder returns the cached id order, or nil when none is stored.
func (r *QuotaRepository) GetMatchedOrder(ctx context.Context, userID int) ([]string, error) {
	data, err := r.RDB.Get(ctx, matchedOrderKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
