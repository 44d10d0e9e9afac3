package persistent

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// Abandoned per-user like flags are eventually reclaimed.
	userLikeTTL = 365 * 24 * time.Hour
	// Daily operation counters clean themselves up.
	dailyOpsTTL = 24 * time.Hour
)

// LikeRepository stores the like counter state:
//
//	post:{id}:likes                          aggregate count, decimal string
//	user:{ip}:like:{id}                      presence marker, ~1 year expiry
//	user:{ip}:operations:{id}:{YYYY-MM-DD}   daily op count, 24h expiry
//
// Counts are decimal strings; unparsable stored values read as 0 so a
// corrupted key heals on the next write instead of wedging the endpoint.
type LikeRepository interface {
	GetCount(ctx context.Context, postID string) (int64, error)
	SetCount(ctx context.Context, postID string, count int64) error
	IsLiked(ctx context.Context, clientIP, postID string) (bool, error)
	MarkLiked(ctx context.Context, clientIP, postID string) error
	UnmarkLiked(ctx context.Context, clientIP, postID string) error
	GetDailyOperations(ctx context.Context, clientIP, postID, day string) (int, error)
	SetDailyOperations(ctx context.Context, clientIP, postID, day string, count int) error
	TotalLikes(ctx context.Context) (int64, error)
}

type likeRepository struct {
	kv KV
}

func NewLikeRepository(kv KV) LikeRepository {
	if kv == nil {
		return nil
	}
	return &likeRepository{kv: kv}
}

func countKey(postID string) string {
	return fmt.Sprintf("post:%s:likes", postID)
}

func userLikeKey(clientIP, postID string) string {
	return fmt.Sprintf("user:%s:like:%s", clientIP, postID)
}

func dailyOpsKey(clientIP, postID, day string) string {
	return fmt.Sprintf("user:%s:operations:%s:%s", clientIP, postID, day)
}

func parseCount(value string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (r *likeRepository) GetCount(ctx context.Context, postID string) (int64, error) {
	value, ok, err := r.kv.Get(ctx, countKey(postID))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return parseCount(value), nil
}

func (r *likeRepository) SetCount(ctx context.Context, postID string, count int64) error {
	if count < 0 {
		count = 0
	}
	return r.kv.Put(ctx, countKey(postID), strconv.FormatInt(count, 10), 0)
}

func (r *likeRepository) IsLiked(ctx context.Context, clientIP, postID string) (bool, error) {
	_, ok, err := r.kv.Get(ctx, userLikeKey(clientIP, postID))
	return ok, err
}

func (r *likeRepository) MarkLiked(ctx context.Context, clientIP, postID string) error {
	return r.kv.Put(ctx, userLikeKey(clientIP, postID), "1", userLikeTTL)
}

func (r *likeRepository) UnmarkLiked(ctx context.Context, clientIP, postID string) error {
	return r.kv.Delete(ctx, userLikeKey(clientIP, postID))
}

func (r *likeRepository) GetDailyOperations(ctx context.Context, clientIP, postID, day string) (int, error) {
	value, ok, err := r.kv.Get(ctx, dailyOpsKey(clientIP, postID, day))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return int(parseCount(value)), nil
}

func (r *likeRepository) SetDailyOperations(ctx context.Context, clientIP, postID, day string, count int) error {
	return r.kv.Put(ctx, dailyOpsKey(clientIP, postID, day), strconv.Itoa(count), dailyOpsTTL)
}

// TotalLikes sums every post's aggregate counter, for the admin dashboard.
func (r *likeRepository) TotalLikes(ctx context.Context) (int64, error) {
	keys, err := r.kv.List(ctx, "post:")
	if err != nil {
		return 0, err
	}

	var total int64
	for _, key := range keys {
		if !strings.HasSuffix(key, ":likes") {
			continue
		}
		value, ok, err := r.kv.Get(ctx, key)
		if err != nil {
			return 0, err
		}
		if ok {
			total += parseCount(value)
		}
	}
	return total, nil
}
