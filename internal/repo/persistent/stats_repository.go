package persistent

import (
	"context"
	"fmt"
	"strings"
)

// PathCount is one API path's call count for a day.
type PathCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// StatsRepository reads the counters the API stats middleware maintains:
//
//	api:call:{YYYY-MM-DD}          total successful calls that day
//	api:path:{YYYY-MM-DD}:{path}   per-path breakdown
type StatsRepository interface {
	DailyCallCount(ctx context.Context, day string) (int64, error)
	PathCounts(ctx context.Context, day string) ([]PathCount, error)
	KeyCount(ctx context.Context, prefix string) (int, error)
}

type statsRepository struct {
	kv KV
}

func NewStatsRepository(kv KV) StatsRepository {
	if kv == nil {
		return nil
	}
	return &statsRepository{kv: kv}
}

func (r *statsRepository) DailyCallCount(ctx context.Context, day string) (int64, error) {
	value, ok, err := r.kv.Get(ctx, fmt.Sprintf("api:call:%s", day))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return parseCount(value), nil
}

func (r *statsRepository) PathCounts(ctx context.Context, day string) ([]PathCount, error) {
	prefix := fmt.Sprintf("api:path:%s:", day)
	keys, err := r.kv.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	counts := make([]PathCount, 0, len(keys))
	for _, key := range keys {
		value, ok, err := r.kv.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		counts = append(counts, PathCount{
			Path:  strings.TrimPrefix(key, prefix),
			Count: parseCount(value),
		})
	}
	return counts, nil
}

func (r *statsRepository) KeyCount(ctx context.Context, prefix string) (int, error) {
	keys, err := r.kv.List(ctx, prefix)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}
