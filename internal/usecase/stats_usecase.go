package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"inkwell/internal/repo/persistent"
	"inkwell/pkg/logger"
)

const (
	maxStatsDays     = 30
	defaultStatsDays = 7

	// KV sizing heuristics for the admin screen: assume ~10KB per key
	// against a 1GB namespace.
	estimatedBytesPerKey = 10 * 1024
	kvNamespaceLimit     = 1024 * 1024 * 1024
)

type DashboardStats struct {
	PostCount      int    `json:"postCount"`
	LikeCount      int64  `json:"likeCount"`
	APICalls       int64  `json:"apiCalls"`
	StorageConfigs int    `json:"storageConfigs"`
	LikeStatus     string `json:"likeStatus,omitempty"`
	LikeMessage    string `json:"likeMessage,omitempty"`
}

type DailyStat struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type APIStatsReport struct {
	TotalCalls int64                  `json:"totalCalls"`
	DailyStats []DailyStat            `json:"dailyStats"`
	PathStats  []persistent.PathCount `json:"pathStats"`
}

type ActivityReport struct {
	Dates                []string `json:"dates"`
	PostCounts           []int    `json:"postCounts"`
	LikeCounts           []int64  `json:"likeCounts"`
	WeeklyPostCount      int      `json:"weeklyPostCount"`
	WeeklyLikeCount      int64    `json:"weeklyLikeCount"`
	MostActiveDate       string   `json:"mostActiveDate"`
	HighestDailyActivity int64    `json:"highestDailyActivity"`
}

type KVNamespaceInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Keys int    `json:"keys"`
}

type KVUsage struct {
	Total int64 `json:"total"`
	Used  int64 `json:"used"`
}

type KVInfoReport struct {
	Namespaces []KVNamespaceInfo `json:"namespaces"`
	Usage      KVUsage           `json:"usage"`
}

type StatsUseCase interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	APIStats(ctx context.Context, days int) (*APIStatsReport, error)
	Activity(ctx context.Context) (*ActivityReport, error)
	KVInfo(ctx context.Context) (*KVInfoReport, error)
}

type statsUseCase struct {
	statsRepo persistent.StatsRepository
	postRepo  persistent.PostRepository
	likeRepo  persistent.LikeRepository
	logger    *logger.Logger
	now       func() time.Time
}

func NewStatsUseCase(
	statsRepo persistent.StatsRepository,
	postRepo persistent.PostRepository,
	likeRepo persistent.LikeRepository,
	log *logger.Logger,
) StatsUseCase {
	return &statsUseCase{
		statsRepo: statsRepo,
		postRepo:  postRepo,
		likeRepo:  likeRepo,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *statsUseCase) today() string {
	return uc.now().UTC().Format("2006-01-02")
}

// Dashboard aggregates headline numbers. Each unavailable store degrades its
// own figure instead of failing the endpoint.
func (uc *statsUseCase) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if uc.postRepo != nil {
		count, err := uc.postRepo.Count(ctx)
		if err != nil {
			uc.logger.Warn("Failed to count posts: %v", err)
		} else {
			stats.PostCount = count
		}
		stats.StorageConfigs++
	}

	if uc.likeRepo != nil {
		total, err := uc.likeRepo.TotalLikes(ctx)
		if err != nil {
			uc.logger.Warn("Failed to sum likes: %v", err)
		} else {
			stats.LikeCount = total
		}
		stats.StorageConfigs++
	} else {
		stats.LikeCount = -1
		stats.LikeStatus = "unavailable"
		stats.LikeMessage = "like store is not configured"
	}

	if uc.statsRepo != nil {
		calls, err := uc.statsRepo.DailyCallCount(ctx, uc.today())
		if err != nil {
			uc.logger.Warn("Failed to read API call count: %v", err)
		} else {
			stats.APICalls = calls
		}
		stats.StorageConfigs++
	}

	return stats, nil
}

func (uc *statsUseCase) APIStats(ctx context.Context, days int) (*APIStatsReport, error) {
	if uc.statsRepo == nil {
		return nil, ErrStoreUnavailable
	}

	if days <= 0 {
		days = defaultStatsDays
	}
	if days > maxStatsDays {
		days = maxStatsDays
	}

	report := &APIStatsReport{
		DailyStats: make([]DailyStat, 0, days),
		PathStats:  []persistent.PathCount{},
	}

	// Oldest to newest.
	for i := days - 1; i >= 0; i-- {
		date := uc.now().UTC().AddDate(0, 0, -i).Format("2006-01-02")
		count, err := uc.statsRepo.DailyCallCount(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("failed to read call count for %s: %w", date, err)
		}
		report.DailyStats = append(report.DailyStats, DailyStat{Date: date, Count: count})
		report.TotalCalls += count
	}

	paths, err := uc.statsRepo.PathCounts(ctx, uc.today())
	if err != nil {
		return nil, fmt.Errorf("failed to read path counts: %w", err)
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i].Count > paths[j].Count })
	report.PathStats = paths

	return report, nil
}

// Activity reports the past 7 days of publishing and liking. Likes are not
// tracked per day, so each post's current like count is attributed to its
// publish day.
func (uc *statsUseCase) Activity(ctx context.Context) (*ActivityReport, error) {
	if uc.postRepo == nil {
		return nil, ErrStoreUnavailable
	}

	index, err := uc.postRepo.Index(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read post index: %w", err)
	}

	report := &ActivityReport{
		Dates:      make([]string, 0, defaultStatsDays),
		PostCounts: make([]int, defaultStatsDays),
		LikeCounts: make([]int64, defaultStatsDays),
	}

	dayIndex := make(map[string]int, defaultStatsDays)
	for i := 0; i < defaultStatsDays; i++ {
		date := uc.now().UTC().AddDate(0, 0, i-defaultStatsDays+1).Format("2006-01-02")
		report.Dates = append(report.Dates, date)
		dayIndex[date] = i
	}

	for _, summary := range index {
		day := summary.PublishedAt.UTC().Format("2006-01-02")
		i, ok := dayIndex[day]
		if !ok {
			continue
		}
		report.PostCounts[i]++

		if uc.likeRepo != nil {
			likes, err := uc.likeRepo.GetCount(ctx, summary.ID)
			if err != nil {
				uc.logger.Warn("Failed to read likes for post %s: %v", summary.ID, err)
				continue
			}
			report.LikeCounts[i] += likes
		}
	}

	var best int64 = -1
	for i := range report.Dates {
		report.WeeklyPostCount += report.PostCounts[i]
		report.WeeklyLikeCount += report.LikeCounts[i]

		activity := int64(report.PostCounts[i]) + report.LikeCounts[i]
		if activity > best {
			best = activity
			report.MostActiveDate = report.Dates[i]
			report.HighestDailyActivity = activity
		}
	}

	return report, nil
}

func (uc *statsUseCase) KVInfo(ctx context.Context) (*KVInfoReport, error) {
	if uc.statsRepo == nil {
		return nil, ErrStoreUnavailable
	}

	namespaces := []struct {
		id     string
		name   string
		prefix string
	}{
		{"posts", "blog post documents", "post:"},
		{"likes", "per-user like flags", "user:"},
		{"api_stats", "API call counters", "api:"},
	}

	report := &KVInfoReport{Usage: KVUsage{Total: kvNamespaceLimit}}
	for _, ns := range namespaces {
		count, err := uc.statsRepo.KeyCount(ctx, ns.prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s keys: %w", ns.id, err)
		}
		report.Namespaces = append(report.Namespaces, KVNamespaceInfo{
			ID:   ns.id,
			Name: ns.name,
			Keys: count,
		})
		report.Usage.Used += int64(count) * estimatedBytesPerKey
	}

	return report, nil
}
