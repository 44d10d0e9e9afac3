package usecase

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/logger"
)

// DailyOperationLimit bounds state-changing like operations per caller, per
// post, per UTC calendar day. No-ops do not count against it.
const DailyOperationLimit = 3

const (
	ActionLike   = "like"
	ActionUnlike = "unlike"
	ActionToggle = "toggle"
)

type LikeUseCase interface {
	Status(ctx context.Context, postID, clientIP string) (*entity.LikeStatus, error)
	Apply(ctx context.Context, postID, clientIP, action string) (*entity.LikeResult, error)
}

type likeUseCase struct {
	likeRepo persistent.LikeRepository
	logger   *logger.Logger
	now      func() time.Time
}

func NewLikeUseCase(likeRepo persistent.LikeRepository, log *logger.Logger) LikeUseCase {
	return &likeUseCase{
		likeRepo: likeRepo,
		logger:   log,
		now:      time.Now,
	}
}

// dayKey buckets operations by UTC calendar day. The counter key carries the
// day, so a caller's quota resets at midnight UTC regardless of the 24h TTL
// on the previous day's counter.
func (uc *likeUseCase) dayKey() string {
	return uc.now().UTC().Format("2006-01-02")
}

func (uc *likeUseCase) Status(ctx context.Context, postID, clientIP string) (*entity.LikeStatus, error) {
	if uc.likeRepo == nil {
		return nil, ErrStoreUnavailable
	}

	likes, err := uc.likeRepo.GetCount(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to read like count: %w", err)
	}

	liked, err := uc.likeRepo.IsLiked(ctx, clientIP, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to read like flag: %w", err)
	}

	ops, err := uc.likeRepo.GetDailyOperations(ctx, clientIP, postID, uc.dayKey())
	if err != nil {
		return nil, fmt.Errorf("failed to read operation counter: %w", err)
	}

	remaining := DailyOperationLimit - ops
	if remaining < 0 {
		remaining = 0
	}

	return &entity.LikeStatus{
		Likes:               likes,
		IsLiked:             liked,
		RemainingOperations: remaining,
	}, nil
}

// Apply performs a like, unlike, or toggle for one caller on one post.
// Requests that would not change state succeed without consuming quota.
// The steps are individual KV writes with no cross-key atomicity; the
// quota counter is written last so a mid-sequence failure can only
// under-count, never lock a caller out of an operation that did not happen.
func (uc *likeUseCase) Apply(ctx context.Context, postID, clientIP, action string) (*entity.LikeResult, error) {
	if uc.likeRepo == nil {
		return nil, ErrStoreUnavailable
	}

	day := uc.dayKey()
	ops, err := uc.likeRepo.GetDailyOperations(ctx, clientIP, postID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to read operation counter: %w", err)
	}
	if ops >= DailyOperationLimit {
		return nil, ErrRateLimited
	}

	liked, err := uc.likeRepo.IsLiked(ctx, clientIP, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to read like flag: %w", err)
	}

	var desired bool
	switch action {
	case ActionLike:
		desired = true
	case ActionUnlike:
		desired = false
	default:
		desired = !liked
	}

	likes, err := uc.likeRepo.GetCount(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to read like count: %w", err)
	}

	if desired == liked {
		return &entity.LikeResult{
			Likes:               likes,
			IsLiked:             liked,
			RemainingOperations: DailyOperationLimit - ops,
			Changed:             false,
			Message:             "no change",
		}, nil
	}

	var message string
	if desired {
		likes++
		if err := uc.likeRepo.SetCount(ctx, postID, likes); err != nil {
			return nil, fmt.Errorf("failed to write like count: %w", err)
		}
		if err := uc.likeRepo.MarkLiked(ctx, clientIP, postID); err != nil {
			return nil, fmt.Errorf("failed to write like flag: %w", err)
		}
		message = "post liked"
	} else {
		likes--
		if likes < 0 {
			likes = 0
		}
		if err := uc.likeRepo.SetCount(ctx, postID, likes); err != nil {
			return nil, fmt.Errorf("failed to write like count: %w", err)
		}
		if err := uc.likeRepo.UnmarkLiked(ctx, clientIP, postID); err != nil {
			return nil, fmt.Errorf("failed to delete like flag: %w", err)
		}
		message = "post unliked"
	}

	ops++
	if err := uc.likeRepo.SetDailyOperations(ctx, clientIP, postID, day, ops); err != nil {
		// The count and flag are already committed; surfacing the error
		// here would report a failure for a mutation that happened.
		uc.logger.Warn("Failed to update operation counter for %s on post %s: %v", clientIP, postID, err)
	}

	return &entity.LikeResult{
		Likes:               likes,
		IsLiked:             desired,
		RemainingOperations: DailyOperationLimit - ops,
		Changed:             true,
		Message:             message,
	}, nil
}
