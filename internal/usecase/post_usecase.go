package usecase

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/entity"
	"inkwell/internal/model"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/logger"

	"github.com/google/uuid"
)

type SavePostInput struct {
	ID          string
	Title       string
	Summary     string
	Content     string
	PublishedAt *time.Time
	CategoryID  *string
	TagIDs      []string
}

type PostUseCase interface {
	List(ctx context.Context) ([]entity.PostSummary, error)
	Get(ctx context.Context, id string) (*entity.Post, error)
	Save(ctx context.Context, input SavePostInput) (*entity.Post, error)
	Delete(ctx context.Context, id string) error
}

type postUseCase struct {
	postRepo persistent.PostRepository
	metaRepo persistent.PostMetaRepository
	logger   *logger.Logger
	now      func() time.Time
}

func NewPostUseCase(postRepo persistent.PostRepository, metaRepo persistent.PostMetaRepository, log *logger.Logger) PostUseCase {
	return &postUseCase{
		postRepo: postRepo,
		metaRepo: metaRepo,
		logger:   log,
		now:      time.Now,
	}
}

func (uc *postUseCase) List(ctx context.Context) ([]entity.PostSummary, error) {
	if uc.postRepo == nil {
		return nil, ErrStoreUnavailable
	}
	return uc.postRepo.Index(ctx)
}

// Get reads the KV document first and enriches it with taxonomy from the
// relational store; when KV has no record it falls back to the relational
// copy. Enrichment failures degrade to the bare document.
func (uc *postUseCase) Get(ctx context.Context, id string) (*entity.Post, error) {
	if uc.postRepo == nil && uc.metaRepo == nil {
		return nil, ErrStoreUnavailable
	}

	if uc.postRepo != nil {
		post, err := uc.postRepo.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to read post: %w", err)
		}
		if post != nil {
			uc.enrich(post)
			return post, nil
		}
	}

	if uc.metaRepo != nil {
		meta, err := uc.metaRepo.Get(id)
		if err != nil {
			return nil, fmt.Errorf("failed to read post from database: %w", err)
		}
		if meta != nil {
			return fromMeta(meta), nil
		}
	}

	return nil, ErrNotFound
}

func (uc *postUseCase) enrich(post *entity.Post) {
	if uc.metaRepo == nil {
		return
	}

	meta, err := uc.metaRepo.Get(post.ID)
	if err != nil {
		uc.logger.Warn("Failed to enrich post %s with taxonomy: %v", post.ID, err)
		return
	}
	if meta == nil {
		return
	}

	if meta.Category != nil {
		post.Category = &entity.CategoryRef{
			ID:   meta.Category.ID,
			Name: meta.Category.Name,
			Slug: meta.Category.Slug,
		}
	}
	post.Tags = make([]entity.TagRef, 0, len(meta.Tags))
	for _, tag := range meta.Tags {
		color := tag.Color
		if color == "" {
			color = model.DefaultTagColor
		}
		post.Tags = append(post.Tags, entity.TagRef{
			ID:    tag.ID,
			Name:  tag.Name,
			Slug:  tag.Slug,
			Color: color,
		})
	}
}

func fromMeta(meta *model.Post) *entity.Post {
	post := &entity.Post{
		ID:          meta.ID,
		Title:       meta.Title,
		Summary:     meta.Summary,
		Content:     meta.Content,
		PublishedAt: meta.PublishedAt,
	}
	if meta.Category != nil {
		post.Category = &entity.CategoryRef{
			ID:   meta.Category.ID,
			Name: meta.Category.Name,
			Slug: meta.Category.Slug,
		}
	}
	for _, tag := range meta.Tags {
		post.Tags = append(post.Tags, entity.TagRef{
			ID:    tag.ID,
			Name:  tag.Name,
			Slug:  tag.Slug,
			Color: tag.Color,
		})
	}
	return post
}

// Save writes the KV document and its index entry, then syncs the
// relational metadata. The KV copy is the published source of truth; a
// metadata sync failure is logged, not surfaced.
func (uc *postUseCase) Save(ctx context.Context, input SavePostInput) (*entity.Post, error) {
	if uc.postRepo == nil {
		return nil, ErrStoreUnavailable
	}
	if input.Title == "" || input.Content == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	}

	publishedAt := uc.now().UTC()
	if input.PublishedAt != nil {
		publishedAt = *input.PublishedAt
	}

	post := &entity.Post{
		ID:          input.ID,
		Title:       input.Title,
		Summary:     input.Summary,
		Content:     input.Content,
		PublishedAt: publishedAt,
	}
	if post.ID == "" {
		post.ID = uuid.New().String()
	}

	if err := uc.postRepo.Put(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to store post: %w", err)
	}
	if err := uc.postRepo.UpdateIndex(ctx, post.Summarize()); err != nil {
		return nil, fmt.Errorf("failed to update post index: %w", err)
	}

	if uc.metaRepo != nil {
		meta := &model.Post{
			ID:          post.ID,
			Title:       post.Title,
			Summary:     post.Summary,
			Content:     post.Content,
			PublishedAt: post.PublishedAt,
			CategoryID:  input.CategoryID,
		}
		if err := uc.metaRepo.Upsert(meta, input.TagIDs); err != nil {
			uc.logger.Warn("Failed to sync post %s metadata: %v", post.ID, err)
		} else {
			uc.enrich(post)
		}
	}

	return post, nil
}

func (uc *postUseCase) Delete(ctx context.Context, id string) error {
	if uc.postRepo == nil {
		return ErrStoreUnavailable
	}

	existing, err := uc.postRepo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to read post: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := uc.postRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if err := uc.postRepo.RemoveFromIndex(ctx, id); err != nil {
		return fmt.Errorf("failed to update post index: %w", err)
	}

	if uc.metaRepo != nil {
		if err := uc.metaRepo.Delete(id); err != nil {
			uc.logger.Warn("Failed to delete post %s metadata: %v", id, err)
		}
	}

	return nil
}
