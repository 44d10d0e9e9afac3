package usecase

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/repo/persistent"
	"inkwell/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func newTestPostUseCase(kv *memoryKV) *postUseCase {
	return &postUseCase{
		postRepo: persistent.NewPostRepository(kv),
		logger:   logger.New(),
		now:      func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestPostSave_AndGet(t *testing.T) {
	uc := newTestPostUseCase(newMemoryKV())
	ctx := context.Background()

	saved, err := uc.Save(ctx, SavePostInput{
		Title:   "Hello",
		Summary: "First post",
		Content: "<p>Hello world</p>",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), saved.PublishedAt)

	got, err := uc.Get(ctx, saved.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "<p>Hello world</p>", got.Content)
}

func TestPostSave_Validation(t *testing.T) {
	uc := newTestPostUseCase(newMemoryKV())

	_, err := uc.Save(context.Background(), SavePostInput{Title: "No content"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Save(context.Background(), SavePostInput{Content: "No title"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPostList_SortedNewestFirst(t *testing.T) {
	uc := newTestPostUseCase(newMemoryKV())
	ctx := context.Background()

	older := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

	_, err := uc.Save(ctx, SavePostInput{ID: "a", Title: "Older", Content: "x", PublishedAt: &older})
	assert.NoError(t, err)
	_, err = uc.Save(ctx, SavePostInput{ID: "b", Title: "Newer", Content: "y", PublishedAt: &newer})
	assert.NoError(t, err)

	index, err := uc.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, index, 2)
	assert.Equal(t, "b", index[0].ID)
	assert.Equal(t, "a", index[1].ID)
}

func TestPostSave_UpdateReplacesIndexEntry(t *testing.T) {
	uc := newTestPostUseCase(newMemoryKV())
	ctx := context.Background()

	_, err := uc.Save(ctx, SavePostInput{ID: "a", Title: "Draft", Content: "x"})
	assert.NoError(t, err)
	_, err = uc.Save(ctx, SavePostInput{ID: "a", Title: "Final", Content: "x"})
	assert.NoError(t, err)

	index, err := uc.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, index, 1)
	assert.Equal(t, "Final", index[0].Title)
}

func TestPostGet_NotFound(t *testing.T) {
	uc := newTestPostUseCase(newMemoryKV())

	_, err := uc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostDelete(t *testing.T) {
	uc := newTestPostUseCase(newMemoryKV())
	ctx := context.Background()

	_, err := uc.Save(ctx, SavePostInput{ID: "a", Title: "Hello", Content: "x"})
	assert.NoError(t, err)

	err = uc.Delete(ctx, "a")
	assert.NoError(t, err)

	_, err = uc.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	index, err := uc.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, index)
}

func TestPostDelete_NotFound(t *testing.T) {
	uc := newTestPostUseCase(newMemoryKV())

	err := uc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPost_StoreUnavailable(t *testing.T) {
	uc := &postUseCase{logger: logger.New(), now: time.Now}
	ctx := context.Background()

	_, err := uc.List(ctx)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = uc.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = uc.Save(ctx, SavePostInput{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	err = uc.Delete(ctx, "a")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
