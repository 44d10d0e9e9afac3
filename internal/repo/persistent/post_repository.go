package persistent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"inkwell/internal/entity"
)

const postsIndexKey = "posts:list"

// PostRepository keeps full post documents in the KV store under post:{id}
// with a summary index under posts:list, mirroring the published layout the
// public read path serves from.
type PostRepository interface {
	Get(ctx context.Context, id string) (*entity.Post, error)
	Put(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id string) error
	Index(ctx context.Context) ([]entity.PostSummary, error)
	UpdateIndex(ctx context.Context, summary entity.PostSummary) error
	RemoveFromIndex(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type postRepository struct {
	kv KV
}

func NewPostRepository(kv KV) PostRepository {
	if kv == nil {
		return nil
	}
	return &postRepository{kv: kv}
}

func postKey(id string) string {
	return fmt.Sprintf("post:%s", id)
}

func (r *postRepository) Get(ctx context.Context, id string) (*entity.Post, error) {
	value, ok, err := r.kv.Get(ctx, postKey(id))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var post entity.Post
	if err := json.Unmarshal([]byte(value), &post); err != nil {
		return nil, fmt.Errorf("corrupt post document %s: %w", id, err)
	}
	return &post, nil
}

func (r *postRepository) Put(ctx context.Context, post *entity.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return err
	}
	return r.kv.Put(ctx, postKey(post.ID), string(data), 0)
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.kv.Delete(ctx, postKey(id))
}

func (r *postRepository) Index(ctx context.Context) ([]entity.PostSummary, error) {
	value, ok, err := r.kv.Get(ctx, postsIndexKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entity.PostSummary{}, nil
	}

	var index []entity.PostSummary
	if err := json.Unmarshal([]byte(value), &index); err != nil {
		// A broken index is rebuilt by the next write; readers see an
		// empty list rather than an error.
		return []entity.PostSummary{}, nil
	}
	return index, nil
}

func (r *postRepository) UpdateIndex(ctx context.Context, summary entity.PostSummary) error {
	index, err := r.Index(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range index {
		if index[i].ID == summary.ID {
			index[i] = summary
			replaced = true
			break
		}
	}
	if !replaced {
		index = append(index, summary)
	}

	sort.Slice(index, func(i, j int) bool {
		return index[i].PublishedAt.After(index[j].PublishedAt)
	})

	return r.writeIndex(ctx, index)
}

func (r *postRepository) RemoveFromIndex(ctx context.Context, id string) error {
	index, err := r.Index(ctx)
	if err != nil {
		return err
	}

	kept := index[:0]
	for _, summary := range index {
		if summary.ID != id {
			kept = append(kept, summary)
		}
	}

	return r.writeIndex(ctx, kept)
}

func (r *postRepository) writeIndex(ctx context.Context, index []entity.PostSummary) error {
	data, err := json.Marshal(index)
	if err != nil {
		return err
	}
	return r.kv.Put(ctx, postsIndexKey, string(data), 0)
}

// Count counts post:{id} documents, skipping index and counter keys.
func (r *postRepository) Count(ctx context.Context) (int, error) {
	keys, err := r.kv.List(ctx, "post:")
	if err != nil {
		return 0, err
	}

	count := 0
	for _, key := range keys {
		if strings.HasSuffix(key, ":likes") {
			continue
		}
		count++
	}
	return count, nil
}
