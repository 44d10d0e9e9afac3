package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"inkwell/internal/entity"
	"inkwell/internal/model"
	"inkwell/internal/repo/persistent"
	"inkwell/pkg/cache"
	"inkwell/pkg/config"
	"inkwell/pkg/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the stores with a starter taxonomy, a few published posts and,
// when SEED_ADMIN_PASSWORD is set, the admin credentials record.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	kv := persistent.NewRedisKV(redisClient)
	postRepo := persistent.NewPostRepository(kv)

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Printf("Database unavailable, skipping taxonomy seed: %v", err)
		db = nil
	}

	ctx := context.Background()

	var categoryID *string
	tagIDs := []string{}
	if db != nil {
		categoryRepo := persistent.NewCategoryRepository(db)
		tagRepo := persistent.NewTagRepository(db)

		category := &model.Category{
			ID:          uuid.New().String(),
			Name:        "General",
			Slug:        "general",
			Description: "Everything that doesn't fit elsewhere",
		}
		if err := categoryRepo.Save(category); err != nil {
			log.Fatalf("Failed to seed category: %v", err)
		}
		categoryID = &category.ID

		for _, seed := range []struct{ name, slug, color string }{
			{"Go", "go", "#00add8"},
			{"Notes", "notes", model.DefaultTagColor},
		} {
			tag := &model.Tag{
				ID:    uuid.New().String(),
				Name:  seed.name,
				Slug:  seed.slug,
				Color: seed.color,
			}
			if err := tagRepo.Save(tag); err != nil {
				log.Fatalf("Failed to seed tag %s: %v", tag.Name, err)
			}
			tagIDs = append(tagIDs, tag.ID)
		}
	}

	posts := []entity.Post{
		{
			ID:          uuid.New().String(),
			Title:       "Hello, world",
			Summary:     "The obligatory first post.",
			Content:     "<p>Welcome to the blog. More to come.</p>",
			PublishedAt: time.Now().UTC().Add(-48 * time.Hour),
		},
		{
			ID:          uuid.New().String(),
			Title:       "Why another blog engine",
			Summary:     "Because the last one was someone else's.",
			Content:     "<p>Posts live in a key-value store, taxonomy in SQL.</p>",
			PublishedAt: time.Now().UTC().Add(-24 * time.Hour),
		},
		{
			ID:          uuid.New().String(),
			Title:       "Likes and rate limits",
			Summary:     "Three operations per reader per day.",
			Content:     "<p>Toggle away, but the counter has opinions.</p>",
			PublishedAt: time.Now().UTC(),
		},
	}

	var metaRepo persistent.PostMetaRepository
	if db != nil {
		metaRepo = persistent.NewPostMetaRepository(db)
	}

	for i := range posts {
		post := &posts[i]
		if err := postRepo.Put(ctx, post); err != nil {
			log.Fatalf("Failed to seed post %s: %v", post.Title, err)
		}
		if err := postRepo.UpdateIndex(ctx, post.Summarize()); err != nil {
			log.Fatalf("Failed to index post %s: %v", post.Title, err)
		}
		if metaRepo != nil {
			meta := &model.Post{
				ID:          post.ID,
				Title:       post.Title,
				Summary:     post.Summary,
				Content:     post.Content,
				PublishedAt: post.PublishedAt,
				CategoryID:  categoryID,
			}
			if err := metaRepo.Upsert(meta, tagIDs); err != nil {
				log.Printf("Failed to sync post %s metadata: %v", post.Title, err)
			}
		}
	}

	if password := os.Getenv("SEED_ADMIN_PASSWORD"); password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash admin password: %v", err)
		}
		creds, _ := json.Marshal(map[string]string{
			"username":      cfg.AdminUsername,
			"password_hash": string(hash),
		})
		if err := kv.Put(ctx, "admin:credentials", string(creds), 0); err != nil {
			log.Fatalf("Failed to seed admin credentials: %v", err)
		}
		log.Printf("Seeded admin credentials for %s", cfg.AdminUsername)
	}

	log.Printf("Seeded %d posts", len(posts))
}
