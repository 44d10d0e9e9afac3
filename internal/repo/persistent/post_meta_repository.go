package persistent

import (
	"errors"

	"inkwell/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostMetaRepository keeps the relational side of a post (category link, tag
// links, searchable columns) in sync with the KV document.
type PostMetaRepository interface {
	Upsert(post *model.Post, tagIDs []string) error
	Get(id string) (*model.Post, error)
	Delete(id string) error
}

type postMetaRepository struct {
	db *gorm.DB
}

func NewPostMetaRepository(db *gorm.DB) PostMetaRepository {
	if db == nil {
		return nil
	}
	return &postMetaRepository{db: db}
}

func (r *postMetaRepository) Upsert(post *model.Post, tagIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(post).Error; err != nil {
			return err
		}

		if tagIDs == nil {
			return nil
		}

		var tags []model.Tag
		if len(tagIDs) > 0 {
			if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
				return err
			}
		}
		return tx.Model(post).Association("Tags").Replace(tags)
	})
}

func (r *postMetaRepository) Get(id string) (*model.Post, error) {
	var post model.Post
	err := r.db.Preload("Category").Preload("Tags").Where("id = ?", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postMetaRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		post := model.Post{ID: id}
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}
