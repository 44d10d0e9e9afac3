package persistent

import (
	"errors"

	"inkwell/internal/model"

	"gorm.io/gorm"
)

type TagRepository interface {
	List() ([]model.Tag, error)
	Get(id string) (*model.Tag, error)
	Save(tag *model.Tag) error
	Delete(id string) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	if db == nil {
		return nil
	}
	return &tagRepository{db: db}
}

func (r *tagRepository) List() ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) Get(id string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.Where("id = ?", id).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) Save(tag *model.Tag) error {
	return r.db.Save(tag).Error
}

// Delete removes the tag and its post links in one transaction.
func (r *tagRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tag{}, "id = ?", id).Error
	})
}
