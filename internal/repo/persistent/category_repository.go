package persistent

import (
	"errors"

	"inkwell/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	List() ([]model.Category, error)
	Get(id string) (*model.Category, error)
	Save(category *model.Category) error
	Delete(id string) error
	HasChildren(id string) (bool, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	if db == nil {
		return nil
	}
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Get(id string) (*model.Category, error) {
	var category model.Category
	err := r.db.Where("id = ?", id).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Save(category *model.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepository) Delete(id string) error {
	return r.db.Delete(&model.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) HasChildren(id string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Category{}).Where("parent_id = ?", id).Count(&count).Error
	return count > 0, err
}
