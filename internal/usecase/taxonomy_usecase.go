package usecase

import (
	"fmt"
	"strings"

	"inkwell/internal/model"
	"inkwell/internal/repo/persistent"
)

type SaveCategoryInput struct {
	ID          string
	Name        string
	Slug        string
	Description string
	ParentID    *string
}

type SaveTagInput struct {
	ID    string
	Name  string
	Slug  string
	Color string
}

type TaxonomyUseCase interface {
	ListCategories() ([]model.Category, error)
	GetCategory(id string) (*model.Category, error)
	SaveCategory(input SaveCategoryInput) (*model.Category, error)
	DeleteCategory(id string) error
	ListTags() ([]model.Tag, error)
	GetTag(id string) (*model.Tag, error)
	SaveTag(input SaveTagInput) (*model.Tag, error)
	DeleteTag(id string) error
}

type taxonomyUseCase struct {
	categoryRepo persistent.CategoryRepository
	tagRepo      persistent.TagRepository
}

func NewTaxonomyUseCase(categoryRepo persistent.CategoryRepository, tagRepo persistent.TagRepository) TaxonomyUseCase {
	return &taxonomyUseCase{categoryRepo: categoryRepo, tagRepo: tagRepo}
}

func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

func (uc *taxonomyUseCase) ListCategories() ([]model.Category, error) {
	if uc.categoryRepo == nil {
		return nil, ErrStoreUnavailable
	}
	return uc.categoryRepo.List()
}

func (uc *taxonomyUseCase) GetCategory(id string) (*model.Category, error) {
	if uc.categoryRepo == nil {
		return nil, ErrStoreUnavailable
	}
	category, err := uc.categoryRepo.Get(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

func (uc *taxonomyUseCase) SaveCategory(input SaveCategoryInput) (*model.Category, error) {
	if uc.categoryRepo == nil {
		return nil, ErrStoreUnavailable
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}

	category := &model.Category{
		ID:          input.ID,
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		ParentID:    input.ParentID,
	}
	if category.Slug == "" {
		category.Slug = slugify(input.Name)
	}

	if input.ID != "" {
		existing, err := uc.categoryRepo.Get(input.ID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		category.CreatedAt = existing.CreatedAt
	}

	if input.ParentID != nil {
		parent, err := uc.categoryRepo.Get(*input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("%w: parent category not found", ErrInvalidInput)
		}
		if input.ID != "" {
			cyclic, err := uc.wouldCreateCycle(input.ID, *input.ParentID)
			if err != nil {
				return nil, err
			}
			if cyclic {
				return nil, fmt.Errorf("%w: parent would create a category hierarchy cycle", ErrInvalidInput)
			}
		}
	}

	if err := uc.categoryRepo.Save(category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return category, nil
}

// wouldCreateCycle walks the parent chain from the proposed parent; hitting
// the category being edited (or any repeat) means the hierarchy would loop.
func (uc *taxonomyUseCase) wouldCreateCycle(categoryID, parentID string) (bool, error) {
	if categoryID == parentID {
		return true, nil
	}

	visited := map[string]bool{categoryID: true}
	current := parentID
	for current != "" {
		if visited[current] {
			return true, nil
		}
		visited[current] = true

		parent, err := uc.categoryRepo.Get(current)
		if err != nil {
			return false, err
		}
		if parent == nil || parent.ParentID == nil {
			return false, nil
		}
		current = *parent.ParentID
	}
	return false, nil
}

func (uc *taxonomyUseCase) DeleteCategory(id string) error {
	if uc.categoryRepo == nil {
		return ErrStoreUnavailable
	}

	category, err := uc.categoryRepo.Get(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}

	hasChildren, err := uc.categoryRepo.HasChildren(id)
	if err != nil {
		return err
	}
	if hasChildren {
		return fmt.Errorf("%w: category still has child categories", ErrInvalidInput)
	}

	return uc.categoryRepo.Delete(id)
}

func (uc *taxonomyUseCase) ListTags() ([]model.Tag, error) {
	if uc.tagRepo == nil {
		return nil, ErrStoreUnavailable
	}
	return uc.tagRepo.List()
}

func (uc *taxonomyUseCase) GetTag(id string) (*model.Tag, error) {
	if uc.tagRepo == nil {
		return nil, ErrStoreUnavailable
	}
	tag, err := uc.tagRepo.Get(id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrNotFound
	}
	return tag, nil
}

func (uc *taxonomyUseCase) SaveTag(input SaveTagInput) (*model.Tag, error) {
	if uc.tagRepo == nil {
		return nil, ErrStoreUnavailable
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: tag name is required", ErrInvalidInput)
	}

	tag := &model.Tag{
		ID:    input.ID,
		Name:  input.Name,
		Slug:  input.Slug,
		Color: input.Color,
	}
	if tag.Slug == "" {
		tag.Slug = slugify(input.Name)
	}
	if tag.Color == "" {
		tag.Color = model.DefaultTagColor
	}

	if input.ID != "" {
		existing, err := uc.tagRepo.Get(input.ID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		tag.CreatedAt = existing.CreatedAt
	}

	if err := uc.tagRepo.Save(tag); err != nil {
		return nil, fmt.Errorf("failed to save tag: %w", err)
	}
	return tag, nil
}

func (uc *taxonomyUseCase) DeleteTag(id string) error {
	if uc.tagRepo == nil {
		return ErrStoreUnavailable
	}

	tag, err := uc.tagRepo.Get(id)
	if err != nil {
		return err
	}
	if tag == nil {
		return ErrNotFound
	}

	return uc.tagRepo.Delete(id)
}
