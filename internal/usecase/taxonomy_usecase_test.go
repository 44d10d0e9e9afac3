package usecase

import (
	"testing"

	"inkwell/internal/model"
	"inkwell/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List() ([]model.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Get(id string) (*model.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(category *model.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCategoryRepository) HasChildren(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

var _ persistent.CategoryRepository = (*MockCategoryRepository)(nil)

type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) List() ([]model.Tag, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTagRepository) Get(id string) (*model.Tag, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

func (m *MockTagRepository) Save(tag *model.Tag) error {
	args := m.Called(tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.TagRepository = (*MockTagRepository)(nil)

func TestSaveCategory_SlugDefaulted(t *testing.T) {
	repo := new(MockCategoryRepository)
	repo.On("Save", mock.AnythingOfType("*model.Category")).Return(nil)

	uc := NewTaxonomyUseCase(repo, nil)
	category, err := uc.SaveCategory(SaveCategoryInput{Name: "Cloud Computing"})

	assert.NoError(t, err)
	assert.Equal(t, "cloud-computing", category.Slug)
	repo.AssertExpectations(t)
}

func TestSaveCategory_MissingName(t *testing.T) {
	uc := NewTaxonomyUseCase(new(MockCategoryRepository), nil)

	_, err := uc.SaveCategory(SaveCategoryInput{})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSaveCategory_ParentNotFound(t *testing.T) {
	repo := new(MockCategoryRepository)
	repo.On("Get", "missing").Return(nil, nil)

	uc := NewTaxonomyUseCase(repo, nil)
	parent := "missing"
	_, err := uc.SaveCategory(SaveCategoryInput{Name: "Child", ParentID: &parent})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSaveCategory_SelfParentRejected(t *testing.T) {
	repo := new(MockCategoryRepository)
	repo.On("Get", "cat-1").Return(&model.Category{ID: "cat-1", Name: "A"}, nil)

	uc := NewTaxonomyUseCase(repo, nil)
	parent := "cat-1"
	_, err := uc.SaveCategory(SaveCategoryInput{ID: "cat-1", Name: "A", ParentID: &parent})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSaveCategory_CycleRejected(t *testing.T) {
	// cat-1 -> cat-2 exists; re-parenting cat-1 under cat-2 would loop.
	parentOfTwo := "cat-1"
	repo := new(MockCategoryRepository)
	repo.On("Get", "cat-1").Return(&model.Category{ID: "cat-1", Name: "A"}, nil)
	repo.On("Get", "cat-2").Return(&model.Category{ID: "cat-2", Name: "B", ParentID: &parentOfTwo}, nil)

	uc := NewTaxonomyUseCase(repo, nil)
	parent := "cat-2"
	_, err := uc.SaveCategory(SaveCategoryInput{ID: "cat-1", Name: "A", ParentID: &parent})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteCategory_WithChildrenRejected(t *testing.T) {
	repo := new(MockCategoryRepository)
	repo.On("Get", "cat-1").Return(&model.Category{ID: "cat-1", Name: "A"}, nil)
	repo.On("HasChildren", "cat-1").Return(true, nil)

	uc := NewTaxonomyUseCase(repo, nil)
	err := uc.DeleteCategory("cat-1")

	assert.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "Delete", "cat-1")
}

func TestDeleteCategory_NotFound(t *testing.T) {
	repo := new(MockCategoryRepository)
	repo.On("Get", "missing").Return(nil, nil)

	uc := NewTaxonomyUseCase(repo, nil)
	err := uc.DeleteCategory("missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveTag_Defaults(t *testing.T) {
	repo := new(MockTagRepository)
	repo.On("Save", mock.AnythingOfType("*model.Tag")).Return(nil)

	uc := NewTaxonomyUseCase(nil, repo)
	tag, err := uc.SaveTag(SaveTagInput{Name: "Go Modules"})

	assert.NoError(t, err)
	assert.Equal(t, "go-modules", tag.Slug)
	assert.Equal(t, model.DefaultTagColor, tag.Color)
}

func TestSaveTag_UpdateMissing(t *testing.T) {
	repo := new(MockTagRepository)
	repo.On("Get", "tag-1").Return(nil, nil)

	uc := NewTaxonomyUseCase(nil, repo)
	_, err := uc.SaveTag(SaveTagInput{ID: "tag-1", Name: "Go"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTag(t *testing.T) {
	repo := new(MockTagRepository)
	repo.On("Get", "tag-1").Return(&model.Tag{ID: "tag-1", Name: "Go"}, nil)
	repo.On("Delete", "tag-1").Return(nil)

	uc := NewTaxonomyUseCase(nil, repo)
	err := uc.DeleteTag("tag-1")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestTaxonomy_StoreUnavailable(t *testing.T) {
	uc := NewTaxonomyUseCase(nil, nil)

	_, err := uc.ListCategories()
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = uc.ListTags()
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
