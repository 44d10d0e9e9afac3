package http

import (
	"errors"
	"net/http"

	"inkwell/internal/usecase"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
)

type TaxonomyHandler struct {
	taxonomyUseCase usecase.TaxonomyUseCase
	logger          *logger.Logger
}

func NewTaxonomyHandler(taxonomyUseCase usecase.TaxonomyUseCase, logger *logger.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyUseCase: taxonomyUseCase, logger: logger}
}

type saveCategoryRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id"`
}

type saveTagRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

func (h *TaxonomyHandler) respondError(c *gin.Context, err error, what string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
	case errors.Is(err, usecase.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "taxonomy store is not configured"})
	default:
		h.logger.Error("Taxonomy operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process " + what})
	}
}

// ListCategories godoc
// @Summary      List categories
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  model.Category
// @Router       /admin/categories [get]
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	categories, err := h.taxonomyUseCase.ListCategories()
	if err != nil {
		h.respondError(c, err, "categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *TaxonomyHandler) GetCategory(c *gin.Context) {
	category, err := h.taxonomyUseCase.GetCategory(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// SaveCategory godoc
// @Summary      Create or update a category
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body saveCategoryRequest true "Category payload"
// @Success      200  {object}  model.Category
// @Router       /admin/category [post]
func (h *TaxonomyHandler) SaveCategory(c *gin.Context) {
	var req saveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	category, err := h.taxonomyUseCase.SaveCategory(usecase.SaveCategoryInput{
		ID:          req.ID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ParentID:    req.ParentID,
	})
	if err != nil {
		h.respondError(c, err, "category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	if err := h.taxonomyUseCase.DeleteCategory(c.Param("id")); err != nil {
		h.respondError(c, err, "category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "category deleted"})
}

// ListTags godoc
// @Summary      List tags
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  model.Tag
// @Router       /admin/tags [get]
func (h *TaxonomyHandler) ListTags(c *gin.Context) {
	tags, err := h.taxonomyUseCase.ListTags()
	if err != nil {
		h.respondError(c, err, "tags")
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *TaxonomyHandler) GetTag(c *gin.Context) {
	tag, err := h.taxonomyUseCase.GetTag(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "tag")
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TaxonomyHandler) SaveTag(c *gin.Context) {
	var req saveTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tag, err := h.taxonomyUseCase.SaveTag(usecase.SaveTagInput{
		ID:    req.ID,
		Name:  req.Name,
		Slug:  req.Slug,
		Color: req.Color,
	})
	if err != nil {
		h.respondError(c, err, "tag")
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TaxonomyHandler) DeleteTag(c *gin.Context) {
	if err := h.taxonomyUseCase.DeleteTag(c.Param("id")); err != nil {
		h.respondError(c, err, "tag")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "tag deleted"})
}
