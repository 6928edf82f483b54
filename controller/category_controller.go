// controller/category_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	"github.com/dev-mohitbeniwal/ems/api/middleware"
	"github.com/dev-mohitbeniwal/ems/api/model"
	"github.com/dev-mohitbeniwal/ems/api/service"
	"github.com/dev-mohitbeniwal/ems/api/util"
)

type CategoryController struct {
	categoryService service.ICategoryService
}

func NewCategoryController(categoryService service.ICategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// RegisterRoutes registers the API routes
func (cc *CategoryController) RegisterRoutes(r *gin.RouterGroup) {
	manage := middleware.RequireRoles(model.RoleAdmin, model.RoleHR)

	categories := r.Group("/categories")
	{
		categories.GET("", cc.ListCategories)
		categories.POST("", manage, cc.CreateCategory)
		categories.DELETE("/:id", manage, cc.DeleteCategory)
	}
}

// CreateCategory endpoint
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var category model.PolicyCategory
	if err := c.ShouldBindJSON(&category); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid category data", ems_errors.ErrInvalidCategoryData)
		return
	}
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	created, err := cc.categoryService.CreateCategory(c, principal, category)
	if err != nil {
		respondWithServiceError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListCategories endpoint
func (cc *CategoryController) ListCategories(c *gin.Context) {
	categories, err := cc.categoryService.ListCategories(c)
	if err != nil {
		respondWithServiceError(c, err, "Failed to list categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// DeleteCategory endpoint
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}

	categoryID, ok := idParam(c, ems_errors.ErrCategoryNotFound)
	if !ok {
		return
	}

	if err := cc.categoryService.DeleteCategory(c, principal, categoryID); err != nil {
		respondWithServiceError(c, err, "Failed to delete category")
		return
	}

	c.Status(http.StatusNoContent)
}
