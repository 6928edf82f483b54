package controller_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/dev-mohitbeniwal/ems/api/controller"
	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	"github.com/dev-mohitbeniwal/ems/api/model"
	mock_service "github.com/dev-mohitbeniwal/ems/api/test/service_mock"
)

func TestCategoryController(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCategoryService := mock_service.NewMockICategoryService(ctrl)
	router, api := setupRouter(&hrUser)
	controller.NewCategoryController(mockCategoryService).RegisterRoutes(api)

	t.Run("CreateCategory_Success", func(t *testing.T) {
		mockCategoryService.EXPECT().
			CreateCategory(gomock.Any(), hrUser, model.PolicyCategory{Name: "Security", Icon: "shield"}).
			Return(&model.PolicyCategory{ID: categoryOne, Name: "Security", Icon: "shield"}, nil)

		req, _ := http.NewRequest("POST", "/categories", strings.NewReader(`{"name":"Security","icon":"shield"}`))
		w := serve(router, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("CreateCategory_Failure_Conflict", func(t *testing.T) {
		mockCategoryService.EXPECT().
			CreateCategory(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, ems_errors.ErrCategoryConflict)

		req, _ := http.NewRequest("POST", "/categories", strings.NewReader(`{"name":"Security"}`))
		w := serve(router, req)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("ListCategories_Success", func(t *testing.T) {
		mockCategoryService.EXPECT().
			ListCategories(gomock.Any()).
			Return([]*model.PolicyCategory{{ID: categoryOne, Name: "Security"}}, nil)

		req, _ := http.NewRequest("GET", "/categories", nil)
		w := serve(router, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("DeleteCategory_Success", func(t *testing.T) {
		mockCategoryService.EXPECT().DeleteCategory(gomock.Any(), hrUser, categoryOne).Return(nil)

		req, _ := http.NewRequest("DELETE", "/categories/"+categoryOne, nil)
		w := serve(router, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("DeleteCategory_Failure_NotFound", func(t *testing.T) {
		mockCategoryService.EXPECT().DeleteCategory(gomock.Any(), hrUser, missingCategory).Return(ems_errors.ErrCategoryNotFound)

		req, _ := http.NewRequest("DELETE", "/categories/"+missingCategory, nil)
		w := serve(router, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("employees cannot create", func(t *testing.T) {
		empRouter, empAPI := setupRouter(&employeeUser)
		controller.NewCategoryController(mockCategoryService).RegisterRoutes(empAPI)

		req, _ := http.NewRequest("POST", "/categories", strings.NewReader(`{"name":"x"}`))
		w := serve(empRouter, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
