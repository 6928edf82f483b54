package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/ems/api/dao"
	logger "github.com/dev-mohitbeniwal/ems/api/logging"
	"github.com/dev-mohitbeniwal/ems/api/model"
	pdp_model "github.com/dev-mohitbeniwal/ems/api/pdp/model"
	"github.com/dev-mohitbeniwal/ems/api/util"
)

type CategoryService struct {
	categoryDAO    *dao.CategoryDAO
	authorizer     Authorizer
	validationUtil *util.ValidationUtil
}

func NewCategoryService(categoryDAO *dao.CategoryDAO, authorizer Authorizer, validationUtil *util.ValidationUtil) *CategoryService {
	return &CategoryService{
		categoryDAO:    categoryDAO,
		authorizer:     authorizer,
		validationUtil: validationUtil,
	}
}

func (s *CategoryService) CreateCategory(ctx context.Context, principal model.Principal, category model.PolicyCategory) (*model.PolicyCategory, error) {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionCategoryManage); err != nil {
		return nil, err
	}
	category.ID = ""
	if err := s.validationUtil.ValidateCategory(category); err != nil {
		return nil, err
	}

	if err := s.categoryDAO.CreateCategory(ctx, &category, principal); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	logger.Info("Category created", zap.String("categoryID", category.ID), zap.String("name", category.Name))
	return &category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*model.PolicyCategory, error) {
	return s.categoryDAO.ListCategories(ctx)
}

// DeleteCategory removes a category. Policies in it become uncategorised.
func (s *CategoryService) DeleteCategory(ctx context.Context, principal model.Principal, categoryID string) error {
	if err := s.authorizer.Authorize(ctx, principal, pdp_model.ActionCategoryManage); err != nil {
		return err
	}
	if err := s.categoryDAO.DeleteCategory(ctx, categoryID, principal); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	logger.Info("Category deleted", zap.String("categoryID", categoryID))
	return nil
}
