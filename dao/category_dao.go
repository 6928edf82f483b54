// dao/category_dao.go
package dao

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dev-mohitbeniwal/ems/api/audit"
	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	logger "github.com/dev-mohitbeniwal/ems/api/logging"
	"github.com/dev-mohitbeniwal/ems/api/model"
)

type CategoryDAO struct {
	DB           *gorm.DB
	AuditService audit.Service
}

func NewCategoryDAO(db *gorm.DB, auditService audit.Service) *CategoryDAO {
	return &CategoryDAO{DB: db, AuditService: auditService}
}

func (dao *CategoryDAO) CreateCategory(ctx context.Context, category *model.PolicyCategory, actor model.Principal) error {
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&model.PolicyCategory{}).Where("name = ?", category.Name).Count(&existing).Error; err != nil {
			return fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
		}
		if existing > 0 {
			return ems_errors.ErrCategoryConflict
		}
		if err := tx.Create(category).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ems_errors.ErrCategoryConflict
			}
			return fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to create category", zap.Error(err), zap.String("name", category.Name))
		return err
	}

	logger.Info("Category created", zap.String("categoryID", category.ID), zap.String("name", category.Name))
	audit.Record(ctx, dao.AuditService, audit.AuditLog{
		UserID:        actor.ID,
		UserRole:      string(actor.Role),
		Action:        audit.ActionCreateCategory,
		ResourceID:    category.ID,
		ChangeDetails: audit.Changes(map[string]interface{}{"name": category.Name}),
	})
	return nil
}

func (dao *CategoryDAO) GetCategory(ctx context.Context, categoryID string) (*model.PolicyCategory, error) {
	var category model.PolicyCategory
	err := dao.DB.WithContext(ctx).Where("id = ?", categoryID).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ems_errors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
	}
	return &category, nil
}

func (dao *CategoryDAO) ListCategories(ctx context.Context) ([]*model.PolicyCategory, error) {
	var categories []*model.PolicyCategory
	if err := dao.DB.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
	}
	return categories, nil
}

// DeleteCategory removes a category and detaches it from its policies.
func (dao *CategoryDAO) DeleteCategory(ctx context.Context, categoryID string, actor model.Principal) error {
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Policy{}).Where("category_id = ?", categoryID).Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, err)
		}
		res := tx.Where("id = ?", categoryID).Delete(&model.PolicyCategory{})
		if res.Error != nil {
			return fmt.Errorf("%w: %w", ems_errors.ErrDatabaseOperation, res.Error)
		}
		if res.RowsAffected == 0 {
			return ems_errors.ErrCategoryNotFound
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete category", zap.Error(err), zap.String("categoryID", categoryID))
		return err
	}

	logger.Info("Category deleted", zap.String("categoryID", categoryID))
	audit.Record(ctx, dao.AuditService, audit.AuditLog{
		UserID:     actor.ID,
		UserRole:   string(actor.Role),
		Action:     audit.ActionDeleteCategory,
		ResourceID: categoryID,
	})
	return nil
}
