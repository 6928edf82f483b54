// errors/category_errors.go
package errors

import "errors"

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrInvalidCategoryData = errors.New("invalid category data")
	ErrCategoryConflict    = errors.New("category conflict")
)
