package catalog

import "errors"

var (
	ErrCategoryInUse = errors.New("category is associated with products and cannot be deleted")
	ErrNameRequired  = errors.New("name is required")
	ErrSalePrice     = errors.New("sale price cannot exceed price")

	// Message is part of the admin form contract, hence the casing.
	ErrSlideFields = errors.New("Title and image are required")
)
