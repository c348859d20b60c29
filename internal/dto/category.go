package dto

// RenameCategoryRequest represents the request to rename a category
// across all of the caller's expenses
type RenameCategoryRequest struct {
	OldName string `json:"oldName" validate:"required,min=1,max=100"`
	NewName string `json:"newName" validate:"required,min=1,max=100"`
}

// DeleteCategoryRequest represents the request to delete a category,
// reassigning its expenses to the uncategorized pool
type DeleteCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CategoryCascadeResponse reports how many expenses a category rename or
// delete touched
type CategoryCascadeResponse struct {
	Category        string `json:"category"`
	ExpensesChanged int    `json:"expensesChanged"`
	Message         string `json:"message"`
}

// ListCategoriesResponse represents the response for listing categories
type ListCategoriesResponse struct {
	Categories []string `json:"categories"`
	Total      int      `json:"total"`
}
