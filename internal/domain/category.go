package domain

// Category groups products (and, on the article-categories endpoint, articles).
// Categories form a tree through ParentID.
type Category struct {
	Base
	CategoryName        string     `json:"categoryName"`
	CategoryDescription string     `json:"categoryDescription,omitempty"`
	ParentID            *int       `json:"parentId,omitempty"`
	Children            []Category `json:"children,omitempty"`
}

// GetParentID implements Entity.
func (c Category) GetParentID() *int { return c.ParentID }

// GetChildren implements Parent.
func (c Category) GetChildren() []Category { return c.Children }

// DisplayName implements Entity.
func (c Category) DisplayName() string { return c.CategoryName }

// CategoryInput is the create/update body for a category.
type CategoryInput struct {
	CategoryName        string `json:"categoryName" validate:"required,max=255"`
	CategoryDescription string `json:"categoryDescription,omitempty"`
	ParentID            *int   `json:"parentId,omitempty" validate:"omitempty,gt=0"`
}

// ParentRef implements ParentSetter.
func (in CategoryInput) ParentRef() *int { return in.ParentID }
