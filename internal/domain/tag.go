package domain

// Tag labels products and articles. Tags form a tree through ParentID.
type Tag struct {
	Base
	Name            string `json:"name"`
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	ParentID        *int   `json:"parentId,omitempty"`
	Children        []Tag  `json:"children,omitempty"`
}

// GetParentID implements Entity.
func (t Tag) GetParentID() *int { return t.ParentID }

// GetChildren implements Parent.
func (t Tag) GetChildren() []Tag { return t.Children }

// DisplayName implements Entity.
func (t Tag) DisplayName() string { return t.Name }

// TagInput is the create/update body for a tag.
type TagInput struct {
	Name            string `json:"name" validate:"required,max=255"`
	ParentID        *int   `json:"parentId,omitempty" validate:"omitempty,gt=0"`
	MetaTitle       string `json:"metaTitle,omitempty" validate:"max=255"`
	MetaDescription string `json:"metaDescription,omitempty"`
}

// ParentRef implements ParentSetter.
func (in TagInput) ParentRef() *int { return in.ParentID }
