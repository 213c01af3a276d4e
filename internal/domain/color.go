package domain

// Color is a product color option. Colors are flat.
type Color struct {
	Base
	Color string `json:"color"`
}

// GetParentID implements Entity.
func (Color) GetParentID() *int { return nil }

// DisplayName implements Entity.
func (c Color) DisplayName() string { return c.Color }

// ColorInput is the create/update body for a color.
type ColorInput struct {
	Color string `json:"color" validate:"required,max=64"`
}
