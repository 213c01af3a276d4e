package domain

// Brand is a product manufacturer. Brands are flat.
type Brand struct {
	Base
	BrandName string `json:"brandName"`
}

// GetParentID implements Entity.
func (Brand) GetParentID() *int { return nil }

// DisplayName implements Entity.
func (b Brand) DisplayName() string { return b.BrandName }

// BrandInput is the create/update body for a brand.
type BrandInput struct {
	BrandName string `json:"brandName" validate:"required,max=255"`
}
