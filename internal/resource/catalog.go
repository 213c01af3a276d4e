package resource

import (
	"log/slog"

	"github.com/storefront/storefront-admin/internal/client"
	"github.com/storefront/storefront-admin/internal/domain"
)

// Catalog holds one store per catalog resource.
type Catalog struct {
	Tags              *Store[domain.Tag, domain.TagInput]
	Categories        *Store[domain.Category, domain.CategoryInput]
	ArticleCategories *Store[domain.Category, domain.CategoryInput]
	Colors            *Store[domain.Color, domain.ColorInput]
	Brands            *Store[domain.Brand, domain.BrandInput]
}

// CatalogOptions configure every store in a Catalog.
type CatalogOptions struct {
	PageSize      int
	FetchAllLimit int
	Logger        *slog.Logger
}

// NewCatalog creates the five stores over c.
func NewCatalog(c *client.Client, opts CatalogOptions) *Catalog {
	options := func(name string, labels Labels) Options {
		return Options{
			Name:          name,
			Labels:        labels,
			PageSize:      opts.PageSize,
			FetchAllLimit: opts.FetchAllLimit,
			Logger:        opts.Logger,
		}
	}

	return &Catalog{
		Tags:              NewStore[domain.Tag, domain.TagInput](c.Tags(), options("tags", TagLabels)),
		Categories:        NewStore[domain.Category, domain.CategoryInput](c.Categories(), options("categories", CategoryLabels)),
		ArticleCategories: NewStore[domain.Category, domain.CategoryInput](c.ArticleCategories(), options("article-categories", ArticleCategoryLabels)),
		Colors:            NewStore[domain.Color, domain.ColorInput](c.Colors(), options("colors", ColorLabels)),
		Brands:            NewStore[domain.Brand, domain.BrandInput](c.Brands(), options("brands", BrandLabels)),
	}
}

// Names lists the resource names in sidebar order.
func (c *Catalog) Names() []string {
	return []string{
		c.Tags.Name(),
		c.Categories.Name(),
		c.ArticleCategories.Name(),
		c.Colors.Name(),
		c.Brands.Name(),
	}
}
