package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/storefront/storefront-admin/internal/domain"
	domainerrors "github.com/storefront/storefront-admin/internal/errors"
)

// ListParams are the query parameters of a list call. Zero values are omitted.
type ListParams struct {
	Page     int
	Limit    int
	Search   string
	ParentID *int
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.ParentID != nil {
		q.Set("parentId", strconv.Itoa(*p.ParentID))
	}
	return q
}

// Resource exposes the CRUD endpoints of one catalog resource.
type Resource[T domain.Entity] struct {
	c    *Client
	path string
	// listKey names the object field that wraps list responses, if any.
	listKey string
}

// NewResource binds a resource type to its collection path.
func NewResource[T domain.Entity](c *Client, path, listKey string) *Resource[T] {
	return &Resource[T]{c: c, path: path, listKey: listKey}
}

// Tags returns the /tags endpoints. The list call wraps results in {"tags": [...]}.
func (c *Client) Tags() *Resource[domain.Tag] {
	return NewResource[domain.Tag](c, "/tags", "tags")
}

// Categories returns the /categories endpoints.
func (c *Client) Categories() *Resource[domain.Category] {
	return NewResource[domain.Category](c, "/categories", "")
}

// ArticleCategories returns the /article-categories endpoints.
func (c *Client) ArticleCategories() *Resource[domain.Category] {
	return NewResource[domain.Category](c, "/article-categories", "")
}

// Colors returns the /colors endpoints.
func (c *Client) Colors() *Resource[domain.Color] {
	return NewResource[domain.Color](c, "/colors", "")
}

// Brands returns the /brands endpoints.
func (c *Client) Brands() *Resource[domain.Brand] {
	return NewResource[domain.Brand](c, "/brands", "")
}

// Path returns the collection path, e.g. "/tags".
func (r *Resource[T]) Path() string {
	return r.path
}

// List fetches one page of the collection.
func (r *Resource[T]) List(ctx context.Context, params ListParams) ([]T, error) {
	data, err := r.c.doRequest(ctx, request{
		method: http.MethodGet,
		path:   r.path,
		query:  params.values(),
	})
	if err != nil {
		return nil, err
	}
	return r.decodeList(data)
}

// Create posts body and returns the created entity.
func (r *Resource[T]) Create(ctx context.Context, body any) (T, error) {
	var out T
	err := r.c.do(ctx, request{method: http.MethodPost, path: r.path, body: body}, &out)
	return out, err
}

// Update patches the entity addressed by id. The id never appears in the body.
func (r *Resource[T]) Update(ctx context.Context, id int, body any) (T, error) {
	var out T
	err := r.c.do(ctx, request{method: http.MethodPatch, path: r.itemPath(id), body: body}, &out)
	return out, err
}

// Delete removes the entity addressed by id.
func (r *Resource[T]) Delete(ctx context.Context, id int) error {
	return r.c.do(ctx, request{method: http.MethodDelete, path: r.itemPath(id)}, nil)
}

func (r *Resource[T]) itemPath(id int) string {
	return r.path + "/" + strconv.Itoa(id)
}

// decodeList accepts a bare array or, when listKey is set, an object holding
// the array under listKey. Anything else is an INVALID_RESPONSE error.
func (r *Resource[T]) decodeList(data []byte) ([]T, error) {
	raw := bytes.TrimSpace(data)

	if len(raw) > 0 && raw[0] == '{' && r.listKey != "" {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, r.invalidList(err)
		}
		raw = bytes.TrimSpace(wrapper[r.listKey])
	}

	if len(raw) == 0 || raw[0] != '[' {
		return nil, r.invalidList(nil)
	}

	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, r.invalidList(err)
	}
	return items, nil
}

func (r *Resource[T]) invalidList(cause error) error {
	msg := fmt.Sprintf("Invalid data format: expected an array from %s", r.path)
	if cause == nil {
		return domainerrors.InvalidResponse(msg)
	}
	return domainerrors.Wrap(cause, domainerrors.CodeInvalidResponse, msg)
}
