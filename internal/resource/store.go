// Package resource caches catalog collections (tags, categories, colors,
// brands) and mutates them only through CRUD calls against the API.
//
// Items are replaced wholesale by a successful fetch and patched locally by
// create, update and delete. Between fetches the cache may drift from the
// server: it is eventually consistent, not authoritative.
package resource

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/storefront/storefront-admin/internal/client"
	"github.com/storefront/storefront-admin/internal/domain"
	domainerrors "github.com/storefront/storefront-admin/internal/errors"
	"github.com/storefront/storefront-admin/internal/logger"
	"github.com/storefront/storefront-admin/internal/validation"
)

// Status is the request status of a collection.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

const (
	DefaultPageSize      = 10
	DefaultFetchAllLimit = 1000
)

// Backend is the subset of client.Resource a store needs.
type Backend[T domain.Entity] interface {
	List(ctx context.Context, params client.ListParams) ([]T, error)
	Create(ctx context.Context, body any) (T, error)
	Update(ctx context.Context, id int, body any) (T, error)
	Delete(ctx context.Context, id int) error
}

// State is a snapshot of one collection.
type State[T domain.Entity] struct {
	Items    []T    `json:"items"`
	Selected *T     `json:"selected"`
	Status   Status `json:"status"`
	Error    string `json:"error,omitempty"`
}

// FetchParams select the page to fetch. FetchAll requests a single page of
// FetchAllLimit items; larger collections are truncated.
type FetchParams struct {
	Page     int
	Limit    int
	Search   string
	ParentID *int
	FetchAll bool
}

// Options configures a Store.
type Options struct {
	Name          string
	Labels        Labels
	PageSize      int
	FetchAllLimit int
	Logger        *slog.Logger
}

// Store is the cache for one resource type. T is the entity, I its
// create/update input.
type Store[T domain.Entity, I any] struct {
	mu    sync.RWMutex
	state State[T]

	backend   Backend[T]
	validator *validation.Validator
	name      string
	labels    Labels
	pageSize  int
	fetchAll  int
	logger    *slog.Logger
}

// NewStore creates an idle, empty store over backend.
func NewStore[T domain.Entity, I any](backend Backend[T], opts Options) *Store[T, I] {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.FetchAllLimit <= 0 {
		opts.FetchAllLimit = DefaultFetchAllLimit
	}
	return &Store[T, I]{
		state:     State[T]{Items: []T{}, Status: StatusIdle},
		backend:   backend,
		validator: validation.New(),
		name:      opts.Name,
		labels:    opts.Labels,
		pageSize:  opts.PageSize,
		fetchAll:  opts.FetchAllLimit,
		logger:    logger.OrDiscard(opts.Logger).With("resource", opts.Name),
	}
}

// Name returns the resource name, e.g. "tags".
func (s *Store[T, I]) Name() string {
	return s.name
}

// Labels returns the localized nouns of the resource.
func (s *Store[T, I]) Labels() Labels {
	return s.labels
}

// Snapshot returns a copy of the current state.
func (s *Store[T, I]) Snapshot() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := State[T]{
		Items:  slices.Clone(s.state.Items),
		Status: s.state.Status,
		Error:  s.state.Error,
	}
	if s.state.Selected != nil {
		sel := *s.state.Selected
		out.Selected = &sel
	}
	return out
}

// Fetch replaces the cached items with one page from the server.
func (s *Store[T, I]) Fetch(ctx context.Context, p FetchParams) ([]T, error) {
	params := client.ListParams{
		Page:     max(p.Page, 1),
		Limit:    p.Limit,
		Search:   p.Search,
		ParentID: p.ParentID,
	}
	if params.Limit <= 0 {
		params.Limit = s.pageSize
	}
	if p.FetchAll {
		params.Limit = s.fetchAll
	}

	s.begin()
	items, err := s.backend.List(ctx, params)
	if err != nil {
		return nil, s.fail(err, s.labels.fetchFailed())
	}

	if p.FetchAll && len(items) > s.fetchAll {
		s.logger.Warn("Fetch-all result truncated",
			"received", len(items),
			"limit", s.fetchAll,
		)
		items = items[:s.fetchAll]
	}

	s.mu.Lock()
	s.state.Items = items
	s.state.Selected = refresh(items, s.state.Selected)
	s.state.Status = StatusSucceeded
	s.mu.Unlock()

	return slices.Clone(items), nil
}

// Create posts input and adds the returned entity to the cache. An entity
// whose id is already cached replaces the cached copy.
func (s *Store[T, I]) Create(ctx context.Context, input I) (T, error) {
	var zero T
	if err := s.validator.Validate(input); err != nil {
		return zero, err
	}

	s.begin()
	created, err := s.backend.Create(ctx, input)
	if err == nil && created.GetID() == 0 {
		err = domainerrors.InvalidResponse("Invalid API response: missing id")
	}
	if err != nil {
		return zero, s.fail(err, s.labels.createFailed())
	}

	s.mu.Lock()
	if i := s.indexOf(created.GetID()); i >= 0 {
		s.state.Items[i] = created
	} else {
		s.state.Items = append(s.state.Items, created)
	}
	s.state.Status = StatusSucceeded
	s.mu.Unlock()

	return created, nil
}

// Update patches the entity addressed by id and replaces the cached copy. An
// id missing from the cache is not an error.
func (s *Store[T, I]) Update(ctx context.Context, id int, input I) (T, error) {
	var zero T
	if err := s.validator.Validate(input); err != nil {
		return zero, err
	}

	s.begin()

	if ps, ok := any(input).(domain.ParentSetter); ok && ps.ParentRef() != nil {
		s.mu.RLock()
		cycle := domain.WouldCycle(s.state.Items, id, *ps.ParentRef())
		s.mu.RUnlock()
		if cycle {
			return zero, s.fail(domainerrors.Policy(s.labels.cycle()), "")
		}
	}

	updated, err := s.backend.Update(ctx, id, input)
	if err == nil && updated.GetID() == 0 {
		err = domainerrors.InvalidResponse("Invalid API response: missing id")
	}
	if err != nil {
		return zero, s.fail(err, s.labels.updateFailed())
	}

	s.mu.Lock()
	if i := s.indexOf(updated.GetID()); i >= 0 {
		s.state.Items[i] = updated
	}
	if s.state.Selected != nil && (*s.state.Selected).GetID() == updated.GetID() {
		s.state.Selected = &updated
	}
	s.state.Status = StatusSucceeded
	s.mu.Unlock()

	return updated, nil
}

// Delete removes the entity addressed by id. A cached entity with a parent,
// nested children included, is refused locally and no request is sent.
func (s *Store[T, I]) Delete(ctx context.Context, id int) error {
	s.begin()

	s.mu.RLock()
	nonRoot := domain.NewTreeIndex(s.state.Items).HasParent(id)
	s.mu.RUnlock()

	if nonRoot {
		return s.fail(domainerrors.Policy(s.labels.hasParent()), "")
	}

	if err := s.backend.Delete(ctx, id); err != nil {
		return s.fail(err, s.labels.deleteFailed())
	}

	s.mu.Lock()
	s.state.Items = slices.DeleteFunc(s.state.Items, func(it T) bool { return it.GetID() == id })
	if s.state.Selected != nil && (*s.state.Selected).GetID() == id {
		s.state.Selected = nil
	}
	s.state.Status = StatusSucceeded
	s.mu.Unlock()

	return nil
}

// Select marks the cached entity with id as selected.
func (s *Store[T, I]) Select(id int) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.state.Selected = nil
		var zero T
		return zero, domainerrors.NotFoundf("%s %d not found", s.name, id)
	}

	sel := s.state.Items[i]
	s.state.Selected = &sel
	return sel, nil
}

// ClearSelection drops the selected entity.
func (s *Store[T, I]) ClearSelection() {
	s.mu.Lock()
	s.state.Selected = nil
	s.mu.Unlock()
}

// Filter returns cached items whose name or slug contains query.
func (s *Store[T, I]) Filter(query string) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.state.Items, query)
}

// begin starts a new request. Allowed from any state.
func (s *Store[T, I]) begin() {
	s.mu.Lock()
	s.state.Status = StatusLoading
	s.state.Error = ""
	s.mu.Unlock()
}

// fail records a failed request and returns the error to hand to the caller.
// The message is the server's when it sent one, else fallback, else err's own.
// Cached items are left as they were.
func (s *Store[T, I]) fail(err error, fallback string) error {
	msg, ok := domainerrors.ServerMessage(err)
	if !ok {
		msg = fallback
	}
	if msg == "" {
		msg = domainerrors.Message(err)
	}

	s.mu.Lock()
	s.state.Status = StatusFailed
	s.state.Error = msg
	s.mu.Unlock()

	s.logger.Debug("Request failed", "error", err)

	if msg == domainerrors.Message(err) {
		return err
	}
	return domainerrors.Wrap(err, domainerrors.CodeOf(err), msg)
}

// indexOf must be called with s.mu held.
func (s *Store[T, I]) indexOf(id int) int {
	return slices.IndexFunc(s.state.Items, func(it T) bool { return it.GetID() == id })
}

func refresh[T domain.Entity](items []T, selected *T) *T {
	if selected == nil {
		return nil
	}
	id := (*selected).GetID()
	for _, it := range items {
		if it.GetID() == id {
			return &it
		}
	}
	return nil
}
