package console

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/storefront/storefront-admin/internal/domain"
	"github.com/storefront/storefront-admin/internal/http/response"
	"github.com/storefront/storefront-admin/internal/resource"
)

const invalidIDMessage = "شناسه معتبر نیست."

type resourceHandlers[T domain.Entity, I any] struct {
	s     *Server
	store *resource.Store[T, I]
}

// mountResource returns the CRUD routes for one catalog store.
func mountResource[T domain.Entity, I any](s *Server, store *resource.Store[T, I]) func(chi.Router) {
	h := &resourceHandlers[T, I]{s: s, store: store}
	return func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/filter", h.filter)
		r.Get("/{id}", h.selectItem)
		r.Patch("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	}
}

func (h *resourceHandlers[T, I]) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := resource.FetchParams{
		Search:   q.Get("search"),
		FetchAll: q.Get("all") == "true",
	}

	var err error
	if params.Page, err = optionalInt(q.Get("page")); err != nil {
		response.BadRequest(w, badParam("page"), h.s.logger)
		return
	}
	if params.Limit, err = optionalInt(q.Get("limit")); err != nil {
		response.BadRequest(w, badParam("limit"), h.s.logger)
		return
	}
	if raw := q.Get("parentId"); raw != "" {
		parent, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, badParam("parentId"), h.s.logger)
			return
		}
		params.ParentID = &parent
	}

	if _, err := h.store.Fetch(r.Context(), params); err != nil {
		response.ErrorWithData(w, err, h.store.Snapshot(), h.s.logger)
		return
	}
	response.Success(w, h.store.Snapshot(), h.s.logger)
}

// filter searches cached items without calling the API.
func (h *resourceHandlers[T, I]) filter(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.store.Filter(r.URL.Query().Get("q")), h.s.logger)
}

func (h *resourceHandlers[T, I]) create(w http.ResponseWriter, r *http.Request) {
	var input I
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, invalidBodyMessage, h.s.logger)
		return
	}

	created, err := h.store.Create(r.Context(), input)
	if err != nil {
		response.HandleError(w, err, h.s.logger)
		return
	}
	response.Created(w, created, h.s.logger)
}

func (h *resourceHandlers[T, I]) selectItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r)
	if !ok {
		return
	}

	item, err := h.store.Select(id)
	if err != nil {
		response.HandleError(w, err, h.s.logger)
		return
	}
	response.Success(w, item, h.s.logger)
}

func (h *resourceHandlers[T, I]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r)
	if !ok {
		return
	}

	var input I
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, invalidBodyMessage, h.s.logger)
		return
	}

	updated, err := h.store.Update(r.Context(), id, input)
	if err != nil {
		response.HandleError(w, err, h.s.logger)
		return
	}
	response.Success(w, updated, h.s.logger)
}

func (h *resourceHandlers[T, I]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, h.s.logger)
		return
	}
	response.NoContent(w)
}

func (h *resourceHandlers[T, I]) id(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		response.BadRequest(w, invalidIDMessage, h.s.logger)
		return 0, false
	}
	return id, true
}

func badParam(name string) string {
	return fmt.Sprintf("پارامتر %s معتبر نیست.", name)
}

func optionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
