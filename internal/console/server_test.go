package console

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/storefront-admin/internal/client"
	domainerrors "github.com/storefront/storefront-admin/internal/errors"
	"github.com/storefront/storefront-admin/internal/http/response"
	"github.com/storefront/storefront-admin/internal/resource"
	"github.com/storefront/storefront-admin/internal/session"
	"github.com/storefront/storefront-admin/internal/storage"
)

// fakeAPI is a minimal storefront REST API.
type fakeAPI struct {
	role    string
	deletes atomic.Int32
	authHdr atomic.Value
	// down makes list endpoints answer 500 with an HTML body.
	down atomic.Bool
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h := r.Header.Get("Authorization"); h != "" {
		f.authHdr.Store(h)
	}

	if f.down.Load() && r.Method == http.MethodGet {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `<html>oops</html>`)
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "longenough1" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"Invalid credentials"}`)
			return
		}
		io.WriteString(w, `{"user":{"id":1,"name":"Ali","email":"a@b.com","role":"`+f.role+`"},"access_token":"abc"}`)
	case r.Method == http.MethodGet && r.URL.Path == "/tags":
		io.WriteString(w, `{"tags":[{"id":1,"name":"root"},{"id":2,"name":"child","parentId":1}]}`)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/tags/"):
		f.deletes.Add(1)
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodGet && r.URL.Path == "/users/all":
		io.WriteString(w, `[{"id":1,"name":"Ali","email":"a@b.com","role":"ADMIN"}]`)
	default:
		http.NotFound(w, r)
	}
}

type harness struct {
	api     *fakeAPI
	console *Server
	session *session.Store
	storage storage.Storage
}

func newHarness(t *testing.T, role string) *harness {
	t.Helper()

	api := &fakeAPI{role: role}
	apiServer := httptest.NewServer(api)
	t.Cleanup(apiServer.Close)

	st, err := storage.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	c, err := client.New(client.Options{BaseURL: apiServer.URL, Tokens: session.PersistedToken(st)})
	require.NoError(t, err)
	t.Cleanup(c.Close)

	sess := session.New(st, c, nil)
	catalog := resource.NewCatalog(c, resource.CatalogOptions{})

	return &harness{
		api:     api,
		console: NewServer(sess, catalog, c, Options{AllowedOrigins: []string{"http://localhost:5173"}}),
		session: sess,
		storage: st,
	}
}

func (h *harness) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.console.ServeHTTP(w, req)

	var env response.Envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	w, _ := h.do(t, http.MethodPost, "/login", `{"email":"a@b.com","password":"longenough1"}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestConsole_Health(t *testing.T) {
	h := newHarness(t, "ADMIN")

	w, env := h.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}

func TestConsole_PublicPages(t *testing.T) {
	h := newHarness(t, "ADMIN")

	for _, path := range []string{"/", "/home", "/about", "/contact"} {
		w, env := h.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.True(t, env.Success, path)
	}
}

func TestConsole_AnonymousAdminRedirectsToLogin(t *testing.T) {
	h := newHarness(t, "ADMIN")

	w, env := h.do(t, http.MethodGet, "/admin/tags?page=2", "")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	data := env.Data.(map[string]any)["decision"].(map[string]any)
	assert.Equal(t, "redirect_to_login", data["kind"])
	assert.Equal(t, "/admin/tags?page=2", data["from"])
}

// Login with valid credentials, then the admin area renders.
func TestConsole_LoginThenAdmin(t *testing.T) {
	h := newHarness(t, "ADMIN")
	h.login(t)

	snap := h.session.Snapshot()
	assert.True(t, snap.IsAuthenticated())
	assert.Equal(t, "ADMIN", string(snap.Role()))

	w, env := h.do(t, http.MethodGet, "/admin/tags", "")
	require.Equal(t, http.StatusOK, w.Code)
	items := env.Data.(map[string]any)["items"].([]any)
	assert.Len(t, items, 2)
	assert.Equal(t, "Bearer abc", h.api.authHdr.Load())

	w, _ = h.do(t, http.MethodGet, "/admin", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = h.do(t, http.MethodGet, "/admin/users", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data.([]any), 1)
}

func TestConsole_ListFailureKeepsStaleItems(t *testing.T) {
	h := newHarness(t, "ADMIN")
	h.login(t)

	w, _ := h.do(t, http.MethodGet, "/admin/tags", "")
	require.Equal(t, http.StatusOK, w.Code)

	h.api.down.Store(true)
	w, env := h.do(t, http.MethodGet, "/admin/tags", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "TRANSPORT", env.Code)
	assert.NotEmpty(t, env.Error)

	data := env.Data.(map[string]any)
	assert.Equal(t, "failed", data["status"])
	assert.Equal(t, env.Error, data["error"])
	assert.Len(t, data["items"].([]any), 2)
}

func TestConsole_UsersFailureHasMessage(t *testing.T) {
	h := newHarness(t, "ADMIN")
	h.login(t)
	h.api.down.Store(true)

	w, env := h.do(t, http.MethodGet, "/admin/users", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, domainerrors.TransportFallbackMessage, env.Error)
}

func TestConsole_WrongRoleRedirectsHome(t *testing.T) {
	h := newHarness(t, "USER")
	h.login(t)

	w, _ := h.do(t, http.MethodGet, "/admin", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestConsole_GuestOnlyPages(t *testing.T) {
	h := newHarness(t, "USER")

	w, _ := h.do(t, http.MethodGet, "/login", "")
	assert.Equal(t, http.StatusOK, w.Code)

	h.login(t)

	for _, path := range []string{"/login", "/register"} {
		w, _ := h.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/", w.Header().Get("Location"), path)
	}
}

func TestConsole_LoginFailure(t *testing.T) {
	h := newHarness(t, "ADMIN")

	w, env := h.do(t, http.MethodPost, "/login", `{"email":"a@b.com","password":"wrongpass1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTHENTICATION", env.Code)
	assert.Equal(t, "اطلاعات ورود اشتباه است.", env.Error)
	assert.False(t, h.session.Snapshot().IsAuthenticated())
}

func TestConsole_LoginValidation(t *testing.T) {
	h := newHarness(t, "ADMIN")

	w, env := h.do(t, http.MethodPost, "/login", `{"email":"bad","password":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", env.Code)
	assert.Contains(t, env.Details, "email")

	w, _ = h.do(t, http.MethodPost, "/login", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConsole_DeleteNonRootRefused(t *testing.T) {
	h := newHarness(t, "ADMIN")
	h.login(t)

	w, _ := h.do(t, http.MethodGet, "/admin/tags?all=true", "")
	require.Equal(t, http.StatusOK, w.Code)

	w, env := h.do(t, http.MethodDelete, "/admin/tags/2", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "POLICY", env.Code)
	assert.Zero(t, h.api.deletes.Load())

	w, _ = h.do(t, http.MethodDelete, "/admin/tags/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.EqualValues(t, 1, h.api.deletes.Load())
}

func TestConsole_BadParams(t *testing.T) {
	h := newHarness(t, "ADMIN")
	h.login(t)

	w, _ := h.do(t, http.MethodGet, "/admin/tags?page=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(t, http.MethodDelete, "/admin/tags/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = h.do(t, http.MethodGet, "/admin/tags/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConsole_Logout(t *testing.T) {
	h := newHarness(t, "ADMIN")
	h.login(t)

	w, _ := h.do(t, http.MethodPost, "/logout", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)

	values, err := h.storage.GetMany(t.Context(), storage.KeyAccessToken, storage.KeyUserData)
	require.NoError(t, err)
	assert.Empty(t, values)

	w, _ = h.do(t, http.MethodGet, "/admin", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

// A session written by another process is picked up on the next navigation.
func TestConsole_RehydratesOnNavigation(t *testing.T) {
	h := newHarness(t, "ADMIN")

	require.NoError(t, h.storage.SetMany(t.Context(), map[string]string{
		storage.KeyAccessToken: "from-cli",
		storage.KeyUserData:    `{"id":5,"name":"Ops","email":"ops@b.com","role":"ADMIN"}`,
	}))

	w, _ := h.do(t, http.MethodGet, "/admin", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ops", h.session.Snapshot().Name())
}

func TestReturnPath(t *testing.T) {
	tests := map[string]string{
		"/login?from=/admin/tags":            "/admin/tags",
		"/login?from=//evil.example":         "/",
		"/login?from=https://evil.example/x": "/",
		"/login":                             "/",
	}
	for target, want := range tests {
		assert.Equal(t, want, returnPath(httptest.NewRequest(http.MethodGet, target, nil)), target)
	}
}

func TestConsole_SessionView(t *testing.T) {
	h := newHarness(t, "ADMIN")

	_, env := h.do(t, http.MethodGet, "/session", "")
	view := env.Data.(map[string]any)
	assert.Equal(t, false, view["isAuthenticated"])
	assert.Equal(t, "anonymous", view["phase"])

	h.login(t)

	_, env = h.do(t, http.MethodGet, "/session", "")
	view = env.Data.(map[string]any)
	assert.Equal(t, true, view["isAuthenticated"])
	assert.Equal(t, "a@b.com", view["email"])
	assert.NotEmpty(t, view["avatarColor"])
	assert.NotContains(t, view, "token")
}
