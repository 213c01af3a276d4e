package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storefront/storefront-admin/internal/domain"
	"github.com/storefront/storefront-admin/internal/session"
)

func authed(role domain.Role) session.State {
	return session.State{User: &domain.User{ID: 1, Role: role}, Token: "abc"}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		state session.State
		role  domain.Role
		want  Decision
	}{
		{"loading", session.State{IsLoading: true}, domain.RoleAdmin, Decision{Kind: Pending}},
		{"loading while signed in", session.State{IsLoading: true, Token: "abc", User: &domain.User{}}, "", Decision{Kind: Pending}},
		{"anonymous admin page", session.State{}, domain.RoleAdmin, Decision{Kind: RedirectToLogin, From: "/admin/tags"}},
		{"anonymous any page", session.State{}, "", Decision{Kind: RedirectToLogin, From: "/admin/tags"}},
		{"anonymous with stale error", session.State{Error: "x"}, domain.RoleAdmin, Decision{Kind: RedirectToLogin, From: "/admin/tags"}},
		{"wrong role", authed(domain.RoleUser), domain.RoleAdmin, Decision{Kind: RedirectHome}},
		{"right role", authed(domain.RoleAdmin), domain.RoleAdmin, Decision{Kind: Allow}},
		{"no role required", authed(domain.RoleUser), "", Decision{Kind: Allow}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.state, tt.role, "/admin/tags"))
		})
	}
}

// Every unauthenticated, non-loading session is sent to login, whatever the role.
func TestEvaluate_UnauthenticatedAlwaysLogin(t *testing.T) {
	roles := []domain.Role{"", domain.RoleAdmin, domain.RoleUser, "EDITOR"}
	states := []session.State{
		{},
		{Error: "boom"},
		{User: &domain.User{Role: domain.RoleAdmin}}, // user without token is not authenticated
		{Token: ""},
	}

	for _, st := range states {
		for _, role := range roles {
			d := Evaluate(st, role, "/x")
			assert.Equal(t, RedirectToLogin, d.Kind)
			assert.Equal(t, "/x", d.From)
			assert.Equal(t, LoginPath, d.Location())
		}
	}
}

func TestEvaluate_MismatchedRoleAlwaysHome(t *testing.T) {
	roles := []domain.Role{domain.RoleAdmin, domain.RoleUser, "EDITOR"}

	for _, have := range roles {
		for _, want := range roles {
			if have == want {
				continue
			}
			d := Evaluate(authed(have), want, "/admin")
			assert.Equal(t, RedirectHome, d.Kind, "have %s want %s", have, want)
			assert.Equal(t, HomePath, d.Location())
		}
	}
}

func TestEvaluateGuestOnly(t *testing.T) {
	assert.Equal(t, Allow, EvaluateGuestOnly(session.State{}).Kind)
	assert.Equal(t, RedirectHome, EvaluateGuestOnly(authed(domain.RoleUser)).Kind)
	assert.Equal(t, Pending, EvaluateGuestOnly(session.State{IsLoading: true}).Kind)
	assert.Empty(t, Decision{Kind: Allow}.Location())
}
