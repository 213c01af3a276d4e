package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tag(id int, parent *int) Tag {
	return Tag{Base: Base{ID: id}, Name: "t", ParentID: parent}
}

func TestIsRoot(t *testing.T) {
	assert.True(t, IsRoot(tag(1, nil)))
	assert.False(t, IsRoot(tag(2, Ref(1))))
	assert.True(t, IsRoot(Color{Base: Base{ID: 3}}))
	assert.True(t, IsRoot(Brand{Base: Base{ID: 4}}))
}

func TestWouldCycle(t *testing.T) {
	// 1 <- 2 <- 3, and 4 is a separate root.
	items := []Tag{tag(1, nil), tag(2, Ref(1)), tag(3, Ref(2)), tag(4, nil)}

	tests := []struct {
		name     string
		id       int
		parentID int
		want     bool
	}{
		{"self parent", 2, 2, true},
		{"descendant as parent", 1, 3, true},
		{"child as parent", 2, 3, true},
		{"unrelated root", 3, 4, false},
		{"ancestor stays ancestor", 3, 1, false},
		{"unknown parent", 1, 99, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WouldCycle(items, tt.id, tt.parentID))
		})
	}
}

func TestWouldCycle_CorruptLoopTerminates(t *testing.T) {
	items := []Tag{tag(1, Ref(2)), tag(2, Ref(1))}

	assert.True(t, WouldCycle(items, 5, 1))
}

func TestTreeIndex_NestedChildren(t *testing.T) {
	// 1 holds 2 explicitly parented; 2 holds 3 with no parentId of its own.
	items := []Category{{
		Base: Base{ID: 1},
		Children: []Category{{
			Base:     Base{ID: 2},
			ParentID: Ref(1),
			Children: []Category{{Base: Base{ID: 3}}},
		}},
	}}

	ix := NewTreeIndex(items)

	assert.False(t, ix.HasParent(1))
	assert.True(t, ix.HasParent(2))
	assert.True(t, ix.HasParent(3), "nesting implies a parent")
	assert.False(t, ix.HasParent(99))

	parent, ok := ix.Parent(3)
	require.True(t, ok)
	assert.Equal(t, 2, *parent)

	_, ok = ix.Parent(99)
	assert.False(t, ok)
}

func TestWouldCycle_NestedChildren(t *testing.T) {
	items := []Tag{{
		Base:     Base{ID: 1},
		Children: []Tag{{Base: Base{ID: 2}, ParentID: Ref(1)}},
	}}

	assert.True(t, WouldCycle(items, 1, 2), "a nested child cannot become its parent's parent")
	assert.False(t, WouldCycle(items, 2, 1))
}

func TestTag_JSON(t *testing.T) {
	raw := `{"id":7,"slug":"summer","name":"Summer","parentId":2,"isDeleted":false,
		"createdAt":"2024-05-01T10:00:00Z","updatedAt":"2024-05-02T10:00:00Z","children":[]}`

	var got Tag
	require.NoError(t, json.Unmarshal([]byte(raw), &got))

	assert.Equal(t, 7, got.GetID())
	assert.Equal(t, "summer", got.GetSlug())
	assert.Equal(t, "Summer", got.DisplayName())
	require.NotNil(t, got.GetParentID())
	assert.Equal(t, 2, *got.GetParentID())
	assert.Equal(t, 2024, got.CreatedAt.Year())
}

func TestInputs_OmitID(t *testing.T) {
	body, err := json.Marshal(CategoryInput{CategoryName: "Shoes"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"categoryName":"Shoes"}`, string(body))
}

func TestRegistration_ConfirmPasswordNotSerialized(t *testing.T) {
	body, err := json.Marshal(Registration{Name: "a", Email: "a@b.com", Password: "p", ConfirmPassword: "p"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"name":"a","email":"a@b.com","password":"p"}`, string(body))
}

func TestUser_IsAdmin_NilAndRoles(t *testing.T) {
	var nilUser *User
	assert.False(t, nilUser.IsAdmin())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
}
