// Package domain defines the storefront entities the admin client caches.
package domain

import "time"

// Entity is implemented by every catalog resource (tag, category, color, brand).
type Entity interface {
	GetID() int
	// GetParentID returns nil for root entities and for flat resource types.
	GetParentID() *int
	// DisplayName returns the resource's name-like field.
	DisplayName() string
	GetSlug() string
}

// ParentSetter is implemented by create/update inputs that can reference a parent.
type ParentSetter interface {
	ParentRef() *int
}

// Base holds the fields every catalog resource shares.
type Base struct {
	ID        int       `json:"id"`
	Slug      string    `json:"slug"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetID implements Entity.
func (b Base) GetID() int { return b.ID }

// GetSlug implements Entity.
func (b Base) GetSlug() string { return b.Slug }

// IsRoot reports whether e has no parent. Only roots may be deleted.
func IsRoot(e Entity) bool {
	return e.GetParentID() == nil
}

// Ref returns a pointer to id, for optional parent references.
func Ref(id int) *int {
	return &id
}

// Parent is implemented by entities that carry their children inline.
type Parent[T any] interface {
	GetChildren() []T
}

// TreeIndex maps every cached node, nested children included, to its parent.
type TreeIndex struct {
	parents map[int]*int
}

// NewTreeIndex walks items and their children. A nested child without its own
// parentId takes the enclosing node as parent.
func NewTreeIndex[T Entity](items []T) TreeIndex {
	ix := TreeIndex{parents: make(map[int]*int, len(items))}

	var walk func(nodes []T, enclosing *int)
	walk = func(nodes []T, enclosing *int) {
		for _, n := range nodes {
			parent := n.GetParentID()
			if parent == nil {
				parent = enclosing
			}
			if _, seen := ix.parents[n.GetID()]; seen {
				continue
			}
			ix.parents[n.GetID()] = parent
			if p, ok := any(n).(Parent[T]); ok {
				walk(p.GetChildren(), Ref(n.GetID()))
			}
		}
	}
	walk(items, nil)

	return ix
}

// Parent returns the parent of id and whether id is known at all.
func (ix TreeIndex) Parent(id int) (*int, bool) {
	p, ok := ix.parents[id]
	return p, ok
}

// HasParent reports whether id is a known non-root node.
func (ix TreeIndex) HasParent(id int) bool {
	p, ok := ix.parents[id]
	return ok && p != nil
}

// WouldCycle reports whether making parentID the parent of id would make id its
// own ancestor, following parent links through the known items and their
// children. Unknown parents end the walk: the server owns the full tree.
func WouldCycle[T Entity](items []T, id, parentID int) bool {
	if id == parentID {
		return true
	}

	ix := NewTreeIndex(items)

	seen := map[int]bool{}
	for cur := parentID; ; {
		if cur == id {
			return true
		}
		if seen[cur] {
			// Corrupt data already cycles; refuse to extend it.
			return true
		}
		seen[cur] = true

		parent, ok := ix.Parent(cur)
		if !ok || parent == nil {
			return false
		}
		cur = *parent
	}
}
