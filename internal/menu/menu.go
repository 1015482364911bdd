// Package menu owns the two-tier category/item taxonomy of the store editor.
// Entries created locally carry pending identities until a successful save
// replaces the whole catalog with the backend's canonical snapshot.
package menu

import (
	"tably/internal/identity"
	"tably/internal/reorder"
)

// Pending identity counters. Category locals walk down from this base one at
// a time; item locals share a single catalog-wide counter so an item keeps a
// unique identity across cross-category moves.
const (
	firstPendingCategory int64 = -1
	firstPendingItem     int64 = -100
)

// ImageRef points at an item photo: a remote URL left unchanged, or a local
// handle awaiting upload.
type ImageRef struct {
	URI     string `json:"uri"`
	Pending bool   `json:"pending"`
}

// Item is a single menu entry. Price is in the minor currency unit.
type Item struct {
	ID    identity.ID `json:"id"`
	Name  string      `json:"name"`
	Price int64       `json:"price"`
	Image *ImageRef   `json:"image,omitempty"`
}

// Category is a named, ordered group of items. Slice order is display order.
type Category struct {
	ID    identity.ID `json:"id"`
	Name  string      `json:"name"`
	Items []Item      `json:"items"`
}

func (c Category) clone() Category {
	out := c
	out.Items = make([]Item, len(c.Items))
	copy(out.Items, c.Items)
	return out
}

// Catalog is the full taxonomy. Like schedule.Config it is a value: every
// operation returns a new snapshot.
type Catalog struct {
	Categories []Category `json:"categories"`

	nextItemLocal int64
}

// FromSnapshot rebuilds a Catalog from backend data. All identities in the
// snapshot are confirmed; pending counters restart.
func FromSnapshot(categories []Category) Catalog {
	c := Catalog{Categories: make([]Category, len(categories))}
	for i, cat := range categories {
		c.Categories[i] = cat.clone()
	}
	return c
}

func (c Catalog) clone() Catalog {
	out := c
	out.Categories = make([]Category, len(c.Categories))
	for i, cat := range c.Categories {
		out.Categories[i] = cat.clone()
	}
	return out
}

// AddCategory appends a category under a fresh pending identity: one less
// than the lowest pending local already present, or the base value when none
// are pending yet.
func (c Catalog) AddCategory(name string) Catalog {
	out := c.clone()
	out.Categories = append(out.Categories, Category{
		ID:   identity.Pending(out.nextPendingCategory()),
		Name: name,
	})
	return out
}

func (c Catalog) nextPendingCategory() int64 {
	next := firstPendingCategory
	for _, cat := range c.Categories {
		if local, ok := cat.ID.Local(); ok && local <= next {
			next = local - 1
		}
	}
	return next
}

// RenameCategory sets the display name of the identified category. A stale
// id is a no-op.
func (c Catalog) RenameCategory(id identity.ID, name string) Catalog {
	idx := c.categoryIndex(id)
	if idx < 0 {
		return c
	}
	out := c.clone()
	out.Categories[idx].Name = name
	return out
}

// DeleteCategory removes the category and all its items from the in-memory
// model. For a confirmed category the backend-side deletion happens during
// commit, not here.
func (c Catalog) DeleteCategory(id identity.ID) Catalog {
	idx := c.categoryIndex(id)
	if idx < 0 {
		return c
	}
	out := c.clone()
	out.Categories = append(out.Categories[:idx], out.Categories[idx+1:]...)
	return out
}

// MoveCategory relocates a category from one display position to another.
// Out-of-range indices leave the order unchanged.
func (c Catalog) MoveCategory(from, to int) Catalog {
	out := c.clone()
	out.Categories = reorder.Move(out.Categories, from, to)
	return out
}

// MoveItem relocates an item within its category.
func (c Catalog) MoveItem(categoryID identity.ID, from, to int) Catalog {
	idx := c.categoryIndex(categoryID)
	if idx < 0 {
		return c
	}
	out := c.clone()
	out.Categories[idx].Items = reorder.Move(out.Categories[idx].Items, from, to)
	return out
}

// AddItem appends an item to the identified category under a fresh pending
// identity drawn from the catalog-wide item counter.
func (c Catalog) AddItem(categoryID identity.ID, name string, price int64, image *ImageRef) Catalog {
	idx := c.categoryIndex(categoryID)
	if idx < 0 {
		return c
	}
	out := c.clone()
	local := firstPendingItem - out.nextItemLocal
	out.nextItemLocal++
	out.Categories[idx].Items = append(out.Categories[idx].Items, Item{
		ID:    identity.Pending(local),
		Name:  name,
		Price: price,
		Image: image,
	})
	return out
}

// UpdateItem replaces the stored item. When the owning category changes the
// item leaves its original position and lands at the end of the new
// category's list; otherwise it is replaced in place.
func (c Catalog) UpdateItem(originalCategoryID, newCategoryID identity.ID, item Item) Catalog {
	fromIdx := c.categoryIndex(originalCategoryID)
	if fromIdx < 0 {
		return c
	}
	itemIdx := c.itemIndex(fromIdx, item.ID)
	if itemIdx < 0 {
		return c
	}

	if originalCategoryID.Equal(newCategoryID) {
		out := c.clone()
		out.Categories[fromIdx].Items[itemIdx] = item
		return out
	}

	toIdx := c.categoryIndex(newCategoryID)
	if toIdx < 0 {
		return c
	}
	out := c.clone()
	items := out.Categories[fromIdx].Items
	out.Categories[fromIdx].Items = append(items[:itemIdx], items[itemIdx+1:]...)
	out.Categories[toIdx].Items = append(out.Categories[toIdx].Items, item)
	return out
}

// DeleteItem removes the item from the in-memory model. The boolean reports
// whether the caller must issue a backend delete first: true only for
// confirmed identities. Stale targets return the catalog unchanged with no
// backend call required.
func (c Catalog) DeleteItem(categoryID, itemID identity.ID) (Catalog, bool) {
	catIdx := c.categoryIndex(categoryID)
	if catIdx < 0 {
		return c, false
	}
	itemIdx := c.itemIndex(catIdx, itemID)
	if itemIdx < 0 {
		return c, false
	}

	out := c.clone()
	items := out.Categories[catIdx].Items
	out.Categories[catIdx].Items = append(items[:itemIdx], items[itemIdx+1:]...)
	return out, itemID.IsConfirmed()
}

// ConfirmIdentities replaces pending identities with the server ids the
// backend assigned during a commit. Identities absent from the maps are left
// untouched, so the catalog may drift between snapshot and apply.
func (c Catalog) ConfirmIdentities(categories, items map[identity.ID]int64) Catalog {
	out := c.clone()
	for ci := range out.Categories {
		cat := &out.Categories[ci]
		if serverID, ok := categories[cat.ID]; ok {
			cat.ID = identity.Confirmed(serverID)
		}
		for ii := range cat.Items {
			if serverID, ok := items[cat.Items[ii].ID]; ok {
				cat.Items[ii].ID = identity.Confirmed(serverID)
			}
		}
	}
	return out
}

// Category returns the category with the given identity.
func (c Catalog) Category(id identity.ID) (Category, bool) {
	idx := c.categoryIndex(id)
	if idx < 0 {
		return Category{}, false
	}
	return c.Categories[idx].clone(), true
}

func (c Catalog) categoryIndex(id identity.ID) int {
	for i, cat := range c.Categories {
		if cat.ID.Equal(id) {
			return i
		}
	}
	return -1
}

func (c Catalog) itemIndex(catIdx int, id identity.ID) int {
	for i, it := range c.Categories[catIdx].Items {
		if it.ID.Equal(id) {
			return i
		}
	}
	return -1
}
