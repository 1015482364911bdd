package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tably/internal/identity"
)

func hydrated() Catalog {
	return FromSnapshot([]Category{
		{
			ID:   identity.Confirmed(10),
			Name: "Coffee",
			Items: []Item{
				{ID: identity.Confirmed(101), Name: "Americano", Price: 3500},
				{ID: identity.Confirmed(102), Name: "Latte", Price: 4000},
			},
		},
		{
			ID:   identity.Confirmed(20),
			Name: "Dessert",
			Items: []Item{
				{ID: identity.Confirmed(201), Name: "Cheesecake", Price: 6000},
			},
		},
	})
}

func mustLocal(t *testing.T, id identity.ID) int64 {
	t.Helper()
	local, ok := id.Local()
	assert.True(t, ok, "expected pending identity, got %s", id)
	return local
}

func TestAddCategory_PendingIdentities(t *testing.T) {
	c := hydrated().AddCategory("Tea")
	assert.Equal(t, int64(-1), mustLocal(t, c.Categories[2].ID))

	c = c.AddCategory("Brunch")
	assert.Equal(t, int64(-2), mustLocal(t, c.Categories[3].ID))

	// The next local derives from what is currently present, so a deleted
	// pending local can be handed out again.
	c = c.DeleteCategory(c.Categories[3].ID)
	c = c.AddCategory("Wine")
	assert.Equal(t, int64(-2), mustLocal(t, c.Categories[3].ID))
}

func TestRenameCategory(t *testing.T) {
	c := hydrated().RenameCategory(identity.Confirmed(10), "Espresso Bar")
	assert.Equal(t, "Espresso Bar", c.Categories[0].Name)

	// Stale target is a no-op.
	c = c.RenameCategory(identity.Confirmed(99), "Ghost")
	assert.Equal(t, "Espresso Bar", c.Categories[0].Name)
	assert.Len(t, c.Categories, 2)
}

func TestDeleteCategory_RemovesItems(t *testing.T) {
	c := hydrated().DeleteCategory(identity.Confirmed(10))
	assert.Len(t, c.Categories, 1)
	assert.Equal(t, "Dessert", c.Categories[0].Name)

	_, ok := c.Category(identity.Confirmed(10))
	assert.False(t, ok)
}

func TestMoveCategory(t *testing.T) {
	c := hydrated().AddCategory("Tea")
	c = c.MoveCategory(2, 0)
	assert.Equal(t, "Tea", c.Categories[0].Name)
	assert.Equal(t, "Coffee", c.Categories[1].Name)
	assert.Equal(t, "Dessert", c.Categories[2].Name)

	// Out-of-range move keeps the order.
	c = c.MoveCategory(0, 9)
	assert.Equal(t, "Tea", c.Categories[0].Name)
}

func TestMoveItem(t *testing.T) {
	c := hydrated().MoveItem(identity.Confirmed(10), 1, 0)
	assert.Equal(t, "Latte", c.Categories[0].Items[0].Name)
	assert.Equal(t, "Americano", c.Categories[0].Items[1].Name)
}

// Two items added with no prior pending items must get the globally unique
// pair -100/-101, and stay unique after a cross-category move.
func TestAddItem_GlobalPendingCounter(t *testing.T) {
	c := hydrated()
	c = c.AddItem(identity.Confirmed(10), "Mocha", 4500, nil)
	c = c.AddItem(identity.Confirmed(20), "Tiramisu", 6500, nil)

	mocha := c.Categories[0].Items[2]
	tiramisu := c.Categories[1].Items[1]
	assert.Equal(t, int64(-100), mustLocal(t, mocha.ID))
	assert.Equal(t, int64(-101), mustLocal(t, tiramisu.ID))

	// Move Mocha into Dessert, then add another item: no collision.
	c = c.UpdateItem(identity.Confirmed(10), identity.Confirmed(20), mocha)
	c = c.AddItem(identity.Confirmed(10), "Flat White", 4200, nil)
	assert.Equal(t, int64(-102), mustLocal(t, c.Categories[0].Items[2].ID))
}

func TestUpdateItem_InPlace(t *testing.T) {
	c := hydrated()
	updated := Item{
		ID:    identity.Confirmed(101),
		Name:  "Americano (double)",
		Price: 3800,
		Image: &ImageRef{URI: "file:///tmp/americano.jpg", Pending: true},
	}
	c = c.UpdateItem(identity.Confirmed(10), identity.Confirmed(10), updated)

	assert.Equal(t, "Americano (double)", c.Categories[0].Items[0].Name)
	assert.Equal(t, int64(3800), c.Categories[0].Items[0].Price)
	// Position is preserved on in-place update.
	assert.Equal(t, "Latte", c.Categories[0].Items[1].Name)
}

func TestUpdateItem_CrossCategoryLandsAtEnd(t *testing.T) {
	c := hydrated()
	latte := c.Categories[0].Items[1]
	c = c.UpdateItem(identity.Confirmed(10), identity.Confirmed(20), latte)

	assert.Len(t, c.Categories[0].Items, 1)
	if assert.Len(t, c.Categories[1].Items, 2) {
		assert.Equal(t, "Latte", c.Categories[1].Items[1].Name)
	}
}

func TestUpdateItem_StaleTargetsAreNoops(t *testing.T) {
	c := hydrated()

	got := c.UpdateItem(identity.Confirmed(99), identity.Confirmed(10), c.Categories[0].Items[0])
	assert.Equal(t, c.Categories, got.Categories)

	ghost := Item{ID: identity.Confirmed(999), Name: "Ghost"}
	got = c.UpdateItem(identity.Confirmed(10), identity.Confirmed(10), ghost)
	assert.Equal(t, c.Categories, got.Categories)
}

func TestDeleteItem(t *testing.T) {
	t.Run("ConfirmedNeedsBackendDelete", func(t *testing.T) {
		c, needsBackend := hydrated().DeleteItem(identity.Confirmed(10), identity.Confirmed(101))
		assert.True(t, needsBackend)
		assert.Len(t, c.Categories[0].Items, 1)
	})

	t.Run("PendingIsLocalOnly", func(t *testing.T) {
		c := hydrated().AddItem(identity.Confirmed(10), "Mocha", 4500, nil)
		pendingID := c.Categories[0].Items[2].ID

		c, needsBackend := c.DeleteItem(identity.Confirmed(10), pendingID)
		assert.False(t, needsBackend)
		assert.Len(t, c.Categories[0].Items, 2)
	})

	t.Run("StaleIsNoop", func(t *testing.T) {
		c := hydrated()
		got, needsBackend := c.DeleteItem(identity.Confirmed(10), identity.Confirmed(999))
		assert.False(t, needsBackend)
		assert.Equal(t, c.Categories, got.Categories)
	})
}

func TestConfirmIdentities(t *testing.T) {
	c := hydrated().AddCategory("Tea")
	pendingCat := c.Categories[2].ID
	c = c.AddItem(pendingCat, "Sencha", 5000, nil)
	c = c.AddItem(identity.Confirmed(10), "Mocha", 4500, nil)
	pendingSencha := c.Categories[2].Items[0].ID
	pendingMocha := c.Categories[0].Items[2].ID

	got := c.ConfirmIdentities(
		map[identity.ID]int64{pendingCat: 30},
		map[identity.ID]int64{pendingSencha: 301, pendingMocha: 103},
	)

	assert.True(t, got.Categories[2].ID.Equal(identity.Confirmed(30)))
	assert.True(t, got.Categories[2].Items[0].ID.Equal(identity.Confirmed(301)))
	assert.True(t, got.Categories[0].Items[2].ID.Equal(identity.Confirmed(103)))
	// Already-confirmed identities are untouched, as is the receiver.
	assert.True(t, got.Categories[0].ID.Equal(identity.Confirmed(10)))
	assert.True(t, c.Categories[2].ID.IsPending())

	// Identities absent from the maps stay pending.
	partial := c.ConfirmIdentities(map[identity.ID]int64{pendingCat: 30}, nil)
	assert.True(t, partial.Categories[2].Items[0].ID.IsPending())
}

func TestOperationsDoNotMutateReceiver(t *testing.T) {
	c := hydrated()
	_ = c.DeleteCategory(identity.Confirmed(10))
	_ = c.AddItem(identity.Confirmed(10), "Mocha", 4500, nil)
	_ = c.MoveItem(identity.Confirmed(10), 0, 1)

	assert.Len(t, c.Categories, 2)
	assert.Len(t, c.Categories[0].Items, 2)
	assert.Equal(t, "Americano", c.Categories[0].Items[0].Name)
}
