package gallery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tably/internal/identity"
)

func remote(n int) Image {
	return Image{
		ID:     identity.Confirmed(int64(n)),
		Source: "https://cdn.example.com/store/" + string(rune('a'+n)) + ".jpg",
	}
}

func TestAddImages(t *testing.T) {
	t.Run("FirstImageBecomesRepresentative", func(t *testing.T) {
		c := Collection{}.AddImages([]string{"local://one", "local://two"})
		assert.Len(t, c.Images, 2)
		assert.True(t, c.Images[0].IsMain)
		assert.False(t, c.Images[1].IsMain)
		assert.True(t, c.Images[0].IsNew)
	})

	t.Run("ExistingRepresentativeKept", func(t *testing.T) {
		a, b := remote(0), remote(1)
		b.IsMain = true
		c := FromSnapshot([]Image{a, b}).AddImages([]string{"local://three"})
		assert.True(t, c.Images[1].IsMain)
		assert.False(t, c.Images[2].IsMain)
	})

	t.Run("BatchPastCapIsRejected", func(t *testing.T) {
		full := Collection{}.AddImages([]string{"1", "2", "3", "4", "5"})
		assert.Len(t, full.Images, MaxImages)

		got := full.AddImages([]string{"x"})
		assert.Len(t, got.Images, MaxImages)
		assert.Equal(t, full.Images, got.Images)
	})

	t.Run("OversizedBatchRejectedWholly", func(t *testing.T) {
		c := Collection{}.AddImages([]string{"1", "2", "3"})
		got := c.AddImages([]string{"4", "5", "6"})
		assert.Len(t, got.Images, 3)
	})
}

func TestRemove(t *testing.T) {
	t.Run("RemovingRepresentativePromotesFirst", func(t *testing.T) {
		c := Collection{}.AddImages([]string{"one", "two", "three"})
		c = c.Remove("one")

		assert.Len(t, c.Images, 2)
		assert.True(t, c.Images[0].IsMain)
		assert.Equal(t, "two", c.Images[0].Source)
	})

	t.Run("RemovingOtherKeepsRepresentative", func(t *testing.T) {
		c := Collection{}.AddImages([]string{"one", "two", "three"})
		c = c.Remove("three")
		rep, ok := c.Representative()
		assert.True(t, ok)
		assert.Equal(t, "one", rep.Source)
	})

	t.Run("EmptyCollectionHasNoRepresentative", func(t *testing.T) {
		c := Collection{}.AddImages([]string{"one"}).Remove("one")
		assert.Empty(t, c.Images)
		_, ok := c.Representative()
		assert.False(t, ok)
	})

	t.Run("UnknownSourceIsNoop", func(t *testing.T) {
		c := Collection{}.AddImages([]string{"one"})
		assert.Equal(t, c, c.Remove("ghost"))
	})
}

func TestSetRepresentative(t *testing.T) {
	c := Collection{}.AddImages([]string{"one", "two", "three"})
	c = c.SetRepresentative("three")

	for i, img := range c.Images {
		assert.Equal(t, i == 2, img.IsMain, "image %d", i)
	}

	// Unknown source leaves flags alone.
	c = c.SetRepresentative("ghost")
	rep, ok := c.Representative()
	assert.True(t, ok)
	assert.Equal(t, "three", rep.Source)
}

func TestNewLocalHandle(t *testing.T) {
	a, b := NewLocalHandle(), NewLocalHandle()
	assert.True(t, strings.HasPrefix(a, "local://"))
	assert.NotEqual(t, a, b)
}

func TestOperationsDoNotMutateReceiver(t *testing.T) {
	c := Collection{}.AddImages([]string{"one", "two"})
	_ = c.Remove("one")
	_ = c.SetRepresentative("two")

	assert.Len(t, c.Images, 2)
	assert.True(t, c.Images[0].IsMain)
}
