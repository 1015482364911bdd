// Package gallery owns the store photo collection: an ordered, size-capped
// list with exactly one representative image whenever any image exists.
package gallery

import (
	"github.com/google/uuid"

	"tably/internal/identity"
)

// MaxImages caps the collection size.
const MaxImages = 5

// Image is one store photo. Source is a remote URL for uploaded images or a
// local handle while the upload is outstanding. IsNew marks entries the
// backend has not seen.
type Image struct {
	ID     identity.ID `json:"id"`
	Source string      `json:"source"`
	IsMain bool        `json:"is_main"`
	IsNew  bool        `json:"is_new"`
}

// Collection is the ordered photo list. It is a value; operations return a
// new snapshot.
type Collection struct {
	Images []Image `json:"images"`
}

// FromSnapshot rebuilds a Collection from backend data.
func FromSnapshot(images []Image) Collection {
	c := Collection{Images: make([]Image, len(images))}
	copy(c.Images, images)
	return c
}

func (c Collection) clone() Collection {
	out := Collection{Images: make([]Image, len(c.Images))}
	copy(out.Images, c.Images)
	return out
}

// NewLocalHandle mints a handle for an image picked from the device and not
// yet uploaded.
func NewLocalHandle() string {
	return "local://" + uuid.NewString()
}

// AddImages appends the given sources as new, pending entries. The whole
// batch is rejected when it would push the collection past MaxImages. If no
// image was representative before, the first image of the resulting
// collection becomes representative.
func (c Collection) AddImages(sources []string) Collection {
	if len(sources) == 0 || len(c.Images)+len(sources) > MaxImages {
		return c
	}
	out := c.clone()
	for _, src := range sources {
		out.Images = append(out.Images, Image{Source: src, IsNew: true})
	}
	return out.ensureRepresentative()
}

// Remove drops the image with the given source. Removing the representative
// promotes the new first image when any remain.
func (c Collection) Remove(source string) Collection {
	idx := c.index(source)
	if idx < 0 {
		return c
	}
	out := c.clone()
	out.Images = append(out.Images[:idx], out.Images[idx+1:]...)
	return out.ensureRepresentative()
}

// SetRepresentative makes the image with the given source the single
// representative. An unknown source is a no-op.
func (c Collection) SetRepresentative(source string) Collection {
	idx := c.index(source)
	if idx < 0 {
		return c
	}
	out := c.clone()
	for i := range out.Images {
		out.Images[i].IsMain = i == idx
	}
	return out
}

// Representative returns the current representative image.
func (c Collection) Representative() (Image, bool) {
	for _, img := range c.Images {
		if img.IsMain {
			return img, true
		}
	}
	return Image{}, false
}

// ensureRepresentative restores the invariant that a non-empty collection
// has exactly one representative, defaulting to the first image.
func (c Collection) ensureRepresentative() Collection {
	if len(c.Images) == 0 {
		return c
	}
	seen := false
	for i := range c.Images {
		if c.Images[i].IsMain {
			if seen {
				c.Images[i].IsMain = false
			}
			seen = true
		}
	}
	if !seen {
		c.Images[0].IsMain = true
	}
	return c
}

func (c Collection) index(source string) int {
	for i, img := range c.Images {
		if img.Source == source {
			return i
		}
	}
	return -1
}
