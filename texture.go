package gridcast

import (
	"fmt"
	"image"
	"sync/atomic"
)

// Texture is an immutable RGBA raster sampled by the renderer.
//
// A Texture starts unloaded and is published exactly once, typically by a
// loader goroutine. Until then the renderer substitutes the fallback color.
// The loaded flag is stored atomically and acts as the publish barrier: the
// pixel data is fully written before the flag flips, so a renderer that
// observes Loaded() == true may read the raster without synchronization.
type Texture struct {
	source   string
	width    int
	height   int
	pix      []uint8 // RGBA, row-major, top-left origin
	fallback Color
	loaded   atomic.Bool
	loadErr  atomic.Pointer[error]
}

// NewTexture creates an unloaded texture identified by source, rendered as
// the fallback color until pixel data is published.
func NewTexture(source string, fallback Color) *Texture {
	return &Texture{source: source, fallback: fallback}
}

// NewTextureFromImage creates a loaded texture from an image.
// The image is copied; later mutations of img do not affect the texture.
func NewTextureFromImage(source string, img image.Image) (*Texture, error) {
	t := NewTexture(source, Black)
	if err := t.PublishImage(img); err != nil {
		return nil, err
	}
	return t, nil
}

// Source returns the identifier the texture was created with.
func (t *Texture) Source() string {
	return t.source
}

// Width returns the raster width in pixels. Zero while unloaded.
func (t *Texture) Width() int {
	if !t.loaded.Load() {
		return 0
	}
	return t.width
}

// Height returns the raster height in pixels. Zero while unloaded.
func (t *Texture) Height() int {
	if !t.loaded.Load() {
		return 0
	}
	return t.height
}

// Loaded reports whether pixel data has been published.
func (t *Texture) Loaded() bool {
	return t.loaded.Load()
}

// Fallback returns the color used in place of the raster while unloaded.
func (t *Texture) Fallback() Color {
	return t.fallback
}

// Err returns the load failure reported by Fail, or nil.
func (t *Texture) Err() error {
	if p := t.loadErr.Load(); p != nil {
		return *p
	}
	return nil
}

// Publish installs the raster and marks the texture loaded. The pixel slice
// must be RGBA row-major with length exactly 4*width*height; it is owned by
// the texture afterwards and must not be mutated by the caller.
//
// Publish may be called at most once; a second call or a call on a failed
// texture returns an error.
func (t *Texture) Publish(width, height int, pix []uint8) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: texture %q has dimensions %dx%d", ErrTextureData, t.source, width, height)
	}
	if len(pix) != 4*width*height {
		return fmt.Errorf("%w: texture %q pixel length %d, want %d", ErrTextureData, t.source, len(pix), 4*width*height)
	}
	if t.loaded.Load() {
		return fmt.Errorf("%w: texture %q already loaded", ErrTextureData, t.source)
	}
	if t.loadErr.Load() != nil {
		return fmt.Errorf("%w: texture %q already failed", ErrTextureData, t.source)
	}
	t.width = width
	t.height = height
	t.pix = pix
	t.loaded.Store(true)
	return nil
}

// PublishImage converts an image to RGBA and publishes it.
func (t *Texture) PublishImage(img image.Image) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: texture %q from empty image", ErrTextureData, t.source)
	}

	pix := make([]uint8, 4*width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
			i := (y*width + x) * 4
			pix[i+0] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
			pix[i+3] = c.A
		}
	}
	return t.Publish(width, height, pix)
}

// Fail records an asynchronous load failure. The texture stays unloaded and
// the renderer keeps using the fallback color.
func (t *Texture) Fail(err error) {
	if err == nil {
		return
	}
	t.loadErr.Store(&err)
}

// At returns the color at (x, y). Coordinates outside the raster, or any
// lookup on an unloaded texture, return the fallback color.
func (t *Texture) At(x, y int) Color {
	if !t.loaded.Load() || x < 0 || x >= t.width || y < 0 || y >= t.height {
		return t.fallback
	}
	i := (y*t.width + x) * 4
	return Color{R: t.pix[i], G: t.pix[i+1], B: t.pix[i+2], A: t.pix[i+3]}
}

// Pix returns the raw RGBA raster, or nil while unloaded. The slice must be
// treated as read-only.
func (t *Texture) Pix() []uint8 {
	if !t.loaded.Load() {
		return nil
	}
	return t.pix
}
