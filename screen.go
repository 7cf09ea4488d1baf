package gridcast

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/draw"
)

// Screen owns the two buffers the render passes cooperate through: an RGBA
// pixel buffer and a same-sized depth buffer holding the perpendicular
// distance (in world units) from the camera plane to the surface that
// produced each pixel.
//
// The logical size is what the caller presents; the render size is the
// logical size scaled by the quality factor, never below 1x1.
type Screen struct {
	width   int // logical
	height  int // logical
	quality float64
	w       int // render
	h       int // render
	aspect  float64
	pix     []uint8
	depth   []float64
	scaler  draw.Scaler
}

// ScreenOption configures a Screen during creation.
type ScreenOption func(*Screen)

// WithPresentScaler sets the scaler used by Present when the render size
// differs from the logical size. The default is draw.NearestNeighbor, which
// keeps the blocky retro look; draw.ApproxBiLinear softens it.
func WithPresentScaler(s draw.Scaler) ScreenOption {
	return func(sc *Screen) {
		if s != nil {
			sc.scaler = s
		}
	}
}

// NewScreen creates a screen with the given logical size and render quality.
// Both dimensions must be positive and quality must lie in (0, 1].
func NewScreen(width, height int, quality float64, opts ...ScreenOption) (*Screen, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if quality <= 0 || quality > 1 || math.IsNaN(quality) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuality, quality)
	}

	w := int(math.Round(float64(width) * quality))
	if w < 1 {
		w = 1
	}
	h := int(math.Round(float64(height) * quality))
	if h < 1 {
		h = 1
	}

	s := &Screen{
		width:   width,
		height:  height,
		quality: quality,
		w:       w,
		h:       h,
		aspect:  float64(w) / float64(h),
		pix:     make([]uint8, 4*w*h),
		depth:   make([]float64, w*h),
		scaler:  draw.NearestNeighbor,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Clear()
	return s, nil
}

// Width returns the logical width.
func (s *Screen) Width() int { return s.width }

// Height returns the logical height.
func (s *Screen) Height() int { return s.height }

// Quality returns the render quality factor.
func (s *Screen) Quality() float64 { return s.quality }

// W returns the render width in pixels.
func (s *Screen) W() int { return s.w }

// H returns the render height in pixels.
func (s *Screen) H() int { return s.h }

// Aspect returns the render aspect ratio W/H.
func (s *Screen) Aspect() float64 { return s.aspect }

// Pix returns the raw RGBA pixel buffer (row-major, top-left origin,
// 4 bytes per pixel, length 4*W*H).
func (s *Screen) Pix() []uint8 { return s.pix }

// Depth returns the depth buffer (length W*H). It is exposed so callers can
// inspect it and extend the pipeline with their own passes.
func (s *Screen) Depth() []float64 { return s.depth }

// Clear resets every pixel byte to 0 and every depth entry to +Inf.
// Callers must clear between frames; Render does not.
func (s *Screen) Clear() {
	clear(s.pix)
	inf := math.Inf(1)
	for i := range s.depth {
		s.depth[i] = inf
	}
}

// ToImage copies the render buffer into a new image.RGBA.
func (s *Screen) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.w, s.h))
	copy(img.Pix, s.pix)
	return img
}

// Present scales the render buffer to the logical size and draws it into
// dst. At quality 1 this is a plain copy.
func (s *Screen) Present(dst draw.Image) {
	src := s.ToImage()
	if s.w == s.width && s.h == s.height {
		draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
		return
	}
	s.scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
}

// PresentImage returns the frame scaled to the logical size.
func (s *Screen) PresentImage() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	s.Present(dst)
	return dst
}

// SavePNG writes the presented frame to a PNG file.
func (s *Screen) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is caller-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, s.PresentImage())
}

// At implements the image.Image interface over the render buffer.
func (s *Screen) At(x, y int) color.Color {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return color.NRGBA{}
	}
	i := (y*s.w + x) * 4
	return color.NRGBA{R: s.pix[i], G: s.pix[i+1], B: s.pix[i+2], A: s.pix[i+3]}
}

// Bounds implements the image.Image interface over the render buffer.
func (s *Screen) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.w, s.h)
}

// ColorModel implements the image.Image interface.
func (s *Screen) ColorModel() color.Model {
	return color.NRGBAModel
}
