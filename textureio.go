package gridcast

import (
	"fmt"
	"image"
	"io"
	"os"

	// Register the decoders the loader accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadTexture reads and decodes an image file into a loaded texture.
// PNG, JPEG, GIF, BMP, TIFF, and WebP are accepted.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path) //nolint:gosec // path is caller-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	return DecodeTexture(f, path)
}

// DecodeTexture decodes image data from r into a loaded texture identified
// by source.
func DecodeTexture(r io.Reader, source string) (*Texture, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}

	t, err := NewTextureFromImage(source, img)
	if err != nil {
		return nil, err
	}
	Logger().Debug("texture decoded",
		"source", source, "format", format,
		"width", t.Width(), "height", t.Height())
	return t, nil
}

// LoadTextureAsync begins loading path into the unloaded texture t in a new
// goroutine. On success the raster is published; on failure the error is
// recorded on the texture and the fallback color stays in use.
func LoadTextureAsync(t *Texture, path string) {
	go func() {
		loaded, err := LoadTexture(path)
		if err != nil {
			t.Fail(err)
			Logger().Warn("texture load failed", "source", path, "error", err)
			return
		}
		if err := t.Publish(loaded.width, loaded.height, loaded.pix); err != nil {
			t.Fail(err)
		}
	}()
}
