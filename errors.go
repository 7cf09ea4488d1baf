package gridcast

import "errors"

// Configuration errors surfaced at construction time. They are never
// silently corrected; the offending value fails to construct.
var (
	// ErrInvalidSize reports a non-positive screen dimension.
	ErrInvalidSize = errors.New("gridcast: screen dimensions must be positive")

	// ErrInvalidQuality reports a render quality outside (0, 1].
	ErrInvalidQuality = errors.New("gridcast: quality must be in (0, 1]")

	// ErrInvalidDirection reports a zero or non-finite camera direction.
	ErrInvalidDirection = errors.New("gridcast: camera direction must be finite and non-zero")

	// ErrInvalidFocalLength reports a non-positive focal length.
	ErrInvalidFocalLength = errors.New("gridcast: focal length must be positive")

	// ErrInvalidCell reports a cell descriptor with a non-positive height.
	ErrInvalidCell = errors.New("gridcast: cell height must be positive")

	// ErrInvalidWorldMap reports a world map whose cell slice does not match
	// its dimensions.
	ErrInvalidWorldMap = errors.New("gridcast: world map data length must equal width*height")

	// ErrInvalidLighting reports an ambient level outside [0, 1] or a
	// negative side shade.
	ErrInvalidLighting = errors.New("gridcast: invalid lighting configuration")

	// ErrTextureData reports a pixel raster that cannot be published.
	ErrTextureData = errors.New("gridcast: invalid texture data")

	// ErrNilTarget reports a nil Screen, Scene, or Camera passed to Render.
	ErrNilTarget = errors.New("gridcast: render requires non-nil screen, scene, and camera")
)
