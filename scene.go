package gridcast

import (
	"fmt"
	"math"
)

// Appearance is a tagged variant: a surface is painted either with a solid
// Color or with a Texture. The renderer resolves the variant once per wall
// column or plane row, never per pixel, keeping the inner loops monomorphic.
type Appearance struct {
	tex *Texture
	col Color
}

// SolidAppearance creates a solid-color appearance.
func SolidAppearance(c Color) Appearance {
	return Appearance{col: c}
}

// TextureAppearance creates a textured appearance. The texture may still be
// unloaded; it renders as its fallback color until published.
func TextureAppearance(t *Texture) Appearance {
	return Appearance{tex: t}
}

// Texture returns the texture case, or nil for a solid appearance.
func (a Appearance) Texture() *Texture { return a.tex }

// Solid returns the color case. Meaningless when Texture() != nil.
func (a Appearance) Solid() Color { return a.col }

// Resolve samples the variant once for a drawing span. When the appearance
// is a loaded texture it returns (texture, _, true); otherwise it returns
// (nil, color, false) where color is the solid color or, for an unloaded
// texture, its fallback.
//
// The load flag is read exactly once here, so a texture published mid-frame
// switches over at the next span boundary, never inside one.
func (a Appearance) Resolve() (*Texture, Color, bool) {
	if a.tex == nil {
		return nil, a.col, false
	}
	if a.tex.Loaded() {
		return a.tex, Color{}, true
	}
	return nil, a.tex.Fallback(), false
}

// WorldMap is the grid the rays traverse. Cells holds one non-negative cell
// id per grid square, row-major; 0 means empty.
type WorldMap struct {
	Width  int
	Height int
	Cells  []int
}

// In reports whether the cell coordinates lie inside the map.
func (m *WorldMap) In(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns the cell id at (x, y). The caller must ensure In(x, y).
func (m *WorldMap) At(x, y int) int {
	return m.Cells[x+y*m.Width]
}

// Empty reports whether the map has no cells at all.
func (m *WorldMap) Empty() bool {
	return len(m.Cells) == 0
}

// CellInfo describes how a non-zero cell id renders. Height is in grid
// units: a height of 1 projects to the classic flat-wall extent. A cell id
// present in the map but absent from the descriptor table is treated as
// empty-but-opaque: rays pass through without producing a column.
type CellInfo struct {
	Height     float64
	Appearance Appearance
}

// Plane configures the floor or ceiling. CellWidth and CellHeight give the
// world-unit extent of one texture repeat. Height is the vertical position
// of the ceiling plane and is ignored for the floor.
type Plane struct {
	Enabled    bool
	Appearance Appearance
	CellWidth  float64
	CellHeight float64
	Height     float64
}

// Skybox configures the backdrop drawn above the horizon before any
// geometry. A textured skybox pans with the camera yaw.
type Skybox struct {
	Enabled    bool
	Appearance Appearance
}

// Entity is a billboard sprite placed in the world. Size is in grid units;
// Position.Z lifts the sprite center off the floor.
type Entity struct {
	Position   Vec3
	Size       Vec2
	Appearance Appearance
}

// Lighting is the scene-wide lighting configuration. Ambient is the minimum
// lighting scalar regardless of distance; SideShade darkens walls hit on a
// horizontal grid line to fake directional shading.
type Lighting struct {
	Ambient   float64
	SideShade float64
}

// Enabled reports whether the lighting model does anything: it is derived,
// true iff SideShade != 0 or Ambient != 1.
func (l Lighting) Enabled() bool {
	return l.SideShade != 0 || l.Ambient != 1
}

// SceneConfig is the construction record for a Scene. Zero-valued plane
// cell sizes and ceiling height default to 1; a nil Lighting defaults to
// Ambient 1 (lighting disabled).
type SceneConfig struct {
	World    WorldMap
	Cells    map[int]CellInfo
	Floor    Plane
	Ceiling  Plane
	Skybox   Skybox
	Entities []Entity
	Lighting *Lighting
}

// Scene holds everything a frame is rendered from. It must not be mutated
// while a render call is in flight; between frames, entities may be added
// or removed freely.
type Scene struct {
	World    WorldMap
	Cells    map[int]CellInfo
	Floor    Plane
	Ceiling  Plane
	Skybox   Skybox
	Entities []Entity
	Lighting Lighting
}

// NewScene validates a configuration record and builds a Scene, applying
// the documented defaults. Invalid values fail construction rather than
// being corrected.
func NewScene(cfg SceneConfig) (*Scene, error) {
	if len(cfg.World.Cells) != cfg.World.Width*cfg.World.Height {
		return nil, fmt.Errorf("%w: %d cells for %dx%d",
			ErrInvalidWorldMap, len(cfg.World.Cells), cfg.World.Width, cfg.World.Height)
	}
	for id, info := range cfg.Cells {
		if info.Height <= 0 || math.IsNaN(info.Height) {
			return nil, fmt.Errorf("%w: cell %d has height %v", ErrInvalidCell, id, info.Height)
		}
	}

	lighting := Lighting{Ambient: 1}
	if cfg.Lighting != nil {
		lighting = *cfg.Lighting
		if lighting.Ambient < 0 || lighting.Ambient > 1 || math.IsNaN(lighting.Ambient) {
			return nil, fmt.Errorf("%w: ambient %v outside [0, 1]", ErrInvalidLighting, lighting.Ambient)
		}
		if lighting.SideShade < 0 || math.IsNaN(lighting.SideShade) {
			return nil, fmt.Errorf("%w: side shade %v is negative", ErrInvalidLighting, lighting.SideShade)
		}
	}

	return &Scene{
		World:    cfg.World,
		Cells:    cfg.Cells,
		Floor:    defaultPlane(cfg.Floor),
		Ceiling:  defaultPlane(cfg.Ceiling),
		Skybox:   cfg.Skybox,
		Entities: cfg.Entities,
		Lighting: lighting,
	}, nil
}

// defaultPlane fills zero-valued plane fields with their documented defaults.
func defaultPlane(p Plane) Plane {
	if p.CellWidth == 0 {
		p.CellWidth = 1
	}
	if p.CellHeight == 0 {
		p.CellHeight = 1
	}
	if p.Height == 0 {
		p.Height = 1
	}
	return p
}

// Solid reports whether the world position lies inside a renderable wall
// cell. Cells whose id has no descriptor are passable, matching the way
// rays travel through them.
func (s *Scene) Solid(x, y float64) bool {
	mx, my := int(math.Floor(x)), int(math.Floor(y))
	if !s.World.In(mx, my) {
		return false
	}
	id := s.World.At(mx, my)
	if id == 0 {
		return false
	}
	_, ok := s.Cells[id]
	return ok
}
