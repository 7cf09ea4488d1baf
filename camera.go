package gridcast

import (
	"fmt"
	"math"
)

// Light is the per-camera lighting configuration. Brightness falls off with
// distance, clamped above by MaxBrightness and below by the scene ambient;
// the camera color tints every lit pixel.
type Light struct {
	Brightness    float64
	MaxBrightness float64
	Color         Color
}

// DefaultLight returns the neutral light: no falloff headroom, white tint.
func DefaultLight() Light {
	return Light{Brightness: 1, MaxBrightness: 1, Color: White}
}

// Camera is the viewpoint a frame is rendered from.
//
// The direction vector's magnitude is the focal length, and the camera
// plane is kept perpendicular to the direction with base length 1 (the
// renderer scales it by the screen aspect). Every orientation mutator
// re-derives the plane, so the perpendicularity invariant always holds.
type Camera struct {
	position Vec3
	dir      Vec2 // |dir| == focal
	plane    Vec2 // perpendicular to dir, length 1
	focal    float64
	pitch    int // vertical screen offset in pixels
	light    Light
}

// NewCamera creates a camera at position, facing direction, with the given
// focal length. The direction is normalized; its original magnitude is
// ignored. The height of the viewpoint is position.Z, where 0.5 is eye
// level halfway up a height-1 wall.
func NewCamera(position Vec3, direction Vec2, focalLength float64) (*Camera, error) {
	c := &Camera{position: position, light: DefaultLight()}
	if err := c.setOrientation(direction, focalLength); err != nil {
		return nil, err
	}
	return c, nil
}

// setOrientation validates and installs direction and focal length,
// re-deriving the camera plane as the direction's perpendicular.
func (c *Camera) setOrientation(direction Vec2, focalLength float64) error {
	if direction.IsZero() ||
		math.IsNaN(direction.X) || math.IsNaN(direction.Y) ||
		math.IsInf(direction.X, 0) || math.IsInf(direction.Y, 0) {
		return fmt.Errorf("%w: %+v", ErrInvalidDirection, direction)
	}
	if focalLength <= 0 || math.IsNaN(focalLength) || math.IsInf(focalLength, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFocalLength, focalLength)
	}

	unit := direction.Normalize()
	c.dir = unit.Mul(focalLength)
	c.plane = Vec2{X: -unit.Y, Y: unit.X}
	c.focal = focalLength
	return nil
}

// Position returns the camera position. Z is the viewpoint height.
func (c *Camera) Position() Vec3 { return c.position }

// SetPosition moves the camera.
func (c *Camera) SetPosition(p Vec3) { c.position = p }

// Direction returns the facing vector. Its magnitude equals FocalLength.
func (c *Camera) Direction() Vec2 { return c.dir }

// Plane returns the camera plane: perpendicular to the direction, base
// length 1, scaled by the screen aspect at render time.
func (c *Camera) Plane() Vec2 { return c.plane }

// FocalLength returns the focal length.
func (c *Camera) FocalLength() float64 { return c.focal }

// SetFocalLength rescales the direction vector to the new focal length.
func (c *Camera) SetFocalLength(f float64) error {
	return c.setOrientation(c.dir, f)
}

// SetDirection points the camera along the given vector, preserving the
// focal length.
func (c *Camera) SetDirection(direction Vec2) error {
	return c.setOrientation(direction, c.focal)
}

// Rotate turns the camera by angle radians about the vertical axis.
func (c *Camera) Rotate(angle float64) {
	unit := c.dir.Normalize().Rotate(angle)
	c.dir = unit.Mul(c.focal)
	c.plane = Vec2{X: -unit.Y, Y: unit.X}
}

// Pitch returns the vertical screen offset in pixels. Positive pitch moves
// the horizon down, tilting the view upward.
func (c *Camera) Pitch() int { return c.pitch }

// SetPitch sets the vertical screen offset in pixels.
func (c *Camera) SetPitch(p int) { c.pitch = p }

// Light returns the camera lighting configuration.
func (c *Camera) Light() Light { return c.light }

// SetLight replaces the camera lighting configuration.
func (c *Camera) SetLight(l Light) { c.light = l }

// Move advances the camera along its facing direction by dist world units
// (negative walks backwards), sliding along solid cells per axis.
func (c *Camera) Move(sc *Scene, dist float64) {
	c.slide(sc, c.dir.Normalize().Mul(dist))
}

// Strafe moves the camera perpendicular to its facing direction by dist
// world units (positive to the right).
func (c *Camera) Strafe(sc *Scene, dist float64) {
	c.slide(sc, c.plane.Mul(dist))
}

// slide applies a horizontal displacement, checking each axis against the
// scene separately so the camera slides along walls instead of sticking.
func (c *Camera) slide(sc *Scene, delta Vec2) {
	if sc == nil {
		c.position.X += delta.X
		c.position.Y += delta.Y
		return
	}
	if !sc.Solid(c.position.X+delta.X, c.position.Y) {
		c.position.X += delta.X
	}
	if !sc.Solid(c.position.X, c.position.Y+delta.Y) {
		c.position.Y += delta.Y
	}
}
