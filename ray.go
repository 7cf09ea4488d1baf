package gridcast

import "math"

// Ray walks the world grid with a digital differential analyzer, yielding
// one wall hit per Cast call. The struct is plain mutable state so a single
// value can be re-initialised for every screen column without allocating,
// and repeated Cast calls continue from the previous hit for multi-hit
// column scans.
type Ray struct {
	world *WorldMap

	mapX, mapY   int     // current grid cell
	deltaX       float64 // ray length per unit step along x
	deltaY       float64
	stepX, stepY int     // grid step direction, -1 or +1
	sideX, sideY float64 // cumulative side distances
	side         int     // last axis crossed: 0 vertical line, 1 horizontal
	hit          int     // cell id at the hit, 0 when the ray left the map
	dist         float64
}

// Init points the ray from start along dir with the given reference length.
// A zero direction component makes its delta +Inf, so that axis is never
// selected. When length is 1 and dir is direction + plane*aspect*cameraX,
// Distance reports the perpendicular camera-space distance, which is what
// removes the fish-eye without a square root.
func (r *Ray) Init(world *WorldMap, start Vec2, dir Vec2, length float64) {
	r.world = world
	r.mapX = int(math.Floor(start.X))
	r.mapY = int(math.Floor(start.Y))
	r.deltaX = math.Abs(length / dir.X)
	r.deltaY = math.Abs(length / dir.Y)

	if dir.X < 0 {
		r.stepX = -1
		r.sideX = (start.X - float64(r.mapX)) * r.deltaX
	} else {
		r.stepX = 1
		r.sideX = (float64(r.mapX) + 1 - start.X) * r.deltaX
	}
	if dir.Y < 0 {
		r.stepY = -1
		r.sideY = (start.Y - float64(r.mapY)) * r.deltaY
	} else {
		r.stepY = 1
		r.sideY = (float64(r.mapY) + 1 - start.Y) * r.deltaY
	}

	r.side = 0
	r.hit = 0
	r.dist = 0
}

// Cast advances the ray until it enters a non-empty cell or leaves the map.
// After it returns, Hit is the cell id (0 when the ray exited) and Distance
// is the accumulated perpendicular distance. Calling Cast again continues
// beyond the previous hit.
func (r *Ray) Cast() {
	for {
		if r.sideX > r.sideY {
			r.mapY += r.stepY
			r.sideY += r.deltaY
			r.side = 1
		} else {
			r.mapX += r.stepX
			r.sideX += r.deltaX
			r.side = 0
		}

		if !r.world.In(r.mapX, r.mapY) {
			r.hit = 0
			r.settle()
			return
		}
		r.hit = r.world.At(r.mapX, r.mapY)
		if r.hit != 0 {
			r.settle()
			return
		}
	}
}

// settle records the distance to the grid line just crossed. The side
// distance has already been advanced past it, so one delta is backed out.
func (r *Ray) settle() {
	if r.side == 0 {
		r.dist = r.sideX - r.deltaX
	} else {
		r.dist = r.sideY - r.deltaY
	}
}

// Hit returns the cell id of the last hit, or 0 if the ray left the map.
func (r *Ray) Hit() int { return r.hit }

// Side returns the family of grid lines crossed at the last hit:
// 0 for a vertical line (face normal along x), 1 for a horizontal one.
func (r *Ray) Side() int { return r.side }

// Distance returns the perpendicular distance accumulated to the last hit.
func (r *Ray) Distance() float64 { return r.dist }

// Cell returns the grid coordinates of the cell the ray is currently in.
func (r *Ray) Cell() (int, int) { return r.mapX, r.mapY }

// SideDistances returns the initial (or current) cumulative side distances.
// The skybox pass reads these right after Init to find which face of the
// unit cell a view ray leaves through.
func (r *Ray) SideDistances() (x, y float64) { return r.sideX, r.sideY }
