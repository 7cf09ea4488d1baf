package gridcast

import "math"

// renderEntities draws every entity as a camera-facing billboard. Entities
// overlap each other freely, so the pass runs over full columns and relies
// on the depth buffer for ordering against walls and among themselves.
func renderEntities(s *Screen, sc *Scene, cam *Camera) {
	pos := cam.Position()
	dir := cam.Direction()
	plane := cam.Plane().Mul(s.aspect)
	horizon := s.h/2 + cam.Pitch()

	// Inverse of the column-major [plane dir] basis matrix.
	det := plane.X*dir.Y - dir.X*plane.Y
	if det == 0 {
		return
	}
	invDet := 1 / det

	for _, e := range sc.Entities {
		sx := e.Position.X - pos.X
		sy := e.Position.Y - pos.Y

		transformX := invDet * (dir.Y*sx - dir.X*sy)
		transformY := invDet * (-plane.Y*sx + plane.X*sy)
		if transformY <= 0 {
			continue
		}

		screenX := float64(s.w) * (0.5 + transformX/transformY)
		spriteW := e.Size.X * float64(s.h) / transformY
		spriteH := e.Size.Y * float64(s.h) / transformY
		if spriteW <= 0 || spriteH <= 0 {
			continue
		}

		centerY := float64(horizon) + (pos.Z-e.Position.Z)*float64(s.h)/transformY

		top := centerY - spriteH/2
		bottom := centerY + spriteH/2
		left := screenX - spriteW/2
		right := screenX + spriteW/2
		if right <= 0 || left >= float64(s.w) || bottom <= 0 || top >= float64(s.h) {
			continue
		}

		x0 := int(math.Floor(clampf(left, 0, float64(s.w))))
		x1 := int(math.Floor(clampf(right, 0, float64(s.w))))
		y0 := int(math.Floor(clampf(top, math.MinInt32, math.MaxInt32)))
		y1 := int(math.Floor(clampf(bottom, math.MinInt32, math.MaxInt32)))

		fr, fg, fb := lightFactors(sc, cam, transformY, 0)

		tex, col, textured := e.Appearance.Resolve()
		if !textured {
			for x := x0; x < x1; x++ {
				s.drawColoredColumn(x, col, transformY, y0, y1, fr, fg, fb)
			}
			continue
		}

		fullHeight := y1 - y0
		for x := x0; x < x1; x++ {
			texX := int((float64(x) - left) * float64(tex.Width()) / spriteW)
			s.drawTexturedColumn(x, tex, texX, transformY, y0, y1, fullHeight, fr, fg, fb)
		}
	}
}

// clampf bounds v to [lo, hi] so float results can be safely converted to
// screen integers even when the projection blows up near the camera plane.
func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
