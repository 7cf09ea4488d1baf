package gridcast

import "math"

// renderWallColumns casts one ray per screen column in [x0, x1) and draws
// every visible wall the ray crosses, nearest first. The scan continues past
// each hit until the remaining walls are fully occluded or the ray leaves
// the map, so taller walls show above nearer, shorter ones.
func renderWallColumns(s *Screen, sc *Scene, cam *Camera, x0, x1 int) {
	pos := cam.Position()
	dir := cam.Direction()
	plane := cam.Plane().Mul(s.aspect)
	horizon := s.h/2 + cam.Pitch()

	// Vertical parallax from camera height: raising the eye above the 0.5
	// midline shifts every wall down on screen, scaled by 1/distance.
	camShift := (pos.Z - 0.5) * float64(s.h)

	var ray Ray
	for x := x0; x < x1; x++ {
		cameraX := float64(x)/float64(s.w) - 0.5
		rayDir := dir.Add(plane.Mul(cameraX))

		ray.Init(&sc.World, pos.XY(), rayDir, 1)

		// Topmost (smallest y) wall-top row drawn so far in this column.
		// A wall whose top is not above it is hidden behind nearer walls.
		smallestTop := math.Inf(1)

		for {
			ray.Cast()
			if ray.Hit() == 0 {
				break
			}
			info, ok := sc.Cells[ray.Hit()]
			if !ok {
				continue
			}

			depth := ray.Distance()
			if depth <= 0 {
				continue
			}
			lineHeight := float64(s.h) / depth

			center := float64(horizon) + camShift/depth
			top := center - lineHeight*info.Height + lineHeight/2
			bottom := center + lineHeight/2
			if top >= smallestTop {
				continue
			}
			trueBottom := bottom
			if trueBottom > smallestTop {
				trueBottom = smallestTop
			}
			smallestTop = top

			drawStart := int(math.Floor(top))
			drawEnd := int(math.Floor(trueBottom))
			fullHeight := int(math.Floor(bottom)) - drawStart

			fr, fg, fb := lightFactors(sc, cam, depth, ray.Side())

			tex, col, textured := info.Appearance.Resolve()
			if !textured {
				s.drawColoredColumn(x, col, depth, drawStart, drawEnd, fr, fg, fb)
			} else {
				mx, my := ray.Cell()
				var wallX float64
				if ray.Side() == 0 {
					wallX = pos.Y + depth*rayDir.Y - float64(my)
				} else {
					wallX = pos.X + depth*rayDir.X - float64(mx)
				}
				wallX -= math.Floor(wallX)

				texX := int(wallX * float64(tex.Width()))
				if (ray.Side() == 0 && rayDir.X > 0) || (ray.Side() == 1 && rayDir.Y < 0) {
					texX = tex.Width() - texX - 1
				}
				s.drawTexturedColumn(x, tex, texX, depth, drawStart, drawEnd, fullHeight, fr, fg, fb)
			}

			if smallestTop <= 0 {
				break
			}
		}
	}
}
