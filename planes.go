package gridcast

import "math"

// renderPlaneRows draws the floor and ceiling for screen rows [y0, y1).
// Each row corresponds to a single distance from the camera, so the world
// position is interpolated across the row from the leftmost to the rightmost
// view ray. A pixel is written only when the stored depth is strictly
// greater than the row distance, which keeps walls and sprites in front.
func renderPlaneRows(s *Screen, sc *Scene, cam *Camera, y0, y1 int) {
	pos := cam.Position()
	dir := cam.Direction()
	plane := cam.Plane().Mul(s.aspect)
	horizon := s.h/2 + cam.Pitch()

	rayDir0 := dir.Sub(plane.Mul(0.5))
	rayDir1 := dir.Add(plane.Mul(0.5))

	for y := y0; y < y1; y++ {
		var p Plane
		var posZ float64
		switch {
		case y > horizon:
			p = sc.Floor
			posZ = pos.Z * float64(s.h)
		case y < horizon:
			p = sc.Ceiling
			posZ = (p.Height - pos.Z) * float64(s.h)
		default:
			continue
		}
		if !p.Enabled {
			continue
		}

		rowDist := math.Abs(posZ / float64(y-horizon))
		if math.IsInf(rowDist, 0) {
			rowDist = 1e3
		}

		stepX := rowDist * (rayDir1.X - rayDir0.X) / float64(s.w)
		stepY := rowDist * (rayDir1.Y - rayDir0.Y) / float64(s.w)
		fx := pos.X + rowDist*rayDir0.X
		fy := pos.Y + rowDist*rayDir0.Y

		fr, fg, fb := lightFactors(sc, cam, rowDist, 0)

		tex, col, textured := p.Appearance.Resolve()
		if !textured {
			r := scale8(col.R, fr)
			g := scale8(col.G, fg)
			b := scale8(col.B, fb)
			for x := 0; x < s.w; x++ {
				di := y*s.w + x
				if s.depth[di] > rowDist {
					i := di * 4
					s.pix[i] = r
					s.pix[i+1] = g
					s.pix[i+2] = b
					s.pix[i+3] = col.A
					s.depth[di] = rowDist
				}
			}
			continue
		}

		texW, texH := tex.Width(), tex.Height()
		pix := tex.Pix()
		for x := 0; x < s.w; x++ {
			cx, cy := fx, fy
			fx += stepX
			fy += stepY

			di := y*s.w + x
			if s.depth[di] <= rowDist {
				continue
			}

			tx := int(float64(texW) * math.Abs(math.Mod(cx, p.CellWidth)/p.CellWidth))
			ty := int(float64(texH) * math.Abs(math.Mod(cy, p.CellHeight)/p.CellHeight))
			if tx >= texW {
				tx = texW - 1
			}
			if ty >= texH {
				ty = texH - 1
			}

			ti := (ty*texW + tx) * 4
			if pix[ti+3] != 255 {
				continue
			}
			i := di * 4
			s.pix[i] = scale8(pix[ti], fr)
			s.pix[i+1] = scale8(pix[ti+1], fg)
			s.pix[i+2] = scale8(pix[ti+2], fb)
			s.pix[i+3] = pix[ti+3]
			s.depth[di] = rowDist
		}
	}
}
