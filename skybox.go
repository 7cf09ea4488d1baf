package gridcast

// renderSkyboxColumns paints the backdrop above the horizon for screen
// columns [x0, x1). The pass runs before any geometry and never touches the
// depth buffer, so walls, sprites and planes freely draw over it.
//
// A textured skybox is mapped as a 360 degree panorama: each view ray is
// dropped into a unit cell centered on the camera and the face it exits
// through selects a quarter of the texture, so the image pans with yaw.
func renderSkyboxColumns(s *Screen, sc *Scene, cam *Camera, x0, x1 int) {
	horizon := s.h/2 + cam.Pitch()
	if horizon > s.h {
		horizon = s.h
	}
	if horizon <= 0 {
		return
	}

	fr, fg, fb := 1.0, 1.0, 1.0
	if sc.Lighting.Enabled() {
		c := cam.Light().Color
		a := sc.Lighting.Ambient
		fr = a * float64(c.R) / 255
		fg = a * float64(c.G) / 255
		fb = a * float64(c.B) / 255
	}

	tex, col, textured := sc.Skybox.Appearance.Resolve()
	if !textured {
		r := scale8(col.R, fr)
		g := scale8(col.G, fg)
		b := scale8(col.B, fb)
		for y := 0; y < horizon; y++ {
			for x := x0; x < x1; x++ {
				i := (y*s.w + x) * 4
				s.pix[i] = r
				s.pix[i+1] = g
				s.pix[i+2] = b
				s.pix[i+3] = col.A
			}
		}
		return
	}

	dir := cam.Direction()
	plane := cam.Plane().Mul(s.aspect)
	texW, texH := tex.Width(), tex.Height()
	pix := tex.Pix()

	// The unit cell the panorama is projected onto, centered on the camera.
	world := WorldMap{Width: 1, Height: 1, Cells: []int{0}}
	center := Vec2{X: 0.5, Y: 0.5}

	var ray Ray
	for x := x0; x < x1; x++ {
		cameraX := float64(x)/float64(s.w) - 0.5
		rayDir := dir.Add(plane.Mul(cameraX))

		ray.Init(&world, center, rayDir, 1)
		tx, ty := ray.SideDistances()

		t := tx
		if ty < tx {
			t = ty
		}

		var face int
		var u float64
		if tx <= ty {
			exitY := 0.5 + t*rayDir.Y
			if rayDir.X > 0 {
				face, u = 0, exitY
			} else {
				face, u = 2, 1-exitY
			}
		} else {
			exitX := 0.5 + t*rayDir.X
			if rayDir.Y > 0 {
				face, u = 1, 1-exitX
			} else {
				face, u = 3, exitX
			}
		}

		texX := int((float64(face) + u) / 4 * float64(texW))
		if texX >= texW {
			texX = texW - 1
		}

		perp := 2 * t
		height := int(float64(texH) / perp)
		if height < 1 {
			height = 1
		}
		step := float64(texH) / float64(height)

		y0 := horizon - height
		texPos := 0.0
		if y0 < 0 {
			texPos = float64(-y0) * step
			y0 = 0
		}

		for y := y0; y < horizon; y++ {
			tyi := int(texPos)
			texPos += step
			if tyi >= texH {
				tyi = texH - 1
			}
			ti := (tyi*texW + texX) * 4
			i := (y*s.w + x) * 4
			s.pix[i] = scale8(pix[ti], fr)
			s.pix[i+1] = scale8(pix[ti+1], fg)
			s.pix[i+2] = scale8(pix[ti+2], fb)
			s.pix[i+3] = pix[ti+3]
		}
	}
}
