package gridcast

// drawColoredColumn fills the pixel column x from y0 (inclusive) to y1
// (exclusive) with a solid color, lit by the given channel factors. A pixel
// is written only when its stored depth is strictly greater than depth, and
// the depth buffer is updated on every write.
func (s *Screen) drawColoredColumn(x int, col Color, depth float64, y0, y1 int, fr, fg, fb float64) {
	if y0 < 0 {
		y0 = 0
	}
	if y1 > s.h {
		y1 = s.h
	}

	r := scale8(col.R, fr)
	g := scale8(col.G, fg)
	b := scale8(col.B, fb)

	for y := y0; y < y1; y++ {
		di := y*s.w + x
		if s.depth[di] <= depth {
			continue
		}
		i := di * 4
		s.pix[i] = r
		s.pix[i+1] = g
		s.pix[i+2] = b
		s.pix[i+3] = col.A
		s.depth[di] = depth
	}
}

// drawTexturedColumn samples texture column texX into screen column x from
// y0 to y1 (exclusive), stepping through the texture at texHeight/lineHeight
// texels per pixel. lineHeight is the unclipped projected column height, so
// clipped columns keep the correct vertical phase. Texels that are not fully
// opaque are skipped, leaving both color and depth untouched.
func (s *Screen) drawTexturedColumn(x int, tex *Texture, texX int, depth float64, y0, y1, lineHeight int, fr, fg, fb float64) {
	if lineHeight <= 0 {
		return
	}
	texH := tex.Height()
	step := float64(texH) / float64(lineHeight)

	texPos := 0.0
	if y0 < 0 {
		texPos = float64(-y0) * step
		y0 = 0
	}
	if y1 > s.h {
		y1 = s.h
	}
	if texX < 0 {
		texX = 0
	} else if texX >= tex.Width() {
		texX = tex.Width() - 1
	}

	pix := tex.Pix()
	w := tex.Width()

	for y := y0; y < y1; y++ {
		ty := int(texPos)
		texPos += step
		if ty >= texH {
			ty = texH - 1
		}

		di := y*s.w + x
		if s.depth[di] <= depth {
			continue
		}

		ti := (ty*w + texX) * 4
		a := pix[ti+3]
		if a != 255 {
			continue
		}

		i := di * 4
		s.pix[i] = scale8(pix[ti], fr)
		s.pix[i+1] = scale8(pix[ti+1], fg)
		s.pix[i+2] = scale8(pix[ti+2], fb)
		s.pix[i+3] = a
		s.depth[di] = depth
	}
}
