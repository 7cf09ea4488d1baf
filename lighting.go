package gridcast

// lightFactors computes the per-channel lighting multipliers for a surface
// sample at the given perpendicular depth. side is 1 when the surface was
// hit on a horizontal grid line (or 0 for surfaces without a facing, such
// as sprites and planes).
//
// Brightness falls off as 1/depth, clamped above by the camera's
// MaxBrightness and below by the scene ambient. Side shading is subtracted
// after the ambient clamp so shaded faces can dip below ambient. The camera
// light color tints each channel independently.
func lightFactors(sc *Scene, cam *Camera, depth float64, side int) (fr, fg, fb float64) {
	if !sc.Lighting.Enabled() {
		return 1, 1, 1
	}

	light := cam.Light()
	l := light.MaxBrightness
	if depth > 0 {
		l = light.Brightness / depth
		if l > light.MaxBrightness {
			l = light.MaxBrightness
		}
	}
	if l < sc.Lighting.Ambient {
		l = sc.Lighting.Ambient
	}
	if side == 1 {
		l -= sc.Lighting.SideShade
		if l < 0 {
			l = 0
		}
	}

	c := light.Color
	fr = l * float64(c.R) / 255
	fg = l * float64(c.G) / 255
	fb = l * float64(c.B) / 255
	return fr, fg, fb
}
