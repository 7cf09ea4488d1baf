// Package demo builds the small procedurally textured scene shared by the
// example binaries.
package demo

import (
	"math"

	"github.com/gridcast/gridcast"
)

// checker fills a texture with a two-color checkerboard.
func checker(size, squares int, a, b gridcast.Color) *gridcast.Texture {
	pix := make([]uint8, 4*size*size)
	cell := size / squares
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			i := (y*size + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	t := gridcast.NewTexture("demo:checker", a)
	if err := t.Publish(size, size, pix); err != nil {
		panic(err)
	}
	return t
}

// bricks fills a texture with a running-bond brick pattern.
func bricks(size int, mortar, brick gridcast.Color) *gridcast.Texture {
	pix := make([]uint8, 4*size*size)
	rowH := size / 4
	brickW := size / 2
	for y := 0; y < size; y++ {
		row := y / rowH
		offset := 0
		if row%2 == 1 {
			offset = brickW / 2
		}
		for x := 0; x < size; x++ {
			c := brick
			bx := (x + offset) % brickW
			if y%rowH < 2 || bx < 2 {
				c = mortar
			}
			// Darken each brick slightly by row for variety.
			shade := 1 - 0.06*float64(row%4)
			i := (y*size + x) * 4
			pix[i] = uint8(float64(c.R) * shade)
			pix[i+1] = uint8(float64(c.G) * shade)
			pix[i+2] = uint8(float64(c.B) * shade)
			pix[i+3] = c.A
		}
	}
	t := gridcast.NewTexture("demo:bricks", brick)
	if err := t.Publish(size, size, pix); err != nil {
		panic(err)
	}
	return t
}

// sky fills a wide panorama with a vertical gradient and a band of stars.
func sky(w, h int) *gridcast.Texture {
	pix := make([]uint8, 4*w*h)
	top := gridcast.RGB(8, 10, 40)
	bottom := gridcast.RGB(70, 40, 90)
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h-1)
		r := uint8(float64(top.R) + t*float64(int(bottom.R)-int(top.R)))
		g := uint8(float64(top.G) + t*float64(int(bottom.G)-int(top.G)))
		b := uint8(float64(top.B) + t*float64(int(bottom.B)-int(top.B)))
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, 255
		}
	}
	// Deterministic star field from a small hash of the column.
	for x := 0; x < w; x++ {
		hy := (x*2654435761 + 97) % (h / 2)
		i := (hy*w + x) * 4
		if x%7 == 0 {
			pix[i], pix[i+1], pix[i+2] = 255, 255, 230
		}
	}
	t := gridcast.NewTexture("demo:sky", top)
	if err := t.Publish(w, h, pix); err != nil {
		panic(err)
	}
	return t
}

// ghost fills a square texture with a simple billboard figure on a
// transparent background.
func ghost(size int, body gridcast.Color) *gridcast.Texture {
	pix := make([]uint8, 4*size*size)
	cx, cy := float64(size)/2, float64(size)*0.4
	r := float64(size) * 0.32
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			inHead := (fx-cx)*(fx-cx)+(fy-cy)*(fy-cy) < r*r
			inBody := fy >= cy && fy < float64(size)*0.85 && math.Abs(fx-cx) < r
			if !inHead && !inBody {
				continue
			}
			i := (y*size + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = body.R, body.G, body.B, 255
			// Eyes.
			if inHead && fy < cy && (math.Abs(fx-cx-r/2) < 2 || math.Abs(fx-cx+r/2) < 2) {
				pix[i], pix[i+1], pix[i+2] = 10, 10, 10
			}
		}
	}
	t := gridcast.NewTexture("demo:ghost", body)
	if err := t.Publish(size, size, pix); err != nil {
		panic(err)
	}
	return t
}

// Scene builds the demo world: a walled courtyard with brick and checker
// walls of varying heights, a checkered floor, a starry skybox and a couple
// of floating sprites.
func Scene() (*gridcast.Scene, error) {
	grid := []int{
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
		1, 0, 2, 0, 0, 0, 0, 0, 3, 0, 0, 1,
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 2, 2, 0, 0, 0, 0, 0, 1,
		1, 0, 0, 0, 2, 0, 0, 0, 0, 3, 0, 1,
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
		1, 0, 3, 0, 0, 0, 0, 2, 0, 0, 0, 1,
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	}

	wall := bricks(64, gridcast.RGB(90, 85, 80), gridcast.RGB(150, 60, 50))
	pillar := checker(64, 8, gridcast.RGB(200, 200, 210), gridcast.RGB(60, 60, 80))
	floor := checker(64, 4, gridcast.RGB(60, 90, 60), gridcast.RGB(40, 60, 40))
	spook := ghost(64, gridcast.RGB(230, 240, 255))

	cfg := gridcast.SceneConfig{
		World: gridcast.WorldMap{Width: 12, Height: 10, Cells: grid},
		Cells: map[int]gridcast.CellInfo{
			1: {Height: 1, Appearance: gridcast.TextureAppearance(wall)},
			2: {Height: 2, Appearance: gridcast.TextureAppearance(pillar)},
			3: {Height: 0.5, Appearance: gridcast.SolidAppearance(gridcast.RGB(70, 110, 180))},
		},
		Floor: gridcast.Plane{
			Enabled:    true,
			Appearance: gridcast.TextureAppearance(floor),
		},
		Skybox: gridcast.Skybox{
			Enabled:    true,
			Appearance: gridcast.TextureAppearance(sky(512, 128)),
		},
		Entities: []gridcast.Entity{
			{
				Position:   gridcast.V3(6.5, 4.5, 0.5),
				Size:       gridcast.V2(0.6, 0.8),
				Appearance: gridcast.TextureAppearance(spook),
			},
			{
				Position:   gridcast.V3(3.5, 6.5, 0.4),
				Size:       gridcast.V2(0.5, 0.7),
				Appearance: gridcast.TextureAppearance(spook),
			},
		},
		Lighting: &gridcast.Lighting{Ambient: 0.25, SideShade: 0.15},
	}
	return gridcast.NewScene(cfg)
}

// Camera returns the demo viewpoint, placed inside the courtyard.
func Camera() (*gridcast.Camera, error) {
	cam, err := gridcast.NewCamera(gridcast.V3(2.5, 2.5, 0.5), gridcast.V2(1, 0.6), 1)
	if err != nil {
		return nil, err
	}
	cam.SetLight(gridcast.Light{Brightness: 2.5, MaxBrightness: 1, Color: gridcast.White})
	return cam, nil
}
