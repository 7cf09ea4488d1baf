package gridcast

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func renderOnce(t *testing.T, sc *Scene, cam *Camera, w, h int) *Screen {
	t.Helper()
	s, err := NewScreen(w, h, 1)
	if err != nil {
		t.Fatalf("NewScreen: %v", err)
	}
	r := NewRenderer(WithWorkers(1))
	defer r.Close()
	if err := r.Render(s, sc, cam); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return s
}

func wallScene(t *testing.T, app Appearance) *Scene {
	t.Helper()
	sc, err := NewScene(SceneConfig{
		World: WorldMap{Width: 5, Height: 3, Cells: []int{
			0, 0, 1, 0, 0,
			0, 0, 1, 0, 0,
			0, 0, 1, 0, 0,
		}},
		Cells: map[int]CellInfo{1: {Height: 1, Appearance: app}},
	})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return sc
}

func wallCamera(t *testing.T, pos Vec3, dir Vec2) *Camera {
	t.Helper()
	cam, err := NewCamera(pos, dir, 1)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	return cam
}

// TestRenderNilTarget tests that Render rejects missing inputs.
func TestRenderNilTarget(t *testing.T) {
	r := NewRenderer(WithWorkers(1))
	defer r.Close()

	sc := wallScene(t, SolidAppearance(Red))
	cam := wallCamera(t, V3(0.5, 1.5, 0.5), V2(1, 0))
	s, _ := NewScreen(4, 4, 1)

	if err := r.Render(nil, sc, cam); !errors.Is(err, ErrNilTarget) {
		t.Errorf("nil screen err = %v, want ErrNilTarget", err)
	}
	if err := r.Render(s, nil, cam); !errors.Is(err, ErrNilTarget) {
		t.Errorf("nil scene err = %v, want ErrNilTarget", err)
	}
	if err := r.Render(s, sc, nil); !errors.Is(err, ErrNilTarget) {
		t.Errorf("nil camera err = %v, want ErrNilTarget", err)
	}
}

// TestRenderEmptyScene tests that a scene with nothing to draw leaves the
// cleared buffers untouched.
func TestRenderEmptyScene(t *testing.T) {
	sc, err := NewScene(SceneConfig{
		World: WorldMap{Width: 2, Height: 2, Cells: []int{0, 0, 0, 0}},
	})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	cam := wallCamera(t, V3(1, 1, 0.5), V2(1, 0))

	s := renderOnce(t, sc, cam, 4, 4)

	for i, b := range s.Pix() {
		if b != 0 {
			t.Fatalf("Pix[%d] = %d, want 0", i, b)
		}
	}
	for i, d := range s.Depth() {
		if !math.IsInf(d, 1) {
			t.Fatalf("Depth[%d] = %v, want +Inf", i, d)
		}
	}
}

// TestRenderSolidWall tests a straight-on view of a solid wall: every
// column shares the same perpendicular distance, so the wall band is flat.
func TestRenderSolidWall(t *testing.T) {
	sc := wallScene(t, SolidAppearance(Red))
	cam := wallCamera(t, V3(0.5, 1.5, 0.5), V2(1, 0))

	s := renderOnce(t, sc, cam, 4, 4)

	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			if got := pixelAt(s, x, y); got != Red {
				t.Errorf("pixel (%d,%d) = %v, want red", x, y, got)
			}
			if got := s.Depth()[y*4+x]; got != 1.5 {
				t.Errorf("depth (%d,%d) = %v, want 1.5", x, y, got)
			}
		}
		if got := pixelAt(s, x, 3); got != (Color{}) {
			t.Errorf("pixel (%d,3) = %v, want empty below the wall", x, got)
		}
	}
}

// TestRenderCameraHeight tests that walls shift vertically on screen when
// the camera leaves the midline height, matching the floor and sprites.
func TestRenderCameraHeight(t *testing.T) {
	sc := wallScene(t, SolidAppearance(Red))

	t.Run("raised", func(t *testing.T) {
		cam := wallCamera(t, V3(0.5, 1.5, 0.875), V2(1, 0))
		s := renderOnce(t, sc, cam, 4, 4)

		for x := 0; x < 4; x++ {
			if got := pixelAt(s, x, 0); got != (Color{}) {
				t.Errorf("pixel (%d,0) = %v, want empty above the wall", x, got)
			}
			for y := 1; y < 4; y++ {
				if got := pixelAt(s, x, y); got != Red {
					t.Errorf("pixel (%d,%d) = %v, want red", x, y, got)
				}
			}
		}
	})

	t.Run("lowered", func(t *testing.T) {
		cam := wallCamera(t, V3(0.5, 1.5, 0.125), V2(1, 0))
		s := renderOnce(t, sc, cam, 4, 4)

		for x := 0; x < 4; x++ {
			for y := 0; y < 2; y++ {
				if got := pixelAt(s, x, y); got != Red {
					t.Errorf("pixel (%d,%d) = %v, want red", x, y, got)
				}
			}
			for y := 2; y < 4; y++ {
				if got := pixelAt(s, x, y); got != (Color{}) {
					t.Errorf("pixel (%d,%d) = %v, want empty below the wall", x, y, got)
				}
			}
		}
	})
}

// TestRenderWallTextureFacing tests that opposite faces of a wall sample
// the texture without mirroring: a viewer on either side sees the texel
// that belongs to that face.
func TestRenderWallTextureFacing(t *testing.T) {
	tex := NewTexture("two", Black)
	if err := tex.Publish(2, 1, []uint8{
		255, 0, 0, 255,
		0, 255, 0, 255,
	}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	sc := wallScene(t, TextureAppearance(tex))

	west := renderOnce(t, sc, wallCamera(t, V3(0.5, 1.5, 0.5), V2(1, 0)), 4, 4)
	if got := pixelAt(west, 2, 1); got != Red {
		t.Errorf("west view pixel = %v, want red", got)
	}

	east := renderOnce(t, sc, wallCamera(t, V3(4.5, 1.5, 0.5), V2(-1, 0)), 4, 4)
	if got := pixelAt(east, 2, 1); got != Green {
		t.Errorf("east view pixel = %v, want green", got)
	}
}

// TestRenderUnloadedTextureFallback tests that a wall with an unpublished
// texture renders as the fallback color.
func TestRenderUnloadedTextureFallback(t *testing.T) {
	tex := NewTexture("pending", Magenta)
	sc := wallScene(t, TextureAppearance(tex))
	cam := wallCamera(t, V3(0.5, 1.5, 0.5), V2(1, 0))

	s := renderOnce(t, sc, cam, 4, 4)
	if got := pixelAt(s, 1, 1); got != Magenta {
		t.Errorf("pixel = %v, want fallback magenta", got)
	}
}

// TestRenderEntityOccludesWall tests depth arbitration: a sprite between
// the camera and the wall wins every pixel it covers.
func TestRenderEntityOccludesWall(t *testing.T) {
	sc := wallScene(t, SolidAppearance(Red))
	sc.Entities = []Entity{{
		Position:   V3(1.5, 1.5, 0.5),
		Size:       V2(1, 1),
		Appearance: SolidAppearance(Green),
	}}
	cam := wallCamera(t, V3(0.5, 1.5, 0.5), V2(1, 0))

	s := renderOnce(t, sc, cam, 4, 4)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := pixelAt(s, x, y); got != Green {
				t.Errorf("pixel (%d,%d) = %v, want green sprite", x, y, got)
			}
			if got := s.Depth()[y*4+x]; got != 1 {
				t.Errorf("depth (%d,%d) = %v, want 1", x, y, got)
			}
		}
	}
}

// TestRenderEntityBehindWall tests that a sprite past the wall stays hidden.
func TestRenderEntityBehindWall(t *testing.T) {
	sc := wallScene(t, SolidAppearance(Red))
	sc.Entities = []Entity{{
		Position:   V3(3.5, 1.5, 0.5),
		Size:       V2(1, 1),
		Appearance: SolidAppearance(Green),
	}}
	cam := wallCamera(t, V3(0.5, 1.5, 0.5), V2(1, 0))

	s := renderOnce(t, sc, cam, 4, 4)
	for y := 0; y < 3; y++ {
		if got := pixelAt(s, 2, y); got != Red {
			t.Errorf("pixel (2,%d) = %v, want red wall", y, got)
		}
	}
}

// TestRenderFloor tests the floor pass: rows below the horizon fill at the
// row distance, rows above stay empty.
func TestRenderFloor(t *testing.T) {
	sc, err := NewScene(SceneConfig{
		World: WorldMap{Width: 3, Height: 3, Cells: make([]int, 9)},
		Floor: Plane{Enabled: true, Appearance: SolidAppearance(Green)},
	})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	cam := wallCamera(t, V3(1.5, 1.5, 0.5), V2(1, 0))

	s := renderOnce(t, sc, cam, 4, 4)

	for x := 0; x < 4; x++ {
		if got := pixelAt(s, x, 3); got != Green {
			t.Errorf("pixel (%d,3) = %v, want green floor", x, got)
		}
		if got := s.Depth()[3*4+x]; got != 2 {
			t.Errorf("depth (%d,3) = %v, want 2", x, got)
		}
		for y := 0; y < 3; y++ {
			if got := pixelAt(s, x, y); got != (Color{}) {
				t.Errorf("pixel (%d,%d) = %v, want empty above horizon", x, y, got)
			}
		}
	}
}

// TestRenderSkyboxColor tests the solid backdrop: everything above the
// horizon fills without touching the depth buffer.
func TestRenderSkyboxColor(t *testing.T) {
	sc, err := NewScene(SceneConfig{
		World:  WorldMap{Width: 2, Height: 2, Cells: make([]int, 4)},
		Skybox: Skybox{Enabled: true, Appearance: SolidAppearance(Blue)},
	})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	cam := wallCamera(t, V3(1, 1, 0.5), V2(1, 0))

	s := renderOnce(t, sc, cam, 4, 4)

	for x := 0; x < 4; x++ {
		for y := 0; y < 2; y++ {
			if got := pixelAt(s, x, y); got != Blue {
				t.Errorf("pixel (%d,%d) = %v, want blue sky", x, y, got)
			}
		}
		for y := 2; y < 4; y++ {
			if got := pixelAt(s, x, y); got != (Color{}) {
				t.Errorf("pixel (%d,%d) = %v, want empty below horizon", x, y, got)
			}
		}
	}
	for i, d := range s.Depth() {
		if !math.IsInf(d, 1) {
			t.Fatalf("Depth[%d] = %v, skybox must not write depth", i, d)
		}
	}
}

// TestRenderSkyboxPitch tests that pitch moves the horizon.
func TestRenderSkyboxPitch(t *testing.T) {
	sc, err := NewScene(SceneConfig{
		World:  WorldMap{Width: 2, Height: 2, Cells: make([]int, 4)},
		Skybox: Skybox{Enabled: true, Appearance: SolidAppearance(Blue)},
	})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	cam := wallCamera(t, V3(1, 1, 0.5), V2(1, 0))
	cam.SetPitch(1)

	s := renderOnce(t, sc, cam, 4, 4)
	if got := pixelAt(s, 0, 2); got != Blue {
		t.Errorf("pixel (0,2) = %v, want blue with lowered horizon", got)
	}
	if got := pixelAt(s, 0, 3); got != (Color{}) {
		t.Errorf("pixel (0,3) = %v, want empty", got)
	}
}

// richScene builds a scene that exercises every pass at once.
func richScene(t *testing.T) *Scene {
	t.Helper()

	tex := NewTexture("checker", Black)
	pix := make([]uint8, 4*4*4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := uint8(40)
			if (x+y)%2 == 0 {
				v = 220
			}
			i := (y*4 + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v/2, 255-v, 255
		}
	}
	if err := tex.Publish(4, 4, pix); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	sc, err := NewScene(SceneConfig{
		World: WorldMap{Width: 6, Height: 6, Cells: []int{
			1, 1, 1, 1, 1, 1,
			1, 0, 0, 0, 0, 1,
			1, 0, 2, 0, 0, 1,
			1, 0, 0, 0, 2, 1,
			1, 0, 0, 0, 0, 1,
			1, 1, 1, 1, 1, 1,
		}},
		Cells: map[int]CellInfo{
			1: {Height: 1, Appearance: TextureAppearance(tex)},
			2: {Height: 2, Appearance: SolidAppearance(RGB(90, 120, 200))},
		},
		Floor:   Plane{Enabled: true, Appearance: TextureAppearance(tex)},
		Ceiling: Plane{Enabled: true, Appearance: SolidAppearance(RGB(30, 30, 35))},
		Skybox:  Skybox{Enabled: true, Appearance: SolidAppearance(RGB(10, 10, 60))},
		Entities: []Entity{
			{Position: V3(3.5, 2.5, 0.5), Size: V2(0.5, 0.5), Appearance: SolidAppearance(Yellow)},
		},
		Lighting: &Lighting{Ambient: 0.3, SideShade: 0.2},
	})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return sc
}

// TestRenderDeterministic tests that the same inputs produce identical
// frames across renders and across worker counts.
func TestRenderDeterministic(t *testing.T) {
	sc := richScene(t)
	cam := wallCamera(t, V3(1.5, 1.5, 0.5), V2(1, 0.4))
	cam.SetPitch(3)

	frame := func(workers int) []uint8 {
		s, err := NewScreen(64, 48, 1)
		if err != nil {
			t.Fatalf("NewScreen: %v", err)
		}
		r := NewRenderer(WithWorkers(workers))
		defer r.Close()
		s.Clear()
		if err := r.Render(s, sc, cam); err != nil {
			t.Fatalf("Render: %v", err)
		}
		return s.Pix()
	}

	serial := frame(1)
	if again := frame(1); !bytes.Equal(serial, again) {
		t.Error("two serial renders differ")
	}
	if par := frame(4); !bytes.Equal(serial, par) {
		t.Error("parallel render differs from serial render")
	}
}

// BenchmarkRender measures a full frame over the all-passes scene.
func BenchmarkRender(b *testing.B) {
	sc := richSceneBench(b)
	cam, err := NewCamera(V3(1.5, 1.5, 0.5), V2(1, 0.4), 1)
	if err != nil {
		b.Fatalf("NewCamera: %v", err)
	}
	s, err := NewScreen(320, 200, 1)
	if err != nil {
		b.Fatalf("NewScreen: %v", err)
	}
	r := NewRenderer(WithWorkers(1))
	defer r.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Clear()
		if err := r.Render(s, sc, cam); err != nil {
			b.Fatal(err)
		}
	}
}

func richSceneBench(b *testing.B) *Scene {
	b.Helper()
	sc, err := NewScene(SceneConfig{
		World: WorldMap{Width: 6, Height: 6, Cells: []int{
			1, 1, 1, 1, 1, 1,
			1, 0, 0, 0, 0, 1,
			1, 0, 2, 0, 0, 1,
			1, 0, 0, 0, 2, 1,
			1, 0, 0, 0, 0, 1,
			1, 1, 1, 1, 1, 1,
		}},
		Cells: map[int]CellInfo{
			1: {Height: 1, Appearance: SolidAppearance(Red)},
			2: {Height: 2, Appearance: SolidAppearance(Blue)},
		},
		Floor:    Plane{Enabled: true, Appearance: SolidAppearance(Green)},
		Skybox:   Skybox{Enabled: true, Appearance: SolidAppearance(RGB(10, 10, 60))},
		Lighting: &Lighting{Ambient: 0.3, SideShade: 0.2},
	})
	if err != nil {
		b.Fatalf("NewScene: %v", err)
	}
	return sc
}
