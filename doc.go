// Package gridcast provides a software raycasting renderer for Go.
//
// # Overview
//
// gridcast projects a 2D grid world into a pseudo-3D image one vertical
// column at a time. Each frame produces an RGBA pixel buffer and a matching
// depth buffer from a Scene (grid map, floor/ceiling planes, sprites, skybox,
// lighting) and a Camera (position, direction, focal length, pitch).
//
// # Quick Start
//
//	import "github.com/gridcast/gridcast"
//
//	screen, _ := gridcast.NewScreen(640, 360, 1.0)
//	scene, _ := gridcast.NewScene(gridcast.SceneConfig{
//	    World: gridcast.WorldMap{Width: 3, Height: 3, Cells: []int{
//	        1, 1, 1,
//	        1, 0, 1,
//	        1, 1, 1,
//	    }},
//	    Cells: map[int]gridcast.CellInfo{
//	        1: {Height: 1, Appearance: gridcast.SolidAppearance(gridcast.RGB(200, 40, 40))},
//	    },
//	})
//	camera, _ := gridcast.NewCamera(gridcast.V3(1.5, 1.5, 0.5), gridcast.V2(0, 1), 1.0)
//
//	r := gridcast.NewRenderer()
//	screen.Clear()
//	if err := r.Render(screen, scene, camera); err != nil {
//	    log.Fatal(err)
//	}
//	// screen.Pix() now holds the frame; screen.Depth() the per-pixel distances.
//
// # Pipeline
//
// A render runs four passes in a fixed order: skybox, walls, entities,
// floor/ceiling. Passes cooperate only through the Screen's pixel and depth
// buffers; the depth buffer stores perpendicular camera distance so that
// projection stays consistent across passes without a square root.
//
// # Coordinate System
//
//   - World: X east, Y south, one unit per grid cell; Z up, one unit per
//     cell height. A wall of height 1 fills the classic flat-wall extent.
//   - Screen: origin top-left, X right, Y down, row-major RGBA bytes.
//
// # Concurrency
//
// Render is synchronous. The Scene and Camera must not be mutated during a
// call. With WithWorkers(n) the column-independent passes are partitioned
// across a worker pool; output is identical to the single-threaded pipeline.
package gridcast
