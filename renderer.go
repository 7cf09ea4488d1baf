package gridcast

import (
	"runtime"

	"github.com/gridcast/gridcast/internal/parallel"
)

// Renderer runs the frame pipeline: skybox, walls, entities, then floor and
// ceiling. It owns a worker pool for the column and row passes, so a single
// Renderer should be reused across frames and closed when done.
//
// Render calls on one Renderer must not overlap. Distinct Renderers may run
// concurrently on distinct Screens.
type Renderer struct {
	workers int
	pool    *parallel.Pool
}

// NewRenderer creates a renderer. With no options it parallelizes across
// GOMAXPROCS workers.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	if r.workers > 1 {
		r.pool = parallel.New(r.workers)
	}
	Logger().Debug("renderer created", "workers", r.workers)
	return r
}

// Close shuts down the worker pool. The renderer must not be used after.
func (r *Renderer) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// Render draws one frame of scene from camera into screen. It draws over
// whatever the screen holds; call Screen.Clear between frames.
//
// Passes that have nothing to do are skipped entirely: the wall pass needs a
// non-empty map and at least one cell descriptor, the entity pass at least
// one entity, the plane pass an enabled floor or ceiling.
func (r *Renderer) Render(screen *Screen, scene *Scene, camera *Camera) error {
	if screen == nil || scene == nil || camera == nil {
		return ErrNilTarget
	}

	if scene.Skybox.Enabled {
		r.eachRange(screen.w, func(start, end int) {
			renderSkyboxColumns(screen, scene, camera, start, end)
		})
	}

	if !scene.World.Empty() && len(scene.Cells) > 0 {
		r.eachRange(screen.w, func(start, end int) {
			renderWallColumns(screen, scene, camera, start, end)
		})
	}

	if len(scene.Entities) > 0 {
		renderEntities(screen, scene, camera)
	}

	if scene.Floor.Enabled || scene.Ceiling.Enabled {
		r.eachRange(screen.h, func(start, end int) {
			renderPlaneRows(screen, scene, camera, start, end)
		})
	}

	return nil
}

// eachRange runs fn over [0, total) in contiguous bands, one call per band,
// in parallel when a pool exists. Bands never overlap, so passes that only
// touch their own band need no locking.
func (r *Renderer) eachRange(total int, fn func(start, end int)) {
	if r.pool == nil {
		fn(0, total)
		return
	}
	r.pool.ExecuteRanges(total, fn)
}
