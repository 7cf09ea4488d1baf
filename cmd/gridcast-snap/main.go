// Command gridcast-snap renders one frame of the demo scene to a PNG file.
// Useful for eyeballing renderer changes without a window or a terminal.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gridcast/gridcast"
	"github.com/gridcast/gridcast/internal/demo"
)

func main() {
	out := flag.String("o", "frame.png", "output file")
	width := flag.Int("w", 960, "frame width")
	height := flag.Int("h", 600, "frame height")
	quality := flag.Float64("q", 1, "render quality in (0, 1]")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	gridcast.SetLogger(logger)

	scene, err := demo.Scene()
	if err != nil {
		fail(logger, "build scene", err)
	}
	camera, err := demo.Camera()
	if err != nil {
		fail(logger, "build camera", err)
	}
	screen, err := gridcast.NewScreen(*width, *height, *quality)
	if err != nil {
		fail(logger, "build screen", err)
	}

	renderer := gridcast.NewRenderer()
	defer renderer.Close()

	screen.Clear()
	if err := renderer.Render(screen, scene, camera); err != nil {
		fail(logger, "render", err)
	}
	if err := screen.SavePNG(*out); err != nil {
		fail(logger, "save", err)
	}
	logger.Info("frame written", "path", *out, "size", screen.W()*screen.H())
}

func fail(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}
