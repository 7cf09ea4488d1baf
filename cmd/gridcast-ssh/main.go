// Command gridcast-ssh serves the demo scene over SSH, rendering into the
// client's terminal with truecolor half-block cells. Each terminal cell
// carries two vertically stacked pixels, so a w x h terminal shows a
// w x 2(h-1) frame above a one-row status line. Connect with:
// ssh -t -p 2222 localhost
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gliderlabs/ssh"

	"github.com/gridcast/gridcast"
	"github.com/gridcast/gridcast/internal/demo"
)

func main() {
	addr := flag.String("addr", ":2222", "address to listen on")
	hostKey := flag.String("host-key", "", "path to the SSH host key (optional)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	gridcast.SetLogger(logger)

	server := &ssh.Server{
		Addr: *addr,
		Handler: func(sess ssh.Session) {
			handleSession(sess, logger)
		},
	}
	if *hostKey != "" {
		if err := server.SetOption(ssh.HostKeyFile(*hostKey)); err != nil {
			logger.Error("set host key", "err", err)
			os.Exit(1)
		}
	}

	logger.Info("listening", "addr", *addr)
	if err := server.ListenAndServe(); err != nil {
		logger.Error("serve", "err", err)
		os.Exit(1)
	}
}

func handleSession(sess ssh.Session, logger *slog.Logger) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	logger.Info("session opened", "user", sess.User(), "term", ptyReq.Term)
	defer logger.Info("session closed", "user", sess.User())

	scene, err := demo.Scene()
	if err != nil {
		fmt.Fprintln(sess, "build scene:", err)
		return
	}
	camera, err := demo.Camera()
	if err != nil {
		fmt.Fprintln(sess, "build camera:", err)
		return
	}
	renderer := gridcast.NewRenderer()
	defer renderer.Close()

	var mu sync.Mutex
	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height

	io.WriteString(sess, enableAltScreen+hideCursor+clearScreen)
	defer io.WriteString(sess, showCursor+disableAltScreen)

	quitCh := make(chan struct{})
	inputCh := make(chan byte, 64)

	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				close(quitCh)
				return
			}
			for _, b := range buf[:n] {
				if b == 'q' || b == 'Q' || b == 3 {
					close(quitCh)
					return
				}
				select {
				case inputCh <- b:
				default:
				}
			}
		}
	}()

	go func() {
		for win := range winCh {
			mu.Lock()
			termW, termH = win.Width, win.Height
			mu.Unlock()
		}
	}()

	var screen *gridcast.Screen
	enc := newFrameEncoder()

	ticker := time.NewTicker(time.Second / 20)
	defer ticker.Stop()

	for {
		select {
		case <-quitCh:
			return
		case <-sess.Context().Done():
			return
		case b := <-inputCh:
			applyInput(b, scene, camera)
		case <-ticker.C:
			mu.Lock()
			w, h := termW, termH
			mu.Unlock()
			if w < 2 || h < 2 {
				continue
			}

			// Reserve the last terminal row for the status line.
			fw, fh := w, 2*(h-1)
			if screen == nil || screen.Width() != fw || screen.Height() != fh {
				screen, err = gridcast.NewScreen(fw, fh, 1)
				if err != nil {
					continue
				}
			}

			screen.Clear()
			if err := renderer.Render(screen, scene, camera); err != nil {
				return
			}
			if _, err := io.WriteString(sess, enc.encode(screen)); err != nil {
				return
			}
		}
	}
}

// applyInput maps a single input byte to camera motion. Arrow keys arrive
// as CSI sequences whose final bytes are A, B, C and D; the lowercase keys
// never collide with them, so each byte can be handled on its own.
func applyInput(b byte, scene *gridcast.Scene, camera *gridcast.Camera) {
	const step, turn = 0.25, 0.15
	switch b {
	case 'w':
		camera.Move(scene, step)
	case 's':
		camera.Move(scene, -step)
	case 'a':
		camera.Strafe(scene, -step)
	case 'd':
		camera.Strafe(scene, step)
	case 'D':
		camera.Rotate(-turn)
	case 'C':
		camera.Rotate(turn)
	case 'A':
		camera.SetPitch(camera.Pitch() + 4)
	case 'B':
		camera.SetPitch(camera.Pitch() - 4)
	}
}
