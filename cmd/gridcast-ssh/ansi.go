package main

import (
	"strconv"
	"strings"

	"github.com/gridcast/gridcast"
)

const (
	esc = "\x1b"
	csi = esc + "["

	clearScreen      = csi + "2J"
	hideCursor       = csi + "?25l"
	showCursor       = csi + "?25h"
	enableAltScreen  = csi + "?1049h"
	disableAltScreen = csi + "?1049l"
	cursorHome       = csi + "H"
	reset            = csi + "0m"
)

// frameEncoder turns a rendered frame into a terminal repaint. Each encode
// resets the builder, which drops its buffer, and grows a fresh one sized
// for the frame.
type frameEncoder struct {
	sb strings.Builder
}

func newFrameEncoder() *frameEncoder {
	return &frameEncoder{}
}

// encode emits the whole frame as half-block cells: the upper pixel of each
// pair becomes the foreground of a U+2580 block, the lower one the
// background. SGR codes are only emitted when a color actually changes.
func (e *frameEncoder) encode(screen *gridcast.Screen) string {
	e.sb.Reset()
	e.sb.Grow(screen.Width() * screen.Height() * 12)
	e.sb.WriteString(cursorHome)

	img := screen.PresentImage()
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	var haveFg, haveBg bool
	var fr, fg, fb, br, bg, bb uint8

	for y := 0; y+1 < h; y += 2 {
		haveFg, haveBg = false, false
		for x := 0; x < w; x++ {
			ti := img.PixOffset(x, y)
			bi := img.PixOffset(x, y+1)
			tr, tg, tb := img.Pix[ti], img.Pix[ti+1], img.Pix[ti+2]
			lr, lg, lb := img.Pix[bi], img.Pix[bi+1], img.Pix[bi+2]

			if !haveFg || tr != fr || tg != fg || tb != fb {
				e.writeSGR(38, tr, tg, tb)
				fr, fg, fb = tr, tg, tb
				haveFg = true
			}
			if !haveBg || lr != br || lg != bg || lb != bb {
				e.writeSGR(48, lr, lg, lb)
				br, bg, bb = lr, lg, lb
				haveBg = true
			}
			e.sb.WriteString("▀")
		}
		e.sb.WriteString(reset + "\r\n")
	}

	e.sb.WriteString(reset + " wasd move  arrows look  q quit")
	return e.sb.String()
}

// writeSGR appends an extended color code: plane is 38 for foreground and
// 48 for background.
func (e *frameEncoder) writeSGR(plane int, r, g, b uint8) {
	e.sb.WriteString(csi)
	e.sb.WriteString(strconv.Itoa(plane))
	e.sb.WriteString(";2;")
	e.sb.WriteString(strconv.Itoa(int(r)))
	e.sb.WriteByte(';')
	e.sb.WriteString(strconv.Itoa(int(g)))
	e.sb.WriteByte(';')
	e.sb.WriteString(strconv.Itoa(int(b)))
	e.sb.WriteByte('m')
}
