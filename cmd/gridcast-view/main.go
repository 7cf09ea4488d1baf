// Command gridcast-view renders the demo scene into an OpenGL window. The
// frame is rendered in software every tick and streamed to a fullscreen
// textured quad. WASD moves, the arrow keys turn and tilt, Escape quits.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gridcast/gridcast"
	"github.com/gridcast/gridcast/internal/demo"
)

const (
	width   = 960
	height  = 600
	quality = 0.5
	title   = "gridcast"
)

var (
	vertexShaderSource = `
		#version 410
		in vec2 vp;
		in vec2 vt;
		out vec2 uv;
		uniform mat4 mvp;
		void main() {
			uv = vt;
			gl_Position = mvp * vec4(vp, 0.0, 1.0);
		}
	` + "\x00"

	fragmentShaderSource = `
		#version 410
		in vec2 uv;
		out vec4 frag_colour;
		uniform sampler2D frame;
		void main() {
			frag_colour = texture(frame, uv);
		}
	` + "\x00"
)

// Interleaved x, y, u, v for two triangles covering the viewport.
var quadVertices = []float32{
	0, 0, 0, 0,
	1, 0, 1, 0,
	1, 1, 1, 1,
	0, 0, 0, 0,
	1, 1, 1, 1,
	0, 1, 0, 1,
}

func main() {
	runtime.LockOSThread()

	gridcast.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	scene, err := demo.Scene()
	if err != nil {
		fatal("build scene:", err)
	}
	camera, err := demo.Camera()
	if err != nil {
		fatal("build camera:", err)
	}
	screen, err := gridcast.NewScreen(width, height, quality)
	if err != nil {
		fatal("build screen:", err)
	}
	renderer := gridcast.NewRenderer()
	defer renderer.Close()

	if err := glfw.Init(); err != nil {
		fatal("failed to initialize glfw:", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		fatal("create window:", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		fatal("init gl:", err)
	}
	fmt.Println("OpenGL version", gl.GoStr(gl.GetString(gl.VERSION)))

	program, err := newProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		fatal("link program:", err)
	}
	gl.UseProgram(program)

	mvpUniform := gl.GetUniformLocation(program, gl.Str("mvp\x00"))

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	posAttrib := uint32(gl.GetAttribLocation(program, gl.Str("vp\x00")))
	gl.EnableVertexAttribArray(posAttrib)
	gl.VertexAttribPointerWithOffset(posAttrib, 2, gl.FLOAT, false, 16, 0)

	texAttrib := uint32(gl.GetAttribLocation(program, gl.Str("vt\x00")))
	gl.EnableVertexAttribArray(texAttrib)
	gl.VertexAttribPointerWithOffset(texAttrib, 2, gl.FLOAT, false, 16, 8)

	var frameTex uint32
	gl.GenTextures(1, &frameTex)
	gl.BindTexture(gl.TEXTURE_2D, frameTex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(screen.W()), int32(screen.H()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.ClearColor(0, 0, 0, 1)

	// Map the unit quad to the window, flipping y so the top-left origin of
	// the render buffer lands at the top of the screen.
	mvp := mgl32.Ortho2D(0, 1, 1, 0)

	lastFrameTime := glfw.GetTime()
	lastFpsTime := glfw.GetTime()
	frameCount := 0

	for !window.ShouldClose() {
		currentTime := glfw.GetTime()
		dt := currentTime - lastFrameTime
		lastFrameTime = currentTime

		frameCount++
		if currentTime-lastFpsTime >= 1.0 {
			window.SetTitle(fmt.Sprintf("%s | FPS: %d", title, frameCount))
			frameCount = 0
			lastFpsTime = currentTime
		}

		handleInput(window, scene, camera, dt)

		screen.Clear()
		if err := renderer.Render(screen, scene, camera); err != nil {
			fatal("render:", err)
		}

		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.UseProgram(program)
		gl.UniformMatrix4fv(mvpUniform, 1, false, &mvp[0])

		gl.BindTexture(gl.TEXTURE_2D, frameTex)
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(screen.W()), int32(screen.H()),
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(screen.Pix()))

		gl.BindVertexArray(vao)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)

		window.SwapBuffers()
		glfw.PollEvents()
	}
}

func handleInput(window *glfw.Window, scene *gridcast.Scene, camera *gridcast.Camera, dt float64) {
	const moveSpeed, turnSpeed, pitchSpeed = 2.5, 2.0, 200.0

	if window.GetKey(glfw.KeyEscape) == glfw.Press {
		window.SetShouldClose(true)
	}
	if window.GetKey(glfw.KeyW) == glfw.Press {
		camera.Move(scene, moveSpeed*dt)
	}
	if window.GetKey(glfw.KeyS) == glfw.Press {
		camera.Move(scene, -moveSpeed*dt)
	}
	if window.GetKey(glfw.KeyA) == glfw.Press {
		camera.Strafe(scene, -moveSpeed*dt)
	}
	if window.GetKey(glfw.KeyD) == glfw.Press {
		camera.Strafe(scene, moveSpeed*dt)
	}
	if window.GetKey(glfw.KeyLeft) == glfw.Press {
		camera.Rotate(-turnSpeed * dt)
	}
	if window.GetKey(glfw.KeyRight) == glfw.Press {
		camera.Rotate(turnSpeed * dt)
	}
	if window.GetKey(glfw.KeyUp) == glfw.Press {
		camera.SetPitch(camera.Pitch() + int(pitchSpeed*dt))
	}
	if window.GetKey(glfw.KeyDown) == glfw.Press {
		camera.SetPitch(camera.Pitch() - int(pitchSpeed*dt))
	}
}

func fatal(msg string, err error) {
	fmt.Fprintln(os.Stderr, msg, err)
	os.Exit(1)
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))

		return 0, fmt.Errorf("failed to link program: %v", infoLog)
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))

		return 0, fmt.Errorf("failed to compile %v: %v", source, infoLog)
	}

	return shader, nil
}
