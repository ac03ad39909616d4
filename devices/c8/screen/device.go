// Package screen presents the framebuffer through OpenGL.
package screen

import (
	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/c8/display"
)

// Device uploads the framebuffer into a texture and draws it as a
// full-window quad. It requires a current OpenGL context.
type Device struct {
	colors      [2 * 4]float32 // Background and foreground color, RGBA.
	shader      uint32
	vao         uint32
	vbo         uint32
	tex         uint32
	colorsDirty bool
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a new device with the given foreground and background colors,
// given as 0xRRGGBB.
func New(fg, bg uint32) *Device {
	var d Device
	d.SetColors(fg, bg)
	return &d
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Builtin, 0x0003)
}

// SetColors sets the colors used for lit and unlit pixels, given as 0xRRGGBB.
func (d *Device) SetColors(fg, bg uint32) {
	rgb2f(bg, d.colors[0:4])
	rgb2f(fg, d.colors[4:8])
	d.colorsDirty = true
}

// Startup initializes device resources.
func (d *Device) Startup() error {
	var err error

	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	d.tex = makeTexture()
	d.colorsDirty = true
	d.initialized = true
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}

	d.initialized = false
	gl.DeleteTextures(1, &d.tex)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

// Update uploads the framebuffer if it changed since the last upload.
func (d *Device) Update(m devices.Machine) {
	if !d.initialized || !m.Redraw() {
		return
	}

	fb := m.Display()
	uploadTexture(d.tex, display.Width, display.Height, fb.Pitch(), fb.Raw())
	m.ClearRedraw()
}

// Draw renders the display contents.
func (d *Device) Draw() {
	if !d.initialized {
		return
	}

	gl.UseProgram(d.shader)

	if d.colorsDirty {
		colors := gl.GetUniformLocation(d.shader, glStr("colors"))
		gl.Uniform4fv(colors, 2, &d.colors[0])
		d.colorsDirty = false
	}

	gl.BindVertexArray(d.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.tex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// rgb2f sets p to the RGBA float representation of the 0xRRGGBB color in n.
func rgb2f(n uint32, p []float32) {
	p[0] = float32((n>>16)&0xff) / 255
	p[1] = float32((n>>8)&0xff) / 255
	p[2] = float32(n&0xff) / 255
	p[3] = 1
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
