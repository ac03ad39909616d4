package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/controller"
	"github.com/hexaflex/chip8/devices/c8/beeper"
	"github.com/hexaflex/chip8/devices/c8/clock"
	"github.com/hexaflex/chip8/devices/c8/cpu"
	"github.com/hexaflex/chip8/devices/c8/display"
	"github.com/hexaflex/chip8/devices/c8/keypad"
	"github.com/hexaflex/chip8/devices/c8/screen"
	"github.com/hexaflex/chip8/rom"
)

// FrameTime is the time between two frames.
const FrameTime = time.Second / clock.Frequency

// App defines application context.
type App struct {
	config       *Config                   // Application configuration.
	window       *glfw.Window              // OpenGL/GLFW context.
	cpu          *controller.CPUController // VM with program to be run.
	screen       *screen.Device            // Display presenter.
	keypad       *keypad.Device            // Keyboard input.
	titleUpdated time.Time                 // Value used to periodically update window title.
	lastFrame    time.Time                 // Last time a frame was run.
	traceOut     io.Writer                 // Destination for trace output.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.traceOut = os.Stdout
	a.cpu = controller.New(a.printTrace)

	if config.Seed != 0 {
		a.cpu.CPU().SetRandomSource(rand.New(rand.NewSource(config.Seed)))
	}

	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	log.Println(Version())

	if a.config.Terminal {
		return a.runTerminal()
	}

	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	a.screen = screen.New(uint32(a.config.Foreground), uint32(a.config.Background))
	a.keypad = keypad.New(a.window)
	a.keypad.SetTrace(a.config.PrintTrace)
	a.cpu.Connect(clock.New(), a.keypad)

	if !a.config.Mute {
		a.cpu.Connect(beeper.New())
	}

	if err := a.cpu.Startup(); err != nil {
		return err
	}

	// The screen is updated after the frame's instructions have run,
	// so it is not part of the device map.
	if err := a.screen.Startup(); err != nil {
		return err
	}

	printHelp()

	if err := a.loadProgram(); err != nil {
		return err
	}

	if !a.config.Debug {
		a.cpu.Start()
	}

	for !a.window.ShouldClose() {
		a.mainLoop()
	}

	return nil
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop() {
	if wait := FrameTime - time.Since(a.lastFrame); wait > 0 {
		glfw.WaitEventsTimeout(wait.Seconds())
		return
	}

	a.lastFrame = time.Now()

	if err := a.cpu.Frame(a.config.Cycles); err != nil {
		log.Println(err)
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	a.screen.Update(a.cpu.CPU())
	a.screen.Draw()
	a.window.SwapBuffers()

	// Periodically update the window title to show the current cpu clock frequency.
	if time.Since(a.titleUpdated) >= time.Second*2 {
		a.titleUpdated = time.Now()
		freq := prettyFrequency(a.cpu.Frequency())
		a.window.SetTitle(fmt.Sprintf("%s %s - %s", AppName, AppVersion, freq))
	}

	glfw.PollEvents()
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	a.cpu.Stop()

	if err := a.cpu.Shutdown(); err != nil {
		log.Println(err)
	}

	if a.screen != nil {
		a.screen.Shutdown()
	}

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF2:
		a.config.PrintTrace = !a.config.PrintTrace
		a.keypad.SetTrace(a.config.PrintTrace)
	case glfw.KeyF3:
		err = a.cpu.CPU().DumpRegisters(os.Stdout)
	case glfw.KeyF4:
		err = a.cpu.CPU().DumpMemory(os.Stdout)
	case glfw.KeyF5:
		err = a.loadProgram()
	case glfw.KeyF6:
		a.cpu.ToggleRun()
	case glfw.KeyF7:
		err = a.cpu.Step()
	}

	if err != nil {
		log.Println(err)
	}
}

// sizeCallback keeps the viewport in sync with the window and has the
// display presented again.
func (a *App) sizeCallback(_ *glfw.Window, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	a.cpu.CPU().RequestRedraw()
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := display.Width * a.config.ScaleFactor
	height := display.Height * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, AppName, monitor, nil)
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)
	a.window.SetFramebufferSizeCallback(a.sizeCallback)

	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "gl.Init failed")
	}

	fbw, fbh := a.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// loadProgram loads the current program from disk and restarts the cpu.
// A running cpu keeps running.
func (a *App) loadProgram() error {
	data, err := rom.Load(a.config.Image)
	if err != nil {
		return err
	}

	if err := a.cpu.Load(data); err != nil {
		return err
	}

	log.Printf("loaded %d bytes", len(data))
	return nil
}

// printTrace prints instruction trace data. This can be toggled
// on off through a.config.PrintTrace.
func (a *App) printTrace(i *cpu.Instruction) {
	if a.config.PrintTrace {
		fmt.Fprintln(a.traceOut, i)
	}
}

// printHelp writes a short overview of supported shortcut keys to stdout.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the program.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F2       Enable/Disable debug trace output.\n")
	sb.WriteString(" F3       Print the registers.\n")
	sb.WriteString(" F4       Print a memory dump.\n")
	sb.WriteString(" F5       (re)load the program from disk and reset the cpu.\n")
	sb.WriteString(" F6       Start/Stop program execution.\n")
	sb.WriteString(" F7       Perform a single execution step.\n")
	sb.WriteString("keypad:\n")
	sb.WriteString(" 1 2 3 4  ->  1 2 3 C\n")
	sb.WriteString(" Q W E R  ->  4 5 6 D\n")
	sb.WriteString(" A S D F  ->  7 8 9 E\n")
	sb.WriteString(" Z X C V  ->  A 0 B F")
	log.Println(sb.String())
}

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GHz", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
