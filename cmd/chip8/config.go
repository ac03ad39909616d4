package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config defines program configuration.
type Config struct {
	Image       string // Path to the program image to load.
	ScaleFactor int    // Amount by which each pixel is scaled.
	Cycles      int    // Instructions executed per 60 Hz frame.
	Seed        int64  // Seed for the random number generator. 0 seeds from the clock.
	Foreground  color  // Color of lit pixels.
	Background  color  // Color of unlit pixels.
	Fullscreen  bool   // Run in fullscreen?
	Debug       bool   // Start paused with trace output enabled?
	PrintTrace  bool   // Print instruction trace data?
	Terminal    bool   // Render to the terminal instead of a window?
	Mute        bool   // Disable audio output?
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.ScaleFactor = 10
	c.Cycles = 10
	c.Foreground = 0xffffff
	c.Background = 0x000000

	flag.Usage = func() {
		fmt.Printf("%s [options] <image file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.BoolVar(&c.Debug, "debug", c.Debug, "Start paused and print instruction trace output.")
	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")
	flag.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	flag.IntVar(&c.Cycles, "cycles", c.Cycles, "Number of instructions executed per frame. The machine runs at 60 frames per second.")
	flag.Int64Var(&c.Seed, "seed", c.Seed, "Seed for the RND instruction. 0 uses the current time.")
	flag.Var(&c.Foreground, "fg", "Foreground color as RRGGBB.")
	flag.Var(&c.Background, "bg", "Background color as RRGGBB.")
	flag.BoolVar(&c.Terminal, "tty", c.Terminal, "Render the display in the terminal instead of a window. P pauses, N steps, ESC quits.")
	flag.BoolVar(&c.Mute, "mute", c.Mute, "Disable sound.")

	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if c.ScaleFactor < 1 || c.Cycles < 1 {
		fmt.Fprintln(os.Stderr, "scale-factor and cycles must be positive")
		os.Exit(1)
	}

	c.Image = flag.Arg(0)
	c.PrintTrace = c.Debug
	return &c
}

// color is a 0xRRGGBB value which can be set from the command line.
type color uint32

func (c *color) String() string {
	return fmt.Sprintf("%06x", uint32(*c))
}

func (c *color) Set(v string) error {
	n, err := strconv.ParseUint(strings.TrimPrefix(v, "#"), 16, 24)
	if err != nil {
		return fmt.Errorf("invalid color %q", v)
	}
	*c = color(n)
	return nil
}
