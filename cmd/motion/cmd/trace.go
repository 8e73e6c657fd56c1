package cmd

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-motion/motion/pkg/animation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "trace",
		Short: "Render a spring trace image",
		Long: `Render a spring's position-over-time curve to a PNG.

The spring is driven from 0 toward 1 at 120 ticks per second for the
requested duration. Useful for eyeballing overshoot and settle behavior
when tuning motion.yaml parameters.

Flags:
  -o PATH          Output file (default trace.png)
  --spring NAME    Built-in preset to trace (default "default")
  --seconds SECS   Simulated duration (default 2)`,
		Usage: "motion trace [-o PATH] [--spring NAME] [--seconds SECS]",
		Run:   runTrace,
	})
}

const (
	traceWidth  = 640
	traceHeight = 360
	traceMargin = 32
)

func runTrace(args []string) error {
	out := "trace.png"
	name := "default"
	seconds := 2

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			if i+1 >= len(args) {
				return fmt.Errorf("-o requires a path")
			}
			out = args[i+1]
			i++
		case "--spring":
			if i+1 >= len(args) {
				return fmt.Errorf("--spring requires a name")
			}
			name = args[i+1]
			i++
		case "--seconds":
			if i+1 >= len(args) {
				return fmt.Errorf("--seconds requires a value")
			}
			if _, err := fmt.Sscanf(args[i+1], "%d", &seconds); err != nil || seconds <= 0 {
				return fmt.Errorf("invalid --seconds value: %s", args[i+1])
			}
			i++
		default:
			return fmt.Errorf("unknown argument: %s", args[i])
		}
	}

	cfg, ok := builtinSprings[name]
	if !ok {
		return fmt.Errorf("unknown spring %q (built-ins: %v)", name, sortedKeys(builtinSprings))
	}

	samples := sampleSpring(cfg, seconds)
	img := renderTrace(name, cfg, samples)

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", out, err)
	}

	fmt.Printf("Wrote %s (%s spring, %ds at %d Hz)\n", out, name, seconds, simTickRate)
	return nil
}

func sampleSpring(cfg animation.SpringConfig, seconds int) []float64 {
	dt := 1.0 / simTickRate
	ticks := seconds * simTickRate
	samples := make([]float64, 0, ticks+1)

	pos, vel := 0.0, 0.0
	samples = append(samples, pos)
	for i := 0; i < ticks; i++ {
		pos, vel = cfg.Step(pos, vel, 1, dt)
		samples = append(samples, pos)
	}
	return samples
}

func renderTrace(name string, cfg animation.SpringConfig, samples []float64) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, traceWidth, traceHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// Leave headroom above 1.0 for overshoot.
	maxVal := 1.0
	for _, v := range samples {
		if v > maxVal {
			maxVal = v
		}
	}
	maxVal *= 1.05

	plotW := traceWidth - 2*traceMargin
	plotH := traceHeight - 2*traceMargin
	toY := func(v float64) int {
		return traceHeight - traceMargin - int(math.Round(v/maxVal*float64(plotH)))
	}

	axis := color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xFF}
	targetLine := color.RGBA{R: 0xC0, G: 0xC0, B: 0xC0, A: 0xFF}
	trace := color.RGBA{R: 0x1A, G: 0x73, B: 0xE8, A: 0xFF}

	for x := traceMargin; x <= traceWidth-traceMargin; x++ {
		img.Set(x, traceHeight-traceMargin, axis)
		img.Set(x, toY(1), targetLine)
	}
	for y := traceMargin; y <= traceHeight-traceMargin; y++ {
		img.Set(traceMargin, y, axis)
	}

	for i, v := range samples {
		x := traceMargin + i*plotW/(len(samples)-1)
		drawDot(img, x, toY(v), trace)
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	label := fmt.Sprintf("%s: k=%g c=%g m=%g", name, cfg.Stiffness, cfg.Damping, cfg.Mass)
	drawer.Dot = fixed.P(traceMargin, traceMargin-10)
	drawer.DrawString(label)
	drawer.Dot = fixed.P(traceWidth-traceMargin-50, toY(1)-4)
	drawer.DrawString("target")

	return img
}

// drawDot thickens the trace so it reads at a glance.
func drawDot(img *image.RGBA, x, y int, c color.Color) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			img.Set(x+dx, y+dy, c)
		}
	}
}
