package cmd

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
	"golang.org/x/sync/errgroup"

	"github.com/go-motion/motion/cmd/motion/internal/config"
	"github.com/go-motion/motion/pkg/animation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "sim",
		Short: "Run headless spring simulations",
		Long: `Run headless spring simulations and report settle times.

With no arguments, simulates every built-in preset plus any springs
declared in the project's motion.yaml. Name springs to simulate a subset.

Each spring is driven from 0 toward 1 at 120 ticks per second until it
settles. The settled position is cross-checked against an analytically
integrated reference spring; a divergence above the tolerance fails the
simulation.

Flags:
  --from VALUE     Start position (default 0)
  --to VALUE       Target position (default 1)
  --timeout SECS   Give up on springs that have not settled (default 30)`,
		Usage: "motion sim [spring...] [--from VALUE] [--to VALUE]",
		Run:   runSim,
	})
}

// builtinSprings are the presets shipped with the engine.
var builtinSprings = map[string]animation.SpringConfig{
	"default": animation.SpringDefault(),
	"gentle":  animation.SpringGentle(),
	"wobbly":  animation.SpringWobbly(),
	"stiff":   animation.SpringStiff(),
	"snappy":  animation.SpringSnappy(),
	"slow":    animation.SpringSlow(),
}

const (
	simTickRate  = 120
	simTolerance = 0.05
)

type simResult struct {
	name    string
	ticks   int
	final   float64
	refDiff float64
}

func runSim(args []string) error {
	from, to := 0.0, 1.0
	timeout := 30 * time.Second
	var names []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--from":
			if i+1 >= len(args) {
				return fmt.Errorf("--from requires a value")
			}
			if _, err := fmt.Sscanf(args[i+1], "%g", &from); err != nil {
				return fmt.Errorf("invalid --from value: %s", args[i+1])
			}
			i++
		case "--to":
			if i+1 >= len(args) {
				return fmt.Errorf("--to requires a value")
			}
			if _, err := fmt.Sscanf(args[i+1], "%g", &to); err != nil {
				return fmt.Errorf("invalid --to value: %s", args[i+1])
			}
			i++
		case "--timeout":
			var secs int
			if i+1 >= len(args) {
				return fmt.Errorf("--timeout requires a value in seconds")
			}
			if _, err := fmt.Sscanf(args[i+1], "%d", &secs); err != nil || secs <= 0 {
				return fmt.Errorf("invalid --timeout value: %s", args[i+1])
			}
			timeout = time.Duration(secs) * time.Second
			i++
		default:
			names = append(names, args[i])
		}
	}

	springs := make(map[string]animation.SpringConfig, len(builtinSprings))
	for name, cfg := range builtinSprings {
		springs[name] = cfg
	}
	// Project springs shadow built-ins of the same name.
	if cwd, err := os.Getwd(); err == nil {
		if resolved, err := config.Resolve(cwd); err == nil {
			for name, cfg := range resolved.Springs {
				springs[name] = cfg
			}
		}
	}

	if len(names) == 0 {
		names = sortedKeys(springs)
	}
	for _, name := range names {
		if _, ok := springs[name]; !ok {
			return fmt.Errorf("unknown spring %q (built-ins: %v)", name, sortedKeys(builtinSprings))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var mu sync.Mutex
	results := make(map[string]simResult, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for _, name := range names {
		name := name
		cfg := springs[name]
		g.Go(func() error {
			res, err := simulate(ctx, name, cfg, from, to)
			if err != nil {
				return err
			}
			mu.Lock()
			results[name] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("Simulated %d springs from %g to %g at %d Hz:\n\n", len(names), from, to, simTickRate)
	fmt.Printf("  %-12s %8s %10s %10s %10s\n", "spring", "ticks", "settle", "final", "ref diff")
	for _, name := range names {
		res := results[name]
		settle := fmt.Sprintf("%.0fms", float64(res.ticks)*1000/simTickRate)
		fmt.Printf("  %-12s %8d %10s %10.4f %10.4f\n", res.name, res.ticks, settle, res.final, res.refDiff)
	}
	return nil
}

// simulate drives one spring to settle and compares the end state against a
// reference integrator with the equivalent angular frequency and damping
// ratio.
func simulate(ctx context.Context, name string, cfg animation.SpringConfig, from, to float64) (simResult, error) {
	dt := 1.0 / simTickRate

	pos, vel := from, 0.0
	omega := math.Sqrt(cfg.Stiffness / cfg.Mass)
	zeta := cfg.Damping / (2 * math.Sqrt(cfg.Stiffness*cfg.Mass))
	ref := harmonica.NewSpring(harmonica.FPS(simTickRate), omega, zeta)
	refPos, refVel := from, 0.0

	maxTicks := 120 * 60 // one simulated minute
	for tick := 1; tick <= maxTicks; tick++ {
		select {
		case <-ctx.Done():
			return simResult{}, fmt.Errorf("spring %q: %w", name, ctx.Err())
		default:
		}

		pos, vel = cfg.Step(pos, vel, to, dt)
		refPos, refVel = ref.Update(refPos, refVel, to)

		if math.Abs(pos-to) < 1e-3 && math.Abs(vel) < 1e-3 {
			diff := math.Abs(pos - refPos)
			if diff > simTolerance {
				return simResult{}, fmt.Errorf(
					"spring %q diverged from reference by %.4f (tolerance %.2f)", name, diff, simTolerance)
			}
			return simResult{name: name, ticks: tick, final: pos, refDiff: diff}, nil
		}
	}
	return simResult{}, fmt.Errorf("spring %q did not settle within %d ticks", name, maxTicks)
}
