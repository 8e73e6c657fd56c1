package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-motion/motion/cmd/motion/internal/config"
	"github.com/go-motion/motion/pkg/animation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Validate motion.yaml presets",
		Long: `Validate the motion.yaml preset file in the current project.

Checks every declared spring (positive stiffness and mass, non-negative
damping) and every timeline entry (non-negative start and duration, known
easing name). Exits non-zero on the first invalid definition.

Flags:
  --file PATH    Validate a specific file instead of resolving the project`,
		Usage: "motion check [--file PATH]",
		Run:   runCheck,
	})
}

func runCheck(args []string) error {
	var file string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--file":
			if i+1 >= len(args) {
				return fmt.Errorf("--file requires a path")
			}
			file = args[i+1]
			i++
		default:
			return fmt.Errorf("unknown argument: %s", args[i])
		}
	}

	if file != "" {
		f, err := config.Load(file)
		if err != nil {
			return err
		}
		printSummary(file, f.SpringConfigs(), f.Timelines)
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	resolved, err := config.Resolve(cwd)
	if err != nil {
		return err
	}

	fmt.Printf("Project: %s\n", resolved.ModulePath)
	printSummary(resolved.Path, resolved.Springs, resolved.Timelines)
	return nil
}

func printSummary(path string, springs map[string]animation.SpringConfig, timelines map[string]config.TimelineDef) {
	fmt.Printf("Checked %s\n", path)
	fmt.Println()

	fmt.Printf("Springs (%d):\n", len(springs))
	for _, name := range sortedKeys(springs) {
		cfg := springs[name]
		fmt.Printf("  %-12s stiffness=%g damping=%g mass=%g\n",
			name+":", cfg.Stiffness, cfg.Damping, cfg.Mass)
	}
	fmt.Println()

	fmt.Printf("Timelines (%d):\n", len(timelines))
	for _, name := range sortedKeys(timelines) {
		def := timelines[name]
		var endMs int64
		for _, e := range def.Entries {
			if end := e.StartMs + e.DurationMs; end > endMs {
				endMs = end
			}
		}
		fmt.Printf("  %-12s %d entries, %dms\n", name+":", len(def.Entries), endMs)
	}
	fmt.Println()
	fmt.Println("All definitions valid.")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
