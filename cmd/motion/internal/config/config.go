// Package config loads motion.yaml preset files.
//
// A motion.yaml declares the named springs and timelines a project uses, so
// designers can tune motion without touching Go code:
//
//	springs:
//	  press:
//	    stiffness: 400
//	    damping: 28
//	    mass: 1
//	timelines:
//	  loader:
//	    entries:
//	      - start_ms: 0
//	        duration_ms: 300
//	        from: 0
//	        to: 1
//	        easing: ease-in-out
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"

	"github.com/go-motion/motion/pkg/animation"
	"github.com/go-motion/motion/pkg/errors"
)

// File is the parsed shape of motion.yaml.
type File struct {
	Springs   map[string]SpringDef   `yaml:"springs"`
	Timelines map[string]TimelineDef `yaml:"timelines"`
}

// SpringDef declares one named spring configuration.
type SpringDef struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	Mass      float64 `yaml:"mass"`
}

// TimelineDef declares one named timeline.
type TimelineDef struct {
	Entries []EntryDef `yaml:"entries"`
}

// EntryDef declares one keyframe entry. Times are signed here so that
// negative input from hand-edited files is caught by validation instead of
// wrapping silently.
type EntryDef struct {
	StartMs    int64   `yaml:"start_ms"`
	DurationMs int64   `yaml:"duration_ms"`
	From       float64 `yaml:"from"`
	To         float64 `yaml:"to"`
	Easing     string  `yaml:"easing,omitempty"`
}

// Resolved contains a validated configuration plus project metadata.
type Resolved struct {
	Root       string
	ModulePath string
	Path       string
	Springs    map[string]animation.SpringConfig
	Timelines  map[string]TimelineDef
}

// easings maps the names accepted in motion.yaml to easing functions.
var easings = map[string]animation.Easing{
	"":            animation.Linear,
	"linear":      animation.Linear,
	"ease":        animation.EaseStandard,
	"ease-in":     animation.EaseIn,
	"ease-out":    animation.EaseOut,
	"ease-in-out": animation.EaseInOut,
}

// EasingByName returns the easing function for a motion.yaml easing name.
func EasingByName(name string) (animation.Easing, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, errors.Config("config.EasingByName",
			fmt.Errorf("unknown easing %q (use linear, ease, ease-in, ease-out, ease-in-out)", name))
	}
	return fn, nil
}

// EasingNames returns the accepted easing names, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Parse validates raw motion.yaml bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Config("config.Parse", fmt.Errorf("failed to parse motion.yaml: %w", err))
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every spring and timeline definition the way the engine
// would at construction time, so authoring mistakes fail `motion check`
// instead of mis-animating at runtime.
func (f *File) Validate() error {
	for name, def := range f.Springs {
		cfg := animation.SpringConfig{Stiffness: def.Stiffness, Damping: def.Damping, Mass: def.Mass}
		if err := cfg.Validate(); err != nil {
			return errors.Config("config.Validate", fmt.Errorf("spring %q: %w", name, err))
		}
	}
	for name, def := range f.Timelines {
		if len(def.Entries) == 0 {
			return errors.Config("config.Validate", fmt.Errorf("timeline %q has no entries", name))
		}
		for i, e := range def.Entries {
			if e.StartMs < 0 {
				return errors.Config("config.Validate",
					fmt.Errorf("timeline %q entry %d: start_ms must be >= 0, got %d", name, i, e.StartMs))
			}
			if e.DurationMs < 0 {
				return errors.Config("config.Validate",
					fmt.Errorf("timeline %q entry %d: duration_ms must be >= 0, got %d", name, i, e.DurationMs))
			}
			if _, err := EasingByName(e.Easing); err != nil {
				return errors.Config("config.Validate",
					fmt.Errorf("timeline %q entry %d: %w", name, i, err))
			}
		}
	}
	return nil
}

// SpringConfigs returns validated animation configs for every declared spring.
// Call only after Validate has succeeded.
func (f *File) SpringConfigs() map[string]animation.SpringConfig {
	out := make(map[string]animation.SpringConfig, len(f.Springs))
	for name, def := range f.Springs {
		out[name] = animation.SpringConfig{Stiffness: def.Stiffness, Damping: def.Damping, Mass: def.Mass}
	}
	return out
}

// Load reads and validates the motion.yaml at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Resolve locates the project root (the directory containing go.mod), reads
// its module path, and loads motion.yaml from the root. A missing motion.yaml
// resolves to an empty file so commands can fall back to built-in presets.
func Resolve(dir string) (*Resolved, error) {
	root, err := findRoot(dir)
	if err != nil {
		return nil, err
	}

	modData, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return nil, fmt.Errorf("failed to read go.mod: %w", err)
	}
	mf, err := modfile.ParseLax("go.mod", modData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.mod: %w", err)
	}
	if mf.Module == nil || mf.Module.Mod.Path == "" {
		return nil, fmt.Errorf("go.mod is missing a module directive")
	}

	path := filepath.Join(root, "motion.yaml")
	f := &File{}
	if data, err := os.ReadFile(path); err == nil {
		f, err = Parse(data)
		if err != nil {
			return nil, err
		}
	} else if !stderrors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read motion.yaml: %w", err)
	}

	return &Resolved{
		Root:       root,
		ModulePath: mf.Module.Mod.Path,
		Path:       path,
		Springs:    f.SpringConfigs(),
		Timelines:  f.Timelines,
	}, nil
}

// findRoot walks up from dir to the nearest directory containing go.mod.
func findRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}
