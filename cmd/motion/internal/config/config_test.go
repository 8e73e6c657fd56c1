package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-motion/motion/pkg/errors"
)

const validYAML = `
springs:
  press:
    stiffness: 400
    damping: 28
    mass: 1
  drawer:
    stiffness: 120
    damping: 14
    mass: 1.5
timelines:
  loader:
    entries:
      - start_ms: 0
        duration_ms: 300
        from: 0
        to: 1
        easing: ease-in-out
      - start_ms: 150
        duration_ms: 300
        from: 0
        to: 1
`

func TestParseValid(t *testing.T) {
	f, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(f.Springs) != 2 {
		t.Errorf("expected 2 springs, got %d", len(f.Springs))
	}
	if len(f.Timelines) != 1 {
		t.Errorf("expected 1 timeline, got %d", len(f.Timelines))
	}

	springs := f.SpringConfigs()
	press, ok := springs["press"]
	if !ok {
		t.Fatal("spring press missing from SpringConfigs")
	}
	if press.Stiffness != 400 || press.Damping != 28 || press.Mass != 1 {
		t.Errorf("press spring mismatch: %+v", press)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "negative stiffness",
			yaml: "springs:\n  bad:\n    stiffness: -1\n    damping: 10\n    mass: 1\n",
			want: `spring "bad"`,
		},
		{
			name: "zero mass",
			yaml: "springs:\n  bad:\n    stiffness: 100\n    damping: 10\n    mass: 0\n",
			want: `spring "bad"`,
		},
		{
			name: "negative start",
			yaml: "timelines:\n  bad:\n    entries:\n      - start_ms: -5\n        duration_ms: 100\n",
			want: "start_ms must be >= 0",
		},
		{
			name: "negative duration",
			yaml: "timelines:\n  bad:\n    entries:\n      - start_ms: 0\n        duration_ms: -100\n",
			want: "duration_ms must be >= 0",
		},
		{
			name: "unknown easing",
			yaml: "timelines:\n  bad:\n    entries:\n      - start_ms: 0\n        duration_ms: 100\n        easing: bounce\n",
			want: `unknown easing "bounce"`,
		},
		{
			name: "empty timeline",
			yaml: "timelines:\n  bad:\n    entries: []\n",
			want: "has no entries",
		},
		{
			name: "malformed yaml",
			yaml: "springs: [not a map",
			want: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.IsKind(err, errors.KindConfig) {
				t.Errorf("expected KindConfig error, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestEasingByName(t *testing.T) {
	for _, name := range EasingNames() {
		fn, err := EasingByName(name)
		if err != nil {
			t.Errorf("EasingByName(%q) failed: %v", name, err)
		}
		if fn == nil {
			t.Errorf("EasingByName(%q) returned nil", name)
		}
	}

	// Empty name defaults to linear.
	fn, err := EasingByName("")
	if err != nil || fn == nil {
		t.Errorf("empty easing name should default to linear, got %v", err)
	}

	if _, err := EasingByName("bounce"); err == nil {
		t.Error("expected error for unknown easing name")
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/app\n\ngo 1.24.0\n")
	writeFile(t, filepath.Join(root, "motion.yaml"), validYAML)

	nested := filepath.Join(root, "internal", "ui")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	// Resolve from a nested directory walks up to the module root.
	resolved, err := Resolve(nested)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.ModulePath != "example.com/app" {
		t.Errorf("module path = %q, want example.com/app", resolved.ModulePath)
	}
	if len(resolved.Springs) != 2 {
		t.Errorf("expected 2 springs, got %d", len(resolved.Springs))
	}
	if _, ok := resolved.Timelines["loader"]; !ok {
		t.Error("timeline loader missing from resolved config")
	}
}

func TestResolveWithoutMotionYAML(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/bare\n")

	resolved, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(resolved.Springs) != 0 || len(resolved.Timelines) != 0 {
		t.Errorf("expected empty config, got %d springs, %d timelines",
			len(resolved.Springs), len(resolved.Timelines))
	}
}

func TestResolveOutsideModule(t *testing.T) {
	if _, err := Resolve(t.TempDir()); err == nil {
		t.Error("expected error when no go.mod exists")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
