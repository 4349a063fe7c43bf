package routing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrManifestNotFound = errors.New("routing manifest not found")

// Rule declares gate-relevant metadata for a path prefix. Public routes skip
// the whole gate chain; Feature names the plan feature the subtree requires.
type Rule struct {
	Prefix  string `yaml:"prefix"`
	Public  bool   `yaml:"public"`
	Feature string `yaml:"feature"`
}

type manifestFile struct {
	Version int    `yaml:"version"`
	Routes  []Rule `yaml:"routes"`
}

func DefaultManifestPath() string {
	if p := strings.TrimSpace(os.Getenv("ROUTES_MANIFEST_PATH")); p != "" {
		return p
	}

	const relative = "config/routing/routes.yaml"
	if wd, err := os.Getwd(); err == nil {
		if repoRoot, ok := findGoModRoot(wd); ok {
			abs := filepath.Join(repoRoot, filepath.FromSlash(relative))
			if _, statErr := os.Stat(abs); statErr == nil {
				return abs
			}
		}
	}

	return filepath.FromSlash(relative)
}

func LoadManifest(path string) ([]Rule, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultManifestPath()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, err
	}

	var file manifestFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}

	if file.Version != 1 {
		return nil, fmt.Errorf("unsupported manifest version: %d", file.Version)
	}

	for i := range file.Routes {
		file.Routes[i].Prefix = strings.TrimSpace(file.Routes[i].Prefix)
		if file.Routes[i].Prefix == "" {
			return nil, fmt.Errorf("route rule[%d]: empty prefix", i)
		}
		if !strings.HasPrefix(file.Routes[i].Prefix, "/") {
			return nil, fmt.Errorf("route rule[%d]: prefix must start with '/': %q", i, file.Routes[i].Prefix)
		}
		file.Routes[i].Feature = strings.TrimSpace(file.Routes[i].Feature)
	}

	return file.Routes, nil
}

func findGoModRoot(start string) (string, bool) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
