// Package project locates and reads the displaystr.toml manifest.
//
// The manifest is optional: commands fall back to built-in defaults when
// no manifest is found between the working directory and the filesystem
// root.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the discovery walk looks for.
const ManifestName = "displaystr.toml"

// Manifest is a loaded displaystr.toml with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the TOML structure.
type Config struct {
	Package PackageConfig `toml:"package"`
	Expand  ExpandConfig  `toml:"expand"`
}

// PackageConfig is the [package] table.
type PackageConfig struct {
	Name string `toml:"name"`
}

// ExpandConfig is the [expand] table.
type ExpandConfig struct {
	// Doc turns doc-comment generation on by default.
	Doc bool `toml:"doc"`
	// Sources lists the declaration file globs, relative to the root.
	Sources []string `toml:"sources"`
}

// FindManifest walks up from startDir to locate displaystr.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load walks up from startDir and reads the nearest manifest. ok is false
// when no manifest exists; that is not an error.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	return cfg, nil
}

// SourceDirs resolves the manifest's source globs to existing directories
// and files, relative paths anchored at the manifest root. An empty
// [expand].sources means the root itself.
func (m *Manifest) SourceDirs() ([]string, error) {
	if len(m.Config.Expand.Sources) == 0 {
		return []string{m.Root}, nil
	}
	var out []string
	for _, pattern := range m.Config.Expand.Sources {
		matches, err := filepath.Glob(filepath.Join(m.Root, filepath.FromSlash(pattern)))
		if err != nil {
			return nil, fmt.Errorf("%s: bad glob %q: %w", m.Path, pattern, err)
		}
		out = append(out, matches...)
	}
	return out, nil
}
