package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves the managed directory layout against a base directory.
// All relative configured paths are resolved against the executable
// location, never the current working directory.
type Paths struct {
	BaseDir   string
	DataDir   string
	CacheDir  string
	ExportDir string
	LogsDir   string
}

// ResolvePaths builds the path set from configuration.
func ResolvePaths(cfg *Config) (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}
	return resolvePathsFrom(filepath.Dir(exe), cfg), nil
}

func resolvePathsFrom(base string, cfg *Config) *Paths {
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	return &Paths{
		BaseDir:   base,
		DataDir:   resolve(cfg.Paths.DataDir),
		CacheDir:  resolve(cfg.Paths.CacheDir),
		ExportDir: resolve(cfg.Paths.ExportDir),
		LogsDir:   resolve(cfg.Paths.LogsDir),
	}
}

// EnsureDirectories creates every managed directory.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.CacheDir, p.ExportDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ExportPath returns the full path for an export file.
func (p *Paths) ExportPath(filename string) string {
	return filepath.Join(p.ExportDir, filename)
}

// LogPath returns the full path for a log file.
func (p *Paths) LogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
