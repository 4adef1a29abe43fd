package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"jsslice/internal/diagfmt"
	"jsslice/internal/driver"
)

const manifestName = "jsslice.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
	meta   toml.MetaData
}

type projectConfig struct {
	Check  checkConfig  `toml:"check"`
	Parse  parseConfig  `toml:"parse"`
	Output outputConfig `toml:"output"`
}

type checkConfig struct {
	Paths      []string `toml:"paths"`
	Exclude    []string `toml:"exclude"`
	Jobs       int      `toml:"jobs"`
	Cache      bool     `toml:"cache"`
	CacheDir   string   `toml:"cache_dir"`
	ExpectLets bool     `toml:"expect_lets"`
}

type parseConfig struct {
	MaxDepth int `toml:"max_depth"`
}

type outputConfig struct {
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

// defined reports whether the manifest sets key; a nil manifest sets nothing.
func (m *projectManifest) defined(key ...string) bool {
	return m != nil && m.meta.IsDefined(key...)
}

// resolvePath делает путь из манифеста относительным к его каталогу.
func (m *projectManifest) resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, filepath.FromSlash(p))
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
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

func loadProjectManifest(path string) (*projectManifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	var cfg projectConfig
	meta, err := toml.DecodeFile(abs, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := validateConfig(cfg, meta); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &projectManifest{Path: abs, Root: filepath.Dir(abs), Config: cfg, meta: meta}, nil
}

func validateConfig(cfg projectConfig, meta toml.MetaData) error {
	if cfg.Check.Jobs < 0 {
		return fmt.Errorf("[check].jobs must be >= 0")
	}
	if cfg.Parse.MaxDepth < 0 {
		return fmt.Errorf("[parse].max_depth must be >= 0")
	}
	if cfg.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("[output].max_diagnostics must be >= 0")
	}
	if meta.IsDefined("output", "color") {
		if _, err := readColorMode(cfg.Output.Color); err != nil {
			return fmt.Errorf("[output].color: %w", err)
		}
	}
	if _, err := driver.NewSourceFilter(cfg.Check.Exclude); err != nil {
		return fmt.Errorf("[check].exclude: %w", err)
	}
	return nil
}

// settings: итоговые значения: флаги поверх манифеста поверх умолчаний.
type settings struct {
	manifest       *projectManifest
	color          string
	quiet          bool
	timings        bool
	maxDiagnostics int
	maxDepth       int
	pathMode       diagfmt.PathMode
}

var current settings

func loadSettings(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	configPath, err := pf.GetString("config")
	if err != nil {
		return err
	}
	var manifest *projectManifest
	if configPath == "" {
		found, ok, err := findManifest(".")
		if err != nil {
			return err
		}
		if ok {
			configPath = found
		}
	}
	if configPath != "" {
		if manifest, err = loadProjectManifest(configPath); err != nil {
			return err
		}
	}

	s := settings{manifest: manifest}
	if s.color, err = pf.GetString("color"); err != nil {
		return err
	}
	if !pf.Changed("color") && manifest.defined("output", "color") {
		s.color = manifest.Config.Output.Color
	}
	mode, err := readColorMode(s.color)
	if err != nil {
		return err
	}
	s.color = mode
	if s.quiet, err = pf.GetBool("quiet"); err != nil {
		return err
	}
	if s.timings, err = pf.GetBool("timings"); err != nil {
		return err
	}
	if s.maxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return err
	}
	if !pf.Changed("max-diagnostics") && manifest.defined("output", "max_diagnostics") {
		s.maxDiagnostics = manifest.Config.Output.MaxDiagnostics
	}
	pathMode, err := pf.GetString("path-mode")
	if err != nil {
		return err
	}
	var ok bool
	if s.pathMode, ok = diagfmt.ParsePathMode(pathMode); !ok {
		return fmt.Errorf("invalid path-mode %q (expected auto|absolute|relative|basename)", pathMode)
	}
	if manifest.defined("parse", "max_depth") {
		s.maxDepth = manifest.Config.Parse.MaxDepth
	}
	current = s
	return nil
}

func readColorMode(value string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(value)); v {
	case "", "auto":
		return "auto", nil
	case "on", "off":
		return v, nil
	default:
		return "", fmt.Errorf("invalid color value %q (expected auto|on|off)", value)
	}
}

// checkRoots: аргументы, иначе [check].paths из манифеста, иначе ".".
func checkRoots(args []string) []string {
	if len(args) > 0 {
		return args
	}
	m := current.manifest
	if m.defined("check", "paths") && len(m.Config.Check.Paths) > 0 {
		roots := make([]string, len(m.Config.Check.Paths))
		for i, p := range m.Config.Check.Paths {
			roots[i] = m.resolvePath(p)
		}
		return roots
	}
	return []string{"."}
}
