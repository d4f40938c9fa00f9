package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// uitest.toml describes the compiler under test so that invocations do not
// need a wall of flags. Flags still override everything in it.

type manifest struct {
	Path   string
	Root   string
	Config manifestConfig
}

type manifestConfig struct {
	Program  programConfig  `toml:"program"`
	Output   outputConfig   `toml:"output"`
	Platform platformConfig `toml:"platform"`
}

type programConfig struct {
	Binary     string   `toml:"binary"`
	Args       []string `toml:"args"`
	OutDirFlag string   `toml:"out_dir_flag"`
	OutDir     string   `toml:"out_dir"`
}

type outputConfig struct {
	Conflicts    string `toml:"conflicts"`
	BlessCommand string `toml:"bless_command"`
}

type platformConfig struct {
	Target string `toml:"target"`
	Host   string `toml:"host"`
}

func findUitestToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "uitest.toml")
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

func loadManifest(startDir string) (*manifest, bool, error) {
	manifestPath, ok, err := findUitestToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var cfg manifestConfig
	if _, err := toml.DecodeFile(manifestPath, &cfg); err != nil {
		return nil, true, fmt.Errorf("%s: failed to parse TOML: %w", manifestPath, err)
	}
	return &manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}
