package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/ini.v1"

	em "github.com/steelcutops/metapkg/metapkg/environmentmanager"
	mg "github.com/steelcutops/metapkg/metapkg/managergroup"
)

const generalSection = "general"

type ManagerConfig struct {
	CLI      string
	Disabled bool
}

type Config struct {
	Timeout     time.Duration
	Concurrency int
	// Path is prepended to PATH before any manager is probed.
	Path     []string
	Managers map[string]ManagerConfig
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:     mg.DefaultTimeout,
		Concurrency: mg.DefaultConcurrency,
		Path:        append([]string(nil), em.DefaultPathPrefixes...),
		Managers:    map[string]ManagerConfig{},
	}
}

// DefaultConfigPath is $HOME/.config/metapkg/config.ini, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "metapkg", "config.ini")
}

// LoadConfig reads the INI file at path. A missing file yields the defaults.
//
//	[general]
//	timeout     = 2m
//	concurrency = 4
//	path        = /usr/local/bin:/opt/local/bin
//
//	[homebrew]
//	cli = /opt/homebrew/bin/brew
//
//	[mas]
//	disabled = true
func LoadConfig(fsys afero.Fs, path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	file, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	general := file.Section(generalSection)
	if general.HasKey("timeout") {
		if config.Timeout, err = general.Key("timeout").Duration(); err != nil {
			return nil, fmt.Errorf("config %s: [general] timeout: %w", path, err)
		}
	}
	if general.HasKey("concurrency") {
		if config.Concurrency, err = general.Key("concurrency").Int(); err != nil {
			return nil, fmt.Errorf("config %s: [general] concurrency: %w", path, err)
		}
	}
	if general.HasKey("path") {
		config.Path = nil
		for _, entry := range general.Key("path").Strings(string(os.PathListSeparator)) {
			if entry = strings.TrimSpace(entry); entry != "" {
				config.Path = append(config.Path, entry)
			}
		}
	}

	for _, section := range file.Sections() {
		name := section.Name()
		if name == ini.DefaultSection || name == generalSection {
			continue
		}

		manager := ManagerConfig{CLI: section.Key("cli").String()}
		if section.HasKey("disabled") {
			if manager.Disabled, err = section.Key("disabled").Bool(); err != nil {
				return nil, fmt.Errorf("config %s: [%s] disabled: %w", path, name, err)
			}
		}
		config.Managers[name] = manager
	}

	return config, nil
}
