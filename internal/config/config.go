// Package config loads VideoVault settings from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"VideoVault/internal/engine"
	"VideoVault/internal/errors"
	"VideoVault/internal/launcher"
	"VideoVault/internal/log"
)

// Environment overrides, applied after the file.
const (
	EnvEngine       = "VIDEOVAULT_ENGINE"
	EnvEngineScript = "VIDEOVAULT_ENGINE_SCRIPT"
)

const (
	devInterpreter = "python"
	devScript      = "backend/engine.py"
	defaultGrace   = 2 * time.Second
)

// Config is the full runtime configuration.
type Config struct {
	Engine  EngineConfig   `yaml:"engine"`
	Session SessionConfig  `yaml:"session"`
	Log     LogConfig      `yaml:"log"`
	Methods engine.Methods `yaml:"methods"`
}

// EngineConfig locates the engine executable.
type EngineConfig struct {
	Executable     string        `yaml:"executable"`
	Script         string        `yaml:"script"` // passed as the first argument when set
	Env            []string      `yaml:"env"`
	TerminateGrace time.Duration `yaml:"terminate_grace"`
}

// SessionConfig controls job sessions.
type SessionConfig struct {
	TerminateOnReset bool `yaml:"terminate_on_reset"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration. A bundled engine binary next
// to the running executable is preferred over the development script.
func Default() Config {
	dir := ""
	if exe, err := os.Executable(); err == nil {
		dir = filepath.Dir(exe)
	}
	return Config{
		Engine:  defaultEngine(dir),
		Session: SessionConfig{TerminateOnReset: true},
		Log:     LogConfig{Level: "info"},
		Methods: engine.DefaultMethods(),
	}
}

func defaultEngine(dir string) EngineConfig {
	name := "engine"
	if runtime.GOOS == "windows" {
		name = "engine.exe"
	}
	if dir != "" {
		bundled := filepath.Join(dir, name)
		if info, err := os.Stat(bundled); err == nil && !info.IsDir() {
			return EngineConfig{Executable: bundled, TerminateGrace: defaultGrace}
		}
	}
	return EngineConfig{Executable: devInterpreter, Script: devScript, TerminateGrace: defaultGrace}
}

// DefaultPath is the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "videovault", "config.yaml")
}

// Load reads YAML config from path over the defaults. An empty path, a
// missing file or an empty file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			log.Debug("No config file, using defaults", log.String("path", path))
		case err != nil:
			return cfg, errors.Wrap(err, "read config")
		case len(data) > 0:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, errors.Wrap(err, "parse yaml")
			}
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv lets VIDEOVAULT_ENGINE replace the engine. Setting it alone drops
// any configured script; VIDEOVAULT_ENGINE_SCRIPT sets one explicitly.
func (c *Config) applyEnv() {
	if exe := os.Getenv(EnvEngine); exe != "" {
		c.Engine.Executable = exe
		c.Engine.Script = ""
	}
	if script, ok := os.LookupEnv(EnvEngineScript); ok {
		c.Engine.Script = script
	}
}

// Validate checks the configuration for values the rest of the program
// cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Engine.Executable) == "" {
		return fmt.Errorf("engine.executable must not be empty")
	}
	if c.Engine.TerminateGrace < 0 {
		return fmt.Errorf("invalid engine.terminate_grace: %s", c.Engine.TerminateGrace)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	if len(c.Methods) == 0 {
		return fmt.Errorf("methods must list at least one method")
	}
	seen := make(map[string]struct{}, len(c.Methods))
	for i, m := range c.Methods {
		if m.Name == "" {
			return fmt.Errorf("methods[%d]: name must not be empty", i)
		}
		if _, ok := seen[m.Name]; ok {
			return fmt.Errorf("methods[%d]: duplicate method %q", i, m.Name)
		}
		seen[m.Name] = struct{}{}
	}
	return nil
}

// LogLevel returns the parsed log level.
func (c Config) LogLevel() log.Level {
	level, _ := log.ParseLevel(c.Log.Level)
	return level
}

// Builder returns an argument builder for the configured engine.
func (c Config) Builder() engine.Builder {
	return engine.Builder{
		Executable: c.Engine.Executable,
		Script:     c.Engine.Script,
		Methods:    c.Methods,
	}
}

// LauncherOptions returns the process launcher settings.
func (c Config) LauncherOptions() launcher.Options {
	return launcher.Options{
		Env:   c.Engine.Env,
		Grace: c.Engine.TerminateGrace,
	}
}
