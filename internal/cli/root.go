package cli

import (
	"os"

	"github.com/spf13/cobra"

	"VideoVault/internal/app"
	"VideoVault/internal/config"
	"VideoVault/internal/launcher"
	"VideoVault/internal/log"
	"VideoVault/internal/session"
)

// Version is set by main.go
var Version = "dev"

// rootCmd is the base command when called without subcommands
var rootCmd = &cobra.Command{
	Use:   "videovault",
	Short: "Hide files inside videos",
	Long: `VideoVault hides files inside video carriers and extracts them again.

The work is done by an external engine; this command drives it the same way
the desktop window does:
  - encode: embed files into a carrier video (or a data reel)
  - decode: extract hidden files from a video into a folder
  - suggest-password: ask the engine's assistant for a strong password
  - peek: ask the engine's assistant what a video appears to contain`,
	Version:           Version,
	PersistentPreRunE: setup,
}

// Persistent flags
var (
	configPath string
	debug      bool
	logFile    string
)

// activeConfig is loaded before every command.
var activeConfig = config.Default()

// runtime is the engine plumbing a command runs against.
type runtime struct {
	cfg      config.Config
	streamer session.Streamer
	runner   app.BufferedRunner
}

// newRuntime is replaced in tests.
var newRuntime = func(cfg config.Config) runtime {
	l := launcher.New(cfg.LauncherOptions())
	return runtime{cfg: cfg, streamer: session.FromLauncher(l), runner: l}
}

// subcommands that select CLI mode
var cliCommands = map[string]bool{
	"encode":           true,
	"decode":           true,
	"suggest-password": true,
	"peek":             true,
	"help":             true,
	"--help":           true,
	"-h":               true,
	"--version":        true,
	"-v":               true,
}

// Execute runs the CLI application.
// Returns true if CLI mode was activated, false if GUI should run instead.
func Execute(version string) bool {
	Version = version
	rootCmd.Version = version

	if len(os.Args) < 2 || !cliCommands[os.Args[1]] {
		return false
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	return true
}

// setup loads configuration and installs logging.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	activeConfig = cfg

	switch {
	case logFile != "":
		if err := log.EnableFileLogging(logFile, cfg.LogLevel()); err != nil {
			return err
		}
	case cfg.Log.File != "":
		if err := log.EnableFileLogging(cfg.Log.File, cfg.LogLevel()); err != nil {
			return err
		}
	}
	if debug {
		log.EnableDebugLogging()
	}
	log.Debug("Configuration loaded",
		log.String("engine", cfg.Engine.Executable),
		log.String("script", cfg.Engine.Script),
		log.Strings("methods", cfg.Methods.Names()))
	return nil
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append logs to this file")
}
