// ascension is a terminal maze game that profiles how researchers adopt AI tools.
//
// Usage:
//
//	ascension play            - Play a session
//	ascension menu            - Start menu with level select and history
//	ascension levels [level]  - List levels or print a level's maze
//	ascension results         - Show past sessions and profiles
//	ascension serve           - Start SSH server for remote play
//	ascension api             - Start the HTTP API
//
// Global flags:
//
//	--fps <rate>          - Set frame rate (default: 30)
//	--db <path>           - Set database path (default: ~/.ascension/results.db)
//	--config <path>       - Custom YAML config
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log <path>          - Write game logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ascension/internal/config"
	"github.com/vovakirdan/ascension/internal/core"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ascension",
	Short: "Ascension - climb the research maze in your terminal",
	Long: `Ascension is a terminal maze game. Guide a researcher from the
entrance to the summit portal, collect coins, equip research tools and face
the monsters of academic life. When the session ends your choices are turned
into an AI adoption profile.

Available commands:
  play     - Play a session directly
  menu     - Interactive menu with level select and history
  levels   - Show the levels and their mazes
  results  - Show past sessions
  serve    - Start SSH server for remote play
  api      - Start the HTTP API

Examples:
  ascension play
  ascension play --level 2 --difficulty hard
  ascension menu
  ascension serve --ssh :2222
  ascension api --addr :8080`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ascension/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write game logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
}

// loadConfig loads the YAML config and applies the difficulty preset.
func loadConfig() (config.AscensionConfig, error) {
	cfg, err := config.LoadAscension(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// mustLoadConfig exits with an error message when the config is unusable.
func mustLoadConfig() config.AscensionConfig {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openGameLog returns a file logger for --log, or a discarding one.
// The terminal belongs to the game, so nothing is written to stderr.
func openGameLog() (*log.Logger, func()) {
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}
	}

	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "ascension",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig(level int) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Level:    level,
	}
}
