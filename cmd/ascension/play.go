package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ascension/internal/config"
	"github.com/vovakirdan/ascension/internal/games/ascension"
	"github.com/vovakirdan/ascension/internal/leads"
	"github.com/vovakirdan/ascension/internal/platform/tui"
	"github.com/vovakirdan/ascension/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session",
	Long: `Start a session of the research maze.

Controls:
  Arrows/WASD/HJKL  - Move
  Mouse drag        - Move along the dominant axis
  1-9               - Equip or unequip a tool
  P/Space           - Pause
  R                 - Restart the level
  E                 - E-mail your results (after the session)
  Esc/B             - Leave (when paused or finished)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 15 minutes, 400 energy
  normal - 10 minutes, 300 energy
  hard   - 7 minutes, 200 energy, the run ends when energy hits zero
  fixed  - Use the config file values unchanged

Examples:
  ascension play
  ascension play --level 3
  ascension play --difficulty hard
  ascension play --config ./my-ascension.yaml --log ./ascension.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start on (default: config start_level)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	level := cfg.Session.StartLevel
	if flagLevel > 0 {
		level = flagLevel
	}

	logger, closeLog := openGameLog()
	defer closeLog()

	// Open results storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := playSession(cfg, store, logger, level)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// playSession runs one game program until the player leaves.
func playSession(cfg config.AscensionConfig, store *storage.Store, logger *log.Logger, level int) error {
	opts := ascension.OptionsFromConfig(cfg)
	opts.Logger = logger
	game := ascension.New(opts)

	svc := tui.Services{
		Store:          store,
		Logger:         logger,
		SwipeThreshold: cfg.Input.SwipeThreshold,
	}
	if store != nil || cfg.Leads.Endpoint != "" {
		svc.Leads = leads.New(cfg.Leads.Endpoint, cfg.Leads.Timeout, store, logger)
	}

	return tui.Run(game, svc, runtimeConfig(level))
}
