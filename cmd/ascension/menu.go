package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ascension/internal/platform/tui"
	"github.com/vovakirdan/ascension/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the game with a menu",
	Long: `Start the game in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a session you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Session history
  Q            - Quit

Examples:
  ascension menu
  ascension menu --fps 60
  ascension menu --db ./results.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	logger, closeLog := openGameLog()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	}

	for {
		rc := runtimeConfig(cfg.Session.StartLevel)

		selection, err := tui.RunMenu(rc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		if selection == nil {
			break
		}

		if selection.History {
			goBack, histErr := tui.RunHistory(store, rc.ScreenW, rc.ScreenH)
			if histErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", histErr)
			}
			if goBack {
				continue
			}
			break
		}

		if err := playSession(cfg, store, logger, selection.Level); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
