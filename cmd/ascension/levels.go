package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ascension/internal/games/ascension/core"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [level]",
	Short: "List levels or print a level's maze",
	Long: `Shows the themed levels and the monsters guarding them.
With a level number, prints that level's maze.

Legend:
  #  wall      .  path      $  coin
  M  monster   O  portal    T  tool (unused)
  ?  guide

Examples:
  ascension levels
  ascension levels 2`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, args []string) {
	if len(args) == 1 {
		level, err := strconv.Atoi(args[0])
		if err != nil || level < 1 {
			fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", args[0])
			os.Exit(1)
		}
		printMaze(level)
		return
	}

	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-22s  %s\n", "#", "Name", "Monsters")
	fmt.Printf("  %-3s  %-22s  %s\n", "-", "----", "--------")

	for _, lvl := range core.Levels() {
		a := core.NewMonster("", lvl.Monsters[0])
		b := core.NewMonster("", lvl.Monsters[1])
		fmt.Printf("  %-3d  %-22s  %s, %s\n", lvl.Number, lvl.Name, a.Name, b.Name)
	}

	fmt.Println()
	fmt.Println("Levels past the last reuse its theme.")
	fmt.Println("Run 'ascension levels <n>' to see a maze.")
}

func printMaze(level int) {
	info := core.LevelInfo(level)
	maze := core.Generate(level)

	fmt.Printf("Level %d - %s\n", info.Number, info.Name)
	fmt.Println()
	for _, row := range maze.Rows() {
		fmt.Println("  " + row)
	}
	fmt.Println()
	fmt.Println(info.Hint)
}
