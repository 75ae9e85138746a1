package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ascension/internal/storage"
)

var (
	flagResultsLimit int
	flagResultsJSON  bool
	flagResultsClear bool
	flagResultsLeads bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show past sessions",
	Long: `Display recent finished sessions and how often each profile was reached.

Examples:
  ascension results
  ascension results --limit 50
  ascension results --json
  ascension results --leads
  ascension results --clear`,
	Args: cobra.NoArgs,
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Number of sessions to show")
	resultsCmd.Flags().BoolVar(&flagResultsJSON, "json", false, "Print as JSON")
	resultsCmd.Flags().BoolVar(&flagResultsClear, "clear", false, "Delete all stored sessions")
	resultsCmd.Flags().BoolVar(&flagResultsLeads, "leads", false, "Show captured e-mail leads instead")
}

func runResults(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagResultsClear {
		if err := store.ClearResults(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Session history cleared.")
		return
	}

	if flagResultsLeads {
		printLeads(store)
		return
	}

	results, err := store.RecentResults(flagResultsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}
	profiles, err := store.ProfileCounts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error counting profiles: %v\n", err)
		os.Exit(1)
	}

	if flagResultsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		//nolint:errcheck // Stdout write
		enc.Encode(map[string]any{"items": results, "profiles": profiles})
		return
	}

	fmt.Println("Recent Sessions")
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'ascension play' and reach the portal to record your first profile!")
		return
	}

	fmt.Printf("  %-16s  %-3s  %-10s  %-5s  %-5s  %-5s  %-5s  %s\n",
		"Date", "Lvl", "End", "Time", "Eff", "AI", "Strat", "Profile")
	fmt.Printf("  %-16s  %-3s  %-10s  %-5s  %-5s  %-5s  %-5s  %s\n",
		"----", "---", "---", "----", "---", "--", "-----", "-------")

	for _, r := range results {
		fmt.Printf("  %-16s  %-3d  %-10s  %-5s  %-5.0f  %-5.0f  %-5.0f  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Level,
			r.EndReason,
			fmt.Sprintf("%d:%02d", r.TotalTime/60, r.TotalTime%60),
			r.Efficiency,
			r.AIAdoption,
			r.Strategic,
			r.Profile,
		)
	}

	fmt.Println()
	fmt.Println("Profiles:")
	for _, p := range profiles {
		fmt.Printf("  %-24s %d\n", p.Profile, p.Count)
	}
}

func printLeads(store *storage.Store) {
	leads, err := store.Leads(flagResultsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving leads: %v\n", err)
		os.Exit(1)
	}

	if flagResultsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		//nolint:errcheck // Stdout write
		enc.Encode(map[string]any{"items": leads})
		return
	}

	fmt.Println("Captured Leads")
	fmt.Println()

	if len(leads) == 0 {
		fmt.Println("No e-mail addresses captured yet.")
		return
	}

	fmt.Printf("  %-16s  %-32s  %-6s  %s\n", "Date", "E-mail", "Source", "Profile")
	fmt.Printf("  %-16s  %-32s  %-6s  %s\n", "----", "------", "------", "-------")
	for _, l := range leads {
		fmt.Printf("  %-16s  %-32s  %-6s  %s\n",
			l.CreatedAt.Local().Format("2006-01-02 15:04"),
			l.Email,
			l.Source,
			l.Profile,
		)
	}
}
