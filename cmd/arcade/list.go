package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameroom/internal/registry"
	"github.com/vovakirdan/gameroom/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game with its controls and, when a scores database is available, the best score so far.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	var stats map[string]*storage.GameStats
	if store := openStore(); store != nil {
		defer store.Close()
		stats, _ = store.GetAllGamesStats()
	}
	writeGameList(os.Stdout, registry.List(), stats)
}

// writeGameList prints one row per game. A nil stats map hides the
// score column.
func writeGameList(out io.Writer, games []registry.GameInfo, stats map[string]*storage.GameStats) {
	if len(games) == 0 {
		fmt.Fprintln(out, "No games available.")
		return
	}

	fmt.Fprintln(out, "Available games:")
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if stats != nil {
		fmt.Fprintln(tw, "  ID\tTitle\tBest\tControls")
		fmt.Fprintln(tw, "  --\t-----\t----\t--------")
	} else {
		fmt.Fprintln(tw, "  ID\tTitle\tControls")
		fmt.Fprintln(tw, "  --\t-----\t--------")
	}
	for _, g := range games {
		if stats == nil {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", g.ID, g.Title, g.Controls)
			continue
		}
		best := "-"
		if s, ok := stats[g.ID]; ok && s.GamesCount > 0 {
			best = humanize.Comma(int64(s.HighScore))
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", g.ID, g.Title, best, g.Controls)
	}
	tw.Flush()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'arcade play <id>' to play a game.")
}
