package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snotify-go/internal/journal"
)

// HistoryCommand returns the history subcommand group for journals
// recorded by "monitor --journal".
func HistoryCommand() *cli.Command {
	journalFlag := &cli.StringFlag{
		Name:     "journal",
		Usage:    "Journal directory",
		Required: true,
	}
	return &cli.Command{
		Name:  "history",
		Usage: "Inspect a recorded startup-notification journal",
		Subcommands: []*cli.Command{
			{
				Name:  "ls",
				Usage: "List recorded messages, newest first",
				Flags: []cli.Flag{
					journalFlag,
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Value:   20,
						Usage:   "Maximum number of records",
					},
				},
				Action: historyList,
			},
			{
				Name:  "prune",
				Usage: "Delete records older than the retention window",
				Flags: []cli.Flag{
					journalFlag,
					&cli.DurationFlag{
						Name:  "keep",
						Value: 24 * time.Hour,
						Usage: "Retention window (e.g., 24h, 30m)",
					},
				},
				Action: historyPrune,
			},
		},
	}
}

func historyList(c *cli.Context) error {
	jrnl, err := journal.Open(c.String("journal"), journal.WithLogger(appLogger(c)))
	if err != nil {
		return err
	}
	defer jrnl.Close()

	records, err := jrnl.Recent(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}

	if appConfig(c).Output == "json" {
		return formatter(c).Format(c.App.Writer, records)
	}
	for _, rec := range records {
		fmt.Fprintf(c.App.Writer, "%s  %-8s %s (origin 0x%08x)\n",
			rec.ObservedAt.Format(time.RFC3339), rec.Verb, rec.Token, rec.Origin)
	}
	return nil
}

func historyPrune(c *cli.Context) error {
	jrnl, err := journal.Open(c.String("journal"), journal.WithLogger(appLogger(c)))
	if err != nil {
		return err
	}
	defer jrnl.Close()

	cutoff := time.Now().Add(-c.Duration("keep"))
	deleted, err := jrnl.Prune(c.Context, cutoff)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "pruned %d records\n", deleted)
	return nil
}
