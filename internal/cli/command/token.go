package command

import (
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snotify-go/internal/cli/output"
	"github.com/yndnr/snotify-go/pkg/sntoken"
)

// TokenCommand returns the token subcommand group.
func TokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Generate and inspect activation tokens",
		Subcommands: []*cli.Command{
			{
				Name:   "new",
				Usage:  "Generate a fresh activation token",
				Action: tokenNew,
			},
			{
				Name:      "parse",
				Usage:     "Decompose a token into launcher and timestamp",
				ArgsUsage: "TOKEN",
				Action:    tokenParse,
			},
		},
	}
}

func tokenNew(c *cli.Context) error {
	return formatter(c).Format(c.App.Writer, sntoken.Generate())
}

func tokenParse(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("token parse: exactly one TOKEN argument required", 2)
	}
	token := c.Args().First()

	launcher, timestamp, err := sntoken.Parse(token)
	if err != nil {
		return err
	}

	if appConfig(c).Output == "json" {
		return formatter(c).Format(c.App.Writer, struct {
			Token     string `json:"token"`
			Launcher  string `json:"launcher"`
			Timestamp uint32 `json:"timestamp"`
		}{token, launcher, timestamp})
	}

	var pairs output.Pairs
	pairs.Add("launcher", launcher)
	pairs.Add("timestamp", strconv.FormatUint(uint64(timestamp), 10))
	return formatter(c).Format(c.App.Writer, pairs)
}
