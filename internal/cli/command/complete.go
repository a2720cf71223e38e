package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/snotify-go/internal/display"
	"github.com/yndnr/snotify-go/internal/launch"
)

// CompleteCommand returns the complete command.
func CompleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "complete",
		Usage:     "Broadcast completion for an activation token",
		ArgsUsage: "TOKEN",
		Action:    completeRun,
	}
}

func completeRun(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("complete: exactly one TOKEN argument required", 2)
	}

	conn, err := display.ConnectX11(appConfig(c).Display)
	if err != nil {
		return err
	}
	defer conn.Close()

	l := launch.New(conn, launch.WithLogger(appLogger(c)))
	return l.Complete(c.Args().First())
}
