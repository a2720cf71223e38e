package command

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/snotify-go/internal/display"
	"github.com/yndnr/snotify-go/internal/launch"
)

// LaunchCommand returns the launch command.
func LaunchCommand() *cli.Command {
	return &cli.Command{
		Name:      "launch",
		Usage:     "Launch a program with startup notification",
		ArgsUsage: "COMMAND [ARGS...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-wait",
				Usage: "Broadcast completion right after starting instead of when the program exits",
			},
		},
		Action: launchRun,
	}
}

func launchRun(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("launch: COMMAND required", 2)
	}
	log := appLogger(c)

	conn, err := display.ConnectX11(appConfig(c).Display)
	if err != nil {
		return err
	}
	defer conn.Close()

	l := launch.New(conn, launch.WithLogger(log))
	token, cmd, err := l.Prepare(c.Context, c.Args().Slice())
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		// The "new" broadcast already went out; retract it.
		if cerr := l.Complete(token); cerr != nil {
			log.Warn("retract startup sequence", "token", token, "error", cerr)
		}
		return err
	}
	log.Info("program started", "token", token, "pid", cmd.Process.Pid)

	if c.Bool("no-wait") {
		return l.Complete(token)
	}

	waitErr := cmd.Wait()
	if err := l.Complete(token); err != nil {
		log.Warn("complete startup sequence", "token", token, "error", err)
	}
	return waitErr
}
