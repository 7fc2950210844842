package main

import (
	"fmt"

	"github.com/poiesic/librarian/mathops"
	"github.com/urfave/cli/v2"
)

func logFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "log",
		Usage: "Append the request to the request log (--log=false to skip)",
		Value: true,
	}
}

func mathCommand() *cli.Command {
	return &cli.Command{
		Name:  "math",
		Usage: "Arbitrary-precision math with optional request logging",
		Subcommands: []*cli.Command{
			{
				Name:   "power",
				Usage:  "Raise base to exponent",
				Action: mathAction(mathops.OpPower),
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "base", Aliases: []string{"b"}, Usage: "Base (0 to 1000000)", Required: true},
					&cli.Int64Flag{Name: "exponent", Aliases: []string{"e"}, Usage: "Exponent (0 to 1000)", Required: true},
					logFlag(),
				},
			},
			{
				Name:   "fibonacci",
				Usage:  "Compute the nth Fibonacci number",
				Action: mathAction(mathops.OpFibonacci),
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "n", Usage: "Index (0 to 100000)", Required: true},
					logFlag(),
				},
			},
			{
				Name:   "factorial",
				Usage:  "Compute n!",
				Action: mathAction(mathops.OpFactorial),
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "n", Usage: "Operand (0 to 5000)", Required: true},
					logFlag(),
				},
			},
			{
				Name:   "history",
				Usage:  "Show the most recent logged requests",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "Number of entries to show", Value: 10},
				},
			},
		},
	}
}

func mathAction(op mathops.Operation) cli.ActionFunc {
	return func(c *cli.Context) error {
		req := mathops.Request{
			Operation: op,
			Base:      c.Int64("base"),
			Exponent:  c.Int64("exponent"),
			N:         c.Int64("n"),
			Log:       c.Bool("log"),
		}

		lib, err := openLibrary(c)
		if err != nil {
			return err
		}
		defer lib.Close()

		outcome, err := lib.Compute(c.Context, req)
		if err != nil {
			return err
		}

		fmt.Fprintf(c.App.Writer, "%s = %s\n", outcome.Input, outcome.Result)
		if req.Log && !outcome.Logged {
			fmt.Fprintln(c.App.ErrWriter, "warning: request was not logged")
		}
		return nil
	}
}

func historyCommand(c *cli.Context) error {
	limit := c.Int("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	entries, err := lib.History(c.Context, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.App.Writer, "No logged requests")
		return nil
	}
	for _, entry := range entries {
		fmt.Fprintf(c.App.Writer, "%s  %-9s  %s = %s\n",
			entry.CreatedAt.Format("2006-01-02 15:04:05"), entry.Operation, entry.Input, entry.Result)
	}
	return nil
}
