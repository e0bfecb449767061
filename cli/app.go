// Package cli contains the raycastsim command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	configFlag   = "config"
	debugFlag    = "debug"
	logLevelFlag = "log-level"
	ticksFlag    = "ticks"
	throttleFlag = "throttle"
	steerFlag    = "steer"
	recordFlag   = "record"
	realtimeFlag = "realtime"
)

// NewApp returns the raycastsim application writing results to out and logs to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "raycastsim",
		Usage:           "drive a raycast vehicle headless",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    debugFlag,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging, overriding --log-level",
			},
			&cli.StringFlag{
				Name:  logLevelFlag,
				Value: "info",
				Usage: "minimum log `LEVEL`: debug, info, warn or error",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run a fixed number of ticks with constant driver input and print the final state",
				UsageText: "raycastsim run [--config FILE] [--ticks N] [--throttle T] [--steer S] [--record DB] [--realtime]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    configFlag,
						Aliases: []string{"c"},
						Usage:   "load the vehicle from `FILE`; the demo car is used when omitted",
					},
					&cli.IntFlag{
						Name:  ticksFlag,
						Value: 600,
						Usage: "number of fixed steps to run",
					},
					&cli.Float64Flag{
						Name:  throttleFlag,
						Usage: "throttle input in [-1, 1]",
					},
					&cli.Float64Flag{
						Name:  steerFlag,
						Usage: "steering direction in [-1, 1]",
					},
					&cli.StringFlag{
						Name:  recordFlag,
						Usage: "record every tick into the SQLite database at `FILE`",
					},
					&cli.BoolFlag{
						Name:  realtimeFlag,
						Usage: "pace steps at the world time step instead of running as fast as possible",
					},
				},
				Action: RunAction,
			},
			{
				Name:      "validate",
				Usage:     "validate a vehicle config file and print its wheels",
				UsageText: "raycastsim validate --config FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     configFlag,
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "vehicle config `FILE`",
					},
				},
				Action: ValidateAction,
			},
		},
	}
}
