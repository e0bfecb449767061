// Package main is the raycastsim command.
package main

import (
	"os"

	"github.com/RaggarDK/ArcadeRaycastVehicle/cli"
	"github.com/RaggarDK/ArcadeRaycastVehicle/logging"
)

func main() {
	logger := logging.NewBlankLogger("raycastsim")
	logger.AddAppender(logging.NewWriterAppender(os.Stderr))
	logging.ReplaceGlobal(logger)

	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.Global().Error(err)
		os.Exit(1)
	}
}
