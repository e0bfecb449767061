package cli

import (
	"github.com/urfave/cli/v2"

	"github.com/RaggarDK/ArcadeRaycastVehicle/config"
)

// ValidateAction is the corresponding Action for 'validate'.
func ValidateAction(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	cfg, err := config.Read(c.String(configFlag), logger)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s is valid", c.String(configFlag))
	for _, warning := range cfg.Warnings() {
		printf(c.App.Writer, "warning: %s", warning)
	}
	printf(c.App.Writer, "%s", cfg.String())
	return nil
}
