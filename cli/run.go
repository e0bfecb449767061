package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/RaggarDK/ArcadeRaycastVehicle/config"
	"github.com/RaggarDK/ArcadeRaycastVehicle/control"
	"github.com/RaggarDK/ArcadeRaycastVehicle/logging"
	"github.com/RaggarDK/ArcadeRaycastVehicle/sim"
	"github.com/RaggarDK/ArcadeRaycastVehicle/telemetry"
	"github.com/RaggarDK/ArcadeRaycastVehicle/telemetry/memory"
	sqlitestorage "github.com/RaggarDK/ArcadeRaycastVehicle/telemetry/sqlite"
	"github.com/RaggarDK/ArcadeRaycastVehicle/utils"
)

// RunAction is the corresponding Action for 'run'.
func RunAction(c *cli.Context) (err error) {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}

	in := control.Input{Throttle: c.Float64(throttleFlag), Steer: c.Float64(steerFlag)}
	if math.Abs(in.Throttle) > 1 || math.Abs(in.Steer) > 1 {
		return errors.Errorf("--%s and --%s must be in [-1, 1]", throttleFlag, steerFlag)
	}
	ticks := c.Int(ticksFlag)
	if ticks < 0 {
		return errors.Errorf("--%s must not be negative", ticksFlag)
	}

	cfg := config.Default()
	if path := c.String(configFlag); path != "" {
		if cfg, err = config.Read(path, logger); err != nil {
			return err
		}
	}
	assembly, err := config.Build(cfg, logger)
	if err != nil {
		return err
	}

	backend, err := newBackend(c.String(recordFlag), logger)
	if err != nil {
		return err
	}
	if err := backend.Init(); err != nil {
		return multierr.Combine(err, backend.Close())
	}
	defer func() {
		err = multierr.Combine(err, backend.Close())
	}()

	run := telemetry.NewRun(cfg.ConfigFilePath, cfg.World.TimeStep, len(cfg.Wheels))
	if err := backend.StartRun(run); err != nil {
		return err
	}
	logger.Infow("starting run", "run", run.ID, "ticks", ticks, "throttle", in.Throttle, "steer", in.Steer)

	var (
		samples []*telemetry.TickSample
		state   control.State
	)
	tick := func(ctx context.Context, step int) error {
		var err error
		if state, err = assembly.Update(in); err != nil {
			return err
		}
		sample := telemetry.SampleVehicle(step, assembly.Vehicle, assembly.Chassis)
		samples = append(samples, sample)
		return backend.RecordTick(sample)
	}

	loop := sim.NewLoop(assembly.World, nil, logger.Sublogger("loop"))
	if c.Bool(realtimeFlag) {
		err = loop.RunRealtime(c.Context, ticks, tick)
	} else {
		err = loop.Run(c.Context, ticks, tick)
	}
	if err != nil {
		return err
	}

	printSummary(c, run, assembly, state, samples)
	return nil
}

func newBackend(recordPath string, logger logging.Logger) (telemetry.Backend, error) {
	if recordPath == "" {
		return memory.New(), nil
	}
	return sqlitestorage.New(sqlitestorage.Config{Path: recordPath}, logger.Sublogger("telemetry"))
}

func printSummary(
	c *cli.Context,
	run *telemetry.Run,
	assembly *config.Assembly,
	state control.State,
	samples []*telemetry.TickSample,
) {
	v := assembly.Vehicle
	p := assembly.Chassis.Pose().Point
	topSpeed := lo.Reduce(samples, func(acc float64, s *telemetry.TickSample, _ int) float64 {
		return math.Max(acc, math.Abs(s.Speed))
	}, 0)
	airborne := lo.CountBy(samples, func(s *telemetry.TickSample) bool { return s.Airborne })

	summary := table.NewWriter()
	summary.AppendHeader(table.Row{"Run", "Ticks", "Time", "Speed", "Top speed", "Gear", "On ground", "Airborne ticks", "Position"})
	summary.AppendRow(table.Row{
		run.ID,
		len(samples),
		fmt.Sprintf("%.2fs", assembly.World.Time()),
		fmt.Sprintf("%.2f", v.Speed()),
		fmt.Sprintf("%.2f", topSpeed),
		state.Gear + 1,
		fmt.Sprintf("%d/%d", v.WheelsOnGround(), len(v.Wheels())),
		airborne,
		fmt.Sprintf("X:%.2f, Y:%.2f, Z:%.2f", p.X, p.Y, p.Z),
	})
	printf(c.App.Writer, "%s", summary.Render())

	wheels := table.NewWriter()
	wheels.AppendHeader(table.Row{"#", "Name", "Contact", "Compression", "Hit distance", "Suspension force", "Steering (deg)", "Force"})
	for i, w := range v.Wheels() {
		wheels.AppendRow(table.Row{
			i,
			w.Name(),
			w.InContact,
			fmt.Sprintf("%.3f", w.CompressionDistance),
			fmt.Sprintf("%.3f", w.HitDistance),
			fmt.Sprintf("%.1f", w.AppliedSuspensionForce),
			fmt.Sprintf("%.1f", utils.RadToDeg(w.Steering)),
			fmt.Sprintf("%.1f", w.Force),
		})
	}
	printf(c.App.Writer, "%s", wheels.Render())
}
