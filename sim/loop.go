package sim

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/RaggarDK/ArcadeRaycastVehicle/logging"
)

// TickFunc runs before the world integrates step number `step`.
type TickFunc func(ctx context.Context, step int) error

// Loop drives a World at its fixed time step.
type Loop struct {
	world  *World
	clock  clock.Clock
	logger logging.Logger
}

// NewLoop returns a loop over world. clk paces RunRealtime; nil means the wall clock.
func NewLoop(world *World, clk clock.Clock, logger logging.Logger) *Loop {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = logging.Global().Sublogger("loop")
	}
	return &Loop{world: world, clock: clk, logger: logger}
}

// Run executes steps ticks as fast as possible.
func (l *Loop) Run(ctx context.Context, steps int, tick TickFunc) error {
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.step(ctx, i, tick); err != nil {
			return err
		}
	}
	return nil
}

// RunRealtime executes steps ticks, one per time step of the loop's clock.
func (l *Loop) RunRealtime(ctx context.Context, steps int, tick TickFunc) error {
	period := time.Duration(l.world.FixedTimeStep() * float64(time.Second))
	ticker := l.clock.Ticker(period)
	defer ticker.Stop()

	start := l.clock.Now()
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := l.step(ctx, i, tick); err != nil {
			return err
		}
	}
	l.logger.Debugw("realtime run finished", "steps", steps, "elapsed", l.clock.Since(start))
	return nil
}

func (l *Loop) step(ctx context.Context, i int, tick TickFunc) error {
	if tick != nil {
		if err := tick(ctx, i); err != nil {
			return errors.Wrapf(err, "tick %d", i)
		}
	}
	l.world.Step()
	return nil
}
