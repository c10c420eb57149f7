package clock

import (
	"context"
	"time"

	"go.uber.org/fx"
)

// Clock abstracts wall time so grace periods and report timestamps can be tested.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

var Module = fx.Module("clock",
	fx.Provide(func() Clock { return System{} }),
)

type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

func (System) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
