package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock supplies the reference instant for lifecycle evaluation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads wall-clock time in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func provideSystemClock() Clock {
	return SystemClock{}
}

var Module = fx.Module("clock",
	fx.Provide(provideSystemClock),
)
