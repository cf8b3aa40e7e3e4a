package loading

import (
	"context"
	"fmt"
	"time"
)

// SimulatedSettings describes a stand-in operation. Failures is the number of
// attempts that fail before one succeeds.
type SimulatedSettings struct {
	Description string
	Duration    time.Duration
	Failures    int
}

// SimulatedOperation takes Duration to load and does nothing else.
type SimulatedOperation struct {
	settings SimulatedSettings
	attempts int
}

func NewSimulatedOperation(settings SimulatedSettings) *SimulatedOperation {
	return &SimulatedOperation{settings: settings}
}

func (s *SimulatedOperation) Description() string {
	return s.settings.Description
}

func (s *SimulatedOperation) Load(ctx context.Context) error {
	t := time.NewTimer(s.settings.Duration)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}

	s.attempts++
	if s.attempts <= s.settings.Failures {
		return fmt.Errorf("simulated failure %d of %d", s.attempts, s.settings.Failures)
	}
	return nil
}

// Attempts is the number of times Load ran to the end of its delay.
func (s *SimulatedOperation) Attempts() int {
	return s.attempts
}
