package loading

import (
	"context"

	"github.com/IgorRikhard/GameArchitecture/ice"
)

// Service loads everything bound as an Operation.
type Service struct {
	runner     *Runner
	operations *ice.Collection[Operation]
}

func NewService(runner *Runner, operations *ice.Collection[Operation]) *Service {
	return &Service{runner: runner, operations: operations}
}

// StartLoading runs the operations bound so far, in the order they were bound.
func (s *Service) StartLoading(ctx context.Context) error {
	return s.runner.Run(ctx, s.operations.Items())
}

// Operations returns the descriptions of the operations StartLoading would run.
func (s *Service) Operations() []string {
	var out []string
	s.operations.Each(func(i int, op Operation) {
		out = append(out, op.Description())
	})
	return out
}
